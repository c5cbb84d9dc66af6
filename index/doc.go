// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package index builds embedding indexes over consolidated corpora.
//
// An Indexer embeds every record's index text in parallel batches and
// produces an IndexedCorpus whose vector store is position-aligned with the
// corpus. Transient embedder failures are retried with exponential backoff;
// batches that still fail are dropped from the index rather than failing the
// build, so queries can proceed over the records that did embed.
package index
