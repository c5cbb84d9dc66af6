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


// Package core defines the domain model of the consolidation engine.
//
// The central entity is the Record: the canonical, validated representation
// of one opportunity listing, identified by its absolute URL. Records flow
// through the pipeline into a Corpus (the deduplicated, ordered collection
// from all sources) and then into an IndexedCorpus (a corpus paired with one
// embedding vector per record for similarity queries).
//
// The package also defines the rejection taxonomy used by the normalizer and
// filter stages. Rejections are recorded, never fatal: each one removes
// exactly one candidate record and processing continues.
package core
