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


// Package consolidate turns raw per-source records into one deduplicated corpus.
//
// The pass runs three stages in sequence:
//
//   - Normalizer: canonical Record shape, relative URLs resolved against the
//     source base URL
//   - Filter: privacy guard (contact links, email-shaped text) and noise
//     lexicon match on titles
//   - Deduplicator: first-seen wins on exact URL equality, in caller-supplied
//     source order
//
// Every stage records rejections instead of failing; a single Pipeline.Run
// over an ordered source list yields the finalized corpus.
package consolidate
