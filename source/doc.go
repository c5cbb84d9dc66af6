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


// Package source defines the source adapter contract and the built-in adapters.
//
// Each adapter produces a finite sequence of raw records plus a fixed
// (label, base URL) pair. Adapters do field extraction only; URL resolution,
// validation, filtering, and deduplication are downstream concerns.
//
// Two adapters are provided: StaticSource for inline fixture data and
// HTMLSource for selector-based extraction from a listing page. Source lists
// are declared in TOML and loaded with LoadSources; the file order is the
// consolidation order.
package source
