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


// Package ai provides abstractions for the embedding capability used by the
// indexer and query engine.
//
// The package defines the Embedder interface for text embeddings and the
// AIProvider aggregate for initialization and lifecycle management. The core
// pipeline depends only on these abstractions; any model producing
// semantically meaningful fixed-length vectors from text satisfies the
// contract.
//
// Two implementation sub-packages are included:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: deterministic test doubles for unit testing without external
//     services
//
// Public constructors (openai.NewProvider, openai.NewEmbedder) return
// interface types to enforce abstraction. Test utility constructors
// (mock.NewMockEmbedder) return concrete types to enable behavior injection
// and call-count assertions.
package ai
