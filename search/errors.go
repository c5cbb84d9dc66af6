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

package search

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrIndexRequired is returned when a query is run without an indexed corpus.
	ErrIndexRequired = errors.New("indexed corpus required")

	// ErrInvalidLimit is returned when a query asks for fewer than one result.
	ErrInvalidLimit = errors.New("result limit must be positive")

	// ErrDimensionMismatch is returned when the query embedding's dimension
	// does not match the index's dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
