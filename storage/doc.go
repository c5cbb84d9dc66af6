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

// Package storage provides the snapshot persistence layer for prospect.
//
// The in-memory corpus and its embedding index are the source of truth;
// storage only captures a snapshot of a finished build so later query and
// export runs can skip re-fetching and re-embedding. This package defines the
// repository interface and the MUS wire encoding; backends live in
// subpackages (BadgerDB under storage/badger).
//
// Public constructors return the SnapshotRepository interface rather than
// concrete types, so consumers never couple to a specific backend and tests
// can substitute in-memory implementations.
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines. All methods accept context.Context for
// cancellation and timeout support.
package storage
