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


package source

import "errors"

var (
	// ErrLabelRequired is returned when a source is configured without a label.
	ErrLabelRequired = errors.New("source label required")

	// ErrPageURLRequired is returned when an HTML source has no page URL.
	ErrPageURLRequired = errors.New("page URL required")

	// ErrSelectorsRequired is returned when an HTML source is missing the item
	// or title selector.
	ErrSelectorsRequired = errors.New("item and title selectors required")

	// ErrUnexpectedStatus is returned when a listing page responds with a
	// non-200 status.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrUnknownSourceKind is returned when a configured source kind is not
	// recognized.
	ErrUnknownSourceKind = errors.New("unknown source kind")
)
