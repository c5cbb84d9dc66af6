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


package core

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// DefaultMinTitleLength is the minimum number of characters a trimmed title
// must have to be considered a substantive listing.
const DefaultMinTitleLength = 4

// ValidateRecord validates a Record according to domain rules.
//
// Validation rules:
//   - Source must not be empty
//   - Title must not be empty and must be at least DefaultMinTitleLength
//     characters after trimming
//   - URL must not be empty and must be absolute
//
// NOT validated:
//   - Description (optional, empty is valid)
//   - Noise lexicon and privacy markers (the filter's concern, not the record's)
func ValidateRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if record.Source == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptySource)
	}

	title := strings.TrimSpace(record.Title)
	if title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyTitle)
	}
	if utf8.RuneCountInString(title) < DefaultMinTitleLength {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrTitleTooShort)
	}

	if record.URL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyURL)
	}
	if !IsAbsoluteURL(record.URL) {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrRelativeURL)
	}

	return nil
}

// IsAbsoluteURL reports whether s parses as an absolute URL.
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}
