// Package domain contains business entities and rules for markets.
package domain

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const maxTagLength = 48

// invalidTagSymbols are the ASCII symbols a tag may not contain. Underscore
// is deliberately absent from the set.
const invalidTagSymbols = "!\"#$%&'()*+,-./:;<=>?@[\\]^`{|}~"

// Tag categorizes items. Tags are case-insensitive: they are stored
// lowercase and displayed in title case.
type Tag struct {
	value string
}

// NewTag creates a validated Tag. Surrounding whitespace is trimmed and
// internal whitespace runs collapse to a single space; the result is
// lowercased and limited to 48 characters.
func NewTag(value string) (Tag, error) {
	value = strings.Join(strings.Fields(value), " ")

	if value == "" {
		return Tag{}, ErrTagEmpty
	}
	if len(value) > maxTagLength {
		return Tag{}, ErrTagTooLong
	}
	if strings.ContainsAny(value, invalidTagSymbols) {
		return Tag{}, ErrTagInvalidCharacters
	}

	return Tag{value: strings.ToLower(value)}, nil
}

// String returns the stored lowercase form.
func (t Tag) String() string { return t.value }

// Display returns the title-case form shown to users.
func (t Tag) Display() string {
	return cases.Title(language.Und).String(t.value)
}

// URL returns the URL-encoded form, with spaces as hyphens.
func (t Tag) URL() string {
	return url.QueryEscape(strings.ReplaceAll(t.value, " ", "-"))
}

func (t Tag) IsZero() bool { return t.value == "" }

func (t Tag) Equals(other Tag) bool {
	return t.value == other.value
}

// MarshalText stores the lowercase form.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.value), nil
}

// UnmarshalText re-validates, so stored tags and request tags share one rule
// set.
func (t *Tag) UnmarshalText(text []byte) error {
	parsed, err := NewTag(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
