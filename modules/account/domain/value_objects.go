package domain

import (
	"regexp"
	"strings"
)

const maxNameLength = 50

// Name is a value object representing an account's display name.
// Value objects are immutable and compared by value.
type Name struct {
	value string
}

// NewName creates a validated Name value object.
func NewName(value string) (Name, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Name{}, ErrNameRequired
	}
	if len(value) > maxNameLength {
		return Name{}, ErrNameLength
	}
	return Name{value: value}, nil
}

func (n Name) String() string { return n.value }
func (n Name) IsZero() bool   { return n.value == "" }

func (n Name) Equals(other Name) bool {
	return n.value == other.value
}

// BirthName is the optional legal name on the account. Unlike Name it may be
// empty.
type BirthName struct {
	value string
}

// NewBirthName creates a validated BirthName value object.
func NewBirthName(value string) (BirthName, error) {
	value = strings.TrimSpace(value)
	if len(value) > maxNameLength {
		return BirthName{}, ErrBirthNameLength
	}
	return BirthName{value: value}, nil
}

func (n BirthName) String() string { return n.value }
func (n BirthName) IsZero() bool   { return n.value == "" }

// MailAddress is a value object representing a validated email address.
type MailAddress struct {
	value string
}

var mailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// NewMailAddress creates a validated MailAddress value object.
func NewMailAddress(value string) (MailAddress, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return MailAddress{}, ErrMailRequired
	}
	if !mailRegex.MatchString(value) {
		return MailAddress{}, ErrMailInvalid
	}
	return MailAddress{value: value}, nil
}

func (m MailAddress) String() string { return m.value }
func (m MailAddress) IsZero() bool   { return m.value == "" }

func (m MailAddress) Equals(other MailAddress) bool {
	return m.value == other.value
}

// Status represents the account status.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDeleted  Status = "deleted"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDeleted:
		return true
	default:
		return false
	}
}
