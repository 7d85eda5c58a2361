package domain

// Status represents the basket status.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusCheckedOut Status = "checked_out"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusCheckedOut:
		return true
	default:
		return false
	}
}
