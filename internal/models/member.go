package models

// Member represents a person who shares the house expenses.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// Name is the display name of the member.
	Name string

	// Phone is an optional contact number. Empty when not provided.
	Phone string

	// JoinDate is the day the member joined the house (YYYY-MM-DD).
	JoinDate string
}

// RecordDate implements period.Dated.
func (m Member) RecordDate() string { return m.JoinDate }
