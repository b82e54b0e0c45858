package models

// Payment represents money a member paid into the house fund.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// MemberID is the member who paid. May reference a deleted member.
	MemberID string

	// Amount is the paid amount. Never negative.
	Amount float64

	// Date is the day of the payment (YYYY-MM-DD).
	Date string

	// Method is a free-form payment method (e.g., "cash", "bkash").
	Method string

	// Note is an optional description.
	Note string
}

// RecordDate implements period.Dated.
func (p Payment) RecordDate() string { return p.Date }
