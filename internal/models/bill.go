package models

// BillCategory classifies a bill. The set is fixed.
type BillCategory string

const (
	CategoryMarket      BillCategory = "market"
	CategoryElectricity BillCategory = "electricity"
	CategoryGas         BillCategory = "gas"
	CategoryInternet    BillCategory = "internet"
	CategoryRent        BillCategory = "rent"
	CategoryGarbage     BillCategory = "garbage"
	CategoryFridge      BillCategory = "fridge"
	CategoryOther       BillCategory = "other"
)

// BillCategories lists every valid category in display order.
var BillCategories = []BillCategory{
	CategoryMarket,
	CategoryElectricity,
	CategoryGas,
	CategoryInternet,
	CategoryRent,
	CategoryGarbage,
	CategoryFridge,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c BillCategory) Valid() bool {
	for _, known := range BillCategories {
		if c == known {
			return true
		}
	}
	return false
}

// SplitType records how a bill was meant to be split.
//
// The settlement engine does not consult it: every bill is allocated by meal
// share. The value is stored so the intent is not lost.
type SplitType string

const (
	SplitEqual  SplitType = "equal"
	SplitCustom SplitType = "custom"
	SplitWeight SplitType = "weight"
)

// Valid reports whether s is one of the known split types.
func (s SplitType) Valid() bool {
	switch s {
	case SplitEqual, SplitCustom, SplitWeight:
		return true
	default:
		return false
	}
}

// ParticipantsAll is the only participant scope currently produced.
const ParticipantsAll = "all"

// Bill represents a shared house expense.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// Title is the human-readable name for the bill (e.g., "October rent").
	Title string

	// Category is one of the fixed BillCategories.
	Category BillCategory

	// Amount is the bill total. Never negative.
	Amount float64

	// Date is the day the bill was incurred (YYYY-MM-DD).
	Date string

	// SplitType is recorded but not used by the allocation.
	SplitType SplitType

	// Participants is the participant scope. Always ParticipantsAll for now.
	Participants string
}

// RecordDate implements period.Dated.
func (b Bill) RecordDate() string { return b.Date }
