// Package calculator implements the settlement engine: it turns a house's
// bills, payments and meal counts into per-member shares and balances.
//
// Every function here is pure. Inputs are read, never modified, and results
// are recomputed from scratch on each call.
package calculator

import (
	"github.com/mmynk/messledger/internal/models"
	"github.com/mmynk/messledger/internal/period"
)

// Input is the whole-house view the engine computes over.
//
// Bills and Payments are expected to be scoped by the caller already (for
// example with period.FilterByMonth). Meals holds every meal entry; the
// engine picks the ones belonging to the reporting period itself.
type Input struct {
	Members  []models.Member
	Bills    []models.Bill
	Payments []models.Payment
	Meals    *models.MealBook
}

// member returns the member with the given ID.
func (in Input) member(memberID string) (models.Member, bool) {
	for _, m := range in.Members {
		if m.ID == memberID {
			return m, true
		}
	}
	return models.Member{}, false
}

// MealCountForDate returns the member's meal count on date, or 0.
func (in Input) MealCountForDate(memberID, date string) int {
	if normalized, err := period.NormalizeDate(date); err == nil {
		date = normalized
	}
	return max(0, in.Meals.Count(memberID, date))
}

// MonthlyMealTotal sums the member's meal counts dated within p.
// Negative counts and unparsable dates contribute nothing.
func (in Input) MonthlyMealTotal(memberID string, p period.Period) int {
	total := 0
	for _, e := range in.Meals.ForMember(memberID) {
		if e.Count > 0 && p.Contains(e.Date) {
			total += e.Count
		}
	}
	return total
}

// TotalPaid sums the payments referencing the member. Unknown members paid 0.
func (in Input) TotalPaid(memberID string) float64 {
	if _, ok := in.member(memberID); !ok {
		return 0
	}
	var total float64
	for _, p := range in.Payments {
		if p.MemberID == memberID {
			total += p.Amount
		}
	}
	return total
}
