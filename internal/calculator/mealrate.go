package calculator

import "github.com/mmynk/messledger/internal/period"

// TotalBillAmount sums the amounts of all bills in the input.
func (in Input) TotalBillAmount() float64 {
	var total float64
	for _, b := range in.Bills {
		total += b.Amount
	}
	return total
}

// TotalMeals sums the monthly meal totals of every current member.
// Meals of members no longer in the house do not count.
func (in Input) TotalMeals(p period.Period) int {
	total := 0
	for _, m := range in.Members {
		total += in.MonthlyMealTotal(m.ID, p)
	}
	return total
}

// MealRate is the per-meal cost for p: total bill amount divided by the
// house's total meals. It is 0 when nobody ate.
func (in Input) MealRate(p period.Period) float64 {
	return mealRate(in.TotalBillAmount(), in.TotalMeals(p))
}

func mealRate(totalBills float64, totalMeals int) float64 {
	if totalMeals == 0 {
		return 0
	}
	return totalBills / float64(totalMeals)
}

// TotalBills returns the member's share of the bills for p:
// meal rate × member's monthly meals.
//
// The rate depends on every member's meals, so the whole house is
// re-derived on each call. Unknown members have no share.
func (in Input) TotalBills(memberID string, p period.Period) float64 {
	if _, ok := in.member(memberID); !ok {
		return 0
	}
	return in.MealRate(p) * float64(in.MonthlyMealTotal(memberID, p))
}

// TotalDue is what the member still owes for p, floored at zero so that an
// overpayment never shows up as a negative due.
func (in Input) TotalDue(memberID string, p period.Period) float64 {
	if _, ok := in.member(memberID); !ok {
		return 0
	}
	return due(in.TotalBills(memberID, p), in.TotalPaid(memberID))
}

func due(bills, paid float64) float64 {
	return max(0, bills-paid)
}
