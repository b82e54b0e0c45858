package calculator

import "github.com/mmynk/messledger/internal/period"

// Report is the house settlement for one period.
type Report struct {
	Period period.Period

	// Rows holds one entry per member, in member order.
	Rows []MemberMetrics

	// TotalExpense is the sum of all bills in the input.
	TotalExpense float64

	// TotalDeposits sums TotalPaid over current members.
	TotalDeposits float64

	// TotalDue sums TotalDue over current members.
	TotalDue float64

	TotalMeals int
	MealRate   float64

	// Transfers lists who should pay whom to even out balances.
	Transfers []Transfer
}

// Report computes the settlement for p.
func (in Input) Report(p period.Period) Report {
	totalBills := in.TotalBillAmount()
	totalMeals := in.TotalMeals(p)
	rate := mealRate(totalBills, totalMeals)

	report := Report{
		Period:       p,
		Rows:         make([]MemberMetrics, 0, len(in.Members)),
		TotalExpense: totalBills,
		TotalMeals:   totalMeals,
		MealRate:     rate,
	}

	for _, m := range in.Members {
		row := in.metricsAt(m.ID, m.Name, m.JoinDate, rate, p)
		report.Rows = append(report.Rows, row)
		report.TotalDeposits += row.TotalPaid
		report.TotalDue += row.TotalDue
	}
	report.Transfers = SuggestTransfers(report.Rows)

	return report
}

// Row returns the report row for a member.
func (r Report) Row(memberID string) (MemberMetrics, bool) {
	for _, row := range r.Rows {
		if row.MemberID == memberID {
			return row, true
		}
	}
	return MemberMetrics{}, false
}

// DueCount returns how many members still owe money.
func (r Report) DueCount() int {
	n := 0
	for _, row := range r.Rows {
		if row.Status == StatusDue {
			n++
		}
	}
	return n
}
