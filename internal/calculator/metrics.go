package calculator

import "github.com/mmynk/messledger/internal/period"

// Status classifies a member's settlement. It is strictly binary.
type Status string

const (
	StatusDue  Status = "due"
	StatusPaid Status = "paid"
)

func statusOf(due float64) Status {
	if due > 0 {
		return StatusDue
	}
	return StatusPaid
}

// MemberMetrics is one member's settlement for a period.
type MemberMetrics struct {
	MemberID     string
	Name         string
	JoinDate     string
	MonthlyMeals int
	TotalPaid    float64
	TotalBills   float64 // Share of the bills by meal rate
	TotalDue     float64 // max(0, TotalBills - TotalPaid)
	Balance      float64 // TotalPaid - TotalBills, signed
	Advance      float64 // Positive part of Balance: credit carried forward
	Status       Status
}

// Metrics computes the member's settlement for p.
// It returns false when the member is not part of the house.
func (in Input) Metrics(memberID string, p period.Period) (MemberMetrics, bool) {
	m, ok := in.member(memberID)
	if !ok {
		return MemberMetrics{}, false
	}
	return in.metricsAt(m.ID, m.Name, m.JoinDate, in.MealRate(p), p), true
}

// metricsAt builds a member's metrics from an already-derived meal rate.
func (in Input) metricsAt(id, name, joinDate string, rate float64, p period.Period) MemberMetrics {
	meals := in.MonthlyMealTotal(id, p)
	paid := in.TotalPaid(id)
	bills := rate * float64(meals)
	balance := paid - bills
	d := due(bills, paid)

	return MemberMetrics{
		MemberID:     id,
		Name:         name,
		JoinDate:     joinDate,
		MonthlyMeals: meals,
		TotalPaid:    paid,
		TotalBills:   bills,
		TotalDue:     d,
		Balance:      balance,
		Advance:      max(0, balance),
		Status:       statusOf(d),
	}
}
