package calculator

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/mmynk/messledger/internal/models"
	"github.com/mmynk/messledger/internal/period"
)

var october = period.Period{Year: 2026, Month: time.October}

// meals spreads count meals for a member over consecutive October days,
// two meals a day with the remainder on the last day.
func meals(memberID string, count int) []models.MealEntry {
	var entries []models.MealEntry
	day := 1
	for count > 0 {
		n := min(2, count)
		entries = append(entries, models.MealEntry{
			ID:       memberID + "-" + time.Date(2026, time.October, day, 0, 0, 0, 0, time.UTC).Format("02"),
			MemberID: memberID,
			Date:     time.Date(2026, time.October, day, 0, 0, 0, 0, time.UTC).Format(period.DateLayout),
			Count:    n,
		})
		count -= n
		day++
	}
	return entries
}

func book(groups ...[]models.MealEntry) *models.MealBook {
	var all []models.MealEntry
	for _, g := range groups {
		all = append(all, g...)
	}
	return models.NewMealBook(all...)
}

func TestTwoMemberScenario(t *testing.T) {
	in := Input{
		Members: []models.Member{
			{ID: "a", Name: "Alice"},
			{ID: "b", Name: "Bob"},
		},
		Bills: []models.Bill{
			{ID: "rent", Amount: 1000, Date: "2026-10-05", Category: models.CategoryRent},
		},
		Payments: []models.Payment{
			{ID: "p1", MemberID: "a", Amount: 600, Date: "2026-10-06"},
		},
		Meals: book(meals("a", 30), meals("b", 20)),
	}

	if got := in.TotalMeals(october); got != 50 {
		t.Fatalf("TotalMeals = %d, want 50", got)
	}
	if rate := in.MealRate(october); math.Abs(rate-20) > 0.01 {
		t.Errorf("MealRate = %v, want 20", rate)
	}
	if share := in.TotalBills("a", october); math.Abs(share-600) > 0.01 {
		t.Errorf("Alice share = %v, want 600", share)
	}
	if share := in.TotalBills("b", october); math.Abs(share-400) > 0.01 {
		t.Errorf("Bob share = %v, want 400", share)
	}
	if d := in.TotalDue("a", october); math.Abs(d) > 0.01 {
		t.Errorf("Alice due = %v, want 0", d)
	}
	if d := in.TotalDue("b", october); math.Abs(d-400) > 0.01 {
		t.Errorf("Bob due = %v, want 400", d)
	}
}

func TestZeroMealsMeansZeroShare(t *testing.T) {
	in := Input{
		Members: []models.Member{{ID: "solo", Name: "Solo"}},
		Bills:   []models.Bill{{ID: "b1", Amount: 500, Date: "2026-10-01"}},
		Meals:   book(),
	}

	if rate := in.MealRate(october); rate != 0 {
		t.Errorf("MealRate = %v, want 0", rate)
	}
	if share := in.TotalBills("solo", october); share != 0 {
		t.Errorf("share = %v, want 0", share)
	}
	if d := in.TotalDue("solo", october); d != 0 {
		t.Errorf("due = %v, want 0", d)
	}
}

func TestMealsOutsidePeriodDoNotCount(t *testing.T) {
	in := Input{
		Members: []models.Member{{ID: "a", Name: "Alice"}},
		Bills:   []models.Bill{{ID: "b1", Amount: 300, Date: "2026-10-01"}},
		Meals: models.NewMealBook(
			models.MealEntry{ID: "1", MemberID: "a", Date: "2026-09-30", Count: 3},
			models.MealEntry{ID: "2", MemberID: "a", Date: "garbage", Count: 3},
		),
	}

	if got := in.MonthlyMealTotal("a", october); got != 0 {
		t.Errorf("MonthlyMealTotal = %d, want 0", got)
	}
	if share := in.TotalBills("a", october); share != 0 {
		t.Errorf("share = %v, want 0", share)
	}
}

func TestOverpaymentIsFlooredAndBecomesAdvance(t *testing.T) {
	// One member eating all meals takes the whole 500 bill.
	in := Input{
		Members:  []models.Member{{ID: "x", Name: "Xavier"}},
		Bills:    []models.Bill{{ID: "b", Amount: 500, Date: "2026-10-02"}},
		Payments: []models.Payment{{ID: "p", MemberID: "x", Amount: 700, Date: "2026-10-03"}},
		Meals:    book(meals("x", 10)),
	}

	m, ok := in.Metrics("x", october)
	if !ok {
		t.Fatal("expected metrics for x")
	}
	if math.Abs(m.TotalBills-500) > 0.01 {
		t.Errorf("TotalBills = %v, want 500", m.TotalBills)
	}
	if m.TotalDue != 0 {
		t.Errorf("TotalDue = %v, want 0", m.TotalDue)
	}
	if math.Abs(m.Advance-200) > 0.01 {
		t.Errorf("Advance = %v, want 200", m.Advance)
	}
	if m.Status != StatusPaid {
		t.Errorf("Status = %v, want paid", m.Status)
	}
}

func TestAllocationRedistributesFullAmount(t *testing.T) {
	tests := []struct {
		name  string
		bills []float64
		meals map[string]int
	}{
		{name: "uneven thirds", bills: []float64{1000}, meals: map[string]int{"a": 7, "b": 11, "c": 13}},
		{name: "many bills", bills: []float64{120.5, 33.33, 999.99, 0}, meals: map[string]int{"a": 1, "b": 2}},
		{name: "one eater", bills: []float64{250}, meals: map[string]int{"a": 0, "b": 9}},
		{name: "large house", bills: []float64{4321.09, 87.65}, meals: map[string]int{"a": 60, "b": 45, "c": 3, "d": 17, "e": 29}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{Meals: models.NewMealBook()}
			var want float64
			for i, amount := range tt.bills {
				in.Bills = append(in.Bills, models.Bill{ID: string(rune('0' + i)), Amount: amount, Date: "2026-10-01"})
				want += amount
			}
			for id, count := range tt.meals {
				in.Members = append(in.Members, models.Member{ID: id, Name: id})
				for _, e := range meals(id, count) {
					in.Meals.Put(e)
				}
			}

			var sum float64
			for _, m := range in.Members {
				sum += in.TotalBills(m.ID, october)
			}
			if math.Abs(sum-want) > 0.01 {
				t.Errorf("sum of shares = %v, want %v", sum, want)
			}
		})
	}
}

func TestDueNeverNegative(t *testing.T) {
	in := Input{
		Members: []models.Member{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Bills:   []models.Bill{{ID: "b1", Amount: 90, Date: "2026-10-01"}},
		Payments: []models.Payment{
			{ID: "p1", MemberID: "a", Amount: 1000},
			{ID: "p2", MemberID: "b", Amount: 0},
			{ID: "p3", MemberID: "c", Amount: 30},
		},
		Meals: book(meals("a", 1), meals("b", 1), meals("c", 1)),
	}

	for _, m := range in.Members {
		if d := in.TotalDue(m.ID, october); d < 0 {
			t.Errorf("TotalDue(%s) = %v, must not be negative", m.ID, d)
		}
	}
}

func TestDanglingReferencesAreIgnored(t *testing.T) {
	in := Input{
		Members: []models.Member{{ID: "a", Name: "Alice"}},
		Bills:   []models.Bill{{ID: "b1", Amount: 100, Date: "2026-10-01"}},
		Payments: []models.Payment{
			{ID: "p1", MemberID: "a", Amount: 40},
			{ID: "p2", MemberID: "gone", Amount: 500},
		},
		Meals: book(meals("a", 4), meals("gone", 6)),
	}

	report := in.Report(october)

	if report.TotalMeals != 4 {
		t.Errorf("TotalMeals = %d, want 4 (deleted member's meals excluded)", report.TotalMeals)
	}
	if math.Abs(report.TotalDeposits-40) > 0.01 {
		t.Errorf("TotalDeposits = %v, want 40", report.TotalDeposits)
	}
	if math.Abs(report.TotalDue-60) > 0.01 {
		t.Errorf("TotalDue = %v, want 60", report.TotalDue)
	}
	if _, ok := in.Metrics("gone", october); ok {
		t.Error("metrics for a deleted member should not exist")
	}
	if in.TotalBills("gone", october) != 0 || in.TotalDue("gone", october) != 0 {
		t.Error("deleted member should have no share")
	}
	if got := in.TotalPaid("gone"); got != 0 {
		t.Errorf("TotalPaid(gone) = %v, want 0", got)
	}
	if got := in.TotalPaid("a"); math.Abs(got-40) > 0.01 {
		t.Errorf("TotalPaid(a) = %v, want 40", got)
	}
}

func TestRemovingMemberRedistributesShare(t *testing.T) {
	bills := []models.Bill{{ID: "b1", Amount: 900, Date: "2026-10-01"}}
	meals := book(meals("a", 10), meals("b", 20))

	before := Input{Members: []models.Member{{ID: "a"}, {ID: "b"}}, Bills: bills, Meals: meals}
	after := Input{Members: []models.Member{{ID: "a"}}, Bills: bills, Meals: meals}

	if got := before.TotalBills("a", october); math.Abs(got-300) > 0.01 {
		t.Errorf("share before removal = %v, want 300", got)
	}
	if got := after.TotalBills("a", october); math.Abs(got-900) > 0.01 {
		t.Errorf("share after removal = %v, want 900", got)
	}
}

func TestMealCountForDate(t *testing.T) {
	in := Input{Meals: models.NewMealBook(
		models.MealEntry{ID: "1", MemberID: "a", Date: "2026-10-07", Count: 3},
	)}

	if got := in.MealCountForDate("a", "2026-10-07"); got != 3 {
		t.Errorf("count = %d, want 3", got)
	}
	if got := in.MealCountForDate("a", "2026-10-07T12:00:00Z"); got != 3 {
		t.Errorf("count for timestamp = %d, want 3", got)
	}
	if got := in.MealCountForDate("a", "2026-10-08"); got != 0 {
		t.Errorf("count for empty day = %d, want 0", got)
	}
	if got := in.MealCountForDate("b", "2026-10-07"); got != 0 {
		t.Errorf("count for other member = %d, want 0", got)
	}
}

func TestReportTotalsAndStatus(t *testing.T) {
	in := Input{
		Members: []models.Member{
			{ID: "a", Name: "Alice", JoinDate: "2026-01-01"},
			{ID: "b", Name: "Bob", JoinDate: "2026-02-01"},
		},
		Bills: []models.Bill{
			{ID: "b1", Amount: 700, Date: "2026-10-01"},
			{ID: "b2", Amount: 300, Date: "2026-10-10"},
		},
		Payments: []models.Payment{
			{ID: "p1", MemberID: "a", Amount: 600},
			{ID: "p2", MemberID: "b", Amount: 100},
		},
		Meals: book(meals("a", 30), meals("b", 20)),
	}

	report := in.Report(october)

	if len(report.Rows) != 2 || report.Rows[0].Name != "Alice" || report.Rows[1].Name != "Bob" {
		t.Fatalf("rows not in member order: %+v", report.Rows)
	}
	if math.Abs(report.TotalExpense-1000) > 0.01 {
		t.Errorf("TotalExpense = %v, want 1000", report.TotalExpense)
	}
	if math.Abs(report.TotalDeposits-700) > 0.01 {
		t.Errorf("TotalDeposits = %v, want 700", report.TotalDeposits)
	}
	if math.Abs(report.TotalDue-300) > 0.01 {
		t.Errorf("TotalDue = %v, want 300", report.TotalDue)
	}
	if report.Rows[0].Status != StatusPaid || report.Rows[1].Status != StatusDue {
		t.Errorf("statuses = %v/%v, want paid/due", report.Rows[0].Status, report.Rows[1].Status)
	}
	if report.DueCount() != 1 {
		t.Errorf("DueCount = %d, want 1", report.DueCount())
	}
	if report.Rows[0].JoinDate != "2026-01-01" {
		t.Errorf("JoinDate = %q", report.Rows[0].JoinDate)
	}

	// Report rows agree with the single-member calculations.
	for _, row := range report.Rows {
		if math.Abs(row.TotalBills-in.TotalBills(row.MemberID, october)) > 0.0001 {
			t.Errorf("row %s bills %v disagree with TotalBills", row.MemberID, row.TotalBills)
		}
		if math.Abs(row.TotalDue-in.TotalDue(row.MemberID, october)) > 0.0001 {
			t.Errorf("row %s due %v disagree with TotalDue", row.MemberID, row.TotalDue)
		}
	}
}

func TestReportIsIdempotent(t *testing.T) {
	in := Input{
		Members:  []models.Member{{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}, {ID: "c", Name: "Cara"}},
		Bills:    []models.Bill{{ID: "b1", Amount: 1234.56, Date: "2026-10-01"}},
		Payments: []models.Payment{{ID: "p1", MemberID: "c", Amount: 900}},
		Meals:    book(meals("a", 12), meals("b", 7), meals("c", 21)),
	}
	snapshot := book(meals("a", 12), meals("b", 7), meals("c", 21)).Entries()

	first := in.Report(october)
	second := in.Report(october)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("reports differ:\n%+v\n%+v", first, second)
	}
	if !reflect.DeepEqual(in.Meals.Entries(), snapshot) {
		t.Error("report mutated its meal input")
	}
}

func TestSuggestTransfers(t *testing.T) {
	tests := []struct {
		name string
		rows []MemberMetrics
		want []Transfer
	}{
		{
			name: "debtor pays creditor",
			rows: []MemberMetrics{
				{MemberID: "a", Name: "Alice", Balance: 400},
				{MemberID: "b", Name: "Bob", Balance: -400},
			},
			want: []Transfer{{FromID: "b", FromName: "Bob", ToID: "a", ToName: "Alice", Amount: 400}},
		},
		{
			name: "one debtor two creditors",
			rows: []MemberMetrics{
				{MemberID: "a", Name: "Alice", Balance: 100},
				{MemberID: "b", Name: "Bob", Balance: 50},
				{MemberID: "c", Name: "Cara", Balance: -150},
			},
			want: []Transfer{
				{FromID: "c", FromName: "Cara", ToID: "a", ToName: "Alice", Amount: 100},
				{FromID: "c", FromName: "Cara", ToID: "b", ToName: "Bob", Amount: 50},
			},
		},
		{
			name: "uncovered debt goes to the house",
			rows: []MemberMetrics{
				{MemberID: "a", Name: "Alice", Balance: 20},
				{MemberID: "b", Name: "Bob", Balance: -300},
			},
			want: []Transfer{{FromID: "b", FromName: "Bob", ToID: "a", ToName: "Alice", Amount: 20}},
		},
		{
			name: "settled house",
			rows: []MemberMetrics{
				{MemberID: "a", Balance: 0.001},
				{MemberID: "b", Balance: -0.004},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestTransfers(tt.rows)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d transfers, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				g, w := got[i], tt.want[i]
				if g.FromID != w.FromID || g.ToID != w.ToID || g.FromName != w.FromName || g.ToName != w.ToName {
					t.Errorf("transfer %d = %+v, want %+v", i, g, w)
				}
				if math.Abs(g.Amount-w.Amount) > 0.01 {
					t.Errorf("transfer %d amount = %v, want %v", i, g.Amount, w.Amount)
				}
			}
		})
	}
}
