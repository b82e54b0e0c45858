package ledger

import (
	"github.com/mmynk/messledger/internal/calculator"
	"github.com/mmynk/messledger/internal/models"
	"github.com/mmynk/messledger/internal/period"
)

// Snapshot is an immutable view of the record collection at one moment.
type Snapshot struct {
	Members  []models.Member
	Bills    []models.Bill
	Payments []models.Payment
	Meals    *models.MealBook
}

// BuildSnapshot sorts a record collection into typed slices.
// Records without a payload are skipped. Meal entries sharing a
// (member, day) slot collapse into one, the later record winning.
func BuildSnapshot(records []models.Record) Snapshot {
	snap := Snapshot{Meals: models.NewMealBook()}
	for _, r := range records {
		if r.Check() != nil {
			continue
		}
		switch r.Kind {
		case models.KindMember:
			snap.Members = append(snap.Members, *r.Member)
		case models.KindBill:
			snap.Bills = append(snap.Bills, *r.Bill)
		case models.KindPayment:
			snap.Payments = append(snap.Payments, *r.Payment)
		case models.KindMealEntry:
			snap.Meals.Put(*r.MealEntry)
		}
	}
	return snap
}

// RecordCount returns the number of records in the snapshot.
func (s Snapshot) RecordCount() int {
	return len(s.Members) + len(s.Bills) + len(s.Payments) + s.Meals.Len()
}

// Records flattens the snapshot back into records, members first.
func (s Snapshot) Records() []models.Record {
	records := make([]models.Record, 0, s.RecordCount())
	for _, m := range s.Members {
		records = append(records, models.MemberRecord(m))
	}
	for _, b := range s.Bills {
		records = append(records, models.BillRecord(b))
	}
	for _, p := range s.Payments {
		records = append(records, models.PaymentRecord(p))
	}
	for _, e := range s.Meals.Entries() {
		records = append(records, models.MealEntryRecord(e))
	}
	return records
}

// Member looks up a member by ID.
func (s Snapshot) Member(id string) (models.Member, bool) {
	for _, m := range s.Members {
		if m.ID == id {
			return m, true
		}
	}
	return models.Member{}, false
}

// Input returns the engine input with bills and payments narrowed to filter.
// A nil filter keeps every bill and payment.
func (s Snapshot) Input(filter *period.Period) calculator.Input {
	return calculator.Input{
		Members:  s.Members,
		Bills:    period.FilterByMonth(s.Bills, filter),
		Payments: period.FilterByMonth(s.Payments, filter),
		Meals:    s.Meals,
	}
}
