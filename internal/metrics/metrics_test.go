package metrics

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/messledger/internal/calculator"
	"github.com/mmynk/messledger/internal/ledger"
	"github.com/mmynk/messledger/internal/models"
	"github.com/mmynk/messledger/internal/period"
)

type fakeSource struct {
	snap ledger.Snapshot
}

func (f fakeSource) Snapshot() ledger.Snapshot { return f.snap }

func (f fakeSource) Settlement(p period.Period, filter *period.Period) calculator.Report {
	return f.snap.Input(filter).Report(p)
}

func testSource() fakeSource {
	return fakeSource{snap: ledger.BuildSnapshot([]models.Record{
		models.MemberRecord(models.Member{ID: "a", Name: "Alice", JoinDate: "2026-10-01"}),
		models.MemberRecord(models.Member{ID: "b", Name: "Bob", JoinDate: "2026-10-01"}),
		models.BillRecord(models.Bill{ID: "b1", Title: "Bazaar", Amount: 1000, Date: "2026-10-03"}),
		models.PaymentRecord(models.Payment{ID: "p1", MemberID: "a", Amount: 600, Date: "2026-10-04"}),
		models.MealEntryRecord(models.MealEntry{ID: "m1", MemberID: "a", Date: "2026-10-05", Count: 30}),
		models.MealEntryRecord(models.MealEntry{ID: "m2", MemberID: "b", Date: "2026-10-05", Count: 20}),
	})}
}

func fixedNow() time.Time {
	return time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)
}

func TestGauges(t *testing.T) {
	m := New(testSource(), fixedNow)

	expected := `
# HELP messledger_members Current house members.
# TYPE messledger_members gauge
messledger_members 2
# HELP messledger_records Records currently held by the store.
# TYPE messledger_records gauge
messledger_records 6
# HELP messledger_meal_rate Cost per meal for the current month.
# TYPE messledger_meal_rate gauge
messledger_meal_rate 20
# HELP messledger_total_due Outstanding dues for the current month.
# TYPE messledger_total_due gauge
messledger_total_due 400
# HELP messledger_members_due Members with dues for the current month.
# TYPE messledger_members_due gauge
messledger_members_due 1
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"messledger_members", "messledger_records", "messledger_meal_rate",
		"messledger_total_due", "messledger_members_due")
	if err != nil {
		t.Error(err)
	}
}

func TestRecordChanged(t *testing.T) {
	m := New(testSource(), fixedNow)
	ctx := context.Background()

	m.RecordChanged(ctx, ledger.Change{Action: ledger.ActionCreated, Kind: models.KindBill, ID: "x"})
	m.RecordChanged(ctx, ledger.Change{Action: ledger.ActionCreated, Kind: models.KindBill, ID: "y"})
	m.RecordChanged(ctx, ledger.Change{Action: ledger.ActionDeleted, Kind: models.KindMember, ID: "z"})

	if got := testutil.ToFloat64(m.recordChanges.WithLabelValues("bill", "created")); got != 2 {
		t.Errorf("bill created = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.recordChanges.WithLabelValues("member", "deleted")); got != 1 {
		t.Errorf("member deleted = %v, want 1", got)
	}
}

func TestObserveRPCAndHandler(t *testing.T) {
	m := New(testSource(), fixedNow)

	m.ObserveRPC("/messledger.v1.LedgerService/GetSettlement", "ok", 5*time.Millisecond)
	m.ObserveRPC("/messledger.v1.LedgerService/GetSettlement", "ok", 7*time.Millisecond)

	if got := testutil.ToFloat64(m.rpcRequests.WithLabelValues("/messledger.v1.LedgerService/GetSettlement", "ok")); got != 2 {
		t.Errorf("rpc requests = %v, want 2", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "messledger_rpc_duration_seconds_count") {
		t.Errorf("exposition missing rpc histogram:\n%s", body)
	}
}
