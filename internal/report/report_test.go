package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"google.golang.org/api/option"

	"github.com/mmynk/messledger/internal/calculator"
	"github.com/mmynk/messledger/internal/models"
	"github.com/mmynk/messledger/internal/period"
)

var october = period.Period{Year: 2026, Month: time.October}

// testReport: Alice paid 1000 for 30 meals, Bob paid nothing for 20.
func testReport() calculator.Report {
	in := calculator.Input{
		Members: []models.Member{
			{ID: "a", Name: "Alice", JoinDate: "2026-10-01"},
			{ID: "b", Name: "Bob", JoinDate: "2026-10-02"},
		},
		Bills:    []models.Bill{{ID: "b1", Title: "Bazaar", Amount: 1000, Date: "2026-10-03"}},
		Payments: []models.Payment{{ID: "p1", MemberID: "a", Amount: 1000, Date: "2026-10-04"}},
		Meals: models.NewMealBook(
			models.MealEntry{ID: "m1", MemberID: "a", Date: "2026-10-05", Count: 30},
			models.MealEntry{ID: "m2", MemberID: "b", Date: "2026-10-05", Count: 20},
		),
	}
	return in.Report(october)
}

func TestMoney(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{0, "৳", "৳0.00"},
		{20, "$", "$20.00"},
		{1234567.891, "", "1,234,567.89"},
		{-400, "$", "-$400.00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Money(tt.amount, tt.currency); got != tt.want {
				t.Errorf("Money(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(testReport())
	if doc.Label != "October 2026" {
		t.Errorf("Label = %q, want October 2026", doc.Label)
	}
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := TableFormatter{W: &buf, Currency: "$"}

	if err := f.Format(context.Background(), NewDocument(testReport())); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Settlement: October 2026", "Alice", "Bob", "$400.00", "$20.00", "due", "Transfers"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTableFormatterEmpty(t *testing.T) {
	out := TableFormatter{Currency: "$"}.Render(Document{Label: "October 2026", Report: calculator.Input{}.Report(october)})
	if !strings.Contains(out, "No members yet.") {
		t.Errorf("output = %q", out)
	}
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (CSVFormatter{W: &buf}).Format(context.Background(), NewDocument(testReport())); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	lines, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not CSV: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0][0] != "Period" || lines[0][2] != "Member" {
		t.Errorf("header = %v", lines[0])
	}
	want := []string{"2026-10", "b", "Bob", "2026-10-02", "20", "400.00", "0.00", "400.00", "0.00", "due"}
	for i, w := range want {
		if lines[2][i] != w {
			t.Errorf("Bob column %d = %q, want %q", i, lines[2][i], w)
		}
	}
}

type sheetsCall struct {
	method, path string
	values       [][]any
}

func TestSheetsFormatter(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []sheetsCall
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := sheetsCall{method: r.Method, path: r.URL.Path}
		if r.Method == http.MethodPut {
			var body struct {
				Values [][]any `json:"values"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			call.values = body.Values
		}
		mu.Lock()
		calls = append(calls, call)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx := context.Background()
	f, err := NewSheets(ctx, "sheet-123", "Settlement",
		option.WithEndpoint(server.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewSheets failed: %v", err)
	}

	if err := f.Format(ctx, NewDocument(testReport())); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	if len(calls) != 2 {
		t.Fatalf("got %d API calls, want 2", len(calls))
	}
	if calls[0].method != http.MethodPost || !strings.HasSuffix(calls[0].path, ":clear") {
		t.Errorf("first call = %s %s, want POST ...:clear", calls[0].method, calls[0].path)
	}
	if calls[1].method != http.MethodPut || !strings.Contains(calls[1].path, "sheet-123") {
		t.Errorf("second call = %s %s, want PUT on the spreadsheet", calls[1].method, calls[1].path)
	}

	values := calls[1].values
	if len(values) == 0 || values[0][0] != "Settlement: October 2026" {
		t.Fatalf("values[0] = %v", values)
	}
	// title, summary, blank, header, Alice, Bob, total, blank, transfer header, transfer
	if len(values) != 10 {
		t.Errorf("len(values) = %d, want 10", len(values))
	}
	if values[5][0] != "Bob" || values[5][5] != 400.0 {
		t.Errorf("Bob row = %v", values[5])
	}
}

func TestNewSheetsValidation(t *testing.T) {
	ctx := context.Background()
	if _, err := NewSheets(ctx, "", "Settlement", option.WithoutAuthentication()); err == nil {
		t.Error("expected error for missing spreadsheet ID")
	}
	if _, err := NewSheets(ctx, "id", "", option.WithoutAuthentication()); err == nil {
		t.Error("expected error for missing sheet name")
	}
	if _, err := NewSheetsFromServiceAccount(ctx, "id", "Settlement", "/nonexistent/key.json"); err == nil {
		t.Error("expected error for missing key file")
	}
}
