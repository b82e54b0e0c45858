package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsFormatter replaces the contents of one sheet with the settlement.
type SheetsFormatter struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewSheets creates a formatter using the given client options for auth and transport.
func NewSheets(ctx context.Context, spreadsheetID, sheetName string, opts ...option.ClientOption) (*SheetsFormatter, error) {
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if sheetName == "" {
		return nil, errors.New("missing sheet name")
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetsFormatter{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

// NewSheetsFromServiceAccount authenticates with a service account key file.
func NewSheetsFromServiceAccount(ctx context.Context, spreadsheetID, sheetName, keyFile string) (*SheetsFormatter, error) {
	credentialsJSON, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	return NewSheets(ctx, spreadsheetID, sheetName,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
}

// Format implements Formatter.
func (f *SheetsFormatter) Format(ctx context.Context, doc Document) error {
	rng := fmt.Sprintf("%s!A:Z", f.sheetName)
	if _, err := f.svc.Spreadsheets.Values.Clear(f.spreadsheetID, rng, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear %s: %w", f.sheetName, err)
	}

	values := sheetValues(doc)
	start := fmt.Sprintf("%s!A1", f.sheetName)
	vr := &sheets.ValueRange{Values: values}
	_, err := f.svc.Spreadsheets.Values.Update(f.spreadsheetID, start, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", f.sheetName, err)
	}

	slog.InfoContext(ctx, "Settlement exported to Google Sheets",
		"sheet", f.sheetName,
		"period", doc.Report.Period.String(),
		"rows", len(values),
	)
	return nil
}

// sheetValues lays the document out as: title, summary, blank, member table, totals.
func sheetValues(doc Document) [][]any {
	r := doc.Report
	values := [][]any{
		{title(doc.Label)},
		{"Total expense", r.TotalExpense, "Total deposits", r.TotalDeposits, "Total meals", r.TotalMeals, "Meal rate", r.MealRate},
		{},
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	values = append(values, header)

	for _, m := range r.Rows {
		values = append(values, []any{
			m.Name, m.JoinDate, m.MonthlyMeals, m.TotalBills, m.TotalPaid, m.TotalDue, m.Advance, string(m.Status),
		})
	}
	values = append(values, []any{"Total", "", r.TotalMeals, r.TotalExpense, r.TotalDeposits, r.TotalDue, "", ""})

	if len(r.Transfers) > 0 {
		values = append(values, []any{}, []any{"From", "To", "Amount"})
		for _, t := range r.Transfers {
			values = append(values, []any{t.FromName, t.ToName, t.Amount})
		}
	}
	return values
}
