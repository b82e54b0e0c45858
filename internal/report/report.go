// Package report renders settlement reports for people and spreadsheets.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/mmynk/messledger/internal/calculator"
)

// Document is one rendered unit: a settlement and its heading.
type Document struct {
	Label  string
	Report calculator.Report
}

// NewDocument labels r with its period, e.g. "October 2026".
func NewDocument(r calculator.Report) Document {
	return Document{Label: r.Period.Label(), Report: r}
}

// Formatter renders a document somewhere.
type Formatter interface {
	Format(ctx context.Context, doc Document) error
}

// Columns of the member table, in order.
var Columns = []string{"Member", "Joined", "Meals", "Bills", "Paid", "Due", "Advance", "Status"}

// Money formats an amount with thousands separators and two decimals.
func Money(amount float64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + currency + humanize.FormatFloat("#,###.##", amount)
}

// plain formats an amount for machine-readable outputs.
func plain(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

func title(label string) string {
	if strings.TrimSpace(label) == "" {
		return "Settlement"
	}
	return "Settlement: " + label
}
