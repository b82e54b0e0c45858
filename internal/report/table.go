package report

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mmynk/messledger/internal/calculator"
)

var (
	ColorBorder = lipgloss.Color("#575653")
	ColorAccent = lipgloss.Color("#3AA99F")
	ColorGreen  = lipgloss.Color("#879A39")
	ColorRed    = lipgloss.Color("#D14D41")
	ColorMuted  = lipgloss.Color("#6F6E69")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	dueStyle    = cellStyle.Foreground(ColorRed)
	paidStyle   = cellStyle.Foreground(ColorGreen)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
)

// TableFormatter writes a bordered terminal table.
type TableFormatter struct {
	W        io.Writer
	Currency string
}

// Format implements Formatter.
func (f TableFormatter) Format(_ context.Context, doc Document) error {
	_, err := io.WriteString(f.W, f.Render(doc))
	return err
}

// Render returns the document as a string.
func (f TableFormatter) Render(doc Document) string {
	r := doc.Report

	out := titleStyle.Render(title(doc.Label)) + "\n"
	out += mutedStyle.Render(fmt.Sprintf("Expense %s · Deposits %s · Meals %d · Meal rate %s",
		Money(r.TotalExpense, f.Currency),
		Money(r.TotalDeposits, f.Currency),
		r.TotalMeals,
		Money(r.MealRate, f.Currency),
	)) + "\n"

	if len(r.Rows) == 0 {
		return out + mutedStyle.Render("No members yet.") + "\n"
	}
	out += f.members(r).Render() + "\n"

	if len(r.Transfers) > 0 {
		out += titleStyle.Render("Transfers") + "\n"
		out += f.transfers(r.Transfers).Render() + "\n"
	}
	return out
}

func (f TableFormatter) members(r calculator.Report) *table.Table {
	rows := make([][]string, 0, len(r.Rows)+1)
	for _, m := range r.Rows {
		rows = append(rows, []string{
			m.Name,
			m.JoinDate,
			strconv.Itoa(m.MonthlyMeals),
			Money(m.TotalBills, f.Currency),
			Money(m.TotalPaid, f.Currency),
			Money(m.TotalDue, f.Currency),
			Money(m.Advance, f.Currency),
			string(m.Status),
		})
	}
	rows = append(rows, []string{
		"Total", "",
		strconv.Itoa(r.TotalMeals),
		Money(r.TotalExpense, f.Currency),
		Money(r.TotalDeposits, f.Currency),
		Money(r.TotalDue, f.Currency),
		"", "",
	})

	statusCol := len(Columns) - 1
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers(Columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == statusCol && row < len(r.Rows):
				if r.Rows[row].Status == calculator.StatusDue {
					return dueStyle
				}
				return paidStyle
			case col >= 2 && col < statusCol:
				return numberStyle
			default:
				return cellStyle
			}
		})
}

func (f TableFormatter) transfers(ts []calculator.Transfer) *table.Table {
	rows := make([][]string, len(ts))
	for i, t := range ts {
		rows[i] = []string{t.FromName, t.ToName, Money(t.Amount, f.Currency)}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers("From", "To", "Amount").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 2:
				return numberStyle
			default:
				return cellStyle
			}
		})
}
