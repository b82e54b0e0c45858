package report

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
)

// CSVFormatter writes one header line and one line per member.
type CSVFormatter struct {
	W io.Writer
}

// Format implements Formatter.
func (f CSVFormatter) Format(_ context.Context, doc Document) error {
	w := csv.NewWriter(f.W)

	header := append([]string{"Period", "MemberID"}, Columns...)
	if err := w.Write(header); err != nil {
		return err
	}

	period := doc.Report.Period.String()
	for _, m := range doc.Report.Rows {
		err := w.Write([]string{
			period,
			m.MemberID,
			m.Name,
			m.JoinDate,
			strconv.Itoa(m.MonthlyMeals),
			plain(m.TotalBills),
			plain(m.TotalPaid),
			plain(m.TotalDue),
			plain(m.Advance),
			string(m.Status),
		})
		if err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
