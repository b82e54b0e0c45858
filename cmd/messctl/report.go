package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/messledger/internal/period"
	"github.com/mmynk/messledger/internal/report"
)

func (a *app) reportCmd() *cobra.Command {
	var month, filter, format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the settlement for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, f, err := period.ResolveScope(month, filter, a.now())
			if err != nil {
				return err
			}

			formatter, err := a.formatter(cmd, format)
			if err != nil {
				return err
			}
			return formatter.Format(cmd.Context(), report.NewDocument(a.ledger.Settlement(p, f)))
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Meal month as YYYY-MM (default: current)")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", `Bill/payment month: YYYY-MM, "all", or empty for the meal month`)
	cmd.Flags().StringVar(&format, "format", "table", "Output: table, csv, sheets")
	return cmd
}

func (a *app) formatter(cmd *cobra.Command, format string) (report.Formatter, error) {
	switch format {
	case "table":
		return report.TableFormatter{W: a.out, Currency: a.cfg.Currency}, nil
	case "csv":
		return report.CSVFormatter{W: a.out}, nil
	case "sheets":
		if a.cfg.GoogleSpreadsheetID == "" {
			return nil, fmt.Errorf("GOOGLE_SPREADSHEET_ID is required for sheets output")
		}
		if a.cfg.GoogleServiceAccountFile != "" {
			return report.NewSheetsFromServiceAccount(cmd.Context(), a.cfg.GoogleSpreadsheetID, a.cfg.GoogleSheetName, a.cfg.GoogleServiceAccountFile)
		}
		return report.NewSheets(cmd.Context(), a.cfg.GoogleSpreadsheetID, a.cfg.GoogleSheetName)
	default:
		return nil, fmt.Errorf("unknown format %q: want table, csv or sheets", format)
	}
}
