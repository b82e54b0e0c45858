package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mmynk/messledger/internal/models"
	"github.com/mmynk/messledger/internal/report"
)

func (a *app) billsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bills",
		Aliases: []string{"bill"},
		Short:   "Record house bills",
	}

	var category, date, split string
	add := &cobra.Command{
		Use:   "add TITLE AMOUNT",
		Short: "Add a bill shared by the whole house",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			if date == "" {
				date = a.today()
			}
			rec := models.BillRecord(models.Bill{
				Title:     args[0],
				Category:  models.BillCategory(category),
				Amount:    amount,
				Date:      date,
				SplitType: models.SplitType(split),
			})
			if err := a.ledger.Create(cmd.Context(), &rec); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Added %s bill %q for %s (%s)\n",
				rec.Bill.Category, rec.Bill.Title, report.Money(rec.Bill.Amount, a.cfg.Currency), rec.ID())
			return nil
		},
	}
	add.Flags().StringVarP(&category, "category", "c", "", "market, electricity, gas, internet, rent, garbage, fridge, other")
	add.Flags().StringVarP(&date, "date", "d", "", "Bill date YYYY-MM-DD (default: today)")
	add.Flags().StringVar(&split, "split", "", "Split type: equal, custom, weight")

	cmd.AddCommand(add)
	return cmd
}

func (a *app) paymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payments",
		Aliases: []string{"payment"},
		Short:   "Record member deposits",
	}

	var date, method, note string
	add := &cobra.Command{
		Use:   "add MEMBER AMOUNT",
		Short: "Add a payment by a member (name or ID)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.resolveMember(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			if date == "" {
				date = a.today()
			}
			rec := models.PaymentRecord(models.Payment{
				MemberID: m.ID,
				Amount:   amount,
				Date:     date,
				Method:   method,
				Note:     note,
			})
			if err := a.ledger.Create(cmd.Context(), &rec); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Recorded %s from %s (%s)\n", report.Money(amount, a.cfg.Currency), m.Name, rec.ID())
			return nil
		},
	}
	add.Flags().StringVarP(&date, "date", "d", "", "Payment date YYYY-MM-DD (default: today)")
	add.Flags().StringVar(&method, "method", "cash", "Payment method")
	add.Flags().StringVar(&note, "note", "", "Free-text note")

	cmd.AddCommand(add)
	return cmd
}

func (a *app) mealsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "meals",
		Aliases: []string{"meal"},
		Short:   "Record or look up daily meal counts",
	}

	set := &cobra.Command{
		Use:   "set MEMBER DATE COUNT",
		Short: "Set a member's meal count for a day, replacing any earlier count",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.resolveMember(args[0])
			if err != nil {
				return err
			}
			count, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid meal count %q", args[2])
			}
			rec := models.MealEntryRecord(models.MealEntry{MemberID: m.ID, Date: args[1], Count: count})
			if err := a.ledger.Create(cmd.Context(), &rec); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s: %d meals on %s\n", m.Name, rec.MealEntry.Count, rec.MealEntry.Date)
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get MEMBER [DATE]",
		Short: "Show a member's meal count for a day (default: today)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			m, err := a.resolveMember(args[0])
			if err != nil {
				return err
			}
			date := a.today()
			if len(args) == 2 {
				date = args[1]
			}
			fmt.Fprintf(a.out, "%s: %d meals on %s\n", m.Name, a.ledger.MealCount(m.ID, date), date)
			return nil
		},
	}

	cmd.AddCommand(set, get)
	return cmd
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm KIND ID",
		Short: "Delete a record (member, bill, payment, meal)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := models.ParseRecordKind(args[0])
			if err != nil {
				return err
			}
			if err := a.ledger.Delete(cmd.Context(), kind, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted %s %s\n", kind, args[1])
			return nil
		},
	}
}

func parseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return amount, nil
}
