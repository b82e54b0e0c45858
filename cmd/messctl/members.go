package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mmynk/messledger/internal/models"
	"github.com/mmynk/messledger/internal/report"
)

func (a *app) membersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "members",
		Aliases: []string{"member"},
		Short:   "List or add house members",
	}
	cmd.AddCommand(a.membersListCmd(), a.membersAddCmd())
	return cmd
}

func (a *app) membersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List members",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			members := a.ledger.Snapshot().Members
			if len(members) == 0 {
				fmt.Fprintln(a.out, "No members yet.")
				return nil
			}

			rows := make([][]string, len(members))
			for i, m := range members {
				rows[i] = []string{m.ID, m.Name, m.Phone, m.JoinDate}
			}
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(report.ColorBorder)).
				Headers("ID", "Name", "Phone", "Joined").
				Rows(rows...)
			fmt.Fprintln(a.out, t.Render())
			return nil
		},
	}
}

func (a *app) membersAddCmd() *cobra.Command {
	var phone, joined string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec := models.MemberRecord(models.Member{Name: args[0], Phone: phone, JoinDate: joined})
			if err := a.ledger.Create(cmd.Context(), &rec); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Added member %s (%s)\n", rec.Member.Name, rec.ID())
			return nil
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&joined, "joined", "", "Join date YYYY-MM-DD (default: today)")
	return cmd
}
