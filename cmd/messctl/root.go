package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/messledger/internal/backend"
	"github.com/mmynk/messledger/internal/config"
	"github.com/mmynk/messledger/internal/ledger"
	"github.com/mmynk/messledger/internal/models"
	"github.com/mmynk/messledger/internal/storage"
	"github.com/mmynk/messledger/pkg/logging"
)

// app is the state shared by every command during one invocation.
type app struct {
	out io.Writer
	now func() time.Time

	cfg    *config.Config
	store  storage.Store
	ledger *ledger.Ledger

	flagDB       string
	flagRemote   string
	flagLogLevel string
}

func newApp(out io.Writer) *app {
	return &app{out: out, now: time.Now}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "messctl",
		Short:        "House meal ledger",
		Long:         "Record members, bills, payments and meals, and settle the month.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd)
		},
	}
	root.SetOut(a.out)

	root.PersistentFlags().StringVar(&a.flagDB, "db", "", "SQLite database path (overrides DB_PATH)")
	root.PersistentFlags().StringVar(&a.flagRemote, "remote", "", "Ledger server URL (overrides STORE_BACKEND/REMOTE_URL)")
	root.PersistentFlags().StringVar(&a.flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	root.AddCommand(
		a.reportCmd(),
		a.membersCmd(),
		a.billsCmd(),
		a.paymentsCmd(),
		a.mealsCmd(),
		a.rmCmd(),
	)
	return root
}

func (a *app) open(cmd *cobra.Command) error {
	logging.Setup(a.flagLogLevel, "text")

	a.cfg = config.Load()
	if a.flagDB != "" {
		a.cfg.StoreBackend = config.BackendLocal
		a.cfg.DBPath = a.flagDB
	}
	if a.flagRemote != "" {
		a.cfg.StoreBackend = config.BackendRemote
		a.cfg.RemoteURL = a.flagRemote
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	res, err := backend.Open(cmd.Context(), a.cfg)
	if err != nil {
		return err
	}
	a.store = res.Store

	a.ledger, err = ledger.New(cmd.Context(), a.store,
		ledger.WithRecordLimit(a.cfg.RecordLimit),
		ledger.WithClock(a.now),
	)
	if err != nil {
		a.store.Close()
		return err
	}
	return nil
}

func (a *app) close() {
	if a.ledger != nil {
		a.ledger.Close()
	}
	if a.store != nil {
		a.store.Close()
	}
}

// resolveMember accepts a member ID or a case-insensitive name.
func (a *app) resolveMember(ref string) (models.Member, error) {
	snap := a.ledger.Snapshot()
	if m, ok := snap.Member(ref); ok {
		return m, nil
	}

	var matches []models.Member
	for _, m := range snap.Members {
		if strings.EqualFold(m.Name, ref) {
			matches = append(matches, m)
		}
	}
	switch len(matches) {
	case 0:
		return models.Member{}, fmt.Errorf("no member %q", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Member{}, fmt.Errorf("%d members are named %q, use the ID", len(matches), ref)
	}
}

func (a *app) today() string {
	return a.now().Format("2006-01-02")
}
