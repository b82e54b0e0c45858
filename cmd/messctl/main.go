// Command messctl manages a house ledger from the terminal.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	a := newApp(os.Stdout)
	err := a.rootCmd().ExecuteContext(ctx)
	a.close()
	stop()

	if err != nil {
		os.Exit(1)
	}
}
