package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ndhoang/newsdesk/internal/catalog"
	"github.com/ndhoang/newsdesk/internal/config"
	"github.com/ndhoang/newsdesk/internal/history"
	"github.com/ndhoang/newsdesk/internal/subscription"
	"github.com/ndhoang/newsdesk/internal/sync"
	"github.com/ndhoang/newsdesk/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	_, sessions, client, err := setup()
	if err != nil {
		return err
	}

	// A persisted credential is only trusted after the backend
	// confirms it; on failure the session is cleared and the TUI
	// starts signed out.
	if sessions.Token() != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if !sessions.Validate(ctx, client) {
			fmt.Println("Stored session is no longer valid; sign in again.")
		}
		cancel()
	}

	views, err := history.Open(config.HistoryPath())
	if err != nil {
		// History is a convenience; run without it.
		views = nil
	} else {
		defer views.Close()
	}

	return tui.Run(tui.Opts{
		Client:      client,
		Sessions:    sessions,
		Catalog:     catalog.New(client),
		Collections: sync.New(client),
		Subs:        subscription.New(client),
		Views:       views,
	})
}
