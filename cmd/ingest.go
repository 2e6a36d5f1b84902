package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndhoang/newsdesk/internal/config"
	"github.com/ndhoang/newsdesk/internal/ingest"
)

var (
	flagIngestFeed     string
	flagIngestCategory string
)

func init() {
	ingestCmd.Flags().StringVar(&flagIngestFeed, "feed", "", "one-off feed URL (instead of the configured feeds)")
	ingestCmd.Flags().StringVar(&flagIngestCategory, "category", "", "category id for --feed items")
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Push feeds into the backend",
	Long: `Fetch every feed in the config file (or the one given with --feed) and
upsert its items into the backend. The server keys articles by URL, so
repeated runs refresh rather than duplicate.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, sessions, client, err := setup()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if err := requireAuth(ctx, sessions, client); err != nil {
			return err
		}

		feeds := cfg.Feeds
		if flagIngestFeed != "" {
			if flagIngestCategory == "" {
				return fmt.Errorf("--feed requires --category")
			}
			feeds = []config.Feed{{Name: "ad-hoc", URL: flagIngestFeed, Category: flagIngestCategory}}
		}
		if len(feeds) == 0 {
			return fmt.Errorf("no feeds configured (edit %s or pass --feed)", config.DefaultConfigPath())
		}

		result := ingest.Run(ctx, client, feeds)
		fmt.Printf("Fetched %d items, pushed %d.\n", result.Fetched, result.Pushed)
		for _, e := range result.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", e)
		}
		if result.Pushed == 0 && len(result.Errors) > 0 {
			return fmt.Errorf("ingest pushed nothing")
		}
		return nil
	},
}
