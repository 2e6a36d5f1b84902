package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndhoang/newsdesk/internal/api"
	"github.com/ndhoang/newsdesk/internal/config"
	"github.com/ndhoang/newsdesk/internal/session"
	"github.com/ndhoang/newsdesk/internal/update"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagBaseURL string
)

var rootCmd = &cobra.Command{
	Use:   "newsdesk",
	Short: "Terminal client for a news aggregation service",
	Long:  "newsdesk browses categorized top articles, manages personal article collections, and manages per-category email subscriptions against a news aggregation backend.",
	RunE:  runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "backend base address (overrides config and "+config.EnvBaseURL+")")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(resetPasswordCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(collectionsCmd)
	rootCmd.AddCommand(subscribeCmd)
	rootCmd.AddCommand(unsubscribeCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(historyCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("newsdesk %s (commit: %s, built: %s)\n", version, commit, date)
		if r := update.Check(cmd.Context(), version); r != nil {
			fmt.Printf("A newer version is available: %s (%s)\n", r.LatestVersion, r.ReleaseURL)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// setup loads config, opens the session store and builds the API
// client on top of it. Shared by every subcommand.
func setup() (*config.Config, *session.Store, *api.Client, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	base := cfg.ResolvedBaseURL()
	if flagBaseURL != "" {
		base = flagBaseURL
	}

	sessions := session.Open(config.SessionPath())
	client, err := api.New(base, sessions)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, sessions, client, nil
}

// requireAuth validates a persisted credential before trusting it.
// Validation failure clears the session, so the caller gets a clean
// "not signed in" answer rather than a confusing backend 401.
func requireAuth(ctx context.Context, sessions *session.Store, client *api.Client) error {
	if !sessions.Validate(ctx, client) {
		return fmt.Errorf("not signed in (run `newsdesk login`)")
	}
	return nil
}
