package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ndhoang/newsdesk/internal/config"
	"github.com/ndhoang/newsdesk/internal/history"
)

var (
	flagHistoryLimit int
	flagPruneDays    int
)

func init() {
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyPruneCmd)

	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 50, "number of entries to show")
	historyPruneCmd.Flags().IntVar(&flagPruneDays, "days", 30, "delete entries older than this many days")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently opened articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(config.HistoryPath())
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Recent(flagHistoryLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No history yet.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %s\n", e.ViewedAt.Format("2006-01-02 15:04"), e.Headline)
			fmt.Printf("                   %s\n", e.URL)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(config.HistoryPath())
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete history older than the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(config.HistoryPath())
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Prune(time.Duration(flagPruneDays) * 24 * time.Hour)
		if err != nil {
			return err
		}
		fmt.Printf("Pruned %d entries.\n", n)
		return nil
	},
}
