package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ndhoang/newsdesk/internal/api"
	"github.com/ndhoang/newsdesk/internal/catalog"
	"github.com/ndhoang/newsdesk/internal/subscription"
)

var flagFrequency string

func init() {
	subscribeCmd.Flags().StringVar(&flagFrequency, "frequency", api.FrequencyDaily, "email frequency (Daily or Weekly)")
}

var subscribeCmd = &cobra.Command{
	Use:   "subscribe <category>",
	Short: "Subscribe to a category's email digest",
	Long: `Subscribe to a category's email digest at the given frequency.
Re-running with a different frequency updates the existing subscription
and re-activates it if it was turned off.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sessions, client, err := setup()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if err := requireAuth(ctx, sessions, client); err != nil {
			return err
		}

		frequency, err := parseFrequency(flagFrequency)
		if err != nil {
			return err
		}
		categoryID, label, err := resolveCategory(ctx, catalog.New(client), args[0])
		if err != nil {
			return err
		}

		if err := subscription.New(client).Save(ctx, categoryID, frequency); err != nil {
			return err
		}
		fmt.Printf("Subscribed to %s (%s).\n", label, strings.ToLower(frequency))
		return nil
	},
}

var unsubscribeCmd = &cobra.Command{
	Use:   "unsubscribe <category>",
	Short: "Deactivate a category subscription",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sessions, client, err := setup()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if err := requireAuth(ctx, sessions, client); err != nil {
			return err
		}

		categoryID, label, err := resolveCategory(ctx, catalog.New(client), args[0])
		if err != nil {
			return err
		}
		if err := subscription.New(client).Deactivate(ctx, categoryID); err != nil {
			return err
		}
		fmt.Printf("Unsubscribed from %s.\n", label)
		return nil
	},
}

// parseFrequency accepts the canonical names case-insensitively.
func parseFrequency(s string) (string, error) {
	switch {
	case strings.EqualFold(s, api.FrequencyDaily):
		return api.FrequencyDaily, nil
	case strings.EqualFold(s, api.FrequencyWeekly):
		return api.FrequencyWeekly, nil
	default:
		return "", fmt.Errorf("invalid frequency %q (want Daily or Weekly)", s)
	}
}
