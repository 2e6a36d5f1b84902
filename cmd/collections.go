package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Manage personal article collections",
}

func init() {
	collectionsCmd.AddCommand(collectionsListCmd)
	collectionsCmd.AddCommand(collectionsCreateCmd)
	collectionsCmd.AddCommand(collectionsUpdateCmd)
	collectionsCmd.AddCommand(collectionsDeleteCmd)
	collectionsCmd.AddCommand(collectionsShowCmd)
	collectionsCmd.AddCommand(collectionsAddCmd)
	collectionsCmd.AddCommand(collectionsRemoveCmd)

	collectionsCreateCmd.Flags().StringVar(&flagCollectionDesc, "description", "", "collection description")
	collectionsUpdateCmd.Flags().StringVar(&flagCollectionDesc, "description", "", "collection description")
}

var flagCollectionDesc string

var collectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sessions, client, err := setup()
		if err != nil {
			return err
		}
		if err := requireAuth(cmd.Context(), sessions, client); err != nil {
			return err
		}
		cols, err := client.Collections(cmd.Context())
		if err != nil {
			return err
		}
		if len(cols) == 0 {
			fmt.Println("No collections yet.")
			return nil
		}
		for _, col := range cols {
			fmt.Printf("%s  %s\n", col.ID, col.Name)
			if col.Description != "" {
				fmt.Printf("    %s\n", col.Description)
			}
		}
		return nil
	},
}

var collectionsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a collection",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sessions, client, err := setup()
		if err != nil {
			return err
		}
		if err := requireAuth(cmd.Context(), sessions, client); err != nil {
			return err
		}
		name := strings.Join(args, " ")
		col, err := client.CreateCollection(cmd.Context(), name, flagCollectionDesc)
		if err != nil {
			return err
		}
		if col != nil && col.ID != "" {
			fmt.Printf("Created collection %q (%s).\n", col.Name, col.ID)
		} else {
			fmt.Printf("Created collection %q.\n", name)
		}
		return nil
	},
}

var collectionsUpdateCmd = &cobra.Command{
	Use:   "update <id> <name>",
	Short: "Rename or re-describe a collection",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sessions, client, err := setup()
		if err != nil {
			return err
		}
		if err := requireAuth(cmd.Context(), sessions, client); err != nil {
			return err
		}
		name := strings.Join(args[1:], " ")
		col, err := client.UpdateCollection(cmd.Context(), args[0], name, flagCollectionDesc)
		if err != nil {
			return err
		}
		if col != nil {
			fmt.Printf("Updated collection %q.\n", col.Name)
		} else {
			fmt.Println("Updated collection.")
		}
		return nil
	},
}

var collectionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sessions, client, err := setup()
		if err != nil {
			return err
		}
		if err := requireAuth(cmd.Context(), sessions, client); err != nil {
			return err
		}
		if err := client.DeleteCollection(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Collection deleted.")
		return nil
	},
}

var collectionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "List the articles in a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sessions, client, err := setup()
		if err != nil {
			return err
		}
		if err := requireAuth(cmd.Context(), sessions, client); err != nil {
			return err
		}
		articles, err := client.CollectionArticles(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(articles) == 0 {
			fmt.Println("Collection is empty.")
			return nil
		}
		for _, a := range articles {
			fmt.Printf("%s  %s\n", a.ID, a.Headline)
			fmt.Printf("    %s · %s\n", a.Source, a.PublicationDate.Format("2006-01-02"))
		}
		return nil
	},
}

var collectionsAddCmd = &cobra.Command{
	Use:   "add <collection-id> <article-id>",
	Short: "Add an article to a collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sessions, client, err := setup()
		if err != nil {
			return err
		}
		if err := requireAuth(cmd.Context(), sessions, client); err != nil {
			return err
		}
		msg, err := client.AddArticleToCollection(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if msg == "" {
			msg = "Article added."
		}
		fmt.Println(msg)
		return nil
	},
}

var collectionsRemoveCmd = &cobra.Command{
	Use:   "remove <collection-id> <article-id>",
	Short: "Remove an article from a collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sessions, client, err := setup()
		if err != nil {
			return err
		}
		if err := requireAuth(cmd.Context(), sessions, client); err != nil {
			return err
		}
		msg, err := client.RemoveArticleFromCollection(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if msg == "" {
			msg = "Article removed."
		}
		fmt.Println(msg)
		return nil
	},
}
