package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ndhoang/newsdesk/internal/catalog"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List available categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, client, err := setup()
		if err != nil {
			return err
		}
		cats, err := catalog.New(client).Categories(cmd.Context())
		if err != nil {
			return err
		}
		if len(cats) == 0 {
			fmt.Println("No categories.")
			return nil
		}
		for _, cat := range cats {
			fmt.Printf("%s  %s\n", cat.ID, cat.Name)
			if cat.Description != "" {
				fmt.Printf("    %s\n", cat.Description)
			}
		}
		return nil
	},
}

var topCmd = &cobra.Command{
	Use:   "top <category>",
	Short: "Show the top articles for a category",
	Long: `Show the backend's current top articles for a category. The argument
is matched against category names (case-insensitive), falling back to
the raw category id.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, client, err := setup()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		cat := catalog.New(client)

		categoryID, label, err := resolveCategory(ctx, cat, args[0])
		if err != nil {
			return err
		}

		articles, err := cat.TopArticles(ctx, categoryID)
		if err != nil {
			return err
		}
		if len(articles) == 0 {
			fmt.Printf("No articles in %s.\n", label)
			return nil
		}
		fmt.Printf("Top articles in %s:\n\n", label)
		for i, a := range articles {
			fmt.Printf("%2d. %s\n", i+1, a.Headline)
			fmt.Printf("    %s · %s\n", a.Source, a.PublicationDate.Format("2006-01-02"))
			fmt.Printf("    %s\n", a.URL)
		}
		return nil
	},
}

// resolveCategory maps a user-supplied name or id to a category id.
// Names win over ids so `newsdesk top Technology` does what it says.
func resolveCategory(ctx context.Context, cat *catalog.Catalog, arg string) (id, label string, err error) {
	cats, err := cat.Categories(ctx)
	if err != nil {
		return "", "", err
	}
	for _, cat := range cats {
		if strings.EqualFold(cat.Name, arg) {
			return cat.ID, cat.Name, nil
		}
	}
	for _, cat := range cats {
		if cat.ID == arg {
			return cat.ID, cat.Name, nil
		}
	}
	return "", "", fmt.Errorf("unknown category %q", arg)
}
