// Package catalog loads the read-only category list and per-category
// top articles.
package catalog

import (
	"context"
	"strings"

	"github.com/ndhoang/newsdesk/internal/api"
)

// Client is the slice of the gateway the catalog needs.
type Client interface {
	Categories(ctx context.Context) ([]api.Category, error)
	TopArticles(ctx context.Context, categoryID string) ([]api.Article, error)
}

type Catalog struct {
	client Client
}

func New(client Client) *Catalog {
	return &Catalog{client: client}
}

// Categories returns the backend's categories with case-insensitive
// name duplicates dropped.
func (c *Catalog) Categories(ctx context.Context) ([]api.Category, error) {
	list, err := c.client.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return DedupeByName(list), nil
}

// TopArticles lists the top articles for one category.
func (c *Catalog) TopArticles(ctx context.Context, categoryID string) ([]api.Article, error) {
	return c.client.TopArticles(ctx, categoryID)
}

// DedupeByName keeps exactly one category per case-insensitive name.
// The first occurrence wins and insertion order is preserved.
func DedupeByName(list []api.Category) []api.Category {
	seen := make(map[string]bool, len(list))
	out := make([]api.Category, 0, len(list))
	for _, cat := range list {
		key := strings.ToLower(cat.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, cat)
	}
	return out
}
