package api

import (
	"context"
	"net/http"
	"net/url"
)

// Categories lists all categories. Public.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	out := []Category{}
	_, err := c.do(ctx, request{
		op:     "list categories",
		method: http.MethodGet,
		path:   "/api/category",
	}, &out)
	return out, err
}

// CategoryByID fetches a single category. Public.
func (c *Client) CategoryByID(ctx context.Context, id string) (*Category, error) {
	var out *Category
	_, err := c.do(ctx, request{
		op:     "get category",
		method: http.MethodGet,
		path:   "/api/category/" + url.PathEscape(id),
	}, &out)
	return out, err
}

// TopArticles lists the backend's top ten articles for a category.
// Public.
func (c *Client) TopArticles(ctx context.Context, categoryID string) ([]Article, error) {
	out := []Article{}
	_, err := c.do(ctx, request{
		op:     "list top articles",
		method: http.MethodGet,
		path:   "/api/article/top-10-articles",
		query:  url.Values{"categoryId": {categoryID}},
	}, &out)
	return out, err
}

// UpsertArticle creates or updates an article, keyed server-side by
// URL. Requires authentication.
func (c *Client) UpsertArticle(ctx context.Context, article ArticleUpsert) (*Article, error) {
	var out *Article
	_, err := c.do(ctx, request{
		op:     "upsert article",
		method: http.MethodPost,
		path:   "/api/article",
		body:   article,
		authed: true,
	}, &out)
	return out, err
}
