package api

import (
	"context"
	"net/http"
	"net/url"
)

// All collection operations require authentication; the backend scopes
// them to the token's owner.

func (c *Client) CreateCollection(ctx context.Context, name, description string) (*Collection, error) {
	var out *Collection
	_, err := c.do(ctx, request{
		op:     "create collection",
		method: http.MethodPost,
		path:   "/api/collection",
		body:   map[string]string{"name": name, "description": description},
		authed: true,
	}, &out)
	return out, err
}

func (c *Client) Collections(ctx context.Context) ([]Collection, error) {
	out := []Collection{}
	_, err := c.do(ctx, request{
		op:     "list collections",
		method: http.MethodGet,
		path:   "/api/collection",
		authed: true,
	}, &out)
	return out, err
}

// UpdateCollection renames or re-describes a collection. The returned
// object is the server's authoritative version, not an echo of the
// payload.
func (c *Client) UpdateCollection(ctx context.Context, id, name, description string) (*Collection, error) {
	var out *Collection
	_, err := c.do(ctx, request{
		op:     "update collection",
		method: http.MethodPut,
		path:   "/api/collection/" + url.PathEscape(id),
		body:   map[string]string{"name": name, "description": description},
		authed: true,
	}, &out)
	return out, err
}

func (c *Client) DeleteCollection(ctx context.Context, id string) error {
	_, err := c.do(ctx, request{
		op:     "delete collection",
		method: http.MethodDelete,
		path:   "/api/collection/" + url.PathEscape(id),
		authed: true,
	}, nil)
	return err
}

// AddArticleToCollection returns the backend's confirmation message.
func (c *Client) AddArticleToCollection(ctx context.Context, collectionID, articleID string) (string, error) {
	return c.do(ctx, request{
		op:     "add article to collection",
		method: http.MethodPost,
		path:   "/api/collection/" + url.PathEscape(collectionID) + "/articles/" + url.PathEscape(articleID),
		authed: true,
	}, nil)
}

func (c *Client) RemoveArticleFromCollection(ctx context.Context, collectionID, articleID string) (string, error) {
	return c.do(ctx, request{
		op:     "remove article from collection",
		method: http.MethodDelete,
		path:   "/api/collection/" + url.PathEscape(collectionID) + "/articles/" + url.PathEscape(articleID),
		authed: true,
	}, nil)
}

func (c *Client) CollectionArticles(ctx context.Context, collectionID string) ([]Article, error) {
	out := []Article{}
	_, err := c.do(ctx, request{
		op:     "list collection articles",
		method: http.MethodGet,
		path:   "/api/collection/" + url.PathEscape(collectionID) + "/articles",
		authed: true,
	}, &out)
	return out, err
}

// CollectionsForArticle lists the caller's collections containing the
// given article.
func (c *Client) CollectionsForArticle(ctx context.Context, articleID string) ([]Collection, error) {
	out := []Collection{}
	_, err := c.do(ctx, request{
		op:     "list collections for article",
		method: http.MethodGet,
		path:   "/api/article/" + url.PathEscape(articleID) + "/collections",
		authed: true,
	}, &out)
	return out, err
}
