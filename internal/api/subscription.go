package api

import (
	"context"
	"net/http"
	"net/url"
)

// CreateSubscription subscribes the caller to a category's email
// digest. Fails when a subscription already exists for the category.
func (c *Client) CreateSubscription(ctx context.Context, categoryID, frequency string) error {
	_, err := c.do(ctx, request{
		op:     "create subscription",
		method: http.MethodPost,
		path:   "/api/subscription",
		body: Subscription{
			CategoryID:     categoryID,
			EmailFrequency: frequency,
			IsActive:       true,
		},
		authed: true,
	}, nil)
	return err
}

// UpdateSubscription applies a partial update to an existing
// subscription: frequency alone, active flag alone, or both.
func (c *Client) UpdateSubscription(ctx context.Context, categoryID string, update SubscriptionUpdate) error {
	_, err := c.do(ctx, request{
		op:     "update subscription",
		method: http.MethodPatch,
		path:   "/api/subscription/" + url.PathEscape(categoryID),
		body:   update,
		authed: true,
	}, nil)
	return err
}
