// Package subscription reconciles "create" vs "update" for per-category
// email subscriptions. The backend has no existence check, so saving
// tries create first and falls back to update on any create failure.
package subscription

import (
	"context"
	"fmt"

	"github.com/ndhoang/newsdesk/internal/api"
)

// Client is the slice of the gateway the manager needs.
type Client interface {
	CreateSubscription(ctx context.Context, categoryID, frequency string) error
	UpdateSubscription(ctx context.Context, categoryID string, update api.SubscriptionUpdate) error
}

// Manager is stateless: every save or deactivate is fire-and-confirm
// against the backend, with the result surfaced directly.
type Manager struct {
	client Client
}

func New(client Client) *Manager {
	return &Manager{client: client}
}

// ValidFrequency reports whether f is an accepted email frequency.
func ValidFrequency(f string) bool {
	return f == api.FrequencyDaily || f == api.FrequencyWeekly
}

// Save subscribes the user to a category at the given frequency.
// Create is attempted first; because a create failure is
// indistinguishable from "subscription already exists", any create
// error (other than the caller cancelling) falls back to a single
// update with the same frequency and the subscription re-activated.
// The caller observes one outcome, not the intermediate failure.
func (m *Manager) Save(ctx context.Context, categoryID, frequency string) error {
	if categoryID == "" {
		return fmt.Errorf("save subscription: missing category id")
	}
	if !ValidFrequency(frequency) {
		return fmt.Errorf("save subscription: invalid frequency %q", frequency)
	}

	err := m.client.CreateSubscription(ctx, categoryID, frequency)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	active := true
	return m.client.UpdateSubscription(ctx, categoryID, api.SubscriptionUpdate{
		EmailFrequency: &frequency,
		IsActive:       &active,
	})
}

// SetFrequency changes only the email frequency of an existing
// subscription.
func (m *Manager) SetFrequency(ctx context.Context, categoryID, frequency string) error {
	if !ValidFrequency(frequency) {
		return fmt.Errorf("update subscription: invalid frequency %q", frequency)
	}
	return m.client.UpdateSubscription(ctx, categoryID, api.SubscriptionUpdate{
		EmailFrequency: &frequency,
	})
}

// Deactivate turns the subscription off without touching frequency.
func (m *Manager) Deactivate(ctx context.Context, categoryID string) error {
	active := false
	return m.client.UpdateSubscription(ctx, categoryID, api.SubscriptionUpdate{
		IsActive: &active,
	})
}
