package subscription

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndhoang/newsdesk/internal/api"
)

type call struct {
	kind       string // "create" or "update"
	categoryID string
	frequency  string
	update     api.SubscriptionUpdate
}

type fakeClient struct {
	createErr error
	updateErr error
	calls     []call
}

func (f *fakeClient) CreateSubscription(ctx context.Context, categoryID, frequency string) error {
	f.calls = append(f.calls, call{kind: "create", categoryID: categoryID, frequency: frequency})
	return f.createErr
}

func (f *fakeClient) UpdateSubscription(ctx context.Context, categoryID string, update api.SubscriptionUpdate) error {
	f.calls = append(f.calls, call{kind: "update", categoryID: categoryID, update: update})
	return f.updateErr
}

func TestSaveCreatesWhenNoSubscriptionExists(t *testing.T) {
	fake := &fakeClient{}
	m := New(fake)

	err := m.Save(context.Background(), "cat-1", api.FrequencyDaily)
	require.NoError(t, err)
	require.Len(t, fake.calls, 1)
	assert.Equal(t, "create", fake.calls[0].kind)
	assert.Equal(t, api.FrequencyDaily, fake.calls[0].frequency)
}

func TestSaveFallsBackToUpdateOnCreateFailure(t *testing.T) {
	fake := &fakeClient{createErr: errors.New("subscription already exists")}
	m := New(fake)

	err := m.Save(context.Background(), "cat-1", api.FrequencyWeekly)
	require.NoError(t, err, "caller sees one outcome, not the intermediate failure")

	require.Len(t, fake.calls, 2)
	assert.Equal(t, "create", fake.calls[0].kind)
	assert.Equal(t, "update", fake.calls[1].kind)

	update := fake.calls[1].update
	require.NotNil(t, update.EmailFrequency)
	assert.Equal(t, api.FrequencyWeekly, *update.EmailFrequency)
	require.NotNil(t, update.IsActive)
	assert.True(t, *update.IsActive, "fallback must re-activate the subscription")
}

func TestSaveReportsFallbackFailure(t *testing.T) {
	fake := &fakeClient{
		createErr: errors.New("already exists"),
		updateErr: errors.New("backend down"),
	}
	m := New(fake)

	err := m.Save(context.Background(), "cat-1", api.FrequencyDaily)
	require.Error(t, err)
	assert.Equal(t, "backend down", err.Error())
}

func TestSaveSkipsFallbackWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fake := &fakeClient{createErr: context.Canceled}
	m := New(fake)
	cancel()

	err := m.Save(ctx, "cat-1", api.FrequencyDaily)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, fake.calls, 1, "a cancelled create must not trigger the update fallback")
}

func TestSaveValidatesInput(t *testing.T) {
	fake := &fakeClient{}
	m := New(fake)

	assert.Error(t, m.Save(context.Background(), "", api.FrequencyDaily))
	assert.Error(t, m.Save(context.Background(), "cat-1", "Hourly"))
	assert.Empty(t, fake.calls, "invalid input must not reach the backend")
}

func TestDeactivateTouchesOnlyActiveFlag(t *testing.T) {
	fake := &fakeClient{}
	m := New(fake)

	require.NoError(t, m.Deactivate(context.Background(), "cat-1"))
	require.Len(t, fake.calls, 1)

	update := fake.calls[0].update
	assert.Nil(t, update.EmailFrequency)
	require.NotNil(t, update.IsActive)
	assert.False(t, *update.IsActive)
}

func TestSetFrequencyTouchesOnlyFrequency(t *testing.T) {
	fake := &fakeClient{}
	m := New(fake)

	require.NoError(t, m.SetFrequency(context.Background(), "cat-1", api.FrequencyWeekly))
	require.Len(t, fake.calls, 1)

	update := fake.calls[0].update
	assert.Nil(t, update.IsActive)
	require.NotNil(t, update.EmailFrequency)
	assert.Equal(t, api.FrequencyWeekly, *update.EmailFrequency)
}

func TestValidFrequency(t *testing.T) {
	assert.True(t, ValidFrequency(api.FrequencyDaily))
	assert.True(t, ValidFrequency(api.FrequencyWeekly))
	assert.False(t, ValidFrequency("daily"))
	assert.False(t, ValidFrequency(""))
}
