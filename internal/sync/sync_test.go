package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndhoang/newsdesk/internal/api"
)

// fakeClient is a scriptable in-memory backend.
type fakeClient struct {
	collections []api.Collection
	articles    map[string][]api.Article

	listErr   error
	createErr error
	removeErr error

	created []string
	removed [][2]string
	listed  int
}

func newFakeClient() *fakeClient {
	return &fakeClient{articles: make(map[string][]api.Article)}
}

func (f *fakeClient) Collections(ctx context.Context) ([]api.Collection, error) {
	f.listed++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]api.Collection, len(f.collections))
	copy(out, f.collections)
	return out, nil
}

func (f *fakeClient) CreateCollection(ctx context.Context, name, description string) (*api.Collection, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, name)
	col := api.Collection{ID: "srv-" + name, Name: name, Description: description}
	f.collections = append(f.collections, col)
	return &col, nil
}

func (f *fakeClient) UpdateCollection(ctx context.Context, id, name, description string) (*api.Collection, error) {
	for i := range f.collections {
		if f.collections[i].ID == id {
			f.collections[i].Name = name
			f.collections[i].Description = description
			col := f.collections[i]
			return &col, nil
		}
	}
	return nil, &api.Error{Status: 404, Message: "collection not found", Op: "update collection"}
}

func (f *fakeClient) DeleteCollection(ctx context.Context, id string) error {
	kept := f.collections[:0]
	for _, c := range f.collections {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	f.collections = kept
	delete(f.articles, id)
	return nil
}

func (f *fakeClient) CollectionArticles(ctx context.Context, collectionID string) ([]api.Article, error) {
	out := make([]api.Article, len(f.articles[collectionID]))
	copy(out, f.articles[collectionID])
	return out, nil
}

func (f *fakeClient) AddArticleToCollection(ctx context.Context, collectionID, articleID string) (string, error) {
	f.articles[collectionID] = append(f.articles[collectionID], api.Article{ID: articleID})
	return "added", nil
}

func (f *fakeClient) RemoveArticleFromCollection(ctx context.Context, collectionID, articleID string) (string, error) {
	if f.removeErr != nil {
		return "", f.removeErr
	}
	f.removed = append(f.removed, [2]string{collectionID, articleID})
	kept := f.articles[collectionID][:0]
	for _, a := range f.articles[collectionID] {
		if a.ID != articleID {
			kept = append(kept, a)
		}
	}
	f.articles[collectionID] = kept
	return "removed", nil
}

func (f *fakeClient) CollectionsForArticle(ctx context.Context, articleID string) ([]api.Collection, error) {
	var out []api.Collection
	for _, c := range f.collections {
		for _, a := range f.articles[c.ID] {
			if a.ID == articleID {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func TestLoadTransitionsToLoaded(t *testing.T) {
	fake := newFakeClient()
	fake.collections = []api.Collection{{ID: "c1", Name: "Reading"}}
	s := New(fake)

	state, _ := s.State()
	assert.Equal(t, StateUnloaded, state)

	require.NoError(t, s.Load(context.Background()))

	state, err := s.State()
	assert.Equal(t, StateLoaded, state)
	assert.NoError(t, err)
	require.Len(t, s.Collections(), 1)
	assert.Equal(t, "Reading", s.Collections()[0].Name)
}

func TestLoadFailureKeepsCause(t *testing.T) {
	fake := newFakeClient()
	fake.listErr = errors.New("backend down")
	s := New(fake)

	err := s.Load(context.Background())
	require.Error(t, err)

	state, cause := s.State()
	assert.Equal(t, StateFailed, state)
	assert.Equal(t, "backend down", cause.Error())
	assert.Empty(t, s.Collections())
}

func TestCancelledLoadLeavesCacheUntouched(t *testing.T) {
	fake := newFakeClient()
	fake.collections = []api.Collection{{ID: "c1", Name: "Reading"}}
	s := New(fake)
	require.NoError(t, s.Load(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fake.collections = nil

	err := s.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	state, _ := s.State()
	assert.Equal(t, StateUnloaded, state)
	// The previously confirmed list survives a discarded completion.
	require.Len(t, s.Collections(), 1)
}

func TestCreateRefetchesAuthoritativeList(t *testing.T) {
	fake := newFakeClient()
	s := New(fake)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.Create(context.Background(), "Weekend", "long reads"))

	cols := s.Collections()
	require.Len(t, cols, 1)
	// Server-assigned identity, not a locally invented one.
	assert.Equal(t, "srv-Weekend", cols[0].ID)
	assert.GreaterOrEqual(t, fake.listed, 2, "create must re-fetch the list")
}

func TestUpdateReplacesCachedEntryWithServerObject(t *testing.T) {
	fake := newFakeClient()
	fake.collections = []api.Collection{{ID: "c1", Name: "Old"}}
	s := New(fake)
	require.NoError(t, s.Load(context.Background()))

	updated, err := s.Update(context.Background(), "c1", "New", "renamed")
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)

	cols := s.Collections()
	require.Len(t, cols, 1)
	assert.Equal(t, "New", cols[0].Name)
	assert.Equal(t, "renamed", cols[0].Description)
}

func TestDeleteClosesOpenDetail(t *testing.T) {
	fake := newFakeClient()
	fake.collections = []api.Collection{{ID: "c1"}, {ID: "c2"}}
	s := New(fake)
	require.NoError(t, s.Load(context.Background()))
	s.OpenDetail("c1")

	closed, err := s.Delete(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, closed)
	assert.Empty(t, s.OpenDetailID())

	cols := s.Collections()
	require.Len(t, cols, 1)
	assert.Equal(t, "c2", cols[0].ID)
}

func TestDeleteOtherCollectionKeepsDetailOpen(t *testing.T) {
	fake := newFakeClient()
	fake.collections = []api.Collection{{ID: "c1"}, {ID: "c2"}}
	s := New(fake)
	require.NoError(t, s.Load(context.Background()))
	s.OpenDetail("c2")

	closed, err := s.Delete(context.Background(), "c1")
	require.NoError(t, err)
	assert.False(t, closed)
	assert.Equal(t, "c2", s.OpenDetailID())
}

func TestAddArticleRequiresServerID(t *testing.T) {
	fake := newFakeClient()
	s := New(fake)

	_, err := s.AddArticle(context.Background(), "c1", api.Article{Headline: "no id yet"})
	assert.ErrorIs(t, err, ErrNoArticleID)

	_, err = s.AddArticle(context.Background(), "", api.Article{ID: "a1"})
	assert.ErrorIs(t, err, ErrNoCollection)
}

func TestAddArticleInvalidatesCachedMembership(t *testing.T) {
	fake := newFakeClient()
	fake.articles["c1"] = []api.Article{{ID: "a1"}}
	s := New(fake)

	_, err := s.LoadArticles(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, s.CachedArticles("c1"), 1)

	_, err = s.AddArticle(context.Background(), "c1", api.Article{ID: "a2"})
	require.NoError(t, err)
	assert.Nil(t, s.CachedArticles("c1"), "membership cache must be invalidated")

	list, err := s.LoadArticles(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRemoveArticleFiltersCacheByID(t *testing.T) {
	fake := newFakeClient()
	fake.articles["c1"] = []api.Article{{ID: "a1"}, {ID: "a2"}}
	s := New(fake)
	_, err := s.LoadArticles(context.Background(), "c1")
	require.NoError(t, err)

	_, err = s.RemoveArticle(context.Background(), "c1", "a1")
	require.NoError(t, err)

	cached := s.CachedArticles("c1")
	require.Len(t, cached, 1)
	assert.Equal(t, "a2", cached[0].ID)
}

func TestConcurrentRemovalsCommute(t *testing.T) {
	// Two removals applied in either order leave the same cache.
	for _, order := range [][]string{{"a1", "a2"}, {"a2", "a1"}} {
		fake := newFakeClient()
		fake.articles["c1"] = []api.Article{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}}
		s := New(fake)
		_, err := s.LoadArticles(context.Background(), "c1")
		require.NoError(t, err)

		for _, id := range order {
			_, err := s.RemoveArticle(context.Background(), "c1", id)
			require.NoError(t, err)
		}

		cached := s.CachedArticles("c1")
		require.Len(t, cached, 1)
		assert.Equal(t, "a3", cached[0].ID)
	}
}

func TestRemoveFailureLeavesCacheUntouched(t *testing.T) {
	fake := newFakeClient()
	fake.articles["c1"] = []api.Article{{ID: "a1"}, {ID: "a2"}}
	s := New(fake)
	_, err := s.LoadArticles(context.Background(), "c1")
	require.NoError(t, err)

	fake.removeErr = errors.New("boom")
	_, err = s.RemoveArticle(context.Background(), "c1", "a1")
	require.Error(t, err)
	assert.Len(t, s.CachedArticles("c1"), 2)
}

func TestResetDropsEverything(t *testing.T) {
	fake := newFakeClient()
	fake.collections = []api.Collection{{ID: "c1"}}
	fake.articles["c1"] = []api.Article{{ID: "a1"}}
	s := New(fake)
	require.NoError(t, s.Load(context.Background()))
	_, err := s.LoadArticles(context.Background(), "c1")
	require.NoError(t, err)
	s.OpenDetail("c1")

	s.Reset()

	state, _ := s.State()
	assert.Equal(t, StateUnloaded, state)
	assert.Empty(t, s.Collections())
	assert.Nil(t, s.CachedArticles("c1"))
	assert.Empty(t, s.OpenDetailID())
}

func TestCollectionsContainingRequiresID(t *testing.T) {
	s := New(newFakeClient())
	_, err := s.CollectionsContaining(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoArticleID)
}
