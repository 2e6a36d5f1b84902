package tui

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ndhoang/newsdesk/internal/api"
	"github.com/ndhoang/newsdesk/internal/catalog"
	"github.com/ndhoang/newsdesk/internal/session"
	"github.com/ndhoang/newsdesk/internal/sync"
)

type fakeCatalogClient struct {
	categories []api.Category
	articles   []api.Article
}

func (f *fakeCatalogClient) Categories(ctx context.Context) ([]api.Category, error) {
	return f.categories, nil
}

func (f *fakeCatalogClient) TopArticles(ctx context.Context, categoryID string) ([]api.Article, error) {
	return f.articles, nil
}

type fakeSyncClient struct {
	collections []api.Collection
}

func (f *fakeSyncClient) Collections(ctx context.Context) ([]api.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.collections, nil
}

func (f *fakeSyncClient) CreateCollection(ctx context.Context, name, description string) (*api.Collection, error) {
	return &api.Collection{ID: "c-new", Name: name, Description: description}, nil
}

func (f *fakeSyncClient) UpdateCollection(ctx context.Context, id, name, description string) (*api.Collection, error) {
	return &api.Collection{ID: id, Name: name, Description: description}, nil
}

func (f *fakeSyncClient) DeleteCollection(ctx context.Context, id string) error { return nil }

func (f *fakeSyncClient) CollectionArticles(ctx context.Context, collectionID string) ([]api.Article, error) {
	return nil, nil
}

func (f *fakeSyncClient) AddArticleToCollection(ctx context.Context, collectionID, articleID string) (string, error) {
	return "", nil
}

func (f *fakeSyncClient) RemoveArticleFromCollection(ctx context.Context, collectionID, articleID string) (string, error) {
	return "", nil
}

func (f *fakeSyncClient) CollectionsForArticle(ctx context.Context, articleID string) ([]api.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.collections, nil
}

func signedInApp(t *testing.T, syncClient *fakeSyncClient) *App {
	t.Helper()
	sessions := session.Open(filepath.Join(t.TempDir(), "session.json"))
	if err := sessions.Set(session.Credential{Token: "tok", User: &session.Identity{Username: "hoang"}}); err != nil {
		t.Fatal(err)
	}
	cat := &fakeCatalogClient{
		categories: []api.Category{{ID: "cat-1", Name: "Technology"}},
		articles:   []api.Article{{ID: "a1", Headline: "Hello", URL: "https://example.com/1"}},
	}
	return NewApp(Opts{
		Sessions:    sessions,
		Catalog:     catalog.New(cat),
		Collections: sync.New(syncClient),
	})
}

// drain executes a command tree in order, feeding each message back
// into Update, the way the runtime would. Spinner ticks are dropped
// so the loop terminates.
func drain(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if msg == nil {
		return
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			drain(t, app, c)
		}
		return
	}
	if _, ok := msg.(spinner.TickMsg); ok {
		return
	}
	_, next := app.Update(msg)
	drain(t, app, next)
}

func TestSignInSyncsCollectionsAlongsideMembership(t *testing.T) {
	app := signedInApp(t, &fakeSyncClient{collections: []api.Collection{{ID: "c1", Name: "Reading"}}})
	app.articles = []api.Article{{ID: "a1", Headline: "Hello"}}

	// Sign-in completion batches the collections sync with the
	// membership lookup; the two loads are independent and must not
	// cancel each other.
	_, cmd := app.Update(authDoneMsg{})
	drain(t, app, cmd)

	state, err := app.collections.State()
	if state != sync.StateLoaded {
		t.Fatalf("collections after sign-in: state=%v err=%v, want %v", state, err, sync.StateLoaded)
	}
	if got := app.collections.Collections(); len(got) != 1 {
		t.Fatalf("got %d collections, want 1", len(got))
	}
	if len(app.inCollections) != 1 {
		t.Errorf("membership lookup result lost: %+v", app.inCollections)
	}
}

func TestStartupArticleLoadKeepsCollectionsSync(t *testing.T) {
	app := signedInApp(t, &fakeSyncClient{collections: []api.Collection{{ID: "c1", Name: "Reading"}}})

	// Init batches the categories load with the collections sync;
	// the article load chained off the categories must not cancel
	// the sync.
	drain(t, app, app.Init())

	state, err := app.collections.State()
	if state != sync.StateLoaded {
		t.Fatalf("collections after startup: state=%v err=%v, want %v", state, err, sync.StateLoaded)
	}
	if len(app.articles) != 1 {
		t.Errorf("got %d articles, want 1", len(app.articles))
	}
}

func TestCategorySwitchCancelsOnlyArticleLoad(t *testing.T) {
	app := signedInApp(t, &fakeSyncClient{collections: []api.Collection{{ID: "c1"}}})
	app.categories = []api.Category{{ID: "cat-1", Name: "Tech"}, {ID: "cat-2", Name: "Science"}}

	syncCmd := app.syncCollectionsCmd()
	first := app.loadArticlesCmd()
	app.catIdx = 1
	second := app.loadArticlesCmd()

	drain(t, app, first) // stale generation, dropped
	drain(t, app, second)
	drain(t, app, syncCmd)

	state, _ := app.collections.State()
	if state != sync.StateLoaded {
		t.Errorf("article reload cancelled the collections sync: state=%v", state)
	}
	if app.loadingArticles {
		t.Error("loading flag stuck after current load completed")
	}
}

func TestSignOutResetsLoadingIndicators(t *testing.T) {
	app := signedInApp(t, &fakeSyncClient{})
	app.articles = []api.Article{{ID: "a1", Headline: "Hello"}}

	pending := app.maybeFetchMembership()
	if !app.loadingInCols {
		t.Fatal("membership fetch should mark loading")
	}

	_, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'X'}})

	if app.loadingInCols || app.loadingArticles || app.loadingColArts {
		t.Error("sign-out must reset loading indicators")
	}
	if app.sessions.IsAuthenticated() {
		t.Error("sign-out must clear the session")
	}

	// The cancelled fetch's completion carries a stale generation
	// and must not resurrect any state.
	drain(t, app, pending)
	if len(app.inCollections) != 0 {
		t.Errorf("stale membership completion applied: %+v", app.inCollections)
	}
}
