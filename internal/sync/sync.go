// Package sync keeps the client-visible collections and their article
// membership consistent with the last confirmed server state. Local
// state is a cache of server truth: every mutation either applies the
// server's authoritative response or invalidates the affected slice,
// never a client-predicted value.
package sync

import (
	"context"
	"errors"
	"sync"

	"github.com/ndhoang/newsdesk/internal/api"
)

// State is the lifecycle of the collections list.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Validation failures reported before any request is sent.
var (
	ErrNoCollection = errors.New("no collection selected")
	ErrNoArticleID  = errors.New("article has no id; it must come from the backend")
)

// Client is the slice of the gateway the synchronizer needs.
type Client interface {
	Collections(ctx context.Context) ([]api.Collection, error)
	CreateCollection(ctx context.Context, name, description string) (*api.Collection, error)
	UpdateCollection(ctx context.Context, id, name, description string) (*api.Collection, error)
	DeleteCollection(ctx context.Context, id string) error
	CollectionArticles(ctx context.Context, collectionID string) ([]api.Article, error)
	AddArticleToCollection(ctx context.Context, collectionID, articleID string) (string, error)
	RemoveArticleFromCollection(ctx context.Context, collectionID, articleID string) (string, error)
	CollectionsForArticle(ctx context.Context, articleID string) ([]api.Collection, error)
}

// Synchronizer mirrors the owner's collections. Completions may arrive
// on different goroutines; the mutex makes each "completion applied to
// cache" step atomic. Removals filter by id, so out-of-order
// completion of independent removals is safe.
type Synchronizer struct {
	client Client

	mu          sync.Mutex
	state       State
	err         error
	collections []api.Collection
	articles    map[string][]api.Article
	openID      string
}

func New(client Client) *Synchronizer {
	return &Synchronizer{
		client:   client,
		articles: make(map[string][]api.Article),
	}
}

// State returns the list lifecycle state and, when failed, the cause.
func (s *Synchronizer) State() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.err
}

// Collections returns a copy of the cached list.
func (s *Synchronizer) Collections() []api.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Collection, len(s.collections))
	copy(out, s.collections)
	return out
}

// Load fetches the collections list. Meant to be triggered when
// authentication becomes true. A cancelled load leaves the cache
// untouched and the state unloaded.
func (s *Synchronizer) Load(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateLoading
	s.err = nil
	s.mu.Unlock()

	list, err := s.client.Collections(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil {
		s.state = StateUnloaded
		return ctx.Err()
	}
	if err != nil {
		s.state = StateFailed
		s.err = err
		return err
	}
	s.state = StateLoaded
	s.collections = list
	return nil
}

// Reset drops all cached state, for logout.
func (s *Synchronizer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateUnloaded
	s.err = nil
	s.collections = nil
	s.articles = make(map[string][]api.Article)
	s.openID = ""
}

// Create makes a collection and re-fetches the authoritative list:
// the server assigns the id and timestamp, so re-derivation beats a
// local append.
func (s *Synchronizer) Create(ctx context.Context, name, description string) error {
	if _, err := s.client.CreateCollection(ctx, name, description); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return s.Load(ctx)
}

// Update renames or re-describes a collection and replaces the cached
// entry with the server's returned object.
func (s *Synchronizer) Update(ctx context.Context, id, name, description string) (*api.Collection, error) {
	updated, err := s.client.UpdateCollection(ctx, id, name, description)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if updated == nil {
		return nil, errors.New("update collection: empty response")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.collections {
		if s.collections[i].ID == updated.ID {
			s.collections[i] = *updated
			break
		}
	}
	return updated, nil
}

// Delete removes a collection. The entry and its cached article list
// go away locally; when the deleted collection was open in a detail
// view, detailClosed reports that the view must close.
func (s *Synchronizer) Delete(ctx context.Context, id string) (detailClosed bool, err error) {
	if err := s.client.DeleteCollection(ctx, id); err != nil {
		return false, err
	}
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.collections[:0]
	for _, c := range s.collections {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.collections = kept
	delete(s.articles, id)
	if s.openID == id {
		s.openID = ""
		detailClosed = true
	}
	return detailClosed, nil
}

// OpenDetail marks a collection's detail view as open.
func (s *Synchronizer) OpenDetail(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openID = id
}

func (s *Synchronizer) CloseDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openID = ""
}

// OpenDetailID returns the id of the open detail view, or "".
func (s *Synchronizer) OpenDetailID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openID
}

// LoadArticles fetches a collection's membership and caches it.
func (s *Synchronizer) LoadArticles(ctx context.Context, collectionID string) ([]api.Article, error) {
	list, err := s.client.CollectionArticles(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[collectionID] = list
	out := make([]api.Article, len(list))
	copy(out, list)
	return out, nil
}

// CachedArticles returns the last confirmed membership list, or nil
// when none was loaded.
func (s *Synchronizer) CachedArticles(collectionID string) []api.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := s.articles[collectionID]
	if !ok {
		return nil
	}
	out := make([]api.Article, len(list))
	copy(out, list)
	return out
}

// AddArticle puts an article into a collection. Both ids are checked
// before any network call: an article without a server-assigned id is
// a caller error. On success the cached membership for that
// collection is invalidated; the next detail open re-fetches it.
func (s *Synchronizer) AddArticle(ctx context.Context, collectionID string, article api.Article) (string, error) {
	if collectionID == "" {
		return "", ErrNoCollection
	}
	if article.ID == "" {
		return "", ErrNoArticleID
	}
	msg, err := s.client.AddArticleToCollection(ctx, collectionID, article.ID)
	if err != nil {
		return "", err
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	s.mu.Lock()
	delete(s.articles, collectionID)
	s.mu.Unlock()
	return msg, nil
}

// RemoveArticle takes an article out of a collection and filters the
// cached membership by the specific article id. Filtering commutes,
// so two concurrent removals may complete in either order.
func (s *Synchronizer) RemoveArticle(ctx context.Context, collectionID, articleID string) (string, error) {
	if collectionID == "" {
		return "", ErrNoCollection
	}
	if articleID == "" {
		return "", ErrNoArticleID
	}
	msg, err := s.client.RemoveArticleFromCollection(ctx, collectionID, articleID)
	if err != nil {
		return "", err
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if list, ok := s.articles[collectionID]; ok {
		kept := list[:0]
		for _, a := range list {
			if a.ID != articleID {
				kept = append(kept, a)
			}
		}
		s.articles[collectionID] = kept
	}
	return msg, nil
}

// CollectionsContaining is a derived, on-demand query; the result is
// not cached and may drift from the general list until re-fetched.
func (s *Synchronizer) CollectionsContaining(ctx context.Context, articleID string) ([]api.Collection, error) {
	if articleID == "" {
		return nil, ErrNoArticleID
	}
	return s.client.CollectionsForArticle(ctx, articleID)
}
