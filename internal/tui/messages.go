package tui

import (
	"github.com/ndhoang/newsdesk/internal/api"
)

// Loads carry the sequence number of the view generation that started
// them; completions for a dismissed view are discarded by the Update
// loop.

type categoriesLoadedMsg struct {
	categories []api.Category
}

type articlesLoadedMsg struct {
	seq        int
	categoryID string
	articles   []api.Article
}

type collectionsSyncedMsg struct {
	seq int
}

type collectionArticlesMsg struct {
	seq          int
	collectionID string
	articles     []api.Article
}

type articleCollectionsMsg struct {
	seq         int
	articleID   string
	collections []api.Collection
}

type authDoneMsg struct {
	err error
}

type mutationDoneMsg struct {
	notice      string
	closeDetail bool
	err         error
}

// loadKind names the concern a failed load belongs to, so the error
// handler resets only that concern's loading indicator and checks the
// right generation.
type loadKind int

const (
	loadNone loadKind = iota // one-shot actions with no generation
	loadTopArticles
	loadMembership
	loadCollectionArticles
)

type errMsg struct {
	kind loadKind
	seq  int
	err  error
}
