package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ndhoang/newsdesk/internal/api"
	"github.com/ndhoang/newsdesk/internal/browser"
	"github.com/ndhoang/newsdesk/internal/catalog"
	"github.com/ndhoang/newsdesk/internal/history"
	"github.com/ndhoang/newsdesk/internal/session"
	"github.com/ndhoang/newsdesk/internal/subscription"
	"github.com/ndhoang/newsdesk/internal/sync"
)

type pane int

const (
	paneList pane = iota
	paneDetail
)

type mode int

const (
	modeArticles mode = iota
	modeCollections
	modeCollectionDetail
	modeLogin
	modeRegister
	modeCreateCollection
	modeEditCollection
	modePickCollection
	modeSubscribe
	modeHelp
)

// Opts holds the wired components for launching the TUI.
type Opts struct {
	Client      *api.Client
	Sessions    *session.Store
	Catalog     *catalog.Catalog
	Collections *sync.Synchronizer
	Subs        *subscription.Manager
	Views       *history.Store // optional
}

type App struct {
	client      *api.Client
	sessions    *session.Store
	catalog     *catalog.Catalog
	collections *sync.Synchronizer
	subs        *subscription.Manager
	views       *history.Store

	width  int
	height int
	mode   mode
	focus  pane

	spinner spinner.Model
	err     error
	notice  string

	categories []api.Category
	catIdx     int

	articles        []api.Article
	artCursor       int
	detailScroll    int
	loadingArticles bool

	inCollections []api.Collection
	loadingInCols bool

	colCursor      int
	openCollection *api.Collection
	colArticles    []api.Article
	colArtCursor   int
	loadingColArts bool

	pendingArticle *api.Article
	pickCursor     int

	subWeekly bool

	frm form

	// One load generation per concern, so starting a new load or
	// dismissing a view cancels only that concern's in-flight
	// request. Independent loads (the collections sync kicked off by
	// sign-in, the membership lookup for the selected article) must
	// not cancel each other.
	articleLoads    loadGen
	membershipLoads loadGen
	collectionLoads loadGen
	colArticleLoads loadGen
}

// loadGen tracks one concern's in-flight load. Completions carrying a
// stale seq are dropped, so a cancelled request never mutates view
// state.
type loadGen struct {
	seq    int
	cancel context.CancelFunc
}

// next starts a new generation, cancelling the previous one.
func (g *loadGen) next() (context.Context, int) {
	g.stop()
	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	g.seq++
	return ctx, g.seq
}

// stop aborts the outstanding load without starting a new one.
func (g *loadGen) stop() {
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	g.seq++
}

func NewApp(opts Opts) *App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		client:      opts.Client,
		sessions:    opts.Sessions,
		catalog:     opts.Catalog,
		collections: opts.Collections,
		subs:        opts.Subs,
		views:       opts.Views,
		spinner:     sp,
		mode:        modeArticles,
	}
}

// cancelAllLoads aborts every outstanding load and resets the
// loading indicators, for sign-out.
func (a *App) cancelAllLoads() {
	a.articleLoads.stop()
	a.membershipLoads.stop()
	a.collectionLoads.stop()
	a.colArticleLoads.stop()
	a.loadingArticles = false
	a.loadingInCols = false
	a.loadingColArts = false
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadCategoriesCmd(), a.spinner.Tick}
	if a.sessions.IsAuthenticated() {
		cmds = append(cmds, a.syncCollectionsCmd())
	}
	return tea.Batch(cmds...)
}

// --- commands ---

func (a *App) loadCategoriesCmd() tea.Cmd {
	cat := a.catalog
	return func() tea.Msg {
		list, err := cat.Categories(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return categoriesLoadedMsg{categories: list}
	}
}

func (a *App) loadArticlesCmd() tea.Cmd {
	if a.catIdx >= len(a.categories) {
		return nil
	}
	ctx, seq := a.articleLoads.next()
	id := a.categories[a.catIdx].ID
	cat := a.catalog
	a.loadingArticles = true
	return func() tea.Msg {
		list, err := cat.TopArticles(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errMsg{kind: loadTopArticles, seq: seq, err: err}
		}
		return articlesLoadedMsg{seq: seq, categoryID: id, articles: list}
	}
}

func (a *App) syncCollectionsCmd() tea.Cmd {
	ctx, seq := a.collectionLoads.next()
	col := a.collections
	return func() tea.Msg {
		if err := col.Load(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// Failure is recorded in the synchronizer's state and
			// rendered there.
		}
		return collectionsSyncedMsg{seq: seq}
	}
}

// maybeFetchMembership looks up which collections hold the selected
// article. Best-effort and skipped without a credential.
func (a *App) maybeFetchMembership() tea.Cmd {
	a.inCollections = nil
	if !a.sessions.IsAuthenticated() {
		return nil
	}
	art := a.selectedArticle()
	if art == nil || art.ID == "" {
		return nil
	}
	ctx, seq := a.membershipLoads.next()
	id := art.ID
	col := a.collections
	a.loadingInCols = true
	return func() tea.Msg {
		list, err := col.CollectionsContaining(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errMsg{kind: loadMembership, seq: seq, err: err}
		}
		return articleCollectionsMsg{seq: seq, articleID: id, collections: list}
	}
}

func (a *App) loadCollectionArticlesCmd(collectionID string) tea.Cmd {
	ctx, seq := a.colArticleLoads.next()
	col := a.collections
	a.loadingColArts = true
	return func() tea.Msg {
		list, err := col.LoadArticles(ctx, collectionID)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errMsg{kind: loadCollectionArticles, seq: seq, err: err}
		}
		return collectionArticlesMsg{seq: seq, collectionID: collectionID, articles: list}
	}
}

func (a *App) loginCmd(username, password string) tea.Cmd {
	client := a.client
	sessions := a.sessions
	return func() tea.Msg {
		data, err := client.Login(context.Background(), api.LoginRequest{Username: username, Password: password})
		if err != nil {
			return authDoneMsg{err: err}
		}
		if data.Token == "" {
			return authDoneMsg{err: fmt.Errorf("login: no token in response")}
		}
		return authDoneMsg{err: sessions.Set(session.Credential{Token: data.Token})}
	}
}

func (a *App) registerCmd(req api.RegisterRequest) tea.Cmd {
	client := a.client
	sessions := a.sessions
	return func() tea.Msg {
		data, err := client.Register(context.Background(), req)
		if err != nil {
			return authDoneMsg{err: err}
		}
		if data.Token == "" {
			return authDoneMsg{err: fmt.Errorf("register: no token in response")}
		}
		cred := session.Credential{Token: data.Token}
		if data.Username != "" {
			cred.User = &session.Identity{ID: data.ID, Username: data.Username, Email: data.Email, Role: data.Role}
		}
		return authDoneMsg{err: sessions.Set(cred)}
	}
}

func (a *App) createCollectionCmd(name, description string) tea.Cmd {
	col := a.collections
	return func() tea.Msg {
		if err := col.Create(context.Background(), name, description); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{notice: "Collection created"}
	}
}

func (a *App) updateCollectionCmd(id, name, description string) tea.Cmd {
	col := a.collections
	return func() tea.Msg {
		if _, err := col.Update(context.Background(), id, name, description); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{notice: "Collection updated"}
	}
}

func (a *App) deleteCollectionCmd(id string) tea.Cmd {
	col := a.collections
	return func() tea.Msg {
		closed, err := col.Delete(context.Background(), id)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{notice: "Collection deleted", closeDetail: closed}
	}
}

func (a *App) addToCollectionCmd(collectionID string, article api.Article) tea.Cmd {
	col := a.collections
	return func() tea.Msg {
		msg, err := col.AddArticle(context.Background(), collectionID, article)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		if msg == "" {
			msg = "Article added to collection"
		}
		return mutationDoneMsg{notice: msg}
	}
}

func (a *App) removeFromCollectionCmd(collectionID, articleID string) tea.Cmd {
	col := a.collections
	return func() tea.Msg {
		msg, err := col.RemoveArticle(context.Background(), collectionID, articleID)
		if err != nil {
			return mutationDoneMsg{err: err}
		}
		if msg == "" {
			msg = "Article removed from collection"
		}
		return mutationDoneMsg{notice: msg}
	}
}

func (a *App) saveSubscriptionCmd(categoryID, frequency string) tea.Cmd {
	subs := a.subs
	return func() tea.Msg {
		if err := subs.Save(context.Background(), categoryID, frequency); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{notice: "Subscription saved (" + frequency + ")"}
	}
}

func (a *App) deactivateSubscriptionCmd(categoryID string) tea.Cmd {
	subs := a.subs
	return func() tea.Msg {
		if err := subs.Deactivate(context.Background(), categoryID); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{notice: "Subscription deactivated"}
	}
}

func (a *App) openArticleCmd(article api.Article) tea.Cmd {
	views := a.views
	return func() tea.Msg {
		if views != nil && article.ID != "" {
			views.Record(article) // best effort
		}
		if err := browser.Open(article.URL); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

// --- update ---

func (a *App) selectedArticle() *api.Article {
	if len(a.articles) == 0 || a.artCursor >= len(a.articles) {
		return nil
	}
	return &a.articles[a.artCursor]
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error and notice on any keypress
		a.err = nil
		a.notice = ""
		return a.handleKey(msg)

	case categoriesLoadedMsg:
		a.categories = msg.categories
		if a.catIdx >= len(a.categories) {
			a.catIdx = 0
		}
		if len(a.categories) > 0 {
			return a, a.loadArticlesCmd()
		}
		return a, nil

	case articlesLoadedMsg:
		if msg.seq != a.articleLoads.seq {
			return a, nil
		}
		a.loadingArticles = false
		a.articles = msg.articles
		if a.artCursor >= len(a.articles) {
			a.artCursor = max(0, len(a.articles)-1)
		}
		a.detailScroll = 0
		return a, a.maybeFetchMembership()

	case collectionsSyncedMsg:
		// Collections state is read from the synchronizer at render
		// time; nothing to copy here.
		return a, nil

	case collectionArticlesMsg:
		if msg.seq != a.colArticleLoads.seq {
			return a, nil
		}
		a.loadingColArts = false
		a.colArticles = msg.articles
		if a.colArtCursor >= len(a.colArticles) {
			a.colArtCursor = max(0, len(a.colArticles)-1)
		}
		return a, nil

	case articleCollectionsMsg:
		if msg.seq != a.membershipLoads.seq {
			return a, nil
		}
		a.loadingInCols = false
		if art := a.selectedArticle(); art != nil && art.ID == msg.articleID {
			a.inCollections = msg.collections
		}
		return a, nil

	case authDoneMsg:
		a.frm.busy = false
		if msg.err != nil {
			a.frm.errText = msg.err.Error()
			return a, nil
		}
		a.mode = modeArticles
		if cred := a.sessions.Credential(); cred != nil && cred.User != nil {
			a.notice = "Signed in as " + cred.User.Username
		} else {
			a.notice = "Signed in"
		}
		return a, tea.Batch(a.syncCollectionsCmd(), a.maybeFetchMembership())

	case mutationDoneMsg:
		a.frm.busy = false
		if msg.err != nil {
			if a.mode == modeCreateCollection || a.mode == modeEditCollection {
				a.frm.errText = msg.err.Error()
			} else {
				a.err = msg.err
			}
			return a, nil
		}
		a.notice = msg.notice
		switch a.mode {
		case modeCreateCollection, modeEditCollection, modePickCollection, modeSubscribe:
			a.mode = a.returnMode()
		}
		if msg.closeDetail && a.mode == modeCollectionDetail {
			// Deleting the open collection cascades into closing its
			// detail view.
			a.mode = modeCollections
			a.openCollection = nil
			a.colArticles = nil
		}
		if a.openCollection != nil {
			a.colArticles = a.collections.CachedArticles(a.openCollection.ID)
			if a.colArtCursor >= len(a.colArticles) {
				a.colArtCursor = max(0, len(a.colArticles)-1)
			}
		}
		if a.colCursor >= len(a.collections.Collections()) {
			a.colCursor = max(0, len(a.collections.Collections())-1)
		}
		return a, nil

	case errMsg:
		switch msg.kind {
		case loadTopArticles:
			if msg.seq != a.articleLoads.seq {
				return a, nil
			}
			a.loadingArticles = false
		case loadMembership:
			if msg.seq != a.membershipLoads.seq {
				return a, nil
			}
			a.loadingInCols = false
		case loadCollectionArticles:
			if msg.seq != a.colArticleLoads.seq {
				return a, nil
			}
			a.loadingColArts = false
		}
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.loadingArticles || a.loadingColArts || a.frm.busy {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

// returnMode is where modal-ish modes fall back to when dismissed.
func (a *App) returnMode() mode {
	if a.openCollection != nil {
		return modeCollectionDetail
	}
	if a.mode == modeCreateCollection || a.mode == modeEditCollection {
		return modeCollections
	}
	return modeArticles
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Run starts the TUI.
func Run(opts Opts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// --- view ---

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  newsdesk")
	}

	switch a.mode {
	case modeLogin, modeRegister, modeCreateCollection, modeEditCollection:
		return a.centered(a.frm.view())
	case modePickCollection:
		return a.centered(renderCollectionPicker(a.pendingArticle, a.collections.Collections(), a.pickCursor, a.width))
	case modeSubscribe:
		return a.centered(a.renderSubscribeDialog())
	case modeHelp:
		return a.centered(a.renderHelp())
	case modeCollections:
		return a.renderCollectionsScreen()
	case modeCollectionDetail:
		return a.renderCollectionDetailScreen()
	}
	return a.renderArticlesScreen()
}

func (a *App) centered(card string) string {
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a *App) header() string {
	left := headerStyle.Render("newsdesk")
	account := "not signed in"
	if cred := a.sessions.Credential(); cred != nil {
		if cred.User != nil && cred.User.Username != "" {
			account = cred.User.Username
		} else {
			account = "signed in"
		}
	}
	right := headerUserStyle.Render(account)
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 0 {
		gap = 0
	}
	return left + fmt.Sprintf("%*s", gap, "") + right + " "
}

func (a *App) statusLeft() string {
	if a.err != nil {
		return errorStyle.Render(truncateStr(a.err.Error(), a.width-30))
	}
	if a.notice != "" {
		return noticeStyle.Render(truncateStr(a.notice, a.width-30))
	}
	left := fmt.Sprintf(" %d articles", len(a.articles))
	if a.loadingArticles {
		left = a.spinner.View() + left + " (loading...)"
	}
	return left
}

func (a *App) renderArticlesScreen() string {
	headerHeight := 1
	tabsHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - tabsHeight - statusHeight - 4 // borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	listWidth := int(float64(a.width) * 0.38)
	detailWidth := a.width - listWidth - 1

	tabs := renderCategoryTabs(a.categories, a.catIdx, a.width)

	innerListW := listWidth - 4
	listContent := renderArticleList(a.articles, a.artCursor, contentHeight, innerListW)
	var listPane string
	if a.focus == paneList {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	innerDetailW := detailWidth - 4
	detailContent := renderArticleDetail(a.selectedArticle(), a.inCollections, a.loadingInCols, innerDetailW, contentHeight, a.detailScroll)
	var detailPane string
	if a.focus == paneDetail {
		detailPane = detailPaneActiveStyle.Width(detailWidth - 2).Height(contentHeight).Render(detailContent)
	} else {
		detailPane = detailPaneStyle.Width(detailWidth - 2).Height(contentHeight).Render(detailContent)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)

	hints := "←/→ category  a collect  s subscribe  c collections  ? help  q quit"
	if !a.sessions.IsAuthenticated() {
		hints = "←/→ category  i sign in  I sign up  ? help  q quit"
	}
	status := renderStatusBar(a.statusLeft(), hints, a.width)

	return lipgloss.JoinVertical(lipgloss.Left, a.header(), tabs, content, status)
}

func (a *App) renderCollectionsScreen() string {
	contentHeight := a.height - 1 - 1 - 2 // header, status, borders
	if contentHeight < 3 {
		contentHeight = 3
	}
	state, stateErr := a.collections.State()
	list := renderCollectionList(state, stateErr, a.collections.Collections(), a.colCursor, contentHeight, a.width-6)
	pane := listPaneActiveStyle.Width(a.width - 2).Height(contentHeight).Render(list)

	status := renderStatusBar(a.statusLeft(), "enter view  n new  e edit  d delete  esc back  q quit", a.width)
	return lipgloss.JoinVertical(lipgloss.Left, a.header(), pane, status)
}

func (a *App) renderCollectionDetailScreen() string {
	contentHeight := a.height - 1 - 1 - 1 - 2
	if contentHeight < 3 {
		contentHeight = 3
	}
	name := ""
	if a.openCollection != nil {
		name = a.openCollection.Name
	}
	title := headerStyle.Render(name)
	var list string
	if a.loadingColArts {
		list = centerText("Loading...", a.width-6, contentHeight)
	} else if len(a.colArticles) == 0 {
		list = centerText("No articles in this collection", a.width-6, contentHeight)
	} else {
		list = renderArticleList(a.colArticles, a.colArtCursor, contentHeight, a.width-6)
	}
	pane := listPaneActiveStyle.Width(a.width - 2).Height(contentHeight).Render(list)

	status := renderStatusBar(a.statusLeft(), "o open  x remove  esc back  q quit", a.width)
	return lipgloss.JoinVertical(lipgloss.Left, a.header(), title, pane, status)
}

func (a *App) renderSubscribeDialog() string {
	freq := api.FrequencyDaily
	if a.subWeekly {
		freq = api.FrequencyWeekly
	}
	categoryName := ""
	if a.catIdx < len(a.categories) {
		categoryName = a.categories[a.catIdx].Name
	}
	body := formTitleStyle.Render("Subscribe to "+categoryName) + "\n\n" +
		formLabelStyle.Render("Email frequency") + "\n" +
		itemSelectedStyle.Render("< "+freq+" >") + "\n\n" +
		helpDimStyle.Render("←/→ frequency  enter save  x deactivate  esc cancel")
	return formCardStyle.Render(body)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("newsdesk")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Articles") + "\n" +
		"  j/k, ↑/↓     Navigate article list\n" +
		"  ←/→           Switch category\n" +
		"  tab           Switch focus between list and detail\n" +
		"  o, enter      Open article in browser\n" +
		"  a             Add article to a collection\n" +
		"  s             Subscribe to the current category\n" +
		"  x             Deactivate category subscription\n\n" +
		dim.Render("Collections") + "\n" +
		"  c             Open collections\n" +
		"  n / e / d     Create / edit / delete\n" +
		"  enter         View a collection's articles\n\n" +
		dim.Render("Account") + "\n" +
		"  i / I         Sign in / sign up\n" +
		"  X             Sign out\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	return helpCardStyle.Render(help)
}
