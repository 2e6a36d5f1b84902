package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ndhoang/newsdesk/internal/api"
	"github.com/ndhoang/newsdesk/internal/sync"
)

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeLogin, modeRegister, modeCreateCollection, modeEditCollection:
		return a.handleFormKey(msg)
	case modePickCollection:
		return a.handlePickKey(msg)
	case modeSubscribe:
		return a.handleSubscribeKey(msg)
	case modeCollections:
		return a.handleCollectionsKey(msg)
	case modeCollectionDetail:
		return a.handleCollectionDetailKey(msg)
	case modeHelp:
		switch msg.String() {
		case "?", "esc", "q":
			a.mode = modeArticles
		}
		return a, nil
	}
	return a.handleArticlesKey(msg)
}

func (a *App) handleArticlesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "?":
		a.mode = modeHelp
		return a, nil
	case "tab":
		if a.focus == paneList {
			a.focus = paneDetail
		} else {
			a.focus = paneList
		}
		return a, nil
	case "j", "down":
		if a.focus == paneList && a.artCursor < len(a.articles)-1 {
			a.artCursor++
			a.detailScroll = 0
			return a, a.maybeFetchMembership()
		} else if a.focus == paneDetail {
			a.detailScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == paneList && a.artCursor > 0 {
			a.artCursor--
			a.detailScroll = 0
			return a, a.maybeFetchMembership()
		} else if a.focus == paneDetail && a.detailScroll > 0 {
			a.detailScroll--
		}
		return a, nil
	case "left", "h":
		if a.catIdx > 0 {
			a.catIdx--
			a.artCursor = 0
			return a, a.loadArticlesCmd()
		}
		return a, nil
	case "right", "l":
		if a.catIdx < len(a.categories)-1 {
			a.catIdx++
			a.artCursor = 0
			return a, a.loadArticlesCmd()
		}
		return a, nil
	case "o", "enter":
		if art := a.selectedArticle(); art != nil && art.URL != "" {
			return a, a.openArticleCmd(*art)
		}
		return a, nil
	case "r":
		return a, a.loadArticlesCmd()
	case "a":
		art := a.selectedArticle()
		if art == nil {
			return a, nil
		}
		if !a.sessions.IsAuthenticated() {
			a.frm = newLoginForm()
			a.mode = modeLogin
			return a, nil
		}
		copied := *art
		a.pendingArticle = &copied
		a.pickCursor = 0
		a.mode = modePickCollection
		return a, nil
	case "s":
		if a.catIdx >= len(a.categories) {
			return a, nil
		}
		if !a.sessions.IsAuthenticated() {
			a.frm = newLoginForm()
			a.mode = modeLogin
			return a, nil
		}
		a.subWeekly = false
		a.mode = modeSubscribe
		return a, nil
	case "x":
		if a.catIdx < len(a.categories) && a.sessions.IsAuthenticated() {
			return a, a.deactivateSubscriptionCmd(a.categories[a.catIdx].ID)
		}
		return a, nil
	case "c":
		if !a.sessions.IsAuthenticated() {
			a.frm = newLoginForm()
			a.mode = modeLogin
			return a, nil
		}
		a.mode = modeCollections
		state, _ := a.collections.State()
		if state == sync.StateUnloaded || state == sync.StateFailed {
			return a, a.syncCollectionsCmd()
		}
		return a, nil
	case "i":
		if !a.sessions.IsAuthenticated() {
			a.frm = newLoginForm()
			a.mode = modeLogin
		}
		return a, nil
	case "I":
		if !a.sessions.IsAuthenticated() {
			a.frm = newRegisterForm()
			a.mode = modeRegister
		}
		return a, nil
	case "X":
		if a.sessions.IsAuthenticated() {
			a.cancelAllLoads()
			a.sessions.Clear()
			a.collections.Reset()
			a.inCollections = nil
			a.openCollection = nil
			a.colArticles = nil
			a.notice = "Signed out"
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleCollectionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	collections := a.collections.Collections()
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "esc", "b":
		a.mode = modeArticles
		return a, nil
	case "j", "down":
		if a.colCursor < len(collections)-1 {
			a.colCursor++
		}
		return a, nil
	case "k", "up":
		if a.colCursor > 0 {
			a.colCursor--
		}
		return a, nil
	case "r":
		return a, a.syncCollectionsCmd()
	case "enter":
		if a.colCursor < len(collections) {
			c := collections[a.colCursor]
			a.openCollection = &c
			a.collections.OpenDetail(c.ID)
			a.colArtCursor = 0
			a.mode = modeCollectionDetail
			return a, a.loadCollectionArticlesCmd(c.ID)
		}
		return a, nil
	case "n":
		a.frm = newCollectionForm(formCreateCollection, "Create collection", "", "", "")
		a.mode = modeCreateCollection
		return a, nil
	case "e":
		if a.colCursor < len(collections) {
			c := collections[a.colCursor]
			a.frm = newCollectionForm(formEditCollection, "Edit collection", c.Name, c.Description, c.ID)
			a.mode = modeEditCollection
		}
		return a, nil
	case "d":
		if a.colCursor < len(collections) {
			return a, a.deleteCollectionCmd(collections[a.colCursor].ID)
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleCollectionDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "esc", "b":
		a.colArticleLoads.stop()
		a.loadingColArts = false
		a.collections.CloseDetail()
		a.openCollection = nil
		a.colArticles = nil
		a.mode = modeCollections
		return a, nil
	case "j", "down":
		if a.colArtCursor < len(a.colArticles)-1 {
			a.colArtCursor++
		}
		return a, nil
	case "k", "up":
		if a.colArtCursor > 0 {
			a.colArtCursor--
		}
		return a, nil
	case "o", "enter":
		if a.colArtCursor < len(a.colArticles) {
			art := a.colArticles[a.colArtCursor]
			if art.URL != "" {
				return a, a.openArticleCmd(art)
			}
		}
		return a, nil
	case "x", "d":
		if a.openCollection != nil && a.colArtCursor < len(a.colArticles) {
			return a, a.removeFromCollectionCmd(a.openCollection.ID, a.colArticles[a.colArtCursor].ID)
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handlePickKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	collections := a.collections.Collections()
	switch msg.String() {
	case "esc":
		a.pendingArticle = nil
		a.mode = modeArticles
		return a, nil
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.pickCursor < len(collections)-1 {
			a.pickCursor++
		}
		return a, nil
	case "k", "up":
		if a.pickCursor > 0 {
			a.pickCursor--
		}
		return a, nil
	case "n":
		a.frm = newCollectionForm(formCreateCollection, "Create collection", "", "", "")
		a.mode = modeCreateCollection
		return a, nil
	case "enter":
		if a.pendingArticle != nil && a.pickCursor < len(collections) {
			art := *a.pendingArticle
			a.pendingArticle = nil
			id := collections[a.pickCursor].ID
			a.mode = modeArticles
			return a, a.addToCollectionCmd(id, art)
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleSubscribeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeArticles
		return a, nil
	case "q":
		return a, tea.Quit
	case "left", "right", "h", "l", "j", "k":
		a.subWeekly = !a.subWeekly
		return a, nil
	case "x":
		a.mode = modeArticles
		return a, a.deactivateSubscriptionCmd(a.categories[a.catIdx].ID)
	case "enter":
		freq := api.FrequencyDaily
		if a.subWeekly {
			freq = api.FrequencyWeekly
		}
		return a, a.saveSubscriptionCmd(a.categories[a.catIdx].ID, freq)
	}
	return a, nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.frm.busy {
		return a, nil
	}
	switch msg.String() {
	case "esc":
		a.mode = a.returnMode()
		return a, nil
	case "tab", "down":
		a.frm.nextField()
		return a, nil
	case "shift+tab", "up":
		a.frm.prevField()
		return a, nil
	case "enter":
		return a.submitForm()
	}
	cmd := a.frm.update(msg)
	return a, cmd
}

func (a *App) submitForm() (tea.Model, tea.Cmd) {
	f := &a.frm
	f.errText = ""
	switch f.kind {
	case formLogin:
		if f.value(0) == "" || f.value(1) == "" {
			f.errText = "username and password are required"
			return a, nil
		}
		f.busy = true
		return a, tea.Batch(a.loginCmd(f.value(0), f.value(1)), a.spinner.Tick)
	case formRegister:
		if f.value(2) == "" || f.value(3) == "" || f.value(4) == "" {
			f.errText = "username, email and password are required"
			return a, nil
		}
		f.busy = true
		return a, tea.Batch(a.registerCmd(api.RegisterRequest{
			FirstName: f.value(0),
			LastName:  f.value(1),
			Username:  f.value(2),
			Email:     f.value(3),
			Password:  f.value(4),
		}), a.spinner.Tick)
	case formCreateCollection:
		if f.value(0) == "" {
			f.errText = "name is required"
			return a, nil
		}
		f.busy = true
		return a, tea.Batch(a.createCollectionCmd(f.value(0), f.value(1)), a.spinner.Tick)
	case formEditCollection:
		if f.value(0) == "" {
			f.errText = "name is required"
			return a, nil
		}
		f.busy = true
		return a, tea.Batch(a.updateCollectionCmd(f.targetID, f.value(0), f.value(1)), a.spinner.Tick)
	}
	return a, nil
}
