package tui

import (
	"strings"

	"github.com/ndhoang/newsdesk/internal/api"
	"github.com/ndhoang/newsdesk/internal/sync"
)

func renderCollectionItem(c api.Collection, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(c.Name, width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(c.Name, width-4))
	}

	desc := c.Description
	if desc == "" {
		desc = "(no description)"
	}
	meta := "  " + itemTimeStyle.Render(truncateStr(desc, width-20)+" · "+relativeTime(c.CreatedAt))

	return title + "\n" + meta
}

func renderCollectionList(state sync.State, stateErr error, collections []api.Collection, cursor int, height, width int) string {
	switch state {
	case sync.StateUnloaded, sync.StateLoading:
		return centerText("Loading collections...", width, height)
	case sync.StateFailed:
		msg := "Failed to load collections"
		if stateErr != nil {
			msg = stateErr.Error()
		}
		return centerText(truncateStr(msg, width-2), width, height)
	}
	if len(collections) == 0 {
		return centerText("No collections yet — press n to create one", width, height)
	}

	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(collections) {
		end = len(collections)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderCollectionItem(collections[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderCollectionPicker is the "add to collection" chooser shown over
// the article view.
func renderCollectionPicker(article *api.Article, collections []api.Collection, cursor int, width int) string {
	var b strings.Builder
	b.WriteString(formTitleStyle.Render("Add to collection"))
	b.WriteString("\n")
	if article != nil {
		b.WriteString(helpDimStyle.Render(truncateStr(article.Headline, width-8)))
	}
	b.WriteString("\n\n")

	if len(collections) == 0 {
		b.WriteString("No collections found.\n")
		b.WriteString(helpDimStyle.Render("n create a collection  esc cancel"))
		return formCardStyle.Render(b.String())
	}

	for i, c := range collections {
		if i == cursor {
			b.WriteString(itemSelectedStyle.Render("> " + c.Name))
		} else {
			b.WriteString("  " + c.Name)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpDimStyle.Render("enter add  n new collection  esc cancel"))
	return formCardStyle.Render(b.String())
}
