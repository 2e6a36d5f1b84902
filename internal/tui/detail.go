package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ndhoang/newsdesk/internal/api"
)

// renderArticleDetail draws the right-hand pane: the selected article
// plus, for authenticated users, which of their collections already
// contain it.
func renderArticleDetail(article *api.Article, inCollections []api.Collection, loadingCols bool, width, height, scroll int) string {
	if article == nil {
		return centerText("Select an article", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := detailTitleStyle.Width(contentWidth).Render(article.Headline)
	source := detailSourceStyle.Render(
		fmt.Sprintf("%s · %s", article.Source, article.PublicationDate.Format("Jan 2, 2006 15:04")),
	)

	summary := article.Summary
	if summary == "" {
		summary = "(No summary available)"
	}
	body := detailBodyStyle.Width(contentWidth).Render(wrapText(summary, contentWidth))

	sections := []string{title, source, "", body}

	if article.URL != "" {
		sections = append(sections, "", detailLinkStyle.Width(contentWidth).Render("Read more: "+article.URL))
	}

	switch {
	case loadingCols:
		sections = append(sections, "", helpDimStyle.Render("Loading collections..."))
	case len(inCollections) > 0:
		names := make([]string, len(inCollections))
		for i, c := range inCollections {
			names[i] = c.Name
		}
		sections = append(sections, "",
			helpDimStyle.Render("In your collections: ")+noticeStyle.Render(strings.Join(names, ", ")))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Apply scroll offset
	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	// Pad to fill height
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}
