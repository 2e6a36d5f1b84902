package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/ndhoang/newsdesk/internal/api"
)

// renderCategoryTabs draws the category strip. The selected tab is
// highlighted; the cursor marks the tab under keyboard focus while
// switching.
func renderCategoryTabs(categories []api.Category, selected int, width int) string {
	if len(categories) == 0 {
		return helpDimStyle.Render(" no categories")
	}

	sep := tabSeparatorStyle.Render(" · ")
	var parts []string
	for i, cat := range categories {
		style := tabInactiveStyle
		if i == selected {
			style = tabActiveStyle
		}
		parts = append(parts, style.Render(cat.Name))
	}

	// Build row with · separators, stopping when we'd exceed width
	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorTabBg).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}
