package viewer

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

const (
	minWidth  = 60
	minHeight = 16
)

func isTooSmall(width, height int) bool {
	return width < minWidth || height < minHeight
}

func renderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(colorText).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			minWidth, minHeight, width, height,
		))
}

// renderHeader shows the report id on the left and the page on the right.
func renderHeader(reportID, title string, pageNum, pages, width int) string {
	left := titleStyle.Render("  " + reportID)
	center := bodyStyle.Render(title)
	right := footerStyle.Render(fmt.Sprintf("page %d of %d  ", pageNum, pages))

	inner := max(width-4, 0)
	leftGap := max((inner-lipgloss.Width(center))/2-lipgloss.Width(left), 1)
	rightGap := max(inner-lipgloss.Width(left)-leftGap-lipgloss.Width(center)-lipgloss.Width(right), 1)

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
	return barStyle.Width(width).Render(content)
}

func renderFooter(help string, width int) string {
	return barStyle.Width(width).Render("  " + help)
}

// renderFrame stacks header, content and footer to fill height.
func renderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Padding(0, 2).
		Render(content)
	return header + "\n" + body + "\n" + footer
}
