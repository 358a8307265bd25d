package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

func renderSummary(runID string, r ExtractionResult) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("vocabgen · %s", r.Mode)))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("run %s · %s", runID, r.Duration.Round(time.Millisecond))))
	b.WriteString("\n\n")

	graphSource := warnStyle.Render("rebuilt")
	if r.CacheHit {
		graphSource = successStyle.Render("cached")
	}
	b.WriteString(fmt.Sprintf("  Hierarchy graph: %d nodes, %d edges (%s, %s)\n",
		r.GraphNodes, r.GraphEdges, graphSource, r.CachePath))
	b.WriteString(fmt.Sprintf("  Descendants of roots: %d\n", r.Descendants))
	b.WriteString(fmt.Sprintf("  Terms emitted: %s\n", successStyle.Render(fmt.Sprintf("%d", r.Emitted))))
	b.WriteString(fmt.Sprintf("  Output: %s\n", r.OutputPath))

	return b.String()
}
