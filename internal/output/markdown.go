package output

import (
	"fmt"
	"strings"

	"github.com/reissuelens/reissuelens/internal/core"
)

// MarkdownFormatter renders the scan summary as a markdown table.
type MarkdownFormatter struct{}

// FormatRun renders one scan summary as Markdown.
func (f *MarkdownFormatter) FormatRun(summary *core.RunSummary, matchedOnly bool) (string, error) {
	if summary == nil {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("## Reissue scan\n\n")
	sb.WriteString("| Release | Artist | Title | Status | Newest | Notes |\n")
	sb.WriteString("|---------|--------|-------|--------|--------|-------|\n")

	for _, result := range visibleResults(summary, matchedOnly) {
		if result == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %s |\n",
			result.ReleaseID,
			escapeMarkdownCell(result.Artist),
			escapeMarkdownCell(result.Title),
			escapeMarkdownCell(statusLabel(result)),
			escapeMarkdownCell(newestYear(result)),
			escapeMarkdownCell(notesLabel(result)),
		))
	}

	sb.WriteString(fmt.Sprintf("\n**Reissued**: %d/%d", len(summary.Matched), len(summary.Results)))
	if summary.Failures > 0 {
		sb.WriteString(fmt.Sprintf(", %d failed", summary.Failures))
	}
	sb.WriteString("\n")

	return sb.String(), nil
}

func escapeMarkdownCell(value string) string {
	return strings.ReplaceAll(value, "|", "\\|")
}
