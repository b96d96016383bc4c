package output

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/reissuelens/reissuelens/internal/core"
)

// TableFormatter renders the scan summary as an ASCII table.
type TableFormatter struct{}

// FormatRun renders one scan summary as a table.
func (f *TableFormatter) FormatRun(summary *core.RunSummary, matchedOnly bool) (string, error) {
	if summary == nil {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Release", "Artist", "Title", "Status", "Newest", "Notes"})

	for _, result := range visibleResults(summary, matchedOnly) {
		if result == nil {
			continue
		}
		t.AppendRow(table.Row{
			result.ReleaseID,
			result.Artist,
			result.Title,
			statusLabel(result),
			newestYear(result),
			notesLabel(result),
		})
	}

	footer := fmt.Sprintf("%d/%d reissued", len(summary.Matched), len(summary.Results))
	if summary.Failures > 0 {
		footer += fmt.Sprintf(", %d failed", summary.Failures)
	}
	t.AppendFooter(table.Row{"", "", "", footer, "", ""})

	return t.Render(), nil
}
