package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/reissuelens/reissuelens/internal/core"
)

// Format represents an output format for the scan summary.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formatter renders a scan summary.
type Formatter interface {
	FormatRun(summary *core.RunSummary, matchedOnly bool) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatMarkdown):
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

// visibleResults applies the matched-only filter.
func visibleResults(summary *core.RunSummary, matchedOnly bool) []*core.LookupResult {
	if summary == nil {
		return nil
	}
	if matchedOnly {
		return summary.Matched
	}
	return summary.Results
}

func statusLabel(result *core.LookupResult) string {
	switch {
	case result == nil:
		return ""
	case result.Failed:
		return "error"
	case result.Matched:
		return "reissued"
	default:
		return "none"
	}
}

func newestYear(result *core.LookupResult) string {
	if result == nil || len(result.MatchingVersions) == 0 {
		return ""
	}
	newest := 0
	for _, candidate := range result.MatchingVersions {
		if candidate.Year > newest {
			newest = candidate.Year
		}
	}
	return fmt.Sprintf("%d", newest)
}

func notesLabel(result *core.LookupResult) string {
	if result == nil {
		return ""
	}
	if result.Matched {
		return fmt.Sprintf("%d qualifying version(s)", len(result.MatchingVersions))
	}
	return result.Message
}

func marshalSummary(summary *core.RunSummary, matchedOnly bool, indent bool) (string, error) {
	payload := summary
	if matchedOnly && summary != nil {
		payload = &core.RunSummary{
			Results:    summary.Matched,
			Matched:    summary.Matched,
			Failures:   summary.Failures,
			StartedAt:  summary.StartedAt,
			FinishedAt: summary.FinishedAt,
		}
	}

	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(payload, "", "  ")
	} else {
		data, err = json.Marshal(payload)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
