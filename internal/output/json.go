package output

import (
	"github.com/reissuelens/reissuelens/internal/core"
)

// JSONFormatter renders the scan summary as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatRun renders one scan summary as JSON.
func (f *JSONFormatter) FormatRun(summary *core.RunSummary, matchedOnly bool) (string, error) {
	if summary == nil {
		return "", nil
	}
	return marshalSummary(summary, matchedOnly, f.Indent)
}
