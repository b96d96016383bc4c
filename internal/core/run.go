package core

import "time"

// RunSummary aggregates the results of one wantlist scan.
type RunSummary struct {
	Results    []*LookupResult `json:"results"`
	Matched    []*LookupResult `json:"matched"`
	Failures   int             `json:"failures"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
}

// MatchedVersionCount returns the total number of qualifying versions
// across all matched results.
func (s *RunSummary) MatchedVersionCount() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, result := range s.Matched {
		if result == nil {
			continue
		}
		total += len(result.MatchingVersions)
	}
	return total
}
