package core

import "time"

// LookupTarget identifies one wantlist release to triage.
// Parsed from a single input record and immutable afterwards.
type LookupTarget struct {
	ReleaseID int    `json:"release_id"`
	Artist    string `json:"artist"`
	Title     string `json:"title"`
}

// VersionCandidate is one pressing/edition of a master work that passed
// year resolution.
type VersionCandidate struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Year  int    `json:"year"`
	URL   string `json:"url"`
}

// Provenance captures metadata about how a lookup was resolved.
type Provenance struct {
	LookupID    string    `json:"lookup_id"`
	RequestedAt time.Time `json:"requested_at"`
	ResolvedAt  time.Time `json:"resolved_at"`
	Source      string    `json:"source"`
	Attempts    int       `json:"attempts"`
	ToolVersion string    `json:"tool_version,omitempty"`
}

// LookupResult reports the outcome for a single target. Terminal: never
// mutated after creation.
type LookupResult struct {
	ReleaseID        int                `json:"release_id"`
	Artist           string             `json:"artist,omitempty"`
	Title            string             `json:"title,omitempty"`
	Matched          bool               `json:"matched"`
	MatchingVersions []VersionCandidate `json:"matching_versions,omitempty"`
	MasterID         int                `json:"master_id,omitempty"`
	Message          string             `json:"message,omitempty"`
	Failed           bool               `json:"failed,omitempty"`
	Provenance       Provenance         `json:"provenance"`
}
