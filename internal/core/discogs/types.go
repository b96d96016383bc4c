package discogs

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
)

var yearPattern = regexp.MustCompile(`\b(\d{4})\b`)

// Year accepts the catalog's loose year encoding: a JSON number, a numeric
// string, or null. Anything else resolves to zero.
type Year int

// UnmarshalJSON implements json.Unmarshaler.
func (y *Year) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*y = 0
		return nil
	}

	if trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		if parsed, err := strconv.Atoi(value); err == nil {
			*y = Year(parsed)
		} else {
			*y = 0
		}
		return nil
	}

	var value int
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return err
	}
	*y = Year(value)
	return nil
}

// Release is the catalog's release record, reduced to the fields the
// pipeline consumes. MasterID is zero when the release has no master work.
type Release struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	MasterID int    `json:"master_id"`

	// RateRemaining carries the service's reported remaining request
	// budget, or -1 when the response did not include one.
	RateRemaining int `json:"-"`
}

// Version is one pressing/edition of a master work.
type Version struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Year     Year   `json:"year"`
	Released string `json:"released"`
}

// ResolvedYear resolves the edition year once, at ingestion: the numeric
// year field wins, then a 4-digit pattern in the free-form released date.
// Returns zero when neither yields a year.
func (v Version) ResolvedYear() int {
	if v.Year > 0 {
		return int(v.Year)
	}
	if match := yearPattern.FindString(v.Released); match != "" {
		if parsed, err := strconv.Atoi(match); err == nil {
			return parsed
		}
	}
	return 0
}

// VersionsPage is the catalog's master-versions listing.
type VersionsPage struct {
	Versions []Version `json:"versions"`

	// RateRemaining mirrors Release.RateRemaining.
	RateRemaining int `json:"-"`
}
