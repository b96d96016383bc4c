package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reissuelens/reissuelens/internal/core"
)

func TestReportWrite(t *testing.T) {
	dir := t.TempDir()
	report := &Report{
		Dir:    dir,
		Prefix: "reissues",
		Clock: func() time.Time {
			return time.Date(2026, 8, 1, 12, 30, 45, 0, time.UTC)
		},
	}

	matched := []*core.LookupResult{
		{
			ReleaseID: 111,
			Artist:    "Low",
			Title:     "Things We Lost in the Fire",
			Matched:   true,
			MatchingVersions: []core.VersionCandidate{
				{ID: 9, Title: "Reissue", Year: 2016, URL: "https://www.discogs.com/release/9"},
				{ID: 12, Title: "2020 remaster", Year: 2020, URL: "https://www.discogs.com/release/12"},
			},
		},
	}

	path, err := report.Write(matched)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "reissues-20260801-123045.csv"), path)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close() // nolint:errcheck

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, reportHeader, records[0])
	require.Equal(t, []string{"Low", "Things We Lost in the Fire", "111", "2016", "Reissue", "9", "https://www.discogs.com/release/9"}, records[1])
	require.Equal(t, "12", records[2][5])
}

func TestReportSkippedWhenNothingMatched(t *testing.T) {
	dir := t.TempDir()
	report := &Report{Dir: dir, Prefix: "reissues"}

	path, err := report.Write(nil)
	require.NoError(t, err)
	require.Empty(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestReportEscapingRoundTrips(t *testing.T) {
	dir := t.TempDir()
	report := &Report{Dir: dir}

	tricky := "Quote \"Unquote\", Band\nSecond Line"
	matched := []*core.LookupResult{
		{
			ReleaseID: 1,
			Artist:    tricky,
			Title:     "A,B",
			Matched:   true,
			MatchingVersions: []core.VersionCandidate{
				{ID: 2, Title: "Re\"issue", Year: 2018, URL: "https://www.discogs.com/release/2"},
			},
		},
	}

	path, err := report.Write(matched)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Internal quotes are doubled inside a quoted field.
	require.Contains(t, string(data), `"Quote ""Unquote"", Band`)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close() // nolint:errcheck

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, tricky, records[1][0])
	require.Equal(t, "A,B", records[1][1])
	require.Equal(t, `Re"issue`, records[1][4])
}

func TestRowsExpandPerCandidate(t *testing.T) {
	results := []*core.LookupResult{
		{ReleaseID: 1, Matched: true, MatchingVersions: []core.VersionCandidate{{ID: 2}, {ID: 3}}},
		{ReleaseID: 4},
		nil,
	}

	rows := Rows(results)
	require.Len(t, rows, 2)
}
