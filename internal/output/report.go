package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/reissuelens/reissuelens/internal/core"
)

// reportHeader labels the columns of the CSV artifact.
var reportHeader = []string{
	"Artist",
	"Title",
	"Release ID",
	"Version Year",
	"Version Title",
	"Version ID",
	"Version URL",
}

// Report writes the one persisted artifact of a scan: a timestamped CSV
// with a row per (matched release, qualifying version) pair.
type Report struct {
	Dir    string
	Prefix string
	Clock  func() time.Time
}

// Write serializes the matched results. Returns the written path, or ""
// when no result matched (no file is created in that case).
func (r *Report) Write(matched []*core.LookupResult) (string, error) {
	rows := Rows(matched)
	if len(rows) == 0 {
		return "", nil
	}

	path := r.path()
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(reportHeader); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("write report header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("write report rows: %w", err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	return path, nil
}

// Rows expands results into output records, one per qualifying version.
// Results with zero qualifying versions contribute no rows.
func Rows(results []*core.LookupResult) [][]string {
	rows := make([][]string, 0)
	for _, result := range results {
		if result == nil {
			continue
		}
		for _, candidate := range result.MatchingVersions {
			rows = append(rows, []string{
				result.Artist,
				result.Title,
				strconv.Itoa(result.ReleaseID),
				strconv.Itoa(candidate.Year),
				candidate.Title,
				strconv.Itoa(candidate.ID),
				candidate.URL,
			})
		}
	}
	return rows
}

func (r *Report) path() string {
	prefix := r.Prefix
	if prefix == "" {
		prefix = "reissues"
	}
	name := fmt.Sprintf("%s-%s.csv", prefix, r.now().Format("20060102-150405"))
	if r.Dir == "" {
		return name
	}
	return filepath.Join(r.Dir, name)
}

func (r *Report) now() time.Time {
	if r != nil && r.Clock != nil {
		return r.Clock()
	}
	return time.Now().UTC()
}
