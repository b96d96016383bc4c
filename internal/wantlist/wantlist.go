// Package wantlist parses delimited wantlist exports into lookup targets.
package wantlist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"

	"github.com/reissuelens/reissuelens/internal/core"
)

// DefaultPlaceholder fills missing artist/title columns.
const DefaultPlaceholder = "Unknown"

const releaseIDColumn = "release_id"

// Reader parses wantlist CSV files.
type Reader struct {
	Placeholder string
	Logger      *logging.Logger
}

// ReadFile parses the wantlist at path. A missing file or missing header is
// an error; individual rows with malformed or non-positive release ids are
// skipped silently.
func (r *Reader) ReadFile(path string) ([]core.LookupTarget, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close() // nolint:errcheck // best-effort cleanup on read-only file

	return r.Parse(file)
}

// Parse parses wantlist rows from reader.
func (r *Reader) Parse(reader io.Reader) ([]core.LookupTarget, error) {
	records := csv.NewReader(reader)
	records.FieldsPerRecord = -1
	records.TrimLeadingSpace = true

	header, err := records.Read()
	if err == io.EOF {
		return nil, errors.New("wantlist is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read wantlist header: %w", err)
	}

	idCol, artistCol, titleCol := headerColumns(header)
	if idCol < 0 {
		return nil, fmt.Errorf("wantlist header is missing the %q column", releaseIDColumn)
	}

	placeholder := r.placeholder()
	targets := make([]core.LookupTarget, 0)
	line := 1
	for {
		record, err := records.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read wantlist row %d: %w", line, err)
		}

		id := parseReleaseID(record, idCol)
		if id <= 0 {
			if r.Logger != nil {
				r.Logger.Debug("Skipping wantlist row without a usable release id",
					zap.Int("line", line),
				)
			}
			continue
		}

		targets = append(targets, core.LookupTarget{
			ReleaseID: id,
			Artist:    column(record, artistCol, placeholder),
			Title:     column(record, titleCol, placeholder),
		})
	}

	return targets, nil
}

func (r *Reader) placeholder() string {
	if r != nil && strings.TrimSpace(r.Placeholder) != "" {
		return r.Placeholder
	}
	return DefaultPlaceholder
}

func headerColumns(header []string) (idCol, artistCol, titleCol int) {
	idCol, artistCol, titleCol = -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case releaseIDColumn:
			idCol = i
		case "artist":
			artistCol = i
		case "title":
			titleCol = i
		}
	}
	return idCol, artistCol, titleCol
}

func parseReleaseID(record []string, col int) int {
	if col < 0 || col >= len(record) {
		return 0
	}
	id, err := strconv.Atoi(strings.TrimSpace(record[col]))
	if err != nil {
		return 0
	}
	return id
}

func column(record []string, col int, placeholder string) string {
	if col < 0 || col >= len(record) {
		return placeholder
	}
	value := strings.TrimSpace(record[col])
	if value == "" {
		return placeholder
	}
	return value
}
