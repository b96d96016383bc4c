package engine

import (
	"fmt"
	"strings"

	"github.com/reissuelens/reissuelens/internal/core"
	"github.com/reissuelens/reissuelens/internal/core/discogs"
)

// Classify filters a master's version list down to the editions published on
// or after the threshold year (inclusive). Versions whose year cannot be
// resolved are excluded rather than reported with a fabricated year.
func Classify(versions []discogs.Version, thresholdYear int, releaseURLBase string) []core.VersionCandidate {
	base := strings.TrimSuffix(releaseURLBase, "/")

	candidates := make([]core.VersionCandidate, 0)
	for _, version := range versions {
		year := version.ResolvedYear()
		if year == 0 || year < thresholdYear {
			continue
		}
		candidates = append(candidates, core.VersionCandidate{
			ID:    version.ID,
			Title: version.Title,
			Year:  year,
			URL:   fmt.Sprintf("%s/%d", base, version.ID),
		})
	}
	return candidates
}
