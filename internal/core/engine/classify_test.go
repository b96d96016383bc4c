package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reissuelens/reissuelens/internal/core/discogs"
)

func TestClassifyThresholdInclusive(t *testing.T) {
	versions := []discogs.Version{
		{ID: 1, Title: "Original", Year: 2014},
		{ID: 2, Title: "Anniversary", Year: 2015},
		{ID: 3, Title: "Repress", Year: 2016},
	}

	candidates := Classify(versions, 2015, "https://www.discogs.com/release")
	require.Len(t, candidates, 2)
	require.Equal(t, 2, candidates[0].ID)
	require.Equal(t, 2015, candidates[0].Year)
	require.Equal(t, 3, candidates[1].ID)
}

func TestClassifyResolvesYearFromReleasedDate(t *testing.T) {
	versions := []discogs.Version{
		{ID: 7, Title: "Deluxe", Released: "2016-03-01"},
	}

	candidates := Classify(versions, 2015, "https://www.discogs.com/release/")
	require.Len(t, candidates, 1)
	require.Equal(t, 2016, candidates[0].Year)
	require.Equal(t, "https://www.discogs.com/release/7", candidates[0].URL)
}

func TestClassifyExcludesUnresolvableYears(t *testing.T) {
	versions := []discogs.Version{
		{ID: 8, Title: "Bootleg", Released: "unknown"},
		{ID: 9, Title: "Reissue", Year: 2020},
	}

	candidates := Classify(versions, 2015, "https://www.discogs.com/release")
	require.Len(t, candidates, 1)
	require.Equal(t, 9, candidates[0].ID)
}

func TestClassifyEmptyInput(t *testing.T) {
	require.Empty(t, Classify(nil, 2015, "https://www.discogs.com/release"))
}
