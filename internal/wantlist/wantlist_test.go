package wantlist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseWantlist(t *testing.T) {
	input := strings.Join([]string{
		"Artist,Title,release_id",
		"Low,Things We Lost in the Fire,111",
		"Neutral Milk Hotel,In the Aeroplane Over the Sea,222",
	}, "\n")

	reader := &Reader{}
	targets, err := reader.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, targets, 2)
	require.Equal(t, 111, targets[0].ReleaseID)
	require.Equal(t, "Low", targets[0].Artist)
	require.Equal(t, "In the Aeroplane Over the Sea", targets[1].Title)
}

func TestParseDefaultsMissingColumns(t *testing.T) {
	input := "release_id\n111\n"

	reader := &Reader{}
	targets, err := reader.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, targets, 1)
	require.Equal(t, "Unknown", targets[0].Artist)
	require.Equal(t, "Unknown", targets[0].Title)
}

func TestParseDefaultsEmptyValues(t *testing.T) {
	input := "Artist,Title,release_id\n,,111\n"

	reader := &Reader{Placeholder: "N/A"}
	targets, err := reader.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, targets, 1)
	require.Equal(t, "N/A", targets[0].Artist)
	require.Equal(t, "N/A", targets[0].Title)
}

func TestParseSkipsMalformedReleaseIDs(t *testing.T) {
	input := strings.Join([]string{
		"Artist,Title,release_id",
		"Low,Valid,111",
		"Bad,NotANumber,abc",
		"Bad,Zero,0",
		"Bad,Negative,-5",
		"Bad,Missing,",
	}, "\n")

	reader := &Reader{}
	targets, err := reader.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, targets, 1)
	require.Equal(t, 111, targets[0].ReleaseID)
}

func TestParseHeaderCaseInsensitive(t *testing.T) {
	input := "ARTIST,TITLE,Release_ID\nLow,Double Negative,333\n"

	reader := &Reader{}
	targets, err := reader.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, targets, 1)
	require.Equal(t, "Low", targets[0].Artist)
}

func TestParseQuotedFields(t *testing.T) {
	input := "Artist,Title,release_id\n\"Earth, Wind & Fire\",\"That's the Way of the World\",444\n"

	reader := &Reader{}
	targets, err := reader.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, targets, 1)
	require.Equal(t, "Earth, Wind & Fire", targets[0].Artist)
}

func TestParseMissingReleaseIDColumn(t *testing.T) {
	input := "Artist,Title\nLow,Secret Name\n"

	reader := &Reader{}
	_, err := reader.Parse(strings.NewReader(input))
	require.Error(t, err)
	require.Contains(t, err.Error(), "release_id")
}

func TestParseEmptyInput(t *testing.T) {
	reader := &Reader{}
	_, err := reader.Parse(strings.NewReader(""))
	require.Error(t, err)
}

func TestReadFileMissing(t *testing.T) {
	reader := &Reader{}
	_, err := reader.ReadFile("testdata/does-not-exist.csv")
	require.Error(t, err)
}
