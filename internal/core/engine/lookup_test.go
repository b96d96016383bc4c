package engine

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reissuelens/reissuelens/internal/core"
	"github.com/reissuelens/reissuelens/internal/core/discogs"
)

type stubSource struct {
	releases    map[int]*discogs.Release
	versions    map[int]*discogs.VersionsPage
	releaseErrs []error
	versionErrs []error

	releaseCalls int
	versionCalls int
}

func (s *stubSource) Release(ctx context.Context, id int) (*discogs.Release, error) {
	s.releaseCalls++
	if len(s.releaseErrs) > 0 {
		err := s.releaseErrs[0]
		s.releaseErrs = s.releaseErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	release, ok := s.releases[id]
	if !ok {
		return nil, &discogs.StatusError{StatusCode: http.StatusNotFound}
	}
	return release, nil
}

func (s *stubSource) MasterVersions(ctx context.Context, masterID int) (*discogs.VersionsPage, error) {
	s.versionCalls++
	if len(s.versionErrs) > 0 {
		err := s.versionErrs[0]
		s.versionErrs = s.versionErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	page, ok := s.versions[masterID]
	if !ok {
		return nil, &discogs.StatusError{StatusCode: http.StatusNotFound}
	}
	return page, nil
}

func newTestLookup(source Source) (*Lookup, *[]time.Duration) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	slept := &[]time.Duration{}

	window := &Window{
		Duration:      time.Minute,
		LowWater:      2,
		Buffer:        time.Second,
		FallbackDelay: 5 * time.Second,
		Clock:         func() time.Time { return now },
		Sleep: func(ctx context.Context, d time.Duration) error {
			return nil
		},
	}

	lookup := &Lookup{
		Source:         source,
		Window:         window,
		MaxRequests:    60,
		MaxRetries:     3,
		BaseDelay:      2 * time.Second,
		ThresholdYear:  2015,
		ReleaseURLBase: "https://www.discogs.com/release",
		Clock:          func() time.Time { return now },
		Sleep: func(ctx context.Context, d time.Duration) error {
			*slept = append(*slept, d)
			return nil
		},
	}
	return lookup, slept
}

func reissueStub() *stubSource {
	return &stubSource{
		releases: map[int]*discogs.Release{
			111: {ID: 111, MasterID: 500, RateRemaining: -1},
			222: {ID: 222, MasterID: 0, RateRemaining: -1},
		},
		versions: map[int]*discogs.VersionsPage{
			500: {
				Versions: []discogs.Version{
					{ID: 4, Title: "First pressing", Year: 2010},
					{ID: 9, Title: "Reissue", Year: 2016},
				},
				RateRemaining: -1,
			},
		},
	}
}

func TestLookupMatchesReissue(t *testing.T) {
	lookup, slept := newTestLookup(reissueStub())

	target := core.LookupTarget{ReleaseID: 111, Artist: "Low", Title: "Things We Lost in the Fire"}
	result := lookup.Check(context.Background(), target)

	require.True(t, result.Matched)
	require.False(t, result.Failed)
	require.Equal(t, 111, result.ReleaseID)
	require.Equal(t, 500, result.MasterID)
	require.Len(t, result.MatchingVersions, 1)
	require.Equal(t, 9, result.MatchingVersions[0].ID)
	require.Equal(t, 2016, result.MatchingVersions[0].Year)
	require.Equal(t, "https://www.discogs.com/release/9", result.MatchingVersions[0].URL)
	require.Empty(t, *slept)
	require.Equal(t, 2, result.Provenance.Attempts)
	require.NotEmpty(t, result.Provenance.LookupID)
}

func TestLookupNoMasterIsNormal(t *testing.T) {
	source := reissueStub()
	lookup, _ := newTestLookup(source)

	result := lookup.Check(context.Background(), core.LookupTarget{ReleaseID: 222})

	require.False(t, result.Matched)
	require.False(t, result.Failed)
	require.Equal(t, "no master release", result.Message)
	// No versions call is made for a masterless release.
	require.Equal(t, 0, source.versionCalls)
}

func TestLookupRetriesRateLimitThenSucceeds(t *testing.T) {
	source := reissueStub()
	source.releaseErrs = []error{
		&discogs.StatusError{StatusCode: http.StatusTooManyRequests},
		&discogs.StatusError{StatusCode: http.StatusTooManyRequests},
	}
	lookup, slept := newTestLookup(source)

	result := lookup.Check(context.Background(), core.LookupTarget{ReleaseID: 111})

	require.True(t, result.Matched)
	require.False(t, result.Failed)
	require.Len(t, result.MatchingVersions, 1)
	require.Equal(t, 9, result.MatchingVersions[0].ID)
	// Two backoff waits: baseDelay * 2^0, then * 2^1.
	require.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *slept)
}

func TestLookupExhaustsRetries(t *testing.T) {
	source := reissueStub()
	source.releaseErrs = []error{
		&discogs.StatusError{StatusCode: http.StatusTooManyRequests},
		&discogs.StatusError{StatusCode: http.StatusTooManyRequests},
		&discogs.StatusError{StatusCode: http.StatusTooManyRequests},
		&discogs.StatusError{StatusCode: http.StatusTooManyRequests},
	}
	lookup, slept := newTestLookup(source)
	lookup.MaxRetries = 3

	result := lookup.Check(context.Background(), core.LookupTarget{ReleaseID: 111})

	require.False(t, result.Matched)
	require.True(t, result.Failed)
	require.Contains(t, result.Message, "429")
	// maxRetries backoffs before giving up.
	require.Len(t, *slept, 3)
	require.Equal(t, 4, source.releaseCalls)
}

func TestLookupNonRetryableErrorFailsImmediately(t *testing.T) {
	source := reissueStub()
	source.releaseErrs = []error{errors.New("connection reset")}
	lookup, slept := newTestLookup(source)

	result := lookup.Check(context.Background(), core.LookupTarget{ReleaseID: 111, Artist: "Low"})

	require.False(t, result.Matched)
	require.True(t, result.Failed)
	require.Equal(t, "connection reset", result.Message)
	require.Equal(t, "Low", result.Artist)
	require.Empty(t, *slept)
	require.Equal(t, 1, source.releaseCalls)
}

func TestLookupHonorsServiceReportedRemaining(t *testing.T) {
	source := reissueStub()
	source.releases[111].RateRemaining = 1

	paced := []time.Duration{}
	lookup, _ := newTestLookup(source)
	lookup.Window.Sleep = func(ctx context.Context, d time.Duration) error {
		paced = append(paced, d)
		return nil
	}

	result := lookup.Check(context.Background(), core.LookupTarget{ReleaseID: 111})

	require.True(t, result.Matched)
	// The authoritative remaining count of 1 is at the low-water mark, so
	// the lookup paces before the versions call.
	require.NotEmpty(t, paced)
}

func TestLookupVersionsRateLimitRetries(t *testing.T) {
	source := reissueStub()
	source.versionErrs = []error{
		&discogs.StatusError{StatusCode: http.StatusTooManyRequests},
	}
	lookup, slept := newTestLookup(source)

	result := lookup.Check(context.Background(), core.LookupTarget{ReleaseID: 111})

	require.True(t, result.Matched)
	require.Equal(t, []time.Duration{2 * time.Second}, *slept)
	require.Equal(t, 2, source.versionCalls)
}
