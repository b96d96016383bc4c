package discogs

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const rateRemainingHeader = "X-Discogs-Ratelimit-Remaining"

// StatusError reports a non-success response from the catalog service.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("discogs: unexpected status %d from %s", e.StatusCode, e.URL)
}

// IsRateLimited reports whether err is a rate-limit rejection from the
// catalog service.
func IsRateLimited(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusTooManyRequests
}

// rateRemaining extracts the service's reported remaining request budget
// from a response, or -1 when absent or unparsable.
func rateRemaining(resp *http.Response) int {
	if resp == nil || resp.Header == nil {
		return -1
	}

	raw := strings.TrimSpace(resp.Header.Get(rateRemainingHeader))
	if raw == "" {
		return -1
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return -1
	}
	return value
}
