package discogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.discogs.com"

// Client performs the two read operations against the catalog service.
type Client struct {
	Client    *http.Client
	BaseURL   string
	Token     string
	UserAgent string
}

// Release fetches a release by id.
func (c *Client) Release(ctx context.Context, id int) (*Release, error) {
	if id <= 0 {
		return nil, errors.New("release id must be positive")
	}

	var release Release
	remaining, err := c.get(ctx, fmt.Sprintf("/releases/%d", id), &release)
	if err != nil {
		return nil, err
	}
	release.RateRemaining = remaining
	return &release, nil
}

// MasterVersions fetches the full version list for a master work.
func (c *Client) MasterVersions(ctx context.Context, masterID int) (*VersionsPage, error) {
	if masterID <= 0 {
		return nil, errors.New("master id must be positive")
	}

	var page VersionsPage
	remaining, err := c.get(ctx, fmt.Sprintf("/masters/%d/versions", masterID), &page)
	if err != nil {
		return nil, err
	}
	page.RateRemaining = remaining
	return &page, nil
}

func (c *Client) get(ctx context.Context, path string, payload any) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	base := c.baseURL()
	target := base.ResolveReference(&url.URL{Path: path}).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return -1, err
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Discogs token="+c.Token)
	}

	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return -1, err
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup on HTTP response body

	remaining := rateRemaining(resp)

	if resp.StatusCode != http.StatusOK {
		return remaining, &StatusError{StatusCode: resp.StatusCode, URL: target}
	}

	if err := json.NewDecoder(resp.Body).Decode(payload); err != nil {
		return remaining, fmt.Errorf("discogs: decode %s: %w", target, err)
	}

	return remaining, nil
}

func (c *Client) baseURL() *url.URL {
	if c != nil && c.BaseURL != "" {
		if parsed, err := url.Parse(c.BaseURL); err == nil {
			return parsed
		}
	}
	parsed, _ := url.Parse(defaultBaseURL)
	return parsed
}
