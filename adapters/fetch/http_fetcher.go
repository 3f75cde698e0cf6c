package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/davidsmarcelino/nps-dashboard/internal/errors"
)

// HTTPFetcher retrieves remote documents over plain HTTP(S).
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher with the given request timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch downloads the document at location and returns its body as text.
// Google Sheets share links are rewritten to their CSV export form first.
func (f *HTTPFetcher) Fetch(ctx context.Context, location string) (string, error) {
	url := NormalizeSheetURL(location)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.FetchFailed(location, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", errors.FetchFailed(location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.FetchFailed(location, fmt.Errorf("unexpected status %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.FetchFailed(location, err)
	}
	return string(body), nil
}

var sheetURLPattern = regexp.MustCompile(`docs\.google\.com/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// NormalizeSheetURL converts a Google Sheets share link into the CSV export
// URL for the same document. The sheet is selected by the gid fragment when
// present, defaulting to the first sheet. Anything that is not a share link
// passes through untouched.
func NormalizeSheetURL(location string) string {
	match := sheetURLPattern.FindStringSubmatch(location)
	if match == nil || strings.Contains(location, "/export") {
		return location
	}

	gid := "0"
	if idx := strings.Index(location, "gid="); idx >= 0 {
		rest := location[idx+len("gid="):]
		if end := strings.IndexAny(rest, "&#"); end >= 0 {
			rest = rest[:end]
		}
		if rest != "" {
			gid = rest
		}
	}
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=%s", match[1], gid)
}
