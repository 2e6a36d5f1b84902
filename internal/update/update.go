// Package update performs a best-effort check for a newer release.
// Failures are swallowed: version information is a courtesy, never a
// reason to break the command that asked.
package update

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// Overridden in tests.
var releaseEndpoint = "https://api.github.com/repos/ndhoang/newsdesk/releases/latest"

// Result describes an available newer release.
type Result struct {
	LatestVersion string
	ReleaseURL    string
}

// Check compares the running version against the latest published
// release. It returns nil for dev builds, for up-to-date builds, and
// on any error.
func Check(ctx context.Context, currentVersion string) *Result {
	current := strings.TrimPrefix(currentVersion, "v")
	if current == "" || current == "dev" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releaseEndpoint, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "newsdesk/"+current)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var release struct {
		TagName string `json:"tag_name"`
		HTMLURL string `json:"html_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	if latest == "" || latest == current {
		return nil
	}
	return &Result{LatestVersion: latest, ReleaseURL: release.HTMLURL}
}
