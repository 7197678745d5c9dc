package selfupdate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultOwner = "dmehra"
	defaultRepo  = "learnly"
)

// ErrNoRelease indicates the repository has no published release yet.
var ErrNoRelease = errors.New("no release found")

// Checker queries GitHub for the latest published release.
type Checker struct {
	owner      string
	repo       string
	apiBaseURL string
	httpClient *http.Client
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURL overrides the GitHub API base URL. Tests point this at a
// local server.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.apiBaseURL = strings.TrimRight(u, "/") }
}

// WithRepo overrides the owner/repo pair.
func WithRepo(owner, repo string) Option {
	return func(c *Checker) {
		c.owner = owner
		c.repo = repo
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Checker) { c.httpClient = hc }
}

// NewChecker creates a Checker against the public GitHub API.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		owner:      defaultOwner,
		repo:       defaultRepo,
		apiBaseURL: "https://api.github.com",
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckInput carries the currently running version.
type CheckInput struct {
	Version string
}

// CheckResult is the outcome of one update check.
type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	ReleaseURL      string
}

type releaseResponse struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
	Draft   bool   `json:"draft"`
}

// Check fetches the latest release tag and compares it against the
// running version with semver ordering. Development builds always
// report an update as unavailable; there is nothing meaningful to
// compare against.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	current := normalizeVersion(input.Version)
	result := &CheckResult{CurrentVersion: input.Version}

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.apiBaseURL, c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoRelease
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch latest release: HTTP %d", resp.StatusCode)
	}

	var rel releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if rel.TagName == "" || rel.Draft {
		return nil, ErrNoRelease
	}

	latest := normalizeVersion(rel.TagName)
	if !semver.IsValid(latest) {
		return nil, fmt.Errorf("release tag %q is not valid semver", rel.TagName)
	}

	result.LatestVersion = rel.TagName
	result.ReleaseURL = rel.HTMLURL
	if semver.IsValid(current) {
		result.UpdateAvailable = semver.Compare(latest, current) > 0
	}
	return result, nil
}

// normalizeVersion ensures the "v" prefix semver.Compare requires.
func normalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || v == "(devel)" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
