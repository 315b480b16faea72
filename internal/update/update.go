package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	DefaultRepo = "appengine-ltd/terminal-farmer"

	githubAPI = "https://api.github.com"
)

var repoPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// Checker asks GitHub for the latest release of Repo.
type Checker struct {
	Repo    string
	APIBase string
	Client  *http.Client
	// AllowedHosts limits which API hosts may be contacted.
	AllowedHosts map[string]struct{}
}

func NewChecker() *Checker {
	return &Checker{
		Repo:         DefaultRepo,
		APIBase:      githubAPI,
		Client:       safeHTTPClient(),
		AllowedHosts: map[string]struct{}{"api.github.com": {}},
	}
}

// Check reports whether a newer release than currentVersion exists.
func (c *Checker) Check(ctx context.Context, currentVersion string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	rel, err := c.fetchLatestRelease(ctx)
	if err != nil {
		return "", err
	}

	latest := canonical(rel.TagName)
	current := canonical(currentVersion)
	if !semver.IsValid(latest) {
		return "", fmt.Errorf("latest release tag %q is not a version", rel.TagName)
	}
	if !semver.IsValid(current) {
		// dev builds: just say what the latest is
		return fmt.Sprintf("Latest release is %s.", latest), nil
	}

	switch semver.Compare(current, latest) {
	case 0:
		return fmt.Sprintf("Up to date (%s).", latest), nil
	case 1:
		return fmt.Sprintf("Running %s, ahead of the latest release %s.", current, latest), nil
	}
	msg := fmt.Sprintf("Update available: %s → %s.", current, latest)
	if rel.HTMLURL != "" {
		msg += " " + rel.HTMLURL
	}
	return msg, nil
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// ---- GitHub release API ----

type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

func safeHTTPClient() *http.Client {
	return &http.Client{Timeout: 20 * time.Second}
}

func validateRepo(repo string) error {
	if !repoPattern.MatchString(repo) {
		return fmt.Errorf("invalid repository format: %q", repo)
	}
	return nil
}

func validateHTTPSURL(raw string, allowedHosts map[string]struct{}) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if !strings.EqualFold(parsed.Scheme, "https") {
		return fmt.Errorf("unsupported URL scheme: %s", parsed.Scheme)
	}
	host := strings.ToLower(parsed.Hostname())
	if _, ok := allowedHosts[host]; !ok {
		return fmt.Errorf("unsupported URL host: %s", host)
	}
	return nil
}

func (c *Checker) fetchLatestRelease(ctx context.Context) (*githubRelease, error) {
	if err := validateRepo(c.Repo); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/repos/%s/releases/latest", strings.TrimRight(c.APIBase, "/"), c.Repo)
	if err := validateHTTPSURL(endpoint, c.AllowedHosts); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	client := c.Client
	if client == nil {
		client = safeHTTPClient()
	}
	// #nosec G107 -- host is allowlisted above.
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("github latest release: %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	var rel githubRelease
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&rel); err != nil {
		return nil, err
	}
	if rel.TagName == "" {
		return nil, errors.New("latest release has no tag_name")
	}
	return &rel, nil
}
