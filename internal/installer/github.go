package installer

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/corral-labs/corral/internal/branding"
)

const githubAPIBase = "https://api.github.com"

// Repo is the subset of the GitHub repository object we care about.
type Repo struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	CloneURL string `json:"clone_url"`
	Branch   string `json:"default_branch"`
	Archived bool   `json:"archived"`
}

// GitHub lists plugin repositories from an organization.
type GitHub struct {
	httpClient *http.Client
	baseURL    string
}

// NewGitHub returns a client against the public GitHub API.
func NewGitHub() *GitHub {
	return &GitHub{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    githubAPIBase,
	}
}

// ListOrgPlugins returns the organization's repositories whose name
// carries the plugin prefix, skipping archived repositories.
func (g *GitHub) ListOrgPlugins(org string) ([]Repo, error) {
	url := fmt.Sprintf("%s/orgs/%s/repos?per_page=100", g.baseURL, org)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", branding.CLIName()+"-installer")

	// Support optional GitHub token for higher rate limits.
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		req.Header.Set("Authorization", "token "+token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing organization repositories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("organization %s not found", org)
	}
	if resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("GitHub API rate limit exceeded. Set GITHUB_TOKEN for higher limits")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var repos []Repo
	if err := json.Unmarshal(body, &repos); err != nil {
		return nil, fmt.Errorf("parsing repository JSON: %w", err)
	}

	plugins := make([]Repo, 0, len(repos))
	for _, repo := range repos {
		if repo.Archived || !strings.HasPrefix(repo.Name, branding.PluginPrefix()) {
			continue
		}
		plugins = append(plugins, repo)
	}
	return plugins, nil
}
