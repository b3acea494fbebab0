// Package github is a small REST v3 client for reading skill content
// from repositories.
package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/oauth2"
)

const (
	DefaultBaseURL   = "https://api.github.com"
	DefaultUserAgent = "skill-registry/1.0"
	defaultTimeout   = 30 * time.Second
)

// skillFileNames are tried in order inside a skill directory.
var skillFileNames = []string{"SKILL.md", "skill.md"}

const marketplaceManifest = ".claude-plugin/marketplace.json"

// Config configures a Client. Token is optional; unauthenticated clients
// get GitHub's lower rate limit.
type Config struct {
	Token     string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client is the GitHub contents API client.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// New creates a client. A token is sent as a bearer credential through an
// oauth2 static token source.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.Token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), src)
		httpClient.Timeout = cfg.Timeout
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: httpClient,
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// GetRepo fetches repository metadata.
func (c *Client) GetRepo(ctx context.Context, owner, repo string) (Repo, error) {
	var r Repo
	if err := c.get(ctx, repoPath(owner, repo), "", &r); err != nil {
		return Repo{}, err
	}
	return r, nil
}

// GetFile fetches and decodes one file. An empty ref means the default branch.
func (c *Client) GetFile(ctx context.Context, owner, repo, filePath, ref string) (File, error) {
	var content Content
	if err := c.get(ctx, contentsPath(owner, repo, filePath, ref), filePath, &content); err != nil {
		return File{}, err
	}
	if content.Content == "" && content.Encoding == "" {
		return File{}, fmt.Errorf("%w: %s", ErrNoContent, filePath)
	}

	text, err := decodeContent(content)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", filePath, err)
	}
	return File{Path: filePath, SHA: content.SHA, Text: text}, nil
}

// ListDir lists a directory; an empty dir lists the repository root.
func (c *Client) ListDir(ctx context.Context, owner, repo, dir string) ([]DirEntry, error) {
	var entries []DirEntry
	if err := c.get(ctx, contentsPath(owner, repo, dir, ""), dir, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetSkillMD fetches the SKILL.md of a skill directory ("" for the root).
func (c *Client) GetSkillMD(ctx context.Context, owner, repo, skillDir string) (File, error) {
	dir := strings.Trim(skillDir, "/")
	for _, name := range skillFileNames {
		p := name
		if dir != "" {
			p = dir + "/" + name
		}
		f, err := c.GetFile(ctx, owner, repo, p, "")
		if err == nil {
			return f, nil
		}
		if !isNotFound(err) {
			return File{}, err
		}
	}
	return File{}, fmt.Errorf("%w in %s/%s/%s", ErrSkillMissing, owner, repo, dir)
}

// HasMarketplaceManifest reports whether the repository publishes a
// .claude-plugin/marketplace.json at its root.
func (c *Client) HasMarketplaceManifest(ctx context.Context, owner, repo string) (bool, error) {
	var content Content
	err := c.get(ctx, contentsPath(owner, repo, marketplaceManifest, ""), marketplaceManifest, &content)
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, err
}

// FindSkillPaths returns the directories holding a SKILL.md: "" for the
// repository root, then each top-level directory, one level deep.
func (c *Client) FindSkillPaths(ctx context.Context, owner, repo string) ([]string, error) {
	root, err := c.ListDir(ctx, owner, repo, "")
	if err != nil {
		return nil, err
	}

	var paths []string
	if hasSkillFile(root) {
		paths = append(paths, "")
	}

	for _, entry := range root {
		if entry.Type != "dir" || strings.HasPrefix(entry.Name, ".") {
			continue
		}
		children, err := c.ListDir(ctx, owner, repo, entry.Path)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, err
		}
		if hasSkillFile(children) {
			paths = append(paths, entry.Name)
		}
	}

	return paths, nil
}

func (c *Client) get(ctx context.Context, apiPath, subject string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+apiPath, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call GitHub API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Status: resp.Status, Path: subject}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse GitHub response: %w", err)
	}
	return nil
}

func decodeContent(c Content) (string, error) {
	if c.Encoding != "" && c.Encoding != "base64" {
		return "", fmt.Errorf("unsupported content encoding %q", c.Encoding)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(c.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("invalid base64: %w", err)
	}
	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	return string(raw), nil
}

func hasSkillFile(entries []DirEntry) bool {
	for _, e := range entries {
		if e.Type != "file" {
			continue
		}
		for _, name := range skillFileNames {
			if e.Name == name {
				return true
			}
		}
	}
	return false
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func repoPath(owner, repo string) string {
	return "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo)
}

func contentsPath(owner, repo, p, ref string) string {
	out := repoPath(owner, repo) + "/contents"
	if p = strings.Trim(p, "/"); p != "" {
		segments := strings.Split(p, "/")
		for i, s := range segments {
			segments[i] = url.PathEscape(s)
		}
		out += "/" + strings.Join(segments, "/")
	}
	if ref != "" {
		out += "?ref=" + url.QueryEscape(ref)
	}
	return out
}
