package github

// Repo is the subset of GET /repos/{owner}/{repo} the registry uses.
type Repo struct {
	FullName        string   `json:"full_name"`
	Description     string   `json:"description"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	PushedAt        string   `json:"pushed_at"`
	DefaultBranch   string   `json:"default_branch"`
	License         *License `json:"license"`
	Owner           Owner    `json:"owner"`
}

type License struct {
	SPDXID string `json:"spdx_id"`
	Name   string `json:"name"`
}

// ID prefers the SPDX identifier.
func (l *License) ID() string {
	if l == nil {
		return ""
	}
	if l.SPDXID != "" && l.SPDXID != "NOASSERTION" {
		return l.SPDXID
	}
	return l.Name
}

type Owner struct {
	Login   string `json:"login"`
	HTMLURL string `json:"html_url"`
}

// Content is a file from the contents API.
type Content struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	SHA      string `json:"sha"`
	Path     string `json:"path"`
}

// DirEntry is one item of a directory listing.
type DirEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "file", "dir", "symlink", "submodule"
	SHA  string `json:"sha"`
}

// File is decoded file text plus its blob SHA.
type File struct {
	Path string
	SHA  string
	Text string
}
