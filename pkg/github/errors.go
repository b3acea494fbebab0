package github

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("github: not found")
	ErrNoContent    = errors.New("no content in GitHub response")
	ErrInvalidUTF8  = errors.New("invalid UTF-8 in decoded content")
	ErrSkillMissing = errors.New("could not find SKILL.md")
)

// APIError is a non-2xx response from the GitHub API.
type APIError struct {
	StatusCode int
	Status     string
	Path       string
}

func (e *APIError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("GitHub API error: %s", e.Status)
	}
	return fmt.Sprintf("GitHub API error: %s for %s", e.Status, e.Path)
}

// Is lets callers test a 404 with errors.Is(err, ErrNotFound).
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
