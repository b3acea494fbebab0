package skillmd

import "errors"

// Parse failures. Callers reject the one skill and keep going.
var (
	ErrMissingClosingDelimiter = errors.New("invalid frontmatter: missing closing ---")
	ErrMissingName             = errors.New("SKILL.md must have a 'name' field in frontmatter or a heading")
	ErrMalformedFrontmatter    = errors.New("failed to parse SKILL.md frontmatter as YAML")
)
