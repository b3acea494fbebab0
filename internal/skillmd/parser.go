// Package skillmd extracts skill metadata from SKILL.md documents.
package skillmd

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"skill-registry/internal/model"
)

const (
	delimiter = "---"
	bom       = "\ufeff"
)

// frontmatter holds the recognised keys. Unknown keys are ignored.
type frontmatter struct {
	name            string
	description     string
	version         string
	author          string
	license         string
	keywords        []string
	agents          []string
	supportedAgents []string
}

// Parse extracts metadata from SKILL.md content.
//
// It fails only with ErrMissingClosingDelimiter, ErrMissingName or
// ErrMalformedFrontmatter; unexpected fields and unknown agents are ignored.
func Parse(content string) (model.ParsedSkillMetadata, error) {
	content = strings.TrimPrefix(content, bom)

	fm, body, hasFrontmatter, err := splitFrontmatter(content)
	if err != nil {
		return model.ParsedSkillMetadata{}, err
	}

	var meta frontmatter
	if hasFrontmatter {
		meta, err = decodeFrontmatter(fm)
		if err != nil {
			return model.ParsedSkillMetadata{}, err
		}
	}

	name := meta.name
	if name == "" {
		name = firstHeading(body)
	}
	if name == "" {
		return model.ParsedSkillMetadata{}, ErrMissingName
	}

	description := meta.description
	if description == "" {
		description = firstParagraph(body)
	}

	agentTokens := meta.agents
	if agentTokens == nil {
		agentTokens = meta.supportedAgents
	}

	return model.ParsedSkillMetadata{
		Name:        name,
		Description: description,
		Version:     meta.version,
		Author:      meta.author,
		License:     meta.license,
		Keywords:    meta.keywords,
		Agents:      NormalizeAgents(agentTokens),
	}, nil
}

// splitFrontmatter returns the YAML block and the remaining body.
// Content whose first line is not exactly "---" has no frontmatter.
func splitFrontmatter(content string) (fm, body string, ok bool, err error) {
	first, rest, found := strings.Cut(content, "\n")
	if strings.TrimSpace(first) != delimiter {
		return "", content, false, nil
	}
	if !found {
		return "", "", false, ErrMissingClosingDelimiter
	}

	offset := 0
	for offset <= len(rest) {
		line := rest[offset:]
		next := len(rest)
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
			next = offset + i + 1
		}
		if strings.TrimSpace(line) == delimiter {
			return rest[:offset], rest[min(next, len(rest)):], true, nil
		}
		if next >= len(rest) {
			break
		}
		offset = next
	}
	return "", "", false, ErrMissingClosingDelimiter
}

func decodeFrontmatter(src string) (fm frontmatter, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrMalformedFrontmatter, r)
		}
	}()

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		return frontmatter{}, fmt.Errorf("%w: %v", ErrMalformedFrontmatter, err)
	}
	// Empty block.
	if len(doc.Content) == 0 {
		return frontmatter{}, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return frontmatter{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return frontmatter{}, fmt.Errorf("%w: root is not a mapping", ErrMalformedFrontmatter)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		switch key {
		case "name":
			fm.name = scalar(value)
		case "description":
			fm.description = scalar(value)
		case "version":
			fm.version = scalar(value)
		case "author":
			fm.author = scalar(value)
		case "license":
			fm.license = scalar(value)
		case "keywords":
			fm.keywords = stringList(value)
		case "agents":
			fm.agents = stringList(value)
		case "supported_agents":
			fm.supportedAgents = stringList(value)
		}
	}
	return fm, nil
}

// scalar returns the trimmed text of a scalar node; other kinds yield "".
func scalar(n *yaml.Node) string {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return ""
	}
	return strings.TrimSpace(n.Value)
}

// stringList accepts a sequence of scalars or one comma-separated scalar.
// A null or absent value yields nil so that alias fallbacks still apply.
func stringList(n *yaml.Node) []string {
	n = resolveAlias(n)
	if n == nil {
		return nil
	}

	var raw []string
	switch n.Kind {
	case yaml.SequenceNode:
		for _, item := range n.Content {
			if v := scalar(item); v != "" {
				raw = append(raw, v)
			}
		}
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil
		}
		for _, part := range strings.Split(n.Value, ",") {
			if v := strings.TrimSpace(part); v != "" {
				raw = append(raw, v)
			}
		}
	default:
		return nil
	}

	if raw == nil {
		return []string{}
	}
	return raw
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for depth := 0; n != nil && n.Kind == yaml.AliasNode && depth < 8; depth++ {
		n = n.Alias
	}
	return n
}

// firstHeading returns the text of the first "# " heading.
func firstHeading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if heading, ok := strings.CutPrefix(line, "# "); ok {
			if heading = strings.TrimSpace(heading); heading != "" {
				return heading
			}
		}
	}
	return ""
}

// firstParagraph joins the first run of prose lines with single spaces.
// Leading headings and blank lines are skipped; a code fence ends the search.
func firstParagraph(body string) string {
	var parts []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case isFence(line):
			return strings.Join(parts, " ")
		case line == "" || strings.HasPrefix(line, "#"):
			if len(parts) > 0 {
				return strings.Join(parts, " ")
			}
		default:
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}

func isFence(line string) bool {
	return strings.HasPrefix(line, "```") || strings.HasPrefix(line, "~~~")
}
