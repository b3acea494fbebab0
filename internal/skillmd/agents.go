package skillmd

import (
	"strings"

	"skill-registry/internal/model"
)

// agentSynonyms maps lower-cased agent tokens onto the closed agent set.
var agentSynonyms = map[string]model.AgentType{
	"claude":       model.AgentClaudeCode,
	"claude-code":  model.AgentClaudeCode,
	"claude_code":  model.AgentClaudeCode,
	"codex":        model.AgentCodex,
	"openai-codex": model.AgentCodex,
	"openai_codex": model.AgentCodex,
	"cursor":       model.AgentCursor,
	"gemini":       model.AgentGemini,
	"gemini-cli":   model.AgentGemini,
	"gemini_cli":   model.AgentGemini,
	"windsurf":     model.AgentOther,
	"aider":        model.AgentOther,
	"cline":        model.AgentOther,
	"roo":          model.AgentOther,
	"roo-cline":    model.AgentOther,
	"amp":          model.AgentOther,
	"continue":     model.AgentOther,
}

// NormalizeAgent maps a declared agent token to an AgentType.
// The second result is false for tokens with no mapping.
func NormalizeAgent(token string) (model.AgentType, bool) {
	agent, ok := agentSynonyms[strings.ToLower(strings.TrimSpace(token))]
	return agent, ok
}

// NormalizeAgents maps tokens in order, dropping unknown ones and duplicates.
func NormalizeAgents(tokens []string) []model.AgentType {
	if tokens == nil {
		return nil
	}
	out := make([]model.AgentType, 0, len(tokens))
	seen := make(map[model.AgentType]bool, len(tokens))
	for _, token := range tokens {
		agent, ok := NormalizeAgent(token)
		if !ok || seen[agent] {
			continue
		}
		seen[agent] = true
		out = append(out, agent)
	}
	return out
}
