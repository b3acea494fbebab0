// Package scanner flags dangerous patterns in SKILL.md text.
//
// It is a heuristic regex matcher, not a parser. False positives and
// negatives are expected; callers decide what a failed scan means.
package scanner

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"skill-registry/internal/model"
)

// Scanner is safe for concurrent use.
type Scanner struct {
	strictMode bool
	now        func() time.Time
}

// New creates a Scanner. Strict mode is off by default.
func New(opts ...Option) *Scanner {
	s := &Scanner{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StrictMode reports whether any warning fails the scan.
func (s *Scanner) StrictMode() bool { return s.strictMode }

// Scan runs every category over content in a fixed order.
func (s *Scanner) Scan(content string) model.SecurityScanResult {
	p := patterns()
	warnings := make([]model.SecurityWarning, 0)

	for _, loc := range p.dangerousCommand.FindAllStringIndex(content, -1) {
		matched := content[loc[0]:loc[1]]
		warnings = append(warnings, newWarning(content, loc[0], model.SeverityHigh, CategoryDangerousCommand,
			fmt.Sprintf("Potentially dangerous command: %s", matched)))
	}

	for _, loc := range p.hardcodedIP.FindAllStringIndex(content, -1) {
		ip := content[loc[0]:loc[1]]
		if isExemptIP(ip) {
			continue
		}
		warnings = append(warnings, newWarning(content, loc[0], model.SeverityMedium, CategoryHardcodedIP,
			fmt.Sprintf("Hardcoded IP address: %s", ip)))
	}

	for _, loc := range p.base64Run.FindAllStringIndex(content, -1) {
		matched := content[loc[0]:loc[1]]
		if len(matched) <= encodedReportThreshold {
			continue
		}
		warnings = append(warnings, model.SecurityWarning{
			Severity: model.SeverityMedium,
			Category: CategoryEncodedContent,
			Message:  "Large base64-encoded content detected",
			Line:     lineNumber(content, loc[0]),
			Snippet:  matched[:encodedSnippetLength] + "...",
		})
	}

	for _, loc := range sensitivePathMatches(content, -1) {
		matched := content[loc[0]:loc[1]]
		warnings = append(warnings, newWarning(content, loc[0], model.SeverityHigh, CategorySensitivePath,
			fmt.Sprintf("Reference to sensitive path: %s", matched)))
	}

	for _, loc := range p.cryptoAddress.FindAllStringIndex(content, -1) {
		warnings = append(warnings, newWarning(content, loc[0], model.SeverityMedium, CategoryCryptoAddress,
			"Cryptocurrency address detected"))
	}

	for _, loc := range p.envAccess.FindAllStringIndex(content, -1) {
		warnings = append(warnings, newWarning(content, loc[0], model.SeverityInfo, CategoryEnvAccess,
			"Environment variable access"))
	}

	blocked := make([]string, 0)
	seen := make(map[string]bool)
	for _, w := range warnings {
		if w.Severity.Blocking() && !seen[w.Category] {
			seen[w.Category] = true
			blocked = append(blocked, w.Category)
		}
	}

	passed := len(blocked) == 0
	if s.strictMode {
		passed = len(warnings) == 0
	}

	return model.SecurityScanResult{
		Passed:          passed,
		Warnings:        warnings,
		BlockedPatterns: blocked,
		ScannedAt:       s.now().UTC(),
	}
}

// IsLikelySafe is a cheap pre-check: no dangerous command and no sensitive
// path. It does not replace Scan.
func (s *Scanner) IsLikelySafe(content string) bool {
	return !patterns().dangerousCommand.MatchString(content) && len(sensitivePathMatches(content, 1)) == 0
}

// sensitivePathMatches returns up to n sensitive path matches (n < 0 for all).
// The .env of process.env and import.meta.env is left to the env_access
// category; any other ".env", config.env included, is a dotenv file.
func sensitivePathMatches(content string, n int) [][]int {
	var out [][]int
	for _, loc := range patterns().sensitivePath.FindAllStringIndex(content, -1) {
		if isEnvPropertyAccess(content, loc) {
			continue
		}
		out = append(out, loc)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}

// envReceivers own a .env property holding the process environment.
var envReceivers = []string{"process", "import.meta", "Deno"}

func isEnvPropertyAccess(content string, loc []int) bool {
	if !strings.EqualFold(content[loc[0]:loc[1]], ".env") {
		return false
	}
	before := content[:loc[0]]
	for _, recv := range envReceivers {
		if len(before) < len(recv) || !strings.EqualFold(before[len(before)-len(recv):], recv) {
			continue
		}
		start := len(before) - len(recv)
		if start == 0 || !isWordByte(before[start-1]) {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isExemptIP(ip string) bool {
	if _, ok := ipAllowlist[ip]; ok {
		return true
	}
	for _, prefix := range privateIPPrefixes {
		if strings.HasPrefix(ip, prefix) {
			return true
		}
	}
	return false
}

func newWarning(content string, offset int, sev model.Severity, category, msg string) model.SecurityWarning {
	return model.SecurityWarning{
		Severity: sev,
		Category: category,
		Message:  msg,
		Line:     lineNumber(content, offset),
		Snippet:  snippet(content, offset),
	}
}

// lineNumber is the number of newlines strictly before offset, plus one.
func lineNumber(content string, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return strings.Count(content[:offset], "\n") + 1
}

// snippet returns the line enclosing offset, capped and trimmed.
func snippet(content string, offset int) string {
	lineStart := strings.LastIndexByte(content[:offset], '\n') + 1
	lineEnd := len(content)
	if i := strings.IndexByte(content[offset:], '\n'); i >= 0 {
		lineEnd = offset + i
	}

	end := min(lineEnd, lineStart+snippetMaxBytes)
	for end > lineStart && end < len(content) && !utf8.RuneStart(content[end]) {
		end--
	}
	return strings.TrimSpace(content[lineStart:end])
}
