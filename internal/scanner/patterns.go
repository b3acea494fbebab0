package scanner

import (
	"regexp"
	"sync"
)

// Category tags reported on warnings.
const (
	CategoryDangerousCommand = "dangerous_command"
	CategoryHardcodedIP      = "hardcoded_ip"
	CategoryEncodedContent   = "encoded_content"
	CategorySensitivePath    = "sensitive_path"
	CategoryCryptoAddress    = "crypto_address"
	CategoryEnvAccess        = "env_access"
)

const (
	// encodedReportThreshold is the run length above which a base64 match is reported.
	encodedReportThreshold = 100
	encodedSnippetLength   = 50
	snippetMaxBytes        = 100
)

// ipAllowlist holds literal addresses that never count as hardcoded.
var ipAllowlist = map[string]struct{}{
	"127.0.0.1": {},
	"0.0.0.0":   {},
}

// privateIPPrefixes are skipped by the hardcoded_ip category.
var privateIPPrefixes = []string{"10.", "192.168."}

type patternSet struct {
	dangerousCommand *regexp.Regexp
	hardcodedIP      *regexp.Regexp
	base64Run        *regexp.Regexp
	sensitivePath    *regexp.Regexp
	cryptoAddress    *regexp.Regexp
	envAccess        *regexp.Regexp
}

// patterns is built on first use and shared read-only by every scan.
var patterns = sync.OnceValue(func() *patternSet {
	return &patternSet{
		dangerousCommand: regexp.MustCompile(`(?i)\b(rm\s+-rf|curl\s+.*\|\s*sh|wget\s+.*\|\s*sh|eval\s*\(|exec\s*\(|\bsudo\b)`),
		hardcodedIP:      regexp.MustCompile(`\b(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})\b`),
		base64Run:        regexp.MustCompile(`[A-Za-z0-9+/]{50,}={0,2}`),
		sensitivePath:    regexp.MustCompile(`(?i)(~?/etc/passwd|~?/etc/shadow|\.ssh/|\.aws/credentials|\.env\b|credentials\.json)`),
		cryptoAddress:    regexp.MustCompile(`\b(0x[a-fA-F0-9]{40}|[13][a-km-zA-HJ-NP-Z1-9]{25,34}|bc1[a-zA-HJ-NP-Z0-9]{39,59})\b`),
		envAccess:        regexp.MustCompile(`(?i)(process\.env|os\.environ|getenv|ENV\[)`),
	}
})
