package model

import (
	"fmt"
	"strings"
	"time"
)

// Severity of a security warning. Ordered Info < Low < Medium < High < Critical.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Blocking reports whether the severity blocks a non-strict scan.
func (s Severity) Blocking() bool { return s >= SeverityHigh }

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "info":
		*s = SeverityInfo
	case "low":
		*s = SeverityLow
	case "medium":
		*s = SeverityMedium
	case "high":
		*s = SeverityHigh
	case "critical":
		*s = SeverityCritical
	default:
		return fmt.Errorf("unknown severity %q", string(b))
	}
	return nil
}

// SecurityWarning is a single scanner finding.
type SecurityWarning struct {
	Severity Severity `json:"severity"`
	Category string   `json:"category"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
	Snippet  string   `json:"snippet"`
}

// SecurityScanResult is recomputed for every ingested version.
type SecurityScanResult struct {
	Passed          bool              `json:"passed"`
	Warnings        []SecurityWarning `json:"warnings"`
	BlockedPatterns []string          `json:"blocked_patterns"`
	ScannedAt       time.Time         `json:"scanned_at"`
}
