package model

import (
	"fmt"
	"strings"
)

// QualityTier is the trust classification of a skill. Higher is more trusted.
type QualityTier int

const (
	TierUnverified QualityTier = iota
	TierCommunity
	TierTrusted
	TierVerified
)

// DefaultMinInstallTier is the lowest tier installable without an explicit override.
const DefaultMinInstallTier = TierCommunity

// Star thresholds used by TierFromMetrics.
const (
	trustedStarThreshold   = 100
	communityStarThreshold = 10
)

func (t QualityTier) String() string {
	switch t {
	case TierUnverified:
		return "unverified"
	case TierCommunity:
		return "community"
	case TierTrusted:
		return "trusted"
	case TierVerified:
		return "verified"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Level returns the numeric level (0-3).
func (t QualityTier) Level() int { return int(t) }

// AtLeast reports whether t is min or above.
func (t QualityTier) AtLeast(min QualityTier) bool { return t >= min }

// InstallableByDefault reports whether the tier passes the default install filter.
func (t QualityTier) InstallableByDefault() bool { return t.AtLeast(DefaultMinInstallTier) }

// RequiresConfirmation reports whether installers should ask before installing.
func (t QualityTier) RequiresConfirmation() bool {
	return t == TierCommunity || t == TierTrusted
}

func (t QualityTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *QualityTier) UnmarshalText(b []byte) error {
	parsed, err := ParseQualityTier(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseQualityTier parses the lowercase tier name.
func ParseQualityTier(s string) (QualityTier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unverified":
		return TierUnverified, nil
	case "community":
		return TierCommunity, nil
	case "trusted":
		return TierTrusted, nil
	case "verified":
		return TierVerified, nil
	default:
		return TierUnverified, fmt.Errorf("unknown quality tier %q", s)
	}
}

// TierFromMetrics derives a tier from repository signals. Verified is never
// derived; it is only set by manual review.
func TierFromMetrics(stars int, trustedOrg, hasMarketplace bool) QualityTier {
	switch {
	case trustedOrg || stars >= trustedStarThreshold || hasMarketplace:
		return TierTrusted
	case stars >= communityStarThreshold:
		return TierCommunity
	default:
		return TierUnverified
	}
}
