package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const signaturePrefix = "sha256="

// VerifySignature checks a GitHub "sha256=<hex>" header against the
// HMAC-SHA256 of body keyed with secret.
func VerifySignature(secret string, body []byte, header string) bool {
	provided, ok := strings.CutPrefix(header, signaturePrefix)
	if !ok {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return constantTimeCompare([]byte(expected), []byte(provided))
}

// constantTimeCompare rejects unequal lengths, then XOR-accumulates every
// byte pair so the loop time does not depend on where the inputs differ.
func constantTimeCompare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var acc byte
	for i := range a {
		acc |= a[i] ^ b[i]
	}
	return acc == 0
}

// SecurityValidator validates webhook requests
type SecurityValidator struct {
	config      SecurityConfig
	rateLimiter *rateLimiter
}

func NewSecurityValidator(config SecurityConfig) *SecurityValidator {
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &SecurityValidator{
		config:      config,
		rateLimiter: newRateLimiter(config.RateLimitPerMin),
	}
}

// SignatureRequired reports whether a secret is configured.
func (v *SecurityValidator) SignatureRequired() bool {
	return v.config.Secret != ""
}

// ValidateGitHubSignature verifies the signature header. With no secret
// configured verification is skipped.
func (v *SecurityValidator) ValidateGitHubSignature(payload []byte, signature string) error {
	if !v.SignatureRequired() {
		return nil
	}
	if signature == "" {
		return ErrMissingSignature
	}
	if !VerifySignature(v.config.Secret, payload, signature) {
		return ErrInvalidSignature
	}
	return nil
}

// ValidateIPAddress checks the client address against the allow-list. The
// address must come from the transport, e.g. gin's ClientIP, which only
// honours forwarding headers set by trusted proxies.
func (v *SecurityValidator) ValidateIPAddress(ip string) error {
	if len(v.config.AllowedIPs) == 0 {
		return nil
	}

	parsed := net.ParseIP(ip)

	for _, allowedIP := range v.config.AllowedIPs {
		if ip == allowedIP {
			return nil
		}

		if strings.Contains(allowedIP, "/") && parsed != nil {
			_, ipNet, err := net.ParseCIDR(allowedIP)
			if err != nil {
				continue
			}
			if ipNet.Contains(parsed) {
				return nil
			}
		}
	}

	return fmt.Errorf("%w: %s", ErrIPNotAllowed, ip)
}

// CheckRateLimit enforces rate limiting per source.
func (v *SecurityValidator) CheckRateLimit(source string) error {
	return v.rateLimiter.Allow(source)
}

// rateLimiter keeps one token bucket per source in an LRU whose entries
// expire after five idle minutes.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	if requestsPerMin <= 0 {
		return nil
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000,
			nil,
			time.Minute*5,
		),
		rate:  rate.Limit(float64(requestsPerMin) / 60.0),
		burst: max(requestsPerMin/10, 1),
	}
}

// Allow is a no-op on a nil limiter.
func (rl *rateLimiter) Allow(key string) error {
	if rl == nil {
		return nil
	}

	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}

	if !limiter.Allow() {
		return fmt.Errorf("%w for %s", ErrRateLimited, key)
	}
	return nil
}
