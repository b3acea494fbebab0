package webhook

import (
	"context"

	"skill-registry/internal/model"
)

// Request headers read by the gateway.
const (
	HeaderSignature = "X-Hub-Signature-256"
	HeaderEvent     = "X-GitHub-Event"
	HeaderDelivery  = "X-GitHub-Delivery"
)

// Response error codes.
const (
	CodeMissingSignature = "MISSING_SIGNATURE"
	CodeInvalidSignature = "INVALID_SIGNATURE"
	CodeInvalidPayload   = "INVALID_PAYLOAD"
	CodeProcessingError  = "PROCESSING_ERROR"
	CodeForbiddenIP      = "FORBIDDEN_IP"
	CodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
)

// DefaultMaxBodyBytes caps webhook bodies; GitHub itself caps deliveries at 25MB.
const DefaultMaxBodyBytes int64 = 25 << 20

// SecurityConfig holds webhook security settings.
type SecurityConfig struct {
	Secret          string   // HMAC secret; empty disables signature verification
	AllowedIPs      []string // IP or CIDR allow-list (optional)
	RateLimitPerMin int      // per client IP; 0 disables
	MaxBodyBytes    int64
}

// Decision is the outcome of processing one event.
type Decision struct {
	Processed    bool   `json:"processed"`
	Message      string `json:"message"`
	SkillsSynced *int   `json:"skills_synced"`
}

// Syncer re-ingests one repository's skills.
type Syncer interface {
	SyncRepository(ctx context.Context, owner, repo string) (model.SyncResult, error)
}
