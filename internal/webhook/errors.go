package webhook

import "errors"

var (
	ErrMissingSignature = errors.New("missing signature header")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidPayload   = errors.New("failed to parse payload")
	ErrIPNotAllowed     = errors.New("ip not allowed")
	ErrRateLimited      = errors.New("rate limit exceeded")
)
