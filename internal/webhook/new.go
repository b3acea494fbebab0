package webhook

import (
	"skill-registry/pkg/log"
	"skill-registry/pkg/metrics"
)

type Handler struct {
	gateway  *Gateway
	security *SecurityValidator
	metrics  *metrics.Manager
	l        log.Logger
}

// NewHandler wires the GitHub webhook endpoint. metrics may be nil.
func NewHandler(
	syncer Syncer,
	securityConfig SecurityConfig,
	m *metrics.Manager,
	l log.Logger,
) *Handler {
	return &Handler{
		gateway:  NewGateway(syncer, l),
		security: NewSecurityValidator(securityConfig),
		metrics:  m,
		l:        l,
	}
}
