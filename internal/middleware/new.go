package middleware

import (
	"skill-registry/pkg/log"
	"skill-registry/pkg/metrics"
)

type Middleware struct {
	l       log.Logger
	apiKey  string
	metrics *metrics.Manager
}

// New creates the shared middleware set. An empty apiKey disables Auth.
func New(l log.Logger, apiKey string, m *metrics.Manager) Middleware {
	return Middleware{
		l:       l,
		apiKey:  apiKey,
		metrics: m,
	}
}
