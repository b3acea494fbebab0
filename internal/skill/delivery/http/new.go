package http

import (
	"skill-registry/internal/skill"
	"skill-registry/pkg/log"
)

type handler struct {
	l  log.Logger
	uc skill.UseCase
}

// New creates a new HTTP handler for the skill domain.
func New(l log.Logger, uc skill.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
