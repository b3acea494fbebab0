package skill

import "errors"

var (
	ErrSkillNotFound      = errors.New("skill not found")
	ErrTierBelowMinimum   = errors.New("skill tier is below the minimum install tier")
	ErrIntegrityMismatch  = errors.New("stored SKILL.md does not match its integrity hash")
	ErrInvalidInput       = errors.New("invalid input")
	ErrRepositoryNotFound = errors.New("repository not found")
	ErrSlugConflict       = errors.New("slug is already held by another source")
	ErrSkillExists        = errors.New("skill already exists")
	ErrInvalidSkillMD     = errors.New("invalid SKILL.md")
)
