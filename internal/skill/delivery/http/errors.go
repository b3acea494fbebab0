package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"skill-registry/internal/skill"
	"skill-registry/pkg/response"
)

// Error codes of the skill API.
const (
	CodeSkillNotFound      = "SKILL_NOT_FOUND"
	CodeRepositoryNotFound = "REPOSITORY_NOT_FOUND"
	CodeTierBelowMinimum   = "TIER_BELOW_MINIMUM"
	CodeIntegrityMismatch  = "INTEGRITY_MISMATCH"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeSyncFailed         = "SYNC_FAILED"
	CodeSkillExists        = "SKILL_EXISTS"
	CodeInvalidSkillMD     = "INVALID_SKILL_MD"
	CodeSlugConflict       = "SLUG_CONFLICT"
)

// mapError translates use-case errors into response envelopes. Unknown
// errors become a generic 500.
func (h *handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, skill.ErrInvalidInput):
		response.BadRequest(c, CodeInvalidInput, err.Error())
	case errors.Is(err, skill.ErrSkillNotFound):
		response.NotFound(c, CodeSkillNotFound, "Skill not found")
	case errors.Is(err, skill.ErrRepositoryNotFound):
		response.NotFound(c, CodeRepositoryNotFound, err.Error())
	case errors.Is(err, skill.ErrTierBelowMinimum):
		response.Forbidden(c, CodeTierBelowMinimum,
			"Skill tier is below the minimum install tier; pass allow_unverified=true to override")
	case errors.Is(err, skill.ErrInvalidSkillMD):
		response.BadRequest(c, CodeInvalidSkillMD, "Failed to parse SKILL.md: "+strings.TrimPrefix(err.Error(), skill.ErrInvalidSkillMD.Error()+": "))
	case errors.Is(err, skill.ErrSkillExists):
		response.Error(c, http.StatusConflict, CodeSkillExists, err.Error())
	case errors.Is(err, skill.ErrSlugConflict):
		response.Error(c, http.StatusConflict, CodeSlugConflict, err.Error())
	case errors.Is(err, skill.ErrIntegrityMismatch):
		response.Error(c, http.StatusConflict, CodeIntegrityMismatch, "Stored SKILL.md failed integrity verification")
	default:
		response.InternalError(c)
	}
}
