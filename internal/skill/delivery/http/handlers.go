package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skill-registry/internal/skill"
	"skill-registry/pkg/response"
)

// List godoc
// @Summary     List skills
// @Description Returns a page of registry skills, best tier first.
// @Tags        Skills
// @Produce     json
// @Param       q           query string false "Search name, description and slug"
// @Param       tier        query string false "Exact tier (unverified, community, trusted, verified)"
// @Param       installable query bool   false "Only skills at or above the minimum install tier"
// @Param       limit       query int    false "Page size (default: 20, max: 100)"
// @Param       offset      query int    false "Page offset (default: 0)"
// @Success     200 {object} response.Resp{data=listResp}
// @Failure     400 {object} response.Resp "INVALID_INPUT"
// @Failure     500 {object} response.Resp "INTERNAL_ERROR"
// @Router      /api/v1/skills [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListReq(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	output, err := h.uc.List(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newListResp(output))
}

// Detail godoc
// @Summary     Get skill detail
// @Description Returns one skill with its last security scan and version history.
// @Tags        Skills
// @Produce     json
// @Param       slug path string true "Skill slug"
// @Success     200 {object} response.Resp{data=detailResp}
// @Failure     404 {object} response.Resp "SKILL_NOT_FOUND"
// @Failure     500 {object} response.Resp "INTERNAL_ERROR"
// @Router      /api/v1/skills/{slug} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.Detail(ctx, c.Param("slug"))
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newDetailResp(output))
}

// Install godoc
// @Summary     Fetch a skill for installation
// @Description Serves SKILL.md and its SHA-256 after re-verifying the stored hash. Skills below the minimum install tier need allow_unverified=true.
// @Tags        Skills
// @Produce     json
// @Param       slug             path  string true  "Skill slug"
// @Param       allow_unverified query bool   false "Bypass the tier gate"
// @Success     200 {object} response.Resp{data=installResp}
// @Failure     403 {object} response.Resp "TIER_BELOW_MINIMUM"
// @Failure     404 {object} response.Resp "SKILL_NOT_FOUND"
// @Failure     409 {object} response.Resp "INTEGRITY_MISMATCH"
// @Router      /api/v1/skills/{slug}/install [GET]
func (h *handler) Install(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processInstallReq(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	output, err := h.uc.Install(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.Install %s: %v", req.Slug, err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newInstallResp(output))
}

// PreviewScan godoc
// @Summary     Preview a SKILL.md
// @Description Parses, scans and hashes arbitrary SKILL.md content without storing it.
// @Tags        Skills
// @Accept      json
// @Produce     json
// @Param       body body scanReq true "SKILL.md content"
// @Success     200 {object} response.Resp{data=previewResp}
// @Failure     400 {object} response.Resp "INVALID_INPUT"
// @Router      /api/v1/skills/scan [POST]
func (h *handler) PreviewScan(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processScanReq(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	output, err := h.uc.PreviewScan(ctx, req.toInput())
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newPreviewResp(output))
}

// Publish godoc
// @Summary     Publish a skill
// @Description Stores SKILL.md content submitted directly. The skill is scanned and hashed; it ranks Community, or Unverified when the scan fails. Existing slugs are never replaced.
// @Tags        Skills
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       body body publishReq true "SKILL.md and optional slug and source"
// @Success     200 {object} response.Resp{data=publishResp}
// @Failure     400 {object} response.Resp "INVALID_INPUT / INVALID_SKILL_MD"
// @Failure     401 {object} response.Resp "UNAUTHORIZED"
// @Failure     409 {object} response.Resp "SKILL_EXISTS"
// @Router      /api/v1/skills [POST]
func (h *handler) Publish(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processPublishReq(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	output, err := h.uc.Publish(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.Publish: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newPublishResp(output))
}

// Stats godoc
// @Summary     Registry statistics
// @Description Counts skills per tier, total installs and trusted organisations.
// @Tags        Skills
// @Produce     json
// @Success     200 {object} response.Resp{data=statsResp}
// @Failure     500 {object} response.Resp "INTERNAL_ERROR"
// @Router      /api/v1/stats [GET]
func (h *handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	st, err := h.uc.Stats(ctx)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newStatsResp(st))
}

// Sync godoc
// @Summary     Sync a repository
// @Description Imports every SKILL.md of a GitHub repository (root and one directory level).
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       body body syncReq true "Repository to sync"
// @Success     200 {object} response.Resp{data=syncResp}
// @Failure     400 {object} response.Resp "INVALID_INPUT"
// @Failure     401 {object} response.Resp "UNAUTHORIZED"
// @Failure     404 {object} response.Resp "REPOSITORY_NOT_FOUND"
// @Failure     502 {object} response.Resp "SYNC_FAILED"
// @Router      /api/v1/admin/sync [POST]
func (h *handler) Sync(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSyncReq(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	result, err := h.uc.SyncRepository(ctx, req.Owner, req.Repo)
	if err != nil {
		h.l.Errorf(ctx, "uc.SyncRepository %s/%s: %v", req.Owner, req.Repo, err)
		if errors.Is(err, skill.ErrInvalidInput) || errors.Is(err, skill.ErrRepositoryNotFound) {
			h.mapError(c, err)
			return
		}
		response.Error(c, http.StatusBadGateway, CodeSyncFailed, err.Error())
		return
	}

	response.OK(c, h.newSyncResp(req, result))
}

// badRequest reports a binding or validation failure.
func (h *handler) badRequest(c *gin.Context, err error) {
	response.BadRequest(c, CodeInvalidInput, err.Error())
}
