package webhook

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"skill-registry/pkg/metrics"
	"skill-registry/pkg/response"
)

// HandleGitHubWebhook godoc
// @Summary     Receive a GitHub webhook delivery
// @Description Verifies the HMAC signature, classifies the event and re-syncs the repository when SKILL.md content changed.
// @Tags        Webhooks
// @Accept      json
// @Produce     json
// @Param       X-GitHub-Event      header string true  "Event type (push, release, ping, ...)"
// @Param       X-Hub-Signature-256 header string false "sha256=<hex HMAC> (required when a secret is configured)"
// @Success     200 {object} response.Resp{data=Decision}
// @Failure     400 {object} response.Resp "INVALID_PAYLOAD"
// @Failure     401 {object} response.Resp "MISSING_SIGNATURE / INVALID_SIGNATURE"
// @Failure     500 {object} response.Resp "PROCESSING_ERROR"
// @Router      /api/v1/webhooks/github [POST]
func (h *Handler) HandleGitHubWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	eventType := c.GetHeader(HeaderEvent)
	if eventType == "" {
		eventType = "unknown"
	}

	clientIP := c.ClientIP()

	if err := h.security.ValidateIPAddress(clientIP); err != nil {
		h.l.Warnf(ctx, "webhook.HandleGitHubWebhook: %v", err)
		h.metrics.RecordWebhook(eventType, metrics.OutcomeRejected)
		response.Forbidden(c, CodeForbiddenIP, "Source address not allowed")
		return
	}

	if err := h.security.CheckRateLimit(clientIP); err != nil {
		h.l.Warnf(ctx, "webhook.HandleGitHubWebhook: %v", err)
		h.metrics.RecordWebhook(eventType, metrics.OutcomeRejected)
		response.TooManyRequests(c)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.security.config.MaxBodyBytes))
	if err != nil {
		h.metrics.RecordWebhook(eventType, metrics.OutcomeRejected)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "Payload exceeds size limit")
			return
		}
		h.l.Errorf(ctx, "webhook.HandleGitHubWebhook: read body: %v", err)
		response.BadRequest(c, CodeInvalidPayload, "Failed to read payload")
		return
	}

	if err := h.security.ValidateGitHubSignature(body, c.GetHeader(HeaderSignature)); err != nil {
		h.l.Warnf(ctx, "webhook.HandleGitHubWebhook: signature verification failed: %v", err)
		h.metrics.RecordWebhook(eventType, metrics.OutcomeRejected)
		h.mapError(c, err)
		return
	}

	h.l.Infof(ctx, "webhook.HandleGitHubWebhook: received GitHub event %s (delivery %s)", eventType, c.GetHeader(HeaderDelivery))

	event, err := ParseEvent(eventType, body)
	if err != nil {
		h.l.Errorf(ctx, "webhook.ParseEvent: %v", err)
		h.metrics.RecordWebhook(eventType, metrics.OutcomeRejected)
		h.mapError(c, err)
		return
	}

	decision, err := h.gateway.Process(ctx, event)
	if err != nil {
		h.l.Errorf(ctx, "webhook.Process: %v", err)
		h.metrics.RecordWebhook(eventType, metrics.OutcomeFailed)
		h.mapError(c, err)
		return
	}

	outcome := metrics.OutcomeIgnored
	if decision.Processed {
		outcome = metrics.OutcomeProcessed
	}
	h.metrics.RecordWebhook(eventType, outcome)

	response.OK(c, decision)
}

// mapError translates gateway errors into response envelopes. Anything not
// classified here came from the sync collaborator.
func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingSignature):
		response.Unauthorized(c, CodeMissingSignature, HeaderSignature+" header required")
	case errors.Is(err, ErrInvalidSignature):
		response.Unauthorized(c, CodeInvalidSignature, "Webhook signature verification failed")
	case errors.Is(err, ErrInvalidPayload):
		detail := strings.TrimPrefix(err.Error(), ErrInvalidPayload.Error()+": ")
		response.BadRequest(c, CodeInvalidPayload, "Failed to parse payload: "+detail)
	default:
		response.Error(c, http.StatusInternalServerError, CodeProcessingError, err.Error())
	}
}

// RegisterRoutes mounts the webhook endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	webhooks := rg.Group("/webhooks")
	{
		webhooks.POST("/github", h.HandleGitHubWebhook)
	}
}
