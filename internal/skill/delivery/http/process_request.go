package http

import (
	"github.com/gin-gonic/gin"
)

// processListReq binds and validates the list query parameters.
func (h *handler) processListReq(c *gin.Context) (listReq, error) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processInstallReq binds the slug path param and the allow_unverified flag.
func (h *handler) processInstallReq(c *gin.Context) (installReq, error) {
	var req installReq
	if err := c.ShouldBindUri(&req); err != nil {
		return req, err
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

func (h *handler) processScanReq(c *gin.Context) (scanReq, error) {
	var req scanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handler) processPublishReq(c *gin.Context) (publishReq, error) {
	var req publishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handler) processSyncReq(c *gin.Context) (syncReq, error) {
	var req syncReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}
