package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/thurahtetaung/universal-yoga/internal/dto"
	"github.com/thurahtetaung/universal-yoga/internal/service"
	"github.com/thurahtetaung/universal-yoga/pkg/response"
)

// SyncHandler triggers the upload to the remote server.
type SyncHandler struct {
	syncSvc service.SyncService
}

// NewSyncHandler creates a SyncHandler.
func NewSyncHandler(syncSvc service.SyncService) *SyncHandler {
	return &SyncHandler{syncSvc: syncSvc}
}

// Upload POST /api/v1/sync/upload
func (h *SyncHandler) Upload(c *gin.Context) {
	result, err := h.syncSvc.Upload(c.Request.Context())
	if err != nil {
		h.handleSyncError(c, err)
		return
	}
	response.OK(c, result)
}

// UploadAsync POST /api/v1/sync/upload/async
//
// Answers 202 at once; the outcome is only logged.
func (h *SyncHandler) UploadAsync(c *gin.Context) {
	h.syncSvc.UploadAsync(c.Request.Context(), nil)
	response.Accepted(c, dto.SyncAcceptedResponse{Status: "uploading"})
}

// handleSyncError maps sync errors.
func (h *SyncHandler) handleSyncError(c *gin.Context, err error) {
	var transportErr *service.TransportError
	var rejectedErr *service.ServerRejectedError
	switch {
	case errors.Is(err, service.ErrNoConnectivity):
		response.ServiceUnavailable(c, 30001, "No internet connection available")
	case errors.As(err, &rejectedErr):
		response.BadGateway(c, 30002, "upload rejected by server", rejectedErr.Message)
	case errors.As(err, &transportErr):
		response.BadGateway(c, 30003, "upload failed", transportErr.Error())
	default:
		response.InternalError(c)
	}
}
