package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/thurahtetaung/universal-yoga/internal/service"
	"github.com/thurahtetaung/universal-yoga/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler serves schedule downloads.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportWorkbook GET /api/v1/export/schedule.xlsx
func (h *ExportHandler) ExportWorkbook(c *gin.Context) {
	h.download(c, xlsxContentType, h.exportSvc.ExportWorkbook)
}

// ExportCalendar GET /api/v1/export/schedule.ics
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	h.download(c, icsContentType, h.exportSvc.ExportCalendar)
}

func (h *ExportHandler) download(c *gin.Context, contentType string, render func(context.Context) (*bytes.Buffer, string, error)) {
	buf, filename, err := render(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
