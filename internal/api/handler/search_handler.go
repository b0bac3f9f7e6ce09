package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/thurahtetaung/universal-yoga/internal/dto"
	"github.com/thurahtetaung/universal-yoga/internal/service"
	"github.com/thurahtetaung/universal-yoga/pkg/response"
)

// SearchHandler serves the class lookups.
type SearchHandler struct {
	searchSvc service.SearchService
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(searchSvc service.SearchService) *SearchHandler {
	return &SearchHandler{searchSvc: searchSvc}
}

// ByTeacher GET /api/v1/search/teacher?q=
func (h *SearchHandler) ByTeacher(c *gin.Context) {
	var req dto.TeacherSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, codeInvalidParams, "invalid query")
		return
	}

	results, err := h.searchSvc.ByTeacher(c.Request.Context(), req.Q)
	h.respond(c, results, err)
}

// ByDate GET /api/v1/search/date?date=
func (h *SearchHandler) ByDate(c *gin.Context) {
	var req dto.DateSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, codeInvalidParams, "date is required")
		return
	}

	results, err := h.searchSvc.ByDate(c.Request.Context(), req.Date)
	h.respond(c, results, err)
}

// ByDay GET /api/v1/search/day?day=
func (h *SearchHandler) ByDay(c *gin.Context) {
	var req dto.DaySearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, codeInvalidParams, "day is required")
		return
	}

	results, err := h.searchSvc.ByDayOfWeek(c.Request.Context(), req.Day)
	h.respond(c, results, err)
}

func (h *SearchHandler) respond(c *gin.Context, results []dto.SearchResultResponse, err error) {
	if err != nil {
		if !writeCommonError(c, err) {
			response.InternalError(c)
		}
		return
	}
	response.OK(c, gin.H{"list": results})
}
