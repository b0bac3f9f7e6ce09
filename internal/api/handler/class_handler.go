package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/thurahtetaung/universal-yoga/internal/dto"
	"github.com/thurahtetaung/universal-yoga/internal/service"
	"github.com/thurahtetaung/universal-yoga/pkg/response"
)

// ClassHandler serves class occurrences and the date picker.
type ClassHandler struct {
	classSvc service.ClassService
}

// NewClassHandler creates a ClassHandler.
func NewClassHandler(classSvc service.ClassService) *ClassHandler {
	return &ClassHandler{classSvc: classSvc}
}

// CreateClass POST /api/v1/courses/:id/classes
func (h *ClassHandler) CreateClass(c *gin.Context) {
	courseID, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, codeInvalidParams, "invalid request body")
		return
	}

	class, err := h.classSvc.Create(c.Request.Context(), courseID, &req)
	if err != nil {
		h.handleClassError(c, err)
		return
	}
	response.Created(c, class)
}

// GetClass GET /api/v1/classes/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	id, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	class, err := h.classSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleClassError(c, err)
		return
	}
	response.OK(c, class)
}

// UpdateClass PUT /api/v1/classes/:id
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, codeInvalidParams, "invalid request body")
		return
	}

	class, err := h.classSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleClassError(c, err)
		return
	}
	response.OK(c, class)
}

// DeleteClass DELETE /api/v1/classes/:id
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.classSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleClassError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListClassDates GET /api/v1/courses/:id/class-dates?from=&limit=
func (h *ClassHandler) ListClassDates(c *gin.Context) {
	courseID, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ClassDatesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, codeInvalidParams, "limit must be between 1 and 52")
		return
	}

	result, err := h.classSvc.UpcomingDates(c.Request.Context(), courseID, &req)
	if err != nil {
		h.handleClassError(c, err)
		return
	}
	response.OK(c, result)
}

// ValidateClassDate GET /api/v1/courses/:id/class-dates/validate?date=
func (h *ClassHandler) ValidateClassDate(c *gin.Context) {
	courseID, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ValidateClassDateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, codeInvalidParams, "date is required")
		return
	}

	result, err := h.classSvc.ValidateDate(c.Request.Context(), courseID, req.Date)
	if err != nil {
		h.handleClassError(c, err)
		return
	}
	response.OK(c, result)
}

// handleClassError maps class module errors.
func (h *ClassHandler) handleClassError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidClassDate) {
		response.BadRequest(c, 21002, err.Error())
		return
	}
	if writeCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 21001, "class not found")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 20001, "course not found")
	default:
		response.InternalError(c)
	}
}
