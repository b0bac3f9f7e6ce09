package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/thurahtetaung/universal-yoga/internal/dto"
	"github.com/thurahtetaung/universal-yoga/internal/service"
	"github.com/thurahtetaung/universal-yoga/pkg/response"
)

// CourseHandler serves courses and the day-change decision flow.
type CourseHandler struct {
	courseSvc service.CourseService
	editSvc   service.CourseEditService
}

// NewCourseHandler creates a CourseHandler.
func NewCourseHandler(courseSvc service.CourseService, editSvc service.CourseEditService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc, editSvc: editSvc}
}

// ListCourses GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": courses})
}

// GetCourse GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	course, err := h.courseSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, course)
}

// CreateCourse POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, codeInvalidParams, "invalid request body")
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.Created(c, course)
}

// UpdateCourse PUT /api/v1/courses/:id
//
// A weekday change on a course with classes answers 200 with status
// "pending_decision" and a token for ResolveCourseEdit.
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, codeInvalidParams, "invalid request body")
		return
	}

	outcome, err := h.editSvc.Edit(c.Request.Context(), id, &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, outcome)
}

// ResolveCourseEdit POST /api/v1/course-edits/:token
func (h *CourseHandler) ResolveCourseEdit(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		response.BadRequest(c, codeInvalidParams, "token is required")
		return
	}

	var req dto.ResolveCourseEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, codeInvalidParams, "resolution must be one of keep, delete_all, cancel")
		return
	}

	outcome, err := h.editSvc.Resolve(c.Request.Context(), token, req.Resolution)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, outcome)
}

// DeleteCourse DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.courseSvc.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, result)
}

// ListCourseClasses GET /api/v1/courses/:id/classes
func (h *CourseHandler) ListCourseClasses(c *gin.Context) {
	id, ok := MustGetIDParam(c, "id")
	if !ok {
		return
	}

	classes, err := h.courseSvc.ListClasses(c.Request.Context(), id)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, gin.H{"list": classes})
}

// handleCourseError maps course module errors.
func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	if writeCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 20001, "course not found")
	case errors.Is(err, service.ErrDecisionNotFound):
		response.NotFound(c, 20002, "pending edit not found or already resolved")
	case errors.Is(err, service.ErrEditConflict):
		response.Conflict(c, 20003, "course was changed after this edit was requested")
	default:
		response.InternalError(c)
	}
}
