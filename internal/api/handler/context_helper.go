package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/thurahtetaung/universal-yoga/pkg/errors"
	"github.com/thurahtetaung/universal-yoga/pkg/response"
)

// Error codes shared by every handler.
const (
	codeInvalidParams = 10001
	codeConflict      = 10009
)

// MustGetIDParam parses a positive integer path parameter.
// On failure it writes a 400 and returns ok=false; the caller just returns.
func MustGetIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, codeInvalidParams, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// writeCommonError answers errors every module shares: invalid input and
// referential integrity. It reports whether it wrote a response.
func writeCommonError(c *gin.Context, err error) bool {
	var ve *pkgerrors.ValidationError
	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusBadRequest, codeInvalidParams, "validation failed", ve.Error())
		return true
	case errors.Is(err, pkgerrors.ErrIntegrity):
		response.Conflict(c, codeConflict, "the referenced course no longer exists")
		return true
	}
	return false
}
