package middleware

import (
	"errors"
	"io"
	"net/http"

	"github.com/cfcpretoriaeast/churchhub/internal/app/models/dto"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindJSON binds and validates the request body into obj. On failure it writes a
// VAL_001 response listing the failed fields and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		writeBindError(c, err)
		return false
	}
	return true
}

// BindOptionalJSON is BindJSON for bodies that may be omitted. An absent or empty
// body, chunked ones included, leaves obj untouched.
func BindOptionalJSON(c *gin.Context, obj interface{}) bool {
	if c.Request.Body == nil || c.Request.Body == http.NoBody || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		writeBindError(c, err)
		return false
	}
	return true
}

func writeBindError(c *gin.Context, err error) {
	var detail *dto.ErrorDetail
	if _, ok := err.(validator.ValidationErrors); ok {
		detail = dto.HandleValidationError(err)
	} else {
		detail = dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}
