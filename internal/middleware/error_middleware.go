package middleware

import (
	"errors"
	"net/http"

	"github.com/cfcpretoriaeast/churchhub/internal/app/models/dto"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/apperrors"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

// messageOf prefers the message carried by a CustomError
func messageOf(err error, fallback string) string {
	var ce *apperrors.CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}

// notFoundMessage names the missing resource when the error says which one it was
func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrMemberNotFound):
		return "Member not found"
	case errors.Is(err, apperrors.ErrEventNotFound):
		return "Event not found"
	case errors.Is(err, apperrors.ErrParticipantNotFound):
		return "Participant not found"
	case errors.Is(err, apperrors.ErrAttendanceNotFound):
		return "Attendance record not found"
	case errors.Is(err, apperrors.ErrDepartmentNotFound):
		return "Department not found"
	case errors.Is(err, apperrors.ErrTeamNotFound):
		return "Team not found"
	}
	return messageOf(err, "Resource not found")
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, notFoundMessage(err)),
		))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists").WithField("email"),
		))
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, messageOf(err, "Resource already exists")).WithDetails(err.Error()),
		))
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConflict, messageOf(err, "Request conflicts with existing data")).WithDetails(err.Error()),
		))
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, messageOf(err, "Validation failed")).WithDetails(err.Error()),
		))
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeBadRequest, messageOf(err, "Bad request")),
		))
	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").WithSeverity(dto.ErrorSeverityCritical),
		))
	}
}

// InvalidParam writes a VAL_001 response for a malformed path or query parameter
func InvalidParam(c *gin.Context, field, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).WithField(field),
	))
}
