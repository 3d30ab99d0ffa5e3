package controllers

import (
	"github.com/cfcpretoriaeast/churchhub/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// parseUUIDParam reads a UUID path parameter, writing a 400 response when it is malformed
func parseUUIDParam(ctx *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		middleware.InvalidParam(ctx, name, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}
