package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// All endpoints answer with the same envelope:
// { success: bool, message?: string, data?: ..., error?: string }.
// The error field carries diagnostic detail only when verbose mode is on
// (dev deployments).

var verboseErrors bool

func SetVerboseErrors(v bool) {
	verboseErrors = v
}

func RespondData(ctx *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true}

	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}

	ctx.JSON(status, body)
}

// RespondFields is for endpoints whose success payload sits at the top level
// of the envelope (token+user on auth, applicationId on submit).
func RespondFields(ctx *gin.Context, status int, fields gin.H) {
	body := gin.H{"success": true}

	for k, v := range fields {
		body[k] = v
	}

	ctx.JSON(status, body)
}

func respondFailure(ctx *gin.Context, status int, message string, err error, extra map[string]any) {
	body := gin.H{
		"success": false,
		"message": message,
	}

	for k, v := range extra {
		body[k] = v
	}

	if err != nil && verboseErrors {
		body["error"] = err.Error()
	}

	ctx.JSON(status, body)
}

func RespondBadRequest(ctx *gin.Context, message string, extra map[string]any) {
	respondFailure(ctx, http.StatusBadRequest, message, nil, extra)
}

func RespondUnauthorized(ctx *gin.Context, message string) {
	respondFailure(ctx, http.StatusUnauthorized, message, nil, nil)
}

func RespondNotFound(ctx *gin.Context, message string) {
	respondFailure(ctx, http.StatusNotFound, message, nil, nil)
}

func RespondInternal(ctx *gin.Context, message string, err error) {
	respondFailure(ctx, http.StatusInternalServerError, message, err, nil)
}
