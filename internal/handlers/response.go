package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techgov/catalog-backend/internal/platform/apierr"
)

type APIError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// Every surface answers with one envelope: {"success": true, "data": ...} on
// success and {"success": false, "error": {...}} on failure.
func RespondData(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": payload})
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": payload})
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, gin.H{
		"success": false,
		"error":   APIError{Code: code, Message: msg},
	})
}

// RespondFromError maps a service error onto the envelope using its apierr
// status and code.
func RespondFromError(c *gin.Context, err error) {
	RespondError(c, apierr.Status(err), apierr.Code(err), err)
}
