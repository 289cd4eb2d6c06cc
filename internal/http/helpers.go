package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/highlights-export/internal/logger"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: code})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, log logger.Logger, err error, context string) {
	log.Error("internal error", "context", context, "err", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondError sends an error response with the given status code.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: message, Code: code})
}

// wantsMarkdown reports whether the client asked for raw Markdown instead of JSON.
func wantsMarkdown(c *gin.Context) bool {
	if c.Query("format") == "markdown" {
		return true
	}
	return c.NegotiateFormat(gin.MIMEJSON, mimeMarkdown) == mimeMarkdown
}
