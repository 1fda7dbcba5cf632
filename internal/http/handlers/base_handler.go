// README: Base handler utilities (JSON helpers, error mapping, templates).
package handlers

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"daytrip/internal/ai"
	"daytrip/internal/modules/aiusage"
	"daytrip/internal/modules/ratelimit"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates returns the parsed HTML templates for the form page.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// itineraryErrorStatus maps a failure to the HTTP status and the text shown to the user.
func itineraryErrorStatus(err error) (int, string) {
	var (
		cfgErr *ai.ConfigurationError
		ce     *ai.CompletionError
	)
	switch {
	case errors.Is(err, aiusage.ErrInsufficientTokens), errors.Is(err, ratelimit.ErrLimited):
		return http.StatusTooManyRequests, err.Error()
	case errors.As(err, &cfgErr):
		return http.StatusServiceUnavailable, err.Error()
	case errors.As(err, &ce):
		return http.StatusBadGateway, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeItineraryError(c *gin.Context, err error) {
	status, msg := itineraryErrorStatus(err)
	writeError(c, status, msg)
}
