// README: API gateway; registers the form page, the JSON API and health routes.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"daytrip/internal/http/handlers"
	"daytrip/internal/http/middleware"
	"daytrip/internal/infra"
)

// ServerDeps lists the collaborators of the HTTP layer. Usage, Limiter and
// Verifier are optional; leave them nil to disable the feature.
type ServerDeps struct {
	Planner  handlers.Planner
	Usage    handlers.UsageGuard
	Limiter  handlers.Limiter
	Verifier infra.TokenVerifier
}

type Server struct {
	itinerary *handlers.ItineraryHandler
	verifier  infra.TokenVerifier
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		itinerary: handlers.NewItineraryHandler(deps.Planner, deps.Usage, deps.Limiter),
		verifier:  deps.Verifier,
	}
}

func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging())
	r.SetHTMLTemplate(handlers.Templates())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/", s.itinerary.Form)
	r.POST("/", s.itinerary.Submit)

	api := r.Group("/api")
	if s.verifier != nil {
		api.Use(middleware.Auth(s.verifier))
	}
	api.POST("/itinerary", s.itinerary.Generate)
	return r
}
