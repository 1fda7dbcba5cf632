// README: Itinerary handlers (HTML form and JSON API).
package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"daytrip/internal/http/middleware"
	"daytrip/internal/modules/aiusage"
	"daytrip/internal/modules/ratelimit"
	"daytrip/internal/service"
)

// Planner produces an itinerary for a city and raw comma-separated interests.
type Planner interface {
	PlanItinerary(ctx context.Context, city, interests string) (*service.Itinerary, error)
}

// UsageGuard tracks a caller's monthly generation allowance.
type UsageGuard interface {
	Remaining(ctx context.Context, uid string) (int, error)
	UseToken(ctx context.Context, uid string) error
}

// Limiter reports whether a caller may make another request.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type ItineraryHandler struct {
	planner Planner
	usage   UsageGuard
	limiter Limiter
}

// NewItineraryHandler wires the handler; usage and limiter may be nil to disable them.
func NewItineraryHandler(planner Planner, usage UsageGuard, limiter Limiter) *ItineraryHandler {
	return &ItineraryHandler{planner: planner, usage: usage, limiter: limiter}
}

type itineraryReq struct {
	City      string `json:"city" form:"city"`
	Interests string `json:"interests" form:"interests"`
}

type itineraryResp struct {
	City      string   `json:"city"`
	Interests []string `json:"interests"`
	Itinerary string   `json:"itinerary"`
}

type formPage struct {
	City      string
	Interests string
	Itinerary string
	Error     string
}

// generate applies the rate limit and allowance, then runs the planner.
// The allowance is only charged for an itinerary that was actually produced.
func (h *ItineraryHandler) generate(c *gin.Context, req itineraryReq) (*service.Itinerary, error) {
	ctx := c.Request.Context()
	key := middleware.CallerKey(c)

	if h.limiter != nil {
		ok, err := h.limiter.Allow(ctx, key)
		switch {
		case err != nil:
			log.Printf("rate limiter unavailable: %v", err)
		case !ok:
			return nil, ratelimit.ErrLimited
		}
	}
	if h.usage != nil {
		remaining, err := h.usage.Remaining(ctx, key)
		if err != nil {
			return nil, err
		}
		if remaining <= 0 {
			return nil, aiusage.ErrInsufficientTokens
		}
	}

	it, err := h.planner.PlanItinerary(ctx, req.City, req.Interests)
	if err != nil {
		return nil, err
	}
	if h.usage != nil {
		if err := h.usage.UseToken(ctx, key); err != nil {
			log.Printf("charging allowance for %s: %v", key, err)
		}
	}
	return it, nil
}

// Generate handles POST /api/itinerary.
func (h *ItineraryHandler) Generate(c *gin.Context) {
	var req itineraryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	it, err := h.generate(c, req)
	if err != nil {
		log.Printf("itinerary request failed: %v", err)
		writeItineraryError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, itineraryResp{City: it.City, Interests: it.Interests, Itinerary: it.Text})
}

// Form handles GET /.
func (h *ItineraryHandler) Form(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", formPage{})
}

// Submit handles POST / from the form and renders the result in place.
func (h *ItineraryHandler) Submit(c *gin.Context) {
	req := itineraryReq{City: c.PostForm("city"), Interests: c.PostForm("interests")}
	page := formPage{City: req.City, Interests: req.Interests}

	it, err := h.generate(c, req)
	if err != nil {
		log.Printf("itinerary form failed: %v", err)
		status, msg := itineraryErrorStatus(err)
		page.Error = msg
		c.HTML(status, "index.html", page)
		return
	}
	page.Itinerary = it.Text
	c.HTML(http.StatusOK, "index.html", page)
}
