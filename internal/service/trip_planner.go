package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"daytrip/internal/ai"
	"daytrip/internal/modules/conversation"
)

// Stage is a step of the itinerary state machine.
type Stage int

const (
	StageStart Stage = iota
	StageCityRecorded
	StageInterestsRecorded
	StageItineraryGenerated
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageCityRecorded:
		return "city_recorded"
	case StageInterestsRecorded:
		return "interests_recorded"
	case StageItineraryGenerated:
		return "itinerary_generated"
	case StageFailed:
		return "failed"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// errOutOfOrder is returned when a transition is attempted from the wrong stage.
var errOutOfOrder = errors.New("itinerary step out of order")

// TripPlanner turns a city and a list of interests into a day-trip itinerary.
// It holds only read-only collaborators and is safe for concurrent use.
type TripPlanner struct {
	completion ai.CompletionClient
}

// NewTripPlanner creates a TripPlanner backed by the given completion client.
func NewTripPlanner(completion ai.CompletionClient) *TripPlanner {
	return &TripPlanner{completion: completion}
}

// Itinerary is the outcome of a successful PlanItinerary call.
type Itinerary struct {
	City      string
	Interests []string
	Text      string
}

// PlanItinerary records the city and interests, renders the prompt, calls the
// completion service and returns the generated itinerary. Any failure is a
// *ai.CompletionError.
func (p *TripPlanner) PlanItinerary(ctx context.Context, city, interests string) (*Itinerary, error) {
	run, err := p.run(ctx, city, interests)
	if err != nil {
		return nil, err
	}
	return &Itinerary{
		City:      run.state.City,
		Interests: run.state.Interests,
		Text:      run.state.Itinerary,
	}, nil
}

// run executes the three transitions on a fresh state. The run is returned
// even on failure so its bookkeeping can be inspected.
func (p *TripPlanner) run(ctx context.Context, city, interests string) (*planRun, error) {
	r := &planRun{state: conversation.New(), stage: StageStart}
	if err := r.recordCity(city); err != nil {
		return r, err
	}
	if err := r.recordInterests(interests); err != nil {
		return r, err
	}
	return r, r.generate(ctx, p.completion)
}

// planRun is the state machine for one request.
type planRun struct {
	state *conversation.State
	stage Stage
}

func (r *planRun) advance(from, to Stage) error {
	if r.stage != from {
		return fmt.Errorf("%w: at %s, want %s", errOutOfOrder, r.stage, from)
	}
	r.stage = to
	return nil
}

func (r *planRun) recordCity(city string) error {
	if err := r.advance(StageStart, StageCityRecorded); err != nil {
		return err
	}
	r.state.RecordCity(city)
	return nil
}

func (r *planRun) recordInterests(raw string) error {
	if err := r.advance(StageCityRecorded, StageInterestsRecorded); err != nil {
		return err
	}
	r.state.RecordInterests(raw)
	return nil
}

func (r *planRun) generate(ctx context.Context, completion ai.CompletionClient) error {
	if r.stage != StageInterestsRecorded {
		return fmt.Errorf("%w: at %s, want %s", errOutOfOrder, r.stage, StageInterestsRecorded)
	}

	req := ai.PromptRequest{City: r.state.City, Interests: r.state.Interests}
	log.Printf("creating itinerary for %s based on interests: %s", req.City, strings.Join(req.Interests, ", "))

	system, user := req.Render()
	text, err := completion.Complete(ctx, system, user)
	if err != nil {
		r.stage = StageFailed
		log.Printf("itinerary generation failed: %v", err)
		var ce *ai.CompletionError
		if !errors.As(err, &ce) {
			err = &ai.CompletionError{Err: err}
		}
		return err
	}

	r.state.RecordItinerary(text)
	r.stage = StageItineraryGenerated
	return nil
}
