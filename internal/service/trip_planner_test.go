package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"daytrip/internal/ai"
	"daytrip/internal/modules/conversation"
)

// stubCompletion records the prompts it receives and replies with a fixed result.
type stubCompletion struct {
	mu      sync.Mutex
	systems []string
	users   []string
	reply   string
	err     error
}

func (s *stubCompletion) Complete(_ context.Context, system, user string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.systems = append(s.systems, system)
	s.users = append(s.users, user)
	return s.reply, s.err
}

func TestPlanItinerarySuccess(t *testing.T) {
	stub := &stubCompletion{reply: "- Visit the Louvre\n- Eat croissants"}
	planner := NewTripPlanner(stub)

	run, err := planner.run(context.Background(), "Paris", "art, food")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(stub.systems) != 1 {
		t.Fatalf("expected 1 completion call, got %d", len(stub.systems))
	}
	if !strings.Contains(stub.systems[0], "Paris") || !strings.Contains(stub.systems[0], "art,food") {
		t.Fatalf("system instruction missing city or interests: %q", stub.systems[0])
	}
	if stub.users[0] != "Create an itinerary for my day trip." {
		t.Fatalf("user instruction = %q", stub.users[0])
	}

	if run.stage != StageItineraryGenerated {
		t.Fatalf("stage = %s", run.stage)
	}
	if run.state.Itinerary != stub.reply {
		t.Fatalf("state itinerary = %q", run.state.Itinerary)
	}
	wantMessages := []conversation.Message{
		{Role: conversation.RoleUser, Content: "Paris"},
		{Role: conversation.RoleUser, Content: "art, food"},
		{Role: conversation.RoleAssistant, Content: stub.reply},
	}
	if !reflect.DeepEqual(run.state.Messages, wantMessages) {
		t.Fatalf("messages = %+v", run.state.Messages)
	}

	it, err := planner.PlanItinerary(context.Background(), "Paris", "art, food")
	if err != nil {
		t.Fatalf("PlanItinerary: %v", err)
	}
	if it.Text != "- Visit the Louvre\n- Eat croissants" {
		t.Fatalf("itinerary text = %q", it.Text)
	}
	if !reflect.DeepEqual(it.Interests, []string{"art", "food"}) {
		t.Fatalf("interests = %q", it.Interests)
	}
}

func TestPlanItineraryEmptyInterests(t *testing.T) {
	stub := &stubCompletion{reply: "- Senso-ji"}
	planner := NewTripPlanner(stub)

	run, err := planner.run(context.Background(), "Tokyo", "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(run.state.Interests) != 0 {
		t.Fatalf("interests = %q", run.state.Interests)
	}
	if len(stub.systems) != 1 {
		t.Fatalf("completion call must still be issued, got %d", len(stub.systems))
	}
	if !strings.Contains(stub.systems[0], "Tokyo based on the user's interests: . Provide") {
		t.Fatalf("unexpected prompt %q", stub.systems[0])
	}
}

func TestPlanItineraryCompletionFailure(t *testing.T) {
	netErr := errors.New("dial tcp: connection refused")
	stub := &stubCompletion{err: netErr}
	planner := NewTripPlanner(stub)

	run, err := planner.run(context.Background(), "Berlin", "techno, museums")
	var ce *ai.CompletionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CompletionError, got %T %v", err, err)
	}
	if !errors.Is(err, netErr) {
		t.Fatalf("cause lost: %v", err)
	}
	if run.stage != StageFailed {
		t.Fatalf("stage = %s", run.stage)
	}
	if run.state.Itinerary != "" || run.state.HasItinerary() {
		t.Fatalf("itinerary must stay empty, got %q", run.state.Itinerary)
	}
	if len(run.state.Messages) != 2 {
		t.Fatalf("expected only city and interests messages, got %+v", run.state.Messages)
	}

	it, err := planner.PlanItinerary(context.Background(), "Berlin", "techno")
	if it != nil || err == nil {
		t.Fatalf("PlanItinerary = %v, %v", it, err)
	}
}

func TestPlanItineraryKeepsProviderError(t *testing.T) {
	providerErr := &ai.CompletionError{Provider: ai.ProviderGroq, Err: &ai.ConfigurationError{Variable: "GROQ_API_KEY"}}
	planner := NewTripPlanner(&stubCompletion{err: providerErr})

	_, err := planner.PlanItinerary(context.Background(), "Oslo", "fjords")
	if err != providerErr {
		t.Fatalf("provider error must propagate unchanged, got %v", err)
	}
}

func TestPlanItineraryCityNotTrimmed(t *testing.T) {
	stub := &stubCompletion{reply: "ok"}
	it, err := NewTripPlanner(stub).PlanItinerary(context.Background(), "  Lisbon ", "tiles")
	if err != nil {
		t.Fatalf("PlanItinerary: %v", err)
	}
	if it.City != "  Lisbon " || !strings.Contains(stub.systems[0], "for   Lisbon  based") {
		t.Fatalf("city was altered: %q / %q", it.City, stub.systems[0])
	}
}

func TestTransitionsOutOfOrder(t *testing.T) {
	r := &planRun{state: conversation.New(), stage: StageStart}
	if err := r.recordInterests("art"); !errors.Is(err, errOutOfOrder) {
		t.Fatalf("recordInterests before city: %v", err)
	}
	if err := r.generate(context.Background(), &stubCompletion{}); !errors.Is(err, errOutOfOrder) {
		t.Fatalf("generate before interests: %v", err)
	}
	if err := r.recordCity("Rome"); err != nil {
		t.Fatalf("recordCity: %v", err)
	}
	if err := r.recordCity("Rome"); !errors.Is(err, errOutOfOrder) {
		t.Fatalf("second recordCity: %v", err)
	}
}

func TestPlanItineraryConcurrentRequestsIsolated(t *testing.T) {
	stub := &stubCompletion{reply: "- plan"}
	planner := NewTripPlanner(stub)

	var wg sync.WaitGroup
	cities := []string{"Paris", "Tokyo", "Lima", "Cairo", "Seoul", "Quito"}
	results := make([]*Itinerary, len(cities))
	for i, city := range cities {
		wg.Add(1)
		go func(i int, city string) {
			defer wg.Done()
			it, err := planner.PlanItinerary(context.Background(), city, city+" food")
			if err != nil {
				t.Errorf("%s: %v", city, err)
				return
			}
			results[i] = it
		}(i, city)
	}
	wg.Wait()

	for i, it := range results {
		if it == nil {
			continue
		}
		if it.City != cities[i] || len(it.Interests) != 1 || it.Interests[0] != cities[i]+" food" {
			t.Errorf("request %d leaked state: %+v", i, it)
		}
	}
}
