package conversation

import "strings"

// New returns an empty State.
func New() *State {
	return &State{
		Messages:  []Message{},
		Interests: []string{},
	}
}

// RecordCity stores the city exactly as given and logs it as a user message.
func (s *State) RecordCity(city string) {
	s.City = city
	s.Messages = append(s.Messages, Message{Role: RoleUser, Content: city})
}

// RecordInterests parses the comma-separated interests and logs the raw text
// as a user message.
func (s *State) RecordInterests(raw string) {
	s.Interests = ParseInterests(raw)
	s.Messages = append(s.Messages, Message{Role: RoleUser, Content: raw})
}

// RecordItinerary stores the generated itinerary and logs it as an assistant
// message. The itinerary is set at most once; later calls are ignored and
// report false.
func (s *State) RecordItinerary(text string) bool {
	if s.itineraryRecorded {
		return false
	}
	s.itineraryRecorded = true
	s.Itinerary = text
	s.Messages = append(s.Messages, Message{Role: RoleAssistant, Content: text})
	return true
}

// HasItinerary reports whether RecordItinerary has succeeded.
func (s *State) HasItinerary() bool {
	return s.itineraryRecorded
}

// ParseInterests splits raw on commas, trims each token and drops the empty
// ones. Order and duplicates are preserved. The result is never nil.
func ParseInterests(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		token := strings.TrimSpace(p)
		if token == "" {
			continue
		}
		out = append(out, token)
	}
	return out
}
