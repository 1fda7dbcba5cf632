package ai

import "strings"

const (
	itinerarySystemTemplate  = "You are a helpful travel assistant. Create a day trip itinerary for %s based on the user's interests: %s. Provide a brief, bulleted itinerary."
	itineraryUserInstruction = "Create an itinerary for my day trip."
)

// PromptRequest is the input of the itinerary prompt template.
type PromptRequest struct {
	City      string
	Interests []string
}

// JoinedInterests returns the interests comma-joined in their original order.
func (r PromptRequest) JoinedInterests() string {
	return strings.Join(r.Interests, ",")
}
