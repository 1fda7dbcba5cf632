package ai

import "fmt"

// Render fills the itinerary template with the city and interests.
// Values are substituted verbatim; an empty city or interest list still
// yields a well-formed prompt.
func (r PromptRequest) Render() (systemInstruction, userInstruction string) {
	systemInstruction = fmt.Sprintf(itinerarySystemTemplate, r.City, r.JoinedInterests())
	return systemInstruction, itineraryUserInstruction
}
