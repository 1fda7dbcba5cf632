// README: Per-request conversation log for the itinerary flow.
package conversation

// Role identifies the author of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the conversation log.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// State is the ordered record of a single itinerary request.
// It is created fresh for every request and never shared between requests.
type State struct {
	Messages  []Message `json:"messages"`
	City      string    `json:"city"`
	Interests []string  `json:"interests"`
	Itinerary string    `json:"itinerary"`

	itineraryRecorded bool
}
