package mq

import "time"

// Routing keys for the events exchange.
const (
	RoutingKeyRequestDecided = "recipe_request.decided"
)

// RecipeRequestDecidedPayload is published when an admin approves or
// rejects a recipe request. EventID is unique per decision so broker
// redeliveries can be suppressed without collapsing repeated decisions.
type RecipeRequestDecidedPayload struct {
	EventID      string    `json:"event_id"`
	RequestID    int       `json:"request_id"`
	RequestedBy  string    `json:"requested_by"`
	Title        string    `json:"title"`
	Status       string    `json:"status"`
	AdminMessage string    `json:"admin_message"`
	DecidedAt    time.Time `json:"decided_at"`
}
