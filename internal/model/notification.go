package model

import "time"

const (
	NotificationTypeRecipeRequest = "recipe_request"
	NotificationTypeInfo          = "info"
)

type Notification struct {
	ID      int    `json:"id"`
	UserID  string `json:"userId"`
	Message string `json:"message"`
	Type    string `json:"type"`
	// Status mirrors the triggering request's status; empty for info
	// notifications.
	Status    string    `json:"status"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
