package model

import "time"

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// DefaultAdminMessage is stored on submission, before an admin has decided.
const DefaultAdminMessage = "Your recipe is under review."

type RecipeRequest struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	RequestedBy  string    `json:"requestedBy"`
	Status       string    `json:"status"`
	AdminMessage string    `json:"adminMessage"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RequestCounts is the aggregate returned by the count endpoint.
type RequestCounts struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}
