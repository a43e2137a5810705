package model

import "time"

type Recipe struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Preptime     int     `json:"preptime"`
	Category     string  `json:"category"`
	Image        string  `json:"image"`
	CloudinaryID string  `json:"cloudinary_id"`
	Description  string  `json:"description"`
	Ingredients  string  `json:"ingredients"`
	Rating       float64 `json:"rating"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Categories is the fixed set a recipe may belong to.
var Categories = []string{
	"Salad",
	"Rolls & Wraps",
	"Pastry & Desserts",
	"Sandwich",
	"Veg",
	"Non-Veg",
	"Pasta & Noodles",
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
