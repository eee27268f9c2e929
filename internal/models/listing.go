package models

import "time"

// Listing is a single classified ad. Listings are immutable once created:
// there is no edit or delete path anywhere in the API.
type Listing struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	SellerEmail string    `json:"seller_email"`
	ImageURL    string    `json:"image_url"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
