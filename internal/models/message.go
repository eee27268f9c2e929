package models

import "time"

// Message is one entry in a listing's conversation thread. The buyer email
// is whatever the sender typed in; it is not verified. Messages are
// append-only and ordered by created_at ascending within a listing.
type Message struct {
	ID          int       `json:"id"`
	ListingID   int       `json:"listing_id"`
	BuyerEmail  string    `json:"buyer_email"`
	SellerEmail string    `json:"seller_email"`
	Body        string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}
