package service

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/models"
)

type MessageRepository interface {
	ListMessages(listingID int) ([]models.Message, error)
	InsertMessage(m models.Message) (models.Message, error)
}

// ListingSource is the slice of the listing store the message service
// needs: resolving a listing to its seller email.
type ListingSource interface {
	GetListing(id int) (models.Listing, error)
}

// ThreadEntry is a message plus its buyer/seller classification for the
// viewer loading the thread. The flag is derived by comparing the stored
// buyer email to the viewer-supplied one; it is display attribution, not
// an identity check, and reloading under a different email reclassifies
// the whole thread.
type ThreadEntry struct {
	models.Message
	IsBuyer bool `json:"is_buyer"`
}

type MessageService struct {
	messages MessageRepository
	listings ListingSource
}

func NewMessageService(messages MessageRepository, listings ListingSource) *MessageService {
	return &MessageService{messages: messages, listings: listings}
}

// LoadThread returns the listing's messages ordered oldest first, each
// classified against viewerEmail.
func (s *MessageService) LoadThread(listingID int, viewerEmail string) ([]ThreadEntry, error) {
	msgs, err := s.messages.ListMessages(listingID)
	if err != nil {
		return nil, fmt.Errorf("loading messages: %w", err)
	}
	thread := make([]ThreadEntry, 0, len(msgs))
	for _, m := range msgs {
		thread = append(thread, ThreadEntry{
			Message: m,
			IsBuyer: m.BuyerEmail == viewerEmail,
		})
	}
	return thread, nil
}

// Send appends one message to the listing's thread, with the viewer as
// buyer and the listing's stored seller email as seller. The persisted row
// is returned only after the insert succeeds; nothing is shown to the user
// before the store confirms it.
func (s *MessageService) Send(listingID int, viewerEmail, body string) (models.Message, error) {
	if strings.TrimSpace(body) == "" {
		return models.Message{}, errors.New("message text is required")
	}
	if strings.TrimSpace(viewerEmail) == "" {
		return models.Message{}, errors.New("email is required")
	}

	listing, err := s.listings.GetListing(listingID)
	if err != nil {
		return models.Message{}, fmt.Errorf("loading listing: %w", err)
	}

	created, err := s.messages.InsertMessage(models.Message{
		ListingID:   listingID,
		BuyerEmail:  viewerEmail,
		SellerEmail: listing.SellerEmail,
		Body:        body,
	})
	if err != nil {
		return models.Message{}, fmt.Errorf("sending message: %w", err)
	}
	return created, nil
}
