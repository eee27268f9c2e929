package service

import (
	"fmt"
	"testing"
	"time"

	"marketplace/internal/models"
)

type stubMessageRepo struct {
	messages  []models.Message
	insertErr error
}

func (r *stubMessageRepo) ListMessages(listingID int) ([]models.Message, error) {
	var out []models.Message
	for _, m := range r.messages {
		if m.ListingID == listingID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMessageRepo) InsertMessage(m models.Message) (models.Message, error) {
	if r.insertErr != nil {
		return models.Message{}, r.insertErr
	}
	m.ID = len(r.messages) + 1
	m.CreatedAt = time.Now().UTC()
	r.messages = append(r.messages, m)
	return m, nil
}

type stubListingSource struct {
	listing models.Listing
}

func (s *stubListingSource) GetListing(id int) (models.Listing, error) {
	if id != s.listing.ID {
		return models.Listing{}, ErrListingNotFound
	}
	return s.listing, nil
}

func messageFixture() (*stubMessageRepo, *stubListingSource, *MessageService) {
	repo := &stubMessageRepo{}
	listings := &stubListingSource{listing: models.Listing{ID: 7, Title: "Red Bike", SellerEmail: "s@x.com"}}
	return repo, listings, NewMessageService(repo, listings)
}

func TestSendMessage(t *testing.T) {
	repo, _, svc := messageFixture()

	sent, err := svc.Send(7, "a@x.com", "Is this available?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent.BuyerEmail != "a@x.com" {
		t.Errorf("expected buyer_email a@x.com, got %q", sent.BuyerEmail)
	}
	if sent.SellerEmail != "s@x.com" {
		t.Errorf("expected seller_email taken from the listing, got %q", sent.SellerEmail)
	}
	if sent.ID == 0 || sent.CreatedAt.IsZero() {
		t.Error("expected store-assigned id and timestamp on the returned message")
	}
	if len(repo.messages) != 1 {
		t.Fatalf("expected 1 stored message, got %d", len(repo.messages))
	}

	thread, err := svc.LoadThread(7, "a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(thread) != 1 || !thread[0].IsBuyer {
		t.Errorf("expected the sent message classified buyer-side for its author")
	}
	if thread[0].Body != "Is this available?" {
		t.Errorf("unexpected message body %q", thread[0].Body)
	}
}

func TestSendMessageValidation(t *testing.T) {
	repo, _, svc := messageFixture()

	if _, err := svc.Send(7, "a@x.com", "   "); err == nil {
		t.Error("expected error for blank message text")
	}
	if _, err := svc.Send(7, "", "hello"); err == nil {
		t.Error("expected error for missing viewer email")
	}
	if len(repo.messages) != 0 {
		t.Errorf("expected no stored messages, got %d", len(repo.messages))
	}
}

func TestSendMessageUnknownListing(t *testing.T) {
	repo, _, svc := messageFixture()

	if _, err := svc.Send(99, "a@x.com", "hello"); err == nil {
		t.Error("expected error for unknown listing")
	}
	if len(repo.messages) != 0 {
		t.Errorf("expected no stored messages, got %d", len(repo.messages))
	}
}

func TestSendMessageInsertFailureLeavesThreadUnchanged(t *testing.T) {
	repo, _, svc := messageFixture()
	repo.insertErr = fmt.Errorf("simulated insert failure")

	if _, err := svc.Send(7, "a@x.com", "hello"); err == nil {
		t.Fatal("expected error from failed insert")
	}
	thread, err := svc.LoadThread(7, "a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(thread) != 0 {
		t.Errorf("no phantom entry may appear after a failed send, got %d", len(thread))
	}
}

func TestLoadThreadClassification(t *testing.T) {
	_, _, svc := messageFixture()
	if _, err := svc.Send(7, "a@x.com", "Is this available?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Send(7, "b@x.com", "I'll take it"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	thread, err := svc.LoadThread(7, "a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(thread) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(thread))
	}
	if !thread[0].IsBuyer || thread[1].IsBuyer {
		t.Error("classification must match the viewer email, not the sender session")
	}

	// The same thread viewed under the other email flips attribution.
	thread, err = svc.LoadThread(7, "b@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if thread[0].IsBuyer || !thread[1].IsBuyer {
		t.Error("expected reclassification under the new viewer email")
	}
}

func TestLoadThreadEmpty(t *testing.T) {
	_, _, svc := messageFixture()
	thread, err := svc.LoadThread(7, "a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(thread) != 0 {
		t.Errorf("expected empty thread, got %d entries", len(thread))
	}
}
