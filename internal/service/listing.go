package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"marketplace/internal/models"
)

// DefaultLocation pre-fills the location field of a new draft.
const DefaultLocation = "Palo Alto, CA"

// MaxStagedImages caps how many photos a draft accepts. Only the first
// staged image is ever uploaded; the rest exist for preview only.
const MaxStagedImages = 5

var ErrListingNotFound = errors.New("listing not found")

type ListingRepository interface {
	ListListings() ([]models.Listing, error)
	GetListing(id int) (models.Listing, error)
	InsertListing(l models.Listing) (models.Listing, error)
}

type ImageUploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
	PublicURL(key string) string
}

type ListingCache interface {
	GetListings() ([]models.Listing, bool)
	SetListings(listings []models.Listing) error
	Invalidate() error
}

// ListingFilter holds the four optional browse criteria. Empty string means
// no constraint. Prices arrive as user-entered text and are evaluated
// literally: a min above the max matches nothing, it is not auto-corrected.
type ListingFilter struct {
	Term     string
	Category string
	MinPrice string
	MaxPrice string
}

// FilterListings returns the subsequence of listings satisfying every
// active criterion, preserving the input order. Pure function; callers
// re-run it whenever the listings or any criterion change.
func FilterListings(listings []models.Listing, f ListingFilter) []models.Listing {
	filtered := listings

	if f.Term != "" {
		term := strings.ToLower(f.Term)
		var matched []models.Listing
		for _, l := range filtered {
			if strings.Contains(strings.ToLower(l.Title), term) ||
				strings.Contains(strings.ToLower(l.Description), term) {
				matched = append(matched, l)
			}
		}
		filtered = matched
	}

	if f.Category != "" {
		var matched []models.Listing
		for _, l := range filtered {
			if l.Category == f.Category {
				matched = append(matched, l)
			}
		}
		filtered = matched
	}

	if f.MinPrice != "" || f.MaxPrice != "" {
		min, max := 0.0, math.Inf(1)
		if f.MinPrice != "" {
			min = parsePrice(f.MinPrice)
		}
		if f.MaxPrice != "" {
			max = parsePrice(f.MaxPrice)
		}
		var matched []models.Listing
		for _, l := range filtered {
			if l.Price >= min && l.Price <= max {
				matched = append(matched, l)
			}
		}
		filtered = matched
	}

	return filtered
}

// parsePrice returns NaN for unparseable input so that every comparison
// against the bound fails, matching the literal range evaluation above.
func parsePrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// StagedImage is a photo the user has attached to a draft but that has not
// been uploaded anywhere yet.
type StagedImage struct {
	Name    string
	Data    []byte
	Preview string
}

// ListingDraft accumulates the form fields and staged photos for one
// listing-to-be. It holds no connection to any backend; submit it through
// ListingService.Create.
type ListingDraft struct {
	Title       string
	Description string
	Price       string
	SellerEmail string
	Category    string
	Location    string

	images []StagedImage
}

func NewListingDraft() *ListingDraft {
	return &ListingDraft{Location: DefaultLocation}
}

// StageImages appends photos to the draft up to MaxStagedImages. Anything
// past the remaining capacity is silently dropped. A data-URL preview is
// rendered for each accepted image.
func (d *ListingDraft) StageImages(images ...StagedImage) {
	room := MaxStagedImages - len(d.images)
	if room <= 0 {
		return
	}
	if len(images) > room {
		images = images[:room]
	}
	for _, img := range images {
		if img.Preview == "" {
			img.Preview = previewDataURL(img.Data)
		}
		d.images = append(d.images, img)
	}
}

// RemoveImage drops the staged image at index i, payload and preview both,
// leaving the relative order of the rest untouched. Out-of-range indexes
// are ignored.
func (d *ListingDraft) RemoveImage(i int) {
	if i < 0 || i >= len(d.images) {
		return
	}
	d.images = append(d.images[:i], d.images[i+1:]...)
}

func (d *ListingDraft) Images() []StagedImage {
	return d.images
}

// Reset returns the draft to its initial state after a successful submit.
func (d *ListingDraft) Reset() {
	*d = ListingDraft{Location: DefaultLocation}
}

// Validate checks the required fields and returns the parsed price.
func (d *ListingDraft) Validate() (float64, error) {
	switch {
	case strings.TrimSpace(d.Title) == "":
		return 0, errors.New("title is required")
	case strings.TrimSpace(d.Description) == "":
		return 0, errors.New("description is required")
	case strings.TrimSpace(d.Category) == "":
		return 0, errors.New("category is required")
	case strings.TrimSpace(d.SellerEmail) == "":
		return 0, errors.New("contact email is required")
	case strings.TrimSpace(d.Location) == "":
		return 0, errors.New("location is required")
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(d.Price), 64)
	if err != nil {
		return 0, fmt.Errorf("price %q is not a number", d.Price)
	}
	if price < 0 {
		return 0, errors.New("price cannot be negative")
	}
	return price, nil
}

func previewDataURL(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return "data:" + http.DetectContentType(data) + ";base64," +
		base64.StdEncoding.EncodeToString(data)
}

type ListingService struct {
	repo   ListingRepository
	images ImageUploader
	cache  ListingCache
}

func NewListingService(repo ListingRepository, images ImageUploader, cache ListingCache) *ListingService {
	return &ListingService{repo: repo, images: images, cache: cache}
}

// Browse returns every listing, newest first, serving from the cache when
// it is warm.
func (s *ListingService) Browse() ([]models.Listing, error) {
	if s.cache != nil {
		if listings, ok := s.cache.GetListings(); ok {
			return listings, nil
		}
	}
	listings, err := s.repo.ListListings()
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetListings(listings); err != nil {
			log.Printf("Error caching listings: %v", err)
		}
	}
	return listings, nil
}

func (s *ListingService) Get(id int) (models.Listing, error) {
	return s.repo.GetListing(id)
}

// Create submits a draft: the first staged image, if any, is uploaded
// first, then one listing row is inserted. An upload failure aborts before
// any insert so no half-created listing exists; the draft is left intact
// either way so the caller can retry.
func (s *ListingService) Create(ctx context.Context, d *ListingDraft) (models.Listing, error) {
	price, err := d.Validate()
	if err != nil {
		return models.Listing{}, err
	}

	imageURL := ""
	if imgs := d.Images(); len(imgs) > 0 {
		first := imgs[0]
		key := fmt.Sprintf("listings/%d%s", time.Now().UnixMilli(), filepath.Ext(first.Name))
		contentType := http.DetectContentType(first.Data)
		if err := s.images.Upload(ctx, key, contentType, first.Data); err != nil {
			return models.Listing{}, fmt.Errorf("uploading image: %w", err)
		}
		imageURL = s.images.PublicURL(key)
	}

	created, err := s.repo.InsertListing(models.Listing{
		Title:       d.Title,
		Description: d.Description,
		Price:       price,
		Category:    d.Category,
		SellerEmail: d.SellerEmail,
		ImageURL:    imageURL,
		Location:    d.Location,
	})
	if err != nil {
		return models.Listing{}, fmt.Errorf("creating listing: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(); err != nil {
			log.Printf("Error invalidating listings cache: %v", err)
		}
	}
	return created, nil
}

// RefreshCache re-primes the listings cache from the store.
func (s *ListingService) RefreshCache() error {
	if s.cache == nil {
		return nil
	}
	listings, err := s.repo.ListListings()
	if err != nil {
		return err
	}
	return s.cache.SetListings(listings)
}
