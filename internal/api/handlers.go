package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"marketplace/internal/config"
	"marketplace/internal/models"
	"marketplace/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Listings *service.ListingService
	Messages *service.MessageService
	Config   *config.Config
}

func NewAPIHandler(listings *service.ListingService, messages *service.MessageService, cfg *config.Config) *Handler {
	return &Handler{
		Listings: listings,
		Messages: messages,
		Config:   cfg,
	}
}

// BrowseListings returns all listings newest-first, narrowed by the
// optional search, category, min_price and max_price query parameters.
func (h *Handler) BrowseListings(c *gin.Context) {
	filter := service.ListingFilter{
		Term:     c.Query("search"),
		Category: c.Query("category"),
		MinPrice: c.Query("min_price"),
		MaxPrice: c.Query("max_price"),
	}
	listings, err := h.Listings.Browse()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	filtered := service.FilterListings(listings, filter)
	c.JSON(http.StatusOK, gin.H{"listings": filtered, "count": len(filtered)})
}

func (h *Handler) GetListing(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}
	listing, err := h.Listings.Get(id)
	if errors.Is(err, service.ErrListingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"listing": listing})
}

// CreateListing accepts a multipart form with the six listing fields and up
// to five photos. Only the first photo is uploaded and referenced by the
// stored listing.
func (h *Handler) CreateListing(c *gin.Context) {
	draft := service.NewListingDraft()
	draft.Title = c.PostForm("title")
	draft.Description = c.PostForm("description")
	draft.Price = c.PostForm("price")
	draft.SellerEmail = c.PostForm("seller_email")
	draft.Category = c.PostForm("category")
	if loc := c.PostForm("location"); loc != "" {
		draft.Location = loc
	}

	form, err := c.MultipartForm()
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if form != nil {
		for _, fh := range form.File["photos"] {
			f, err := fh.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			draft.StageImages(service.StagedImage{Name: fh.Filename, Data: data})
		}
	}

	listing, err := h.Listings.Create(c.Request.Context(), draft)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Listing created successfully!",
		"listing": listing,
	})
}

// ListMessages returns the listing's thread oldest-first. The viewer_email
// query parameter drives the buyer/seller attribution of each entry.
func (h *Handler) ListMessages(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}
	thread, err := h.Messages.LoadThread(id, c.Query("viewer_email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": thread})
}

type sendMessageRequest struct {
	BuyerEmail string `json:"buyer_email" binding:"required,email"`
	Message    string `json:"message" binding:"required"`
}

func (h *Handler) SendMessage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	msg, err := h.Messages.Send(id, req.BuyerEmail, req.Message)
	if errors.Is(err, service.ErrListingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent successfully!",
		"sent":    msg,
	})
}

func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.Categories})
}

// ConfigCheck reports whether the data-store connection parameters are
// present and not placeholders. Read-only, no side effects.
func (h *Handler) ConfigCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"configured": h.Config.IsConfigured()})
}
