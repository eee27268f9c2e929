package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"marketplace/internal/config"
	"marketplace/internal/models"
	"marketplace/internal/repository"
)

// Seeds the listings table with fake classifieds for local development.
func main() {
	count := flag.Int("count", 16, "number of listings to create")
	flag.Parse()

	gofakeit.Seed(time.Now().UnixNano())

	cfg := config.Load()
	repo, err := repository.NewPostgresRepo(cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	for i := 0; i < *count; i++ {
		category := models.Categories[gofakeit.Number(0, len(models.Categories)-1)]
		listing := models.Listing{
			Title:       gofakeit.ProductName(),
			Description: gofakeit.ProductDescription(),
			Price:       gofakeit.Price(5, 500),
			Category:    category.ID,
			SellerEmail: gofakeit.Email(),
			ImageURL:    fmt.Sprintf("https://picsum.photos/300/200?random=%d", i+1),
			Location:    gofakeit.City() + ", CA",
		}
		created, err := repo.InsertListing(listing)
		if err != nil {
			log.Fatalf("Failed to insert listing %d: %v", i+1, err)
		}
		log.Printf("Created listing %d: %s ($%.2f, %s)", created.ID, created.Title, created.Price, category.Name)
	}
	log.Printf("Seeded %d listings", *count)
}
