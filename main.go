package main

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"

	"marketplace/internal/api"
	"marketplace/internal/config"
	"marketplace/internal/models"
	"marketplace/internal/repository"
	"marketplace/internal/service"
	"marketplace/internal/storage"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	repo, err := repository.NewPostgresRepo(cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	log.Println("Connected to PostgreSQL")

	cacheClient := initRedis(cfg.RedisAddr(), cfg.RedisPassword)
	listingCache := &RedisListingCache{client: cacheClient, ttl: cfg.CacheTTL}
	log.Println("Connected to Redis")

	images, err := storage.New(storage.Config{
		Endpoint:  cfg.StorageEndpoint,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		UseSSL:    cfg.StorageUseSSL,
		Bucket:    cfg.StorageBucket,
	})
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}
	if cfg.IsConfigured() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := images.EnsureBucket(ctx); err != nil {
			cancel()
			log.Fatalf("Failed to ensure image bucket exists: %v", err)
		}
		cancel()
	} else {
		log.Println("Storage is not configured; image uploads will fail until it is")
	}

	listingService := service.NewListingService(repo, images, listingCache)
	messageService := service.NewMessageService(repo, repo)

	refresher := service.NewCacheRefresher(listingService, cfg.CacheRefreshInterval)
	if err := refresher.Start(); err != nil {
		log.Fatalf("Failed to start cache refresher: %v", err)
	}

	r := gin.Default()
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handler := api.NewAPIHandler(listingService, messageService, cfg)
	r.GET("/api/config-check", handler.ConfigCheck)
	v1 := r.Group("/api/v1")
	{
		v1.GET("/listings", handler.BrowseListings)
		v1.POST("/listings", handler.CreateListing)
		v1.GET("/listings/:id", handler.GetListing)
		v1.GET("/listings/:id/messages", handler.ListMessages)
		v1.POST("/listings/:id/messages", handler.SendMessage)
		v1.GET("/categories", handler.ListCategories)
	}

	log.Printf("Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func initRedis(addr string, password string) *redis.Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	}
	client := redis.NewClient(opts)
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	return client
}

const listingsCacheKey = "listings:all"

// RedisListingCache keeps the full newest-first listing set as one JSON
// blob so browse requests skip Postgres while the cache is warm.
type RedisListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ service.ListingCache = (*RedisListingCache)(nil)

func (rc *RedisListingCache) GetListings() ([]models.Listing, bool) {
	ctx := context.Background()
	raw, err := rc.client.Get(ctx, listingsCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Error reading listings cache: %v", err)
		}
		return nil, false
	}
	var listings []models.Listing
	if err := json.Unmarshal([]byte(raw), &listings); err != nil {
		log.Printf("Error decoding listings cache: %v", err)
		return nil, false
	}
	return listings, true
}

func (rc *RedisListingCache) SetListings(listings []models.Listing) error {
	raw, err := json.Marshal(listings)
	if err != nil {
		return err
	}
	ctx := context.Background()
	return rc.client.Set(ctx, listingsCacheKey, raw, rc.ttl).Err()
}

func (rc *RedisListingCache) Invalidate() error {
	ctx := context.Background()
	return rc.client.Del(ctx, listingsCacheKey).Err()
}
