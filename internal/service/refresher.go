package service

import (
	"log"
	"time"
)

// CacheRefresher periodically re-primes the listings cache so browse
// requests keep hitting Redis between writes.
type CacheRefresher struct {
	service   *ListingService
	interval  time.Duration
	ticker    *time.Ticker
	stopChan  chan struct{}
	isRunning bool
}

func NewCacheRefresher(service *ListingService, interval time.Duration) *CacheRefresher {
	return &CacheRefresher{
		service:  service,
		interval: interval,
	}
}

func (cr *CacheRefresher) Start() error {
	if cr.isRunning {
		log.Println("Cache refresher is already running.")
		return nil
	}
	cr.ticker = time.NewTicker(cr.interval)
	cr.stopChan = make(chan struct{})
	cr.isRunning = true
	go func() {
		log.Println("Listings cache refresher started.")
		for {
			select {
			case <-cr.stopChan:
				cr.ticker.Stop()
				cr.isRunning = false
				log.Println("Listings cache refresher stopped.")
				return
			case <-cr.ticker.C:
				if err := cr.service.RefreshCache(); err != nil {
					log.Printf("Error refreshing listings cache: %v", err)
				}
			}
		}
	}()
	return nil
}

func (cr *CacheRefresher) Stop() error {
	if !cr.isRunning {
		log.Println("Cache refresher is not running.")
		return nil
	}
	close(cr.stopChan)
	return nil
}

func (cr *CacheRefresher) IsRunning() bool {
	return cr.isRunning
}
