package cache

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"carbroker/internal/metrics"
	"carbroker/internal/repository"
)

type AuctionLister interface {
	ListActive(ctx context.Context) ([]*repository.Auction, error)
}

// AuctionCache keeps the active instant-buy listings in memory so the
// browse endpoint does not hit the store on every request. Writers must
// invalidate entries they consume (purchase, cancel, delete).
type AuctionCache struct {
	mu     sync.RWMutex
	cache  map[string]*repository.Auction
	repo   AuctionLister
	loaded bool
	logger *zap.Logger
}

func NewAuctionCache(repo AuctionLister, logger *zap.Logger) *AuctionCache {
	return &AuctionCache{
		cache:  make(map[string]*repository.Auction),
		repo:   repo,
		logger: logger,
	}
}

func (c *AuctionCache) LoadInitialData(ctx context.Context) error {
	auctions, err := c.repo.ListActive(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range auctions {
		copied := *a
		c.cache[a.ID] = &copied
	}
	c.loaded = true
	metrics.AuctionCacheItems.Set(float64(len(c.cache)))
	c.logger.Info("auction cache warmed", zap.Int("count", len(c.cache)))
	return nil
}

func (c *AuctionCache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *AuctionCache) GetAll() []*repository.Auction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*repository.Auction, 0, len(c.cache))
	for _, a := range c.cache {
		copied := *a
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (c *AuctionCache) Set(auction *repository.Auction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *auction
	c.cache[auction.ID] = &copied
	metrics.AuctionCacheItems.Set(float64(len(c.cache)))
}

func (c *AuctionCache) Invalidate(auctionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, auctionID)
	metrics.AuctionCacheItems.Set(float64(len(c.cache)))
}
