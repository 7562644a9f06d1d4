package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"carbroker/internal/cache"
	mock_core "carbroker/internal/core/mocks"
	"carbroker/internal/repository"
)

func cachedAuction(id string, createdAt time.Time) *repository.Auction {
	return &repository.Auction{
		ID:        id,
		Status:    repository.AuctionStatusActive,
		CreatedAt: createdAt,
	}
}

func TestAuctionCache_LoadInitialData(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("warms from the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mock_core.NewMockAuctionRepository(ctrl)
		repo.EXPECT().ListActive(gomock.Any()).Return([]*repository.Auction{
			cachedAuction("auction-1", now),
			cachedAuction("auction-2", now.Add(time.Hour)),
		}, nil)

		c := cache.NewAuctionCache(repo, zap.NewNop())
		assert.False(t, c.Loaded())

		err := c.LoadInitialData(ctx)
		assert.NoError(t, err)
		assert.True(t, c.Loaded())
		assert.Len(t, c.GetAll(), 2)
	})

	t.Run("load failure keeps the cache cold", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mock_core.NewMockAuctionRepository(ctrl)
		repo.EXPECT().ListActive(gomock.Any()).Return(nil, assert.AnError)

		c := cache.NewAuctionCache(repo, zap.NewNop())
		err := c.LoadInitialData(ctx)
		assert.Error(t, err)
		assert.False(t, c.Loaded())
	})
}

func TestAuctionCache_GetAll(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("newest first", func(t *testing.T) {
		c := cache.NewAuctionCache(nil, zap.NewNop())
		c.Set(cachedAuction("auction-old", now))
		c.Set(cachedAuction("auction-new", now.Add(time.Hour)))

		all := c.GetAll()
		assert.Len(t, all, 2)
		assert.Equal(t, "auction-new", all[0].ID)
		assert.Equal(t, "auction-old", all[1].ID)
	})

	t.Run("returns copies", func(t *testing.T) {
		c := cache.NewAuctionCache(nil, zap.NewNop())
		c.Set(cachedAuction("auction-1", now))

		all := c.GetAll()
		all[0].Status = repository.AuctionStatusSold

		again := c.GetAll()
		assert.Equal(t, repository.AuctionStatusActive, again[0].Status)
	})
}

func TestAuctionCache_Invalidate(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	c := cache.NewAuctionCache(nil, zap.NewNop())
	c.Set(cachedAuction("auction-1", now))
	c.Set(cachedAuction("auction-2", now))

	c.Invalidate("auction-1")

	all := c.GetAll()
	assert.Len(t, all, 1)
	assert.Equal(t, "auction-2", all[0].ID)

	// Invalidating an absent id is a no-op.
	c.Invalidate("auction-404")
	assert.Len(t, c.GetAll(), 1)
}
