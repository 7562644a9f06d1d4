//go:generate mockgen -source ./core.go -destination=./mocks/core.go -package=mock_core
package core

import (
	"context"
	"time"

	"go.uber.org/zap"

	"carbroker/internal/db"
	"carbroker/internal/repository"
)

type OrderRepository interface {
	Create(ctx context.Context, order *repository.Order) error
	CreateTx(ctx context.Context, tx db.Tx, order *repository.Order) error
	GetByID(ctx context.Context, id string) (*repository.Order, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Order, error)
	Update(ctx context.Context, order *repository.Order) error
	UpdateTx(ctx context.Context, tx db.Tx, order *repository.Order) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*repository.Order, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*repository.Order, error)
	ListByDriver(ctx context.Context, driverID string) ([]*repository.Order, error)
	ListCompletedWithoutCompletionBilling(ctx context.Context) ([]*repository.Order, error)
}

type AuctionRepository interface {
	Create(ctx context.Context, auction *repository.Auction) error
	GetByID(ctx context.Context, id string) (*repository.Auction, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Auction, error)
	Update(ctx context.Context, auction *repository.Auction) error
	// MarkSoldTx performs the conditional sold update. It reports false
	// when the auction was no longer active at write time.
	MarkSoldTx(ctx context.Context, tx db.Tx, id, buyerID string, at time.Time) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListActive(ctx context.Context) ([]*repository.Auction, error)
}

type BillingRepository interface {
	Create(ctx context.Context, billing *repository.Billing) error
	CreateTx(ctx context.Context, tx db.Tx, billing *repository.Billing) error
	// CreateCompletionTx inserts a completion_payment row only if the
	// order has none yet; reports false when one already exists.
	CreateCompletionTx(ctx context.Context, tx db.Tx, billing *repository.Billing) (bool, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Billing, error)
	UpdateTx(ctx context.Context, tx db.Tx, billing *repository.Billing) error
	ListByUser(ctx context.Context, userID string) ([]*repository.Billing, error)
	List(ctx context.Context) ([]*repository.Billing, error)
}

type HandoverRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, handover *repository.VehicleHandover) error
	ListByOrder(ctx context.Context, orderID string) ([]*repository.VehicleHandover, error)
}

type ApprovalRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, approval *repository.OrderApproval) error
	GetByID(ctx context.Context, id string) (*repository.OrderApproval, error)
	// Decide flips a pending, unexpired approval; reports false when the
	// row was already decided or expired.
	Decide(ctx context.Context, id string, status repository.ApprovalStatus, decidedBy string, at time.Time) (bool, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*repository.User, error)
	Create(ctx context.Context, user *repository.User) error
	UpdateStatus(ctx context.Context, id string, status repository.UserStatus) (bool, error)
}

type OutboxTaskRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error
}

// ListingCache is the in-memory view of active auctions. Optional; a
// nil cache means every listing read goes to the store.
type ListingCache interface {
	Loaded() bool
	GetAll() []*repository.Auction
	Set(auction *repository.Auction)
	Invalidate(auctionID string)
}

// Core executes every mutating operation of the brokerage against the
// store. Multi-step mutations run in a single transaction; billing rows
// are written only from inside those transactions.
type Core struct {
	db        db.DB
	orders    OrderRepository
	auctions  AuctionRepository
	billings  BillingRepository
	handovers HandoverRepository
	approvals ApprovalRepository
	users     UserRepository
	outbox    OutboxTaskRepository
	listings  ListingCache
	logger    *zap.Logger
}

func New(
	database db.DB,
	orders OrderRepository,
	auctions AuctionRepository,
	billings BillingRepository,
	handovers HandoverRepository,
	approvals ApprovalRepository,
	users UserRepository,
	outbox OutboxTaskRepository,
	logger *zap.Logger,
) *Core {
	return &Core{
		db:        database,
		orders:    orders,
		auctions:  auctions,
		billings:  billings,
		handovers: handovers,
		approvals: approvals,
		users:     users,
		outbox:    outbox,
		logger:    logger,
	}
}

// WithListingCache attaches the active-auction cache.
func (c *Core) WithListingCache(listings ListingCache) *Core {
	c.listings = listings
	return c
}
