package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"carbroker/internal/metrics"
	"carbroker/internal/repository"
)

const auditTopic = "audit_logs"

type CreateAuctionInput struct {
	PickupLocation   string
	DeliveryLocation string
	VehicleBrand     string
	VehicleModel     string
	VehicleYear      *int
	PickupDate       time.Time
	DeliveryDate     *time.Time
	PickupTimeFrom   string
	PickupTimeTo     string
	DeliveryTimeFrom string
	DeliveryTimeTo   string
	InstantPrice     decimal.Decimal
	DistanceKm       *float64
	Notes            *string
}

// PurchaseResult pairs the sold auction with the order it spawned.
type PurchaseResult struct {
	Auction *repository.Auction
	Order   *repository.Order
}

func (c *Core) CreateAuction(ctx context.Context, p Principal, input CreateAuctionInput) (*repository.Auction, error) {
	if err := authorize(p, opCreateAuction); err != nil {
		return nil, err
	}
	if input.PickupLocation == "" || input.DeliveryLocation == "" {
		return nil, fmt.Errorf("%w: pickup and delivery locations are required", ErrValidation)
	}
	if input.VehicleBrand == "" || input.VehicleModel == "" {
		return nil, fmt.Errorf("%w: vehicle brand and model are required", ErrValidation)
	}
	if input.PickupDate.IsZero() {
		return nil, fmt.Errorf("%w: pickup date is required", ErrValidation)
	}
	// Auctions require all four time windows, unlike orders.
	if input.PickupTimeFrom == "" || input.PickupTimeTo == "" ||
		input.DeliveryTimeFrom == "" || input.DeliveryTimeTo == "" {
		return nil, fmt.Errorf("%w: all four time windows are required", ErrValidation)
	}
	if !input.InstantPrice.IsPositive() {
		return nil, fmt.Errorf("%w: instant price must be positive", ErrValidation)
	}

	now := time.Now().UTC()
	auction := &repository.Auction{
		ID:               uuid.New().String(),
		PickupLocation:   input.PickupLocation,
		DeliveryLocation: input.DeliveryLocation,
		VehicleBrand:     input.VehicleBrand,
		VehicleModel:     input.VehicleModel,
		VehicleYear:      input.VehicleYear,
		PickupDate:       input.PickupDate,
		DeliveryDate:     input.DeliveryDate,
		PickupTimeFrom:   input.PickupTimeFrom,
		PickupTimeTo:     input.PickupTimeTo,
		DeliveryTimeFrom: input.DeliveryTimeFrom,
		DeliveryTimeTo:   input.DeliveryTimeTo,
		InstantPrice:     input.InstantPrice,
		DistanceKm:       input.DistanceKm,
		Notes:            input.Notes,
		Status:           repository.AuctionStatusActive,
		CreatedByID:      p.UserID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := c.auctions.Create(ctx, auction); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("create_auction").Inc()
		return nil, fmt.Errorf("failed to create auction: %w", err)
	}
	if c.listings != nil {
		c.listings.Set(auction)
	}
	c.logger.Info("auction created",
		zap.String("auction_id", auction.ID),
		zap.String("instant_price", auction.InstantPrice.StringFixed(2)))
	return auction, nil
}

// PurchaseAuction is the instant-buy transaction. The sold flip is a
// conditional update re-checking status at write time, so of N
// concurrent buyers exactly one succeeds; the rest observe zero
// affected rows and get ErrNotAvailable. Order and billing inserts only
// happen after the flip, inside the same transaction.
func (c *Core) PurchaseAuction(ctx context.Context, p Principal, auctionID string) (*PurchaseResult, error) {
	if err := authorize(p, opPurchaseAuction); err != nil {
		return nil, err
	}

	tx, err := c.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	auction, err := c.auctions.GetByIDTx(ctx, tx, auctionID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotAvailable
		}
		return nil, fmt.Errorf("failed to get auction: %w", err)
	}
	if auction.Status != repository.AuctionStatusActive {
		return nil, ErrNotAvailable
	}

	now := time.Now().UTC()
	sold, err := c.auctions.MarkSoldTx(ctx, tx, auctionID, p.UserID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to mark auction sold: %w", err)
	}
	if !sold {
		// Another purchase won the race between our read and write.
		metrics.PurchaseConflictsTotal.Inc()
		return nil, ErrNotAvailable
	}
	auction.Status = repository.AuctionStatusSold
	auction.PurchasedByID = &p.UserID
	auction.PurchasedAt = &now
	auction.UpdatedAt = now

	// Buyer owns the job immediately: no open/assign/accept detour.
	order := &repository.Order{
		ID:               uuid.New().String(),
		PickupLocation:   auction.PickupLocation,
		DeliveryLocation: auction.DeliveryLocation,
		VehicleBrand:     auction.VehicleBrand,
		VehicleModel:     auction.VehicleModel,
		VehicleYear:      auction.VehicleYear,
		PickupDate:       auction.PickupDate,
		DeliveryDate:     auction.DeliveryDate,
		PickupTimeFrom:   &auction.PickupTimeFrom,
		PickupTimeTo:     &auction.PickupTimeTo,
		DeliveryTimeFrom: &auction.DeliveryTimeFrom,
		DeliveryTimeTo:   &auction.DeliveryTimeTo,
		Price:            auction.InstantPrice,
		DistanceKm:       auction.DistanceKm,
		Notes:            auction.Notes,
		Status:           repository.OrderStatusInProgress,
		AssignedDriverID: &p.UserID,
		CreatedByID:      auction.CreatedByID,
		FromAuction:      true,
		AuctionID:        &auction.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := c.orders.CreateTx(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order from auction: %w", err)
	}

	billing := &repository.Billing{
		ID:          uuid.New().String(),
		UserID:      p.UserID,
		OrderID:     &order.ID,
		AuctionID:   &auction.ID,
		Amount:      auction.InstantPrice,
		Type:        repository.BillingTypeOrderPayment,
		Status:      repository.BillingStatusPending,
		Description: fmt.Sprintf("Instant purchase of %s %s for %s", auction.VehicleBrand, auction.VehicleModel, auction.InstantPrice.StringFixed(2)),
		CreatedByID: auction.CreatedByID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.billings.CreateTx(ctx, tx, billing); err != nil {
		return nil, fmt.Errorf("failed to create purchase billing: %w", err)
	}

	payload, err := json.Marshal(repository.AuditLogPayload{
		Timestamp:  now,
		UserID:     p.UserID,
		Handler:    "purchase_auction",
		EntityID:   auction.ID,
		EntityType: "auction",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audit payload: %w", err)
	}
	task := &repository.OutboxTask{Payload: payload, Topic: auditTopic}
	if err := c.outbox.CreateTx(ctx, tx, task); err != nil {
		return nil, fmt.Errorf("failed to enqueue audit task: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit purchase: %w", err)
	}

	if c.listings != nil {
		c.listings.Invalidate(auction.ID)
	}
	metrics.AuctionsPurchasedTotal.Inc()
	c.logger.Info("auction purchased",
		zap.String("auction_id", auction.ID),
		zap.String("order_id", order.ID),
		zap.String("buyer_id", p.UserID))
	return &PurchaseResult{Auction: auction, Order: order}, nil
}

func (c *Core) UpdateAuctionStatus(ctx context.Context, p Principal, auctionID string, newStatus repository.AuctionStatus) (*repository.Auction, error) {
	if err := authorize(p, opUpdateAuctionStatus); err != nil {
		return nil, err
	}

	auction, err := c.auctions.GetByID(ctx, auctionID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get auction: %w", err)
	}
	if err := validateAuctionTransition(auction.Status, newStatus); err != nil {
		return nil, err
	}

	auction.Status = newStatus
	auction.UpdatedAt = time.Now().UTC()
	if err := c.auctions.Update(ctx, auction); err != nil {
		return nil, fmt.Errorf("failed to update auction: %w", err)
	}
	if c.listings != nil && newStatus != repository.AuctionStatusActive {
		c.listings.Invalidate(auction.ID)
	}
	return auction, nil
}

// DeleteAuction removes a listing. Sold auctions are billing evidence
// and stay.
func (c *Core) DeleteAuction(ctx context.Context, p Principal, auctionID string) (bool, error) {
	if err := authorize(p, opDeleteAuction); err != nil {
		return false, err
	}
	auction, err := c.auctions.GetByID(ctx, auctionID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get auction: %w", err)
	}
	if auction.Status == repository.AuctionStatusSold {
		return false, fmt.Errorf("%w: sold auctions cannot be deleted", ErrConflict)
	}
	deleted, err := c.auctions.Delete(ctx, auctionID)
	if err != nil {
		return false, fmt.Errorf("failed to delete auction: %w", err)
	}
	if deleted && c.listings != nil {
		c.listings.Invalidate(auctionID)
	}
	return deleted, nil
}

func (c *Core) ListActiveAuctions(ctx context.Context, p Principal) ([]*repository.Auction, error) {
	if err := authorize(p, opListAuctions); err != nil {
		return nil, err
	}
	if c.listings != nil && c.listings.Loaded() {
		return c.listings.GetAll(), nil
	}
	return c.auctions.ListActive(ctx)
}
