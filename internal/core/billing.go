package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"carbroker/internal/metrics"
	"carbroker/internal/repository"
)

// CreateCompletionBilling pays out a completed job to its driver. The
// no-duplicate check and the insert run in one statement inside one
// transaction, so two admins confirming the same order cannot both
// create a payout.
func (c *Core) CreateCompletionBilling(ctx context.Context, p Principal, orderID, driverID string, amount decimal.Decimal) (*repository.Billing, error) {
	if err := authorize(p, opCreateCompletionBill); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	tx, err := c.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	order, err := c.orders.GetByIDTx(ctx, tx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order.Status != repository.OrderStatusCompleted {
		return nil, fmt.Errorf("%w: order is not completed", ErrValidation)
	}
	if order.AssignedDriverID == nil || *order.AssignedDriverID != driverID {
		return nil, fmt.Errorf("%w: driver did not perform this order", ErrValidation)
	}

	now := time.Now().UTC()
	billing := &repository.Billing{
		ID:          uuid.New().String(),
		UserID:      driverID,
		OrderID:     &orderID,
		AuctionID:   order.AuctionID,
		Amount:      amount,
		Type:        repository.BillingTypeCompletionPayment,
		Status:      repository.BillingStatusPending,
		Description: fmt.Sprintf("Completion payment for %s %s", order.VehicleBrand, order.VehicleModel),
		CreatedByID: p.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	inserted, err := c.billings.CreateCompletionTx(ctx, tx, billing)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion billing: %w", err)
	}
	if !inserted {
		return nil, fmt.Errorf("%w: order already has a completion payment", ErrConflict)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit completion billing: %w", err)
	}
	c.logger.Info("completion billing created",
		zap.String("billing_id", billing.ID),
		zap.String("order_id", orderID))
	return billing, nil
}

type UpdateBillingStatusInput struct {
	Status     repository.BillingStatus
	AdminNotes *string
	NewAmount  *decimal.Decimal
}

// UpdateBillingStatus decides a pending ledger entry. An amount
// overwrite always preserves the prior value in original_amount.
func (c *Core) UpdateBillingStatus(ctx context.Context, p Principal, billingID string, input UpdateBillingStatusInput) (*repository.Billing, error) {
	if err := authorize(p, opUpdateBillingStatus); err != nil {
		return nil, err
	}
	if input.Status != repository.BillingStatusApproved && input.Status != repository.BillingStatusRejected {
		return nil, fmt.Errorf("%w: decision must be approved or rejected", ErrValidation)
	}

	tx, err := c.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	billing, err := c.billings.GetByIDTx(ctx, tx, billingID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get billing: %w", err)
	}
	if billing.Status != repository.BillingStatusPending {
		return nil, fmt.Errorf("%w: billing entry is already %s", ErrConflict, billing.Status)
	}
	if err := validateBillingTransition(billing.Status, input.Status); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if input.NewAmount != nil && !input.NewAmount.Equal(billing.Amount) {
		if !input.NewAmount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
		}
		if !billing.OriginalAmount.Valid {
			billing.OriginalAmount = decimal.NewNullDecimal(billing.Amount)
		}
		billing.Amount = *input.NewAmount
	}
	billing.Status = input.Status
	billing.AdminNotes = input.AdminNotes
	billing.ApprovedBy = &p.UserID
	billing.ApprovedAt = &now
	billing.UpdatedAt = now

	if err := c.billings.UpdateTx(ctx, tx, billing); err != nil {
		return nil, fmt.Errorf("failed to update billing: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit billing decision: %w", err)
	}

	metrics.BillingDecisionsTotal.WithLabelValues(string(input.Status)).Inc()
	c.logger.Info("billing decided",
		zap.String("billing_id", billing.ID),
		zap.String("status", string(input.Status)))
	return billing, nil
}

// GetCompletedOrdersForBilling returns completed orders that have no
// completion payment yet. The filter is an SQL anti-join, so a row
// never shows up here once its payout exists.
func (c *Core) GetCompletedOrdersForBilling(ctx context.Context, p Principal) ([]*repository.Order, error) {
	if err := authorize(p, opCreateCompletionBill); err != nil {
		return nil, err
	}
	return c.orders.ListCompletedWithoutCompletionBilling(ctx)
}

func (c *Core) ListBillings(ctx context.Context, p Principal) ([]*repository.Billing, error) {
	if err := authorize(p, opListBillings); err != nil {
		return nil, err
	}
	if p.Role == repository.RoleAdmin {
		return c.billings.List(ctx)
	}
	return c.billings.ListByUser(ctx, p.UserID)
}
