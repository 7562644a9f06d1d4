package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"carbroker/internal/repository"
)

type CreateHandoverInput struct {
	OrderID     string
	Type        repository.HandoverType
	KmReading   int
	FuelLevel   string
	Condition   string
	DamageNotes *string
	Photos      []string
	Signature   *string
	Location    string
}

// CreateVehicleHandover records the condition report and drives the
// order forward in the same transaction: a pickup report starts the
// job, a delivery report completes it.
func (c *Core) CreateVehicleHandover(ctx context.Context, p Principal, input CreateHandoverInput) (*repository.VehicleHandover, error) {
	if err := authorize(p, opCreateHandover); err != nil {
		return nil, err
	}
	if input.Type != repository.HandoverTypePickup && input.Type != repository.HandoverTypeDelivery {
		return nil, fmt.Errorf("%w: handover type must be pickup or delivery", ErrValidation)
	}
	if input.KmReading < 0 {
		return nil, fmt.Errorf("%w: km reading cannot be negative", ErrValidation)
	}
	if input.Condition == "" || input.Location == "" {
		return nil, fmt.Errorf("%w: condition and location are required", ErrValidation)
	}

	tx, err := c.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	order, err := c.orders.GetByIDTx(ctx, tx, input.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order.AssignedDriverID == nil || *order.AssignedDriverID != p.UserID {
		return nil, fmt.Errorf("%w: order is not assigned to caller", ErrForbidden)
	}

	now := time.Now().UTC()
	switch input.Type {
	case repository.HandoverTypePickup:
		switch order.Status {
		case repository.OrderStatusAssigned:
			order.Status = repository.OrderStatusInProgress
		case repository.OrderStatusInProgress:
			// Auction-sourced orders start in_progress; the pickup
			// report then only documents the vehicle condition.
		default:
			return nil, fmt.Errorf("%w: pickup handover requires an assigned or running order", ErrValidation)
		}
	case repository.HandoverTypeDelivery:
		if order.Status != repository.OrderStatusInProgress {
			return nil, fmt.Errorf("%w: delivery handover requires a running order", ErrValidation)
		}
		order.Status = repository.OrderStatusCompleted
	}

	photos, err := json.Marshal(input.Photos)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal photos: %w", err)
	}
	handover := &repository.VehicleHandover{
		ID:          uuid.New().String(),
		OrderID:     order.ID,
		DriverID:    p.UserID,
		Type:        input.Type,
		KmReading:   input.KmReading,
		FuelLevel:   input.FuelLevel,
		Condition:   input.Condition,
		DamageNotes: input.DamageNotes,
		Photos:      photos,
		Signature:   input.Signature,
		Location:    input.Location,
		CreatedAt:   now,
	}
	if err := c.handovers.CreateTx(ctx, tx, handover); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s handover already recorded for this order", ErrConflict, input.Type)
		}
		return nil, fmt.Errorf("failed to create handover: %w", err)
	}

	order.UpdatedAt = now
	if err := c.orders.UpdateTx(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit handover: %w", err)
	}

	c.logger.Info("handover recorded",
		zap.String("order_id", order.ID),
		zap.String("type", string(input.Type)),
		zap.String("order_status", string(order.Status)))
	return handover, nil
}

func (c *Core) ListHandovers(ctx context.Context, p Principal, orderID string) ([]*repository.VehicleHandover, error) {
	if err := authorize(p, opListHandovers); err != nil {
		return nil, err
	}
	order, err := c.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if !canReadOrder(p, order) {
		return nil, fmt.Errorf("%w: order belongs to another principal", ErrForbidden)
	}
	return c.handovers.ListByOrder(ctx, orderID)
}
