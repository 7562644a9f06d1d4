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

	"carbroker/internal/db"
	"carbroker/internal/metrics"
	"carbroker/internal/repository"
)

const assignmentApprovalTTL = 24 * time.Hour

type CreateOrderInput struct {
	PickupLocation   string
	DeliveryLocation string
	VehicleBrand     string
	VehicleModel     string
	VehicleYear      *int
	PickupDate       time.Time
	DeliveryDate     *time.Time
	PickupTimeFrom   *string
	PickupTimeTo     *string
	DeliveryTimeFrom *string
	DeliveryTimeTo   *string
	Price            decimal.Decimal
	DistanceKm       *float64
	Notes            *string
}

type UpdateOrderInput struct {
	PickupLocation   *string
	DeliveryLocation *string
	VehicleBrand     *string
	VehicleModel     *string
	VehicleYear      *int
	PickupDate       *time.Time
	DeliveryDate     *time.Time
	Price            *decimal.Decimal
	DistanceKm       *float64
	Notes            *string
}

func (c *Core) CreateOrder(ctx context.Context, p Principal, input CreateOrderInput) (*repository.Order, error) {
	if err := authorize(p, opCreateOrder); err != nil {
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
	if !input.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}

	now := time.Now().UTC()
	order := &repository.Order{
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
		Price:            input.Price,
		DistanceKm:       input.DistanceKm,
		Notes:            input.Notes,
		Status:           repository.OrderStatusOpen,
		CreatedByID:      p.UserID,
		FromAuction:      false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := c.orders.Create(ctx, order); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("create_order").Inc()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	metrics.OrdersCreatedTotal.Inc()
	c.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("created_by", p.UserID))
	return order, nil
}

func (c *Core) UpdateOrder(ctx context.Context, p Principal, orderID string, input UpdateOrderInput) (*repository.Order, error) {
	if err := authorize(p, opUpdateOrder); err != nil {
		return nil, err
	}

	order, err := c.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if p.Role == repository.RoleDisponent && order.CreatedByID != p.UserID {
		return nil, fmt.Errorf("%w: disponents may only update their own orders", ErrForbidden)
	}

	if input.PickupLocation != nil {
		order.PickupLocation = *input.PickupLocation
	}
	if input.DeliveryLocation != nil {
		order.DeliveryLocation = *input.DeliveryLocation
	}
	if input.VehicleBrand != nil {
		order.VehicleBrand = *input.VehicleBrand
	}
	if input.VehicleModel != nil {
		order.VehicleModel = *input.VehicleModel
	}
	if input.VehicleYear != nil {
		order.VehicleYear = input.VehicleYear
	}
	if input.PickupDate != nil {
		order.PickupDate = *input.PickupDate
	}
	if input.DeliveryDate != nil {
		order.DeliveryDate = input.DeliveryDate
	}
	if input.Price != nil {
		if !input.Price.IsPositive() {
			return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
		}
		order.Price = *input.Price
	}
	if input.DistanceKm != nil {
		order.DistanceKm = input.DistanceKm
	}
	if input.Notes != nil {
		order.Notes = input.Notes
	}
	order.UpdatedAt = time.Now().UTC()

	if err := c.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return order, nil
}

// AssignOrderToDriver moves an open order to assigned and records an
// assignment approval request for the driver, both in one transaction.
func (c *Core) AssignOrderToDriver(ctx context.Context, p Principal, orderID, driverID string) (*repository.Order, error) {
	if err := authorize(p, opAssignOrder); err != nil {
		return nil, err
	}

	driver, err := c.users.GetByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: driver does not exist", ErrValidation)
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	if driver.Role != repository.RoleDriver || driver.Status != repository.UserStatusActive {
		return nil, fmt.Errorf("%w: assignee must be an active driver", ErrValidation)
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
	if err := validateOrderTransition(order.Status, repository.OrderStatusAssigned); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order.Status = repository.OrderStatusAssigned
	order.AssignedDriverID = &driverID
	order.UpdatedAt = now
	if err := c.orders.UpdateTx(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	approval := &repository.OrderApproval{
		ID:          uuid.New().String(),
		OrderID:     order.ID,
		RequestedBy: p.UserID,
		Kind:        repository.ApprovalKindAssignment,
		Status:      repository.ApprovalStatusPending,
		ExpiresAt:   now.Add(assignmentApprovalTTL),
		CreatedAt:   now,
	}
	if err := c.approvals.CreateTx(ctx, tx, approval); err != nil {
		return nil, fmt.Errorf("failed to create assignment approval: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit assignment: %w", err)
	}
	c.logger.Info("order assigned",
		zap.String("order_id", order.ID),
		zap.String("driver_id", driverID))
	return order, nil
}

// AcceptOrder confirms a manual assignment. Auction-sourced orders were
// accepted implicitly at purchase time and cannot pass through here.
func (c *Core) AcceptOrder(ctx context.Context, p Principal, orderID string) (*repository.Order, error) {
	return c.decideAssignment(ctx, p, orderID, true)
}

// RejectOrder returns a manually assigned order to the open pool and
// clears the driver.
func (c *Core) RejectOrder(ctx context.Context, p Principal, orderID string) (*repository.Order, error) {
	return c.decideAssignment(ctx, p, orderID, false)
}

func (c *Core) decideAssignment(ctx context.Context, p Principal, orderID string, accept bool) (*repository.Order, error) {
	op := opRejectOrder
	if accept {
		op = opAcceptOrder
	}
	if err := authorize(p, op); err != nil {
		return nil, err
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
	if order.AssignedDriverID == nil || *order.AssignedDriverID != p.UserID {
		return nil, fmt.Errorf("%w: order is not assigned to caller", ErrConflict)
	}
	if order.FromAuction {
		return nil, fmt.Errorf("%w: auction-sourced orders are accepted at purchase time", ErrConflict)
	}

	now := time.Now().UTC()
	if accept {
		if err := validateOrderTransition(order.Status, repository.OrderStatusInProgress); err != nil {
			return nil, err
		}
		order.Status = repository.OrderStatusInProgress
	} else {
		if err := validateOrderTransition(order.Status, repository.OrderStatusOpen); err != nil {
			return nil, err
		}
		order.Status = repository.OrderStatusOpen
		order.AssignedDriverID = nil
	}
	order.UpdatedAt = now
	if err := c.orders.UpdateTx(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit assignment decision: %w", err)
	}
	return order, nil
}

// UpdateOrderStatus applies a transition-table validated status change.
// Cancelling an auction-sourced order as its driver charges the 10%
// cancellation fee in the same transaction as the status write.
func (c *Core) UpdateOrderStatus(ctx context.Context, p Principal, orderID string, newStatus repository.OrderStatus) (*repository.Order, error) {
	if err := authorize(p, opUpdateOrderStatus); err != nil {
		return nil, err
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
	if p.Role == repository.RoleDriver {
		if order.AssignedDriverID == nil || *order.AssignedDriverID != p.UserID {
			return nil, fmt.Errorf("%w: order is not assigned to caller", ErrForbidden)
		}
	}
	if err := validateOrderTransition(order.Status, newStatus); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order.Status = newStatus
	order.UpdatedAt = now
	if err := c.orders.UpdateTx(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if newStatus == repository.OrderStatusCancelled && order.FromAuction && p.Role == repository.RoleDriver {
		if err := c.chargeCancellationFee(ctx, tx, order, p.UserID, now); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}
	c.logger.Info("order status updated",
		zap.String("order_id", order.ID),
		zap.String("status", string(newStatus)))
	return order, nil
}

func (c *Core) chargeCancellationFee(ctx context.Context, tx db.Tx, order *repository.Order, driverID string, now time.Time) error {
	fee := cancellationFee(order.Price)
	billing := &repository.Billing{
		ID:          uuid.New().String(),
		UserID:      driverID,
		OrderID:     &order.ID,
		AuctionID:   order.AuctionID,
		Amount:      fee,
		Type:        repository.BillingTypeCancellationFee,
		Status:      repository.BillingStatusPending,
		Description: fmt.Sprintf("Cancellation fee for %s %s (order price %s)", order.VehicleBrand, order.VehicleModel, order.Price.StringFixed(2)),
		CreatedByID: order.CreatedByID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.billings.CreateTx(ctx, tx, billing); err != nil {
		return fmt.Errorf("failed to create cancellation fee: %w", err)
	}

	payload, err := json.Marshal(repository.AuditLogPayload{
		Timestamp:  now,
		UserID:     driverID,
		Handler:    "cancellation_fee",
		EntityID:   billing.ID,
		EntityType: "billing",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal audit payload: %w", err)
	}
	task := &repository.OutboxTask{Payload: payload, Topic: auditTopic}
	if err := c.outbox.CreateTx(ctx, tx, task); err != nil {
		return fmt.Errorf("failed to enqueue audit task: %w", err)
	}

	metrics.CancellationFeesTotal.Inc()
	return nil
}

// cancellationFee is 10% of the order price, rounded to 2 decimals.
func cancellationFee(price decimal.Decimal) decimal.Decimal {
	return price.Div(decimal.NewFromInt(10)).Round(2)
}

func (c *Core) DeleteOrder(ctx context.Context, p Principal, orderID string) (bool, error) {
	if err := authorize(p, opDeleteOrder); err != nil {
		return false, err
	}
	deleted, err := c.orders.Delete(ctx, orderID)
	if err != nil {
		return false, fmt.Errorf("failed to delete order: %w", err)
	}
	if deleted {
		c.logger.Info("order deleted", zap.String("order_id", orderID))
	}
	return deleted, nil
}

func (c *Core) GetOrder(ctx context.Context, p Principal, orderID string) (*repository.Order, error) {
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
	return order, nil
}

// ListOrders scopes results by role: admins see everything, disponents
// their own postings, drivers their assignments.
func (c *Core) ListOrders(ctx context.Context, p Principal) ([]*repository.Order, error) {
	if err := authorize(p, opListOrders); err != nil {
		return nil, err
	}
	switch p.Role {
	case repository.RoleAdmin:
		return c.orders.List(ctx)
	case repository.RoleDisponent:
		return c.orders.ListByCreator(ctx, p.UserID)
	default:
		return c.orders.ListByDriver(ctx, p.UserID)
	}
}

func canReadOrder(p Principal, order *repository.Order) bool {
	switch p.Role {
	case repository.RoleAdmin:
		return true
	case repository.RoleDisponent:
		return order.CreatedByID == p.UserID
	case repository.RoleDriver:
		return order.AssignedDriverID != nil && *order.AssignedDriverID == p.UserID
	}
	return false
}
