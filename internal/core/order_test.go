package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"carbroker/internal/core"
	"carbroker/internal/db"
	"carbroker/internal/repository"
)

func openOrder(id string) *repository.Order {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return &repository.Order{
		ID:               id,
		PickupLocation:   "Hamburg",
		DeliveryLocation: "Munich",
		VehicleBrand:     "BMW",
		VehicleModel:     "320d",
		PickupDate:       now.Add(48 * time.Hour),
		Price:            decimal.RequireFromString("650.00"),
		Status:           repository.OrderStatusOpen,
		CreatedByID:      disponentPrincipal.UserID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	validInput := core.CreateOrderInput{
		PickupLocation:   "Hamburg",
		DeliveryLocation: "Munich",
		VehicleBrand:     "BMW",
		VehicleModel:     "320d",
		PickupDate:       time.Now().Add(48 * time.Hour),
		Price:            decimal.RequireFromString("650.00"),
	}

	t.Run("disponent creates an open order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		var created *repository.Order
		m.orders.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, order *repository.Order) error {
				created = order
				return nil
			})

		order, err := c.CreateOrder(ctx, disponentPrincipal, validInput)
		assert.NoError(t, err)
		assert.Equal(t, created, order)
		assert.Equal(t, repository.OrderStatusOpen, order.Status)
		assert.Equal(t, disponentPrincipal.UserID, order.CreatedByID)
		assert.False(t, order.FromAuction)
		assert.Nil(t, order.AssignedDriverID)
		assert.NotEmpty(t, order.ID)
	})

	t.Run("driver may not create orders", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, _ := newTestCore(t, ctrl)

		order, err := c.CreateOrder(ctx, driverPrincipal, validInput)
		assert.ErrorIs(t, err, core.ErrForbidden)
		assert.Nil(t, order)
	})

	t.Run("missing locations", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, _ := newTestCore(t, ctrl)

		input := validInput
		input.PickupLocation = ""

		order, err := c.CreateOrder(ctx, disponentPrincipal, input)
		assert.ErrorIs(t, err, core.ErrValidation)
		assert.Nil(t, order)
	})

	t.Run("non-positive price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, _ := newTestCore(t, ctrl)

		input := validInput
		input.Price = decimal.Zero

		order, err := c.CreateOrder(ctx, disponentPrincipal, input)
		assert.ErrorIs(t, err, core.ErrValidation)
		assert.Nil(t, order)
	})
}

func TestUpdateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("disponent updates own order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		existing := openOrder("order-1")
		m.orders.EXPECT().GetByID(gomock.Any(), "order-1").Return(existing, nil)

		newPrice := decimal.RequireFromString("700.00")
		m.orders.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, order *repository.Order) error {
				assert.True(t, order.Price.Equal(newPrice))
				return nil
			})

		order, err := c.UpdateOrder(ctx, disponentPrincipal, "order-1", core.UpdateOrderInput{Price: &newPrice})
		assert.NoError(t, err)
		assert.True(t, order.Price.Equal(newPrice))
	})

	t.Run("disponent cannot touch someone else's order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		existing := openOrder("order-1")
		existing.CreatedByID = "someone-else"
		m.orders.EXPECT().GetByID(gomock.Any(), "order-1").Return(existing, nil)

		order, err := c.UpdateOrder(ctx, disponentPrincipal, "order-1", core.UpdateOrderInput{})
		assert.ErrorIs(t, err, core.ErrForbidden)
		assert.Nil(t, order)
	})

	t.Run("order not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		m.orders.EXPECT().GetByID(gomock.Any(), "order-404").Return(nil, repository.ErrObjectNotFound)

		order, err := c.UpdateOrder(ctx, adminPrincipal, "order-404", core.UpdateOrderInput{})
		assert.ErrorIs(t, err, core.ErrNotFound)
		assert.Nil(t, order)
	})
}

func TestAssignOrderToDriver(t *testing.T) {
	ctx := context.Background()

	activeDriver := &repository.User{
		ID:     "drv-1",
		Role:   repository.RoleDriver,
		Status: repository.UserStatusActive,
	}

	t.Run("open order gains driver and approval request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		m.users.EXPECT().GetByID(gomock.Any(), "drv-1").Return(activeDriver, nil)
		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, "order-1").Return(openOrder("order-1"), nil)
		m.orders.EXPECT().UpdateTx(gomock.Any(), m.tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.Tx, order *repository.Order) error {
				assert.Equal(t, repository.OrderStatusAssigned, order.Status)
				assert.Equal(t, "drv-1", *order.AssignedDriverID)
				return nil
			})
		m.approvals.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.Tx, approval *repository.OrderApproval) error {
				assert.Equal(t, repository.ApprovalKindAssignment, approval.Kind)
				assert.Equal(t, repository.ApprovalStatusPending, approval.Status)
				assert.Equal(t, "order-1", approval.OrderID)
				assert.True(t, approval.ExpiresAt.After(approval.CreatedAt))
				return nil
			})
		m.tx.EXPECT().Commit(gomock.Any()).Return(nil)

		order, err := c.AssignOrderToDriver(ctx, adminPrincipal, "order-1", "drv-1")
		assert.NoError(t, err)
		assert.Equal(t, repository.OrderStatusAssigned, order.Status)
	})

	t.Run("assignee must be an active driver", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		pending := &repository.User{ID: "drv-2", Role: repository.RoleDriver, Status: repository.UserStatusPending}
		m.users.EXPECT().GetByID(gomock.Any(), "drv-2").Return(pending, nil)

		order, err := c.AssignOrderToDriver(ctx, adminPrincipal, "order-1", "drv-2")
		assert.ErrorIs(t, err, core.ErrValidation)
		assert.Nil(t, order)
	})

	t.Run("only open orders can be assigned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		m.users.EXPECT().GetByID(gomock.Any(), "drv-1").Return(activeDriver, nil)
		m.expectTx()
		existing := openOrder("order-1")
		existing.Status = repository.OrderStatusInProgress
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, "order-1").Return(existing, nil)

		order, err := c.AssignOrderToDriver(ctx, adminPrincipal, "order-1", "drv-1")
		assert.ErrorIs(t, err, core.ErrValidation)
		assert.Nil(t, order)
	})

	t.Run("disponent may not assign", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, _ := newTestCore(t, ctrl)

		order, err := c.AssignOrderToDriver(ctx, disponentPrincipal, "order-1", "drv-1")
		assert.ErrorIs(t, err, core.ErrForbidden)
		assert.Nil(t, order)
	})
}

func TestAcceptRejectOrder(t *testing.T) {
	ctx := context.Background()

	assignedOrder := func() *repository.Order {
		order := openOrder("order-1")
		order.Status = repository.OrderStatusAssigned
		driverID := driverPrincipal.UserID
		order.AssignedDriverID = &driverID
		return order
	}

	t.Run("accept moves the order to in_progress", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, "order-1").Return(assignedOrder(), nil)
		m.orders.EXPECT().UpdateTx(gomock.Any(), m.tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.Tx, order *repository.Order) error {
				assert.Equal(t, repository.OrderStatusInProgress, order.Status)
				assert.NotNil(t, order.AssignedDriverID)
				return nil
			})
		m.tx.EXPECT().Commit(gomock.Any()).Return(nil)

		order, err := c.AcceptOrder(ctx, driverPrincipal, "order-1")
		assert.NoError(t, err)
		assert.Equal(t, repository.OrderStatusInProgress, order.Status)
	})

	t.Run("reject returns the order to the open pool", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, "order-1").Return(assignedOrder(), nil)
		m.orders.EXPECT().UpdateTx(gomock.Any(), m.tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.Tx, order *repository.Order) error {
				assert.Equal(t, repository.OrderStatusOpen, order.Status)
				assert.Nil(t, order.AssignedDriverID)
				return nil
			})
		m.tx.EXPECT().Commit(gomock.Any()).Return(nil)

		order, err := c.RejectOrder(ctx, driverPrincipal, "order-1")
		assert.NoError(t, err)
		assert.Equal(t, repository.OrderStatusOpen, order.Status)
	})

	t.Run("order assigned to a different driver", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		other := assignedOrder()
		otherID := "drv-other"
		other.AssignedDriverID = &otherID

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, "order-1").Return(other, nil)

		order, err := c.AcceptOrder(ctx, driverPrincipal, "order-1")
		assert.ErrorIs(t, err, core.ErrConflict)
		assert.Nil(t, order)
	})

	t.Run("auction-sourced orders cannot be accepted or rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		fromAuction := assignedOrder()
		fromAuction.Status = repository.OrderStatusInProgress
		fromAuction.FromAuction = true

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, "order-1").Return(fromAuction, nil)

		order, err := c.RejectOrder(ctx, driverPrincipal, "order-1")
		assert.ErrorIs(t, err, core.ErrConflict)
		assert.Nil(t, order)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	auctionOrder := func() *repository.Order {
		order := openOrder("order-1")
		order.Status = repository.OrderStatusInProgress
		driverID := driverPrincipal.UserID
		auctionID := "auction-1"
		order.AssignedDriverID = &driverID
		order.FromAuction = true
		order.AuctionID = &auctionID
		order.Price = decimal.RequireFromString("100.00")
		return order
	}

	t.Run("driver cancelling an auction order is charged 10 percent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, "order-1").Return(auctionOrder(), nil)
		m.orders.EXPECT().UpdateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
		m.billings.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.Tx, billing *repository.Billing) error {
				assert.Equal(t, repository.BillingTypeCancellationFee, billing.Type)
				assert.Equal(t, repository.BillingStatusPending, billing.Status)
				assert.Equal(t, "10.00", billing.Amount.StringFixed(2))
				assert.Equal(t, driverPrincipal.UserID, billing.UserID)
				return nil
			})
		m.outbox.EXPECT().CreateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
		m.tx.EXPECT().Commit(gomock.Any()).Return(nil)

		order, err := c.UpdateOrderStatus(ctx, driverPrincipal, "order-1", repository.OrderStatusCancelled)
		assert.NoError(t, err)
		assert.Equal(t, repository.OrderStatusCancelled, order.Status)
	})

	t.Run("cancelling a manual order costs nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		manual := auctionOrder()
		manual.FromAuction = false
		manual.AuctionID = nil

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, "order-1").Return(manual, nil)
		m.orders.EXPECT().UpdateTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
		m.tx.EXPECT().Commit(gomock.Any()).Return(nil)

		order, err := c.UpdateOrderStatus(ctx, driverPrincipal, "order-1", repository.OrderStatusCancelled)
		assert.NoError(t, err)
		assert.Equal(t, repository.OrderStatusCancelled, order.Status)
	})

	t.Run("driver must own the assignment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		other := auctionOrder()
		otherID := "drv-other"
		other.AssignedDriverID = &otherID

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, "order-1").Return(other, nil)

		order, err := c.UpdateOrderStatus(ctx, driverPrincipal, "order-1", repository.OrderStatusCompleted)
		assert.ErrorIs(t, err, core.ErrForbidden)
		assert.Nil(t, order)
	})

	t.Run("cancelled orders are terminal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		cancelled := auctionOrder()
		cancelled.Status = repository.OrderStatusCancelled

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, "order-1").Return(cancelled, nil)

		order, err := c.UpdateOrderStatus(ctx, driverPrincipal, "order-1", repository.OrderStatusCancelled)
		assert.ErrorIs(t, err, core.ErrValidation)
		assert.Nil(t, order)
	})
}

func TestGetOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("driver reads own assignment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		order := openOrder("order-1")
		driverID := driverPrincipal.UserID
		order.AssignedDriverID = &driverID
		m.orders.EXPECT().GetByID(gomock.Any(), "order-1").Return(order, nil)

		got, err := c.GetOrder(ctx, driverPrincipal, "order-1")
		assert.NoError(t, err)
		assert.Equal(t, order, got)
	})

	t.Run("driver cannot read unrelated orders", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		m.orders.EXPECT().GetByID(gomock.Any(), "order-1").Return(openOrder("order-1"), nil)

		got, err := c.GetOrder(ctx, driverPrincipal, "order-1")
		assert.ErrorIs(t, err, core.ErrForbidden)
		assert.Nil(t, got)
	})
}

func TestListOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("admin sees everything", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		expected := []*repository.Order{openOrder("order-1")}
		m.orders.EXPECT().List(gomock.Any()).Return(expected, nil)

		orders, err := c.ListOrders(ctx, adminPrincipal)
		assert.NoError(t, err)
		assert.Equal(t, expected, orders)
	})

	t.Run("disponent sees own postings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		m.orders.EXPECT().ListByCreator(gomock.Any(), disponentPrincipal.UserID).Return(nil, nil)

		_, err := c.ListOrders(ctx, disponentPrincipal)
		assert.NoError(t, err)
	})

	t.Run("driver sees own assignments", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		m.orders.EXPECT().ListByDriver(gomock.Any(), driverPrincipal.UserID).Return(nil, nil)

		_, err := c.ListOrders(ctx, driverPrincipal)
		assert.NoError(t, err)
	})
}

func TestDeleteOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("auction-sourced order is deleted without touching billing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		// Purchased orders always carry an order_payment billing row and may
		// have handover reports. Delete must still be a single unconditional
		// statement; billing history keeps its dangling order_id.
		m.orders.EXPECT().Delete(gomock.Any(), "order-1").Return(true, nil)

		deleted, err := c.DeleteOrder(ctx, adminPrincipal, "order-1")
		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("missing order reports false", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		m.orders.EXPECT().Delete(gomock.Any(), "order-404").Return(false, nil)

		deleted, err := c.DeleteOrder(ctx, adminPrincipal, "order-404")
		assert.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("disponent cannot delete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, _ := newTestCore(t, ctrl)

		deleted, err := c.DeleteOrder(ctx, disponentPrincipal, "order-1")
		assert.ErrorIs(t, err, core.ErrForbidden)
		assert.False(t, deleted)
	})
}
