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

func pendingBilling(id string) *repository.Billing {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	orderID := "order-1"
	return &repository.Billing{
		ID:          id,
		UserID:      driverPrincipal.UserID,
		OrderID:     &orderID,
		Amount:      decimal.RequireFromString("650.00"),
		Type:        repository.BillingTypeCompletionPayment,
		Status:      repository.BillingStatusPending,
		CreatedByID: adminPrincipal.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestCreateCompletionBilling(t *testing.T) {
	ctx := context.Background()
	amount := decimal.RequireFromString("650.00")

	completedOrder := func() *repository.Order {
		order := openOrder("order-1")
		order.Status = repository.OrderStatusCompleted
		driverID := driverPrincipal.UserID
		order.AssignedDriverID = &driverID
		return order
	}

	t.Run("first payout for a completed order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, "order-1").Return(completedOrder(), nil)
		m.billings.EXPECT().CreateCompletionTx(gomock.Any(), m.tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.Tx, billing *repository.Billing) (bool, error) {
				assert.Equal(t, repository.BillingTypeCompletionPayment, billing.Type)
				assert.Equal(t, repository.BillingStatusPending, billing.Status)
				assert.True(t, billing.Amount.Equal(amount))
				return true, nil
			})
		m.tx.EXPECT().Commit(gomock.Any()).Return(nil)

		billing, err := c.CreateCompletionBilling(ctx, adminPrincipal, "order-1", driverPrincipal.UserID, amount)
		assert.NoError(t, err)
		assert.Equal(t, driverPrincipal.UserID, billing.UserID)
	})

	t.Run("second payout conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, "order-1").Return(completedOrder(), nil)
		m.billings.EXPECT().CreateCompletionTx(gomock.Any(), m.tx, gomock.Any()).Return(false, nil)

		billing, err := c.CreateCompletionBilling(ctx, adminPrincipal, "order-1", driverPrincipal.UserID, amount)
		assert.ErrorIs(t, err, core.ErrConflict)
		assert.Nil(t, billing)
	})

	t.Run("order must be completed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		running := completedOrder()
		running.Status = repository.OrderStatusInProgress

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, "order-1").Return(running, nil)

		billing, err := c.CreateCompletionBilling(ctx, adminPrincipal, "order-1", driverPrincipal.UserID, amount)
		assert.ErrorIs(t, err, core.ErrValidation)
		assert.Nil(t, billing)
	})

	t.Run("driver must have performed the order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		m.expectTx()
		m.orders.EXPECT().GetByIDTx(gomock.Any(), m.tx, "order-1").Return(completedOrder(), nil)

		billing, err := c.CreateCompletionBilling(ctx, adminPrincipal, "order-1", "drv-other", amount)
		assert.ErrorIs(t, err, core.ErrValidation)
		assert.Nil(t, billing)
	})

	t.Run("only admins create payouts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, _ := newTestCore(t, ctrl)

		billing, err := c.CreateCompletionBilling(ctx, driverPrincipal, "order-1", driverPrincipal.UserID, amount)
		assert.ErrorIs(t, err, core.ErrForbidden)
		assert.Nil(t, billing)
	})
}

func TestUpdateBillingStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("approve without amount change", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		m.expectTx()
		m.billings.EXPECT().GetByIDTx(gomock.Any(), m.tx, "billing-1").Return(pendingBilling("billing-1"), nil)
		m.billings.EXPECT().UpdateTx(gomock.Any(), m.tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.Tx, billing *repository.Billing) error {
				assert.Equal(t, repository.BillingStatusApproved, billing.Status)
				assert.False(t, billing.OriginalAmount.Valid)
				assert.Equal(t, adminPrincipal.UserID, *billing.ApprovedBy)
				assert.NotNil(t, billing.ApprovedAt)
				return nil
			})
		m.tx.EXPECT().Commit(gomock.Any()).Return(nil)

		billing, err := c.UpdateBillingStatus(ctx, adminPrincipal, "billing-1", core.UpdateBillingStatusInput{
			Status: repository.BillingStatusApproved,
		})
		assert.NoError(t, err)
		assert.Equal(t, repository.BillingStatusApproved, billing.Status)
	})

	t.Run("amount overwrite preserves the original", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		m.expectTx()
		m.billings.EXPECT().GetByIDTx(gomock.Any(), m.tx, "billing-1").Return(pendingBilling("billing-1"), nil)
		m.billings.EXPECT().UpdateTx(gomock.Any(), m.tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.Tx, billing *repository.Billing) error {
				assert.Equal(t, "600.00", billing.Amount.StringFixed(2))
				assert.True(t, billing.OriginalAmount.Valid)
				assert.Equal(t, "650.00", billing.OriginalAmount.Decimal.StringFixed(2))
				return nil
			})
		m.tx.EXPECT().Commit(gomock.Any()).Return(nil)

		newAmount := decimal.RequireFromString("600.00")
		billing, err := c.UpdateBillingStatus(ctx, adminPrincipal, "billing-1", core.UpdateBillingStatusInput{
			Status:    repository.BillingStatusApproved,
			NewAmount: &newAmount,
		})
		assert.NoError(t, err)
		assert.True(t, billing.OriginalAmount.Valid)
	})

	t.Run("already decided entries conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		approved := pendingBilling("billing-1")
		approved.Status = repository.BillingStatusApproved

		m.expectTx()
		m.billings.EXPECT().GetByIDTx(gomock.Any(), m.tx, "billing-1").Return(approved, nil)

		billing, err := c.UpdateBillingStatus(ctx, adminPrincipal, "billing-1", core.UpdateBillingStatusInput{
			Status: repository.BillingStatusRejected,
		})
		assert.ErrorIs(t, err, core.ErrConflict)
		assert.Nil(t, billing)
	})

	t.Run("decision must be approved or rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, _ := newTestCore(t, ctrl)

		billing, err := c.UpdateBillingStatus(ctx, adminPrincipal, "billing-1", core.UpdateBillingStatusInput{
			Status: repository.BillingStatusPaid,
		})
		assert.ErrorIs(t, err, core.ErrValidation)
		assert.Nil(t, billing)
	})
}

func TestGetCompletedOrdersForBilling(t *testing.T) {
	ctx := context.Background()

	t.Run("returns unbilled completed orders", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		completed := openOrder("order-1")
		completed.Status = repository.OrderStatusCompleted
		expected := []*repository.Order{completed}
		m.orders.EXPECT().ListCompletedWithoutCompletionBilling(gomock.Any()).Return(expected, nil)

		orders, err := c.GetCompletedOrdersForBilling(ctx, adminPrincipal)
		assert.NoError(t, err)
		assert.Equal(t, expected, orders)
	})

	t.Run("admins only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, _ := newTestCore(t, ctrl)

		orders, err := c.GetCompletedOrdersForBilling(ctx, driverPrincipal)
		assert.ErrorIs(t, err, core.ErrForbidden)
		assert.Nil(t, orders)
	})
}

func TestListBillings(t *testing.T) {
	ctx := context.Background()

	t.Run("admin sees everything", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		expected := []*repository.Billing{pendingBilling("billing-1")}
		m.billings.EXPECT().List(gomock.Any()).Return(expected, nil)

		billings, err := c.ListBillings(ctx, adminPrincipal)
		assert.NoError(t, err)
		assert.Equal(t, expected, billings)
	})

	t.Run("driver sees own ledger", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, m := newTestCore(t, ctrl)

		m.billings.EXPECT().ListByUser(gomock.Any(), driverPrincipal.UserID).Return(nil, nil)

		_, err := c.ListBillings(ctx, driverPrincipal)
		assert.NoError(t, err)
	})

	t.Run("disponent has no ledger access", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		c, _ := newTestCore(t, ctrl)

		billings, err := c.ListBillings(ctx, disponentPrincipal)
		assert.ErrorIs(t, err, core.ErrForbidden)
		assert.Nil(t, billings)
	})
}
