package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"carbroker/internal/repository"
)

func TestValidateOrderTransition(t *testing.T) {
	allowed := []struct {
		from, to repository.OrderStatus
	}{
		{repository.OrderStatusOpen, repository.OrderStatusAssigned},
		{repository.OrderStatusOpen, repository.OrderStatusCancelled},
		{repository.OrderStatusAssigned, repository.OrderStatusInProgress},
		{repository.OrderStatusAssigned, repository.OrderStatusOpen},
		{repository.OrderStatusAssigned, repository.OrderStatusCancelled},
		{repository.OrderStatusInProgress, repository.OrderStatusCompleted},
		{repository.OrderStatusInProgress, repository.OrderStatusCancelled},
	}
	for _, tc := range allowed {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			assert.NoError(t, validateOrderTransition(tc.from, tc.to))
		})
	}

	denied := []struct {
		from, to repository.OrderStatus
	}{
		{repository.OrderStatusOpen, repository.OrderStatusInProgress},
		{repository.OrderStatusOpen, repository.OrderStatusCompleted},
		{repository.OrderStatusCompleted, repository.OrderStatusCancelled},
		{repository.OrderStatusCancelled, repository.OrderStatusCancelled},
		{repository.OrderStatusCancelled, repository.OrderStatusOpen},
		{repository.OrderStatusCompleted, repository.OrderStatusInProgress},
	}
	for _, tc := range denied {
		t.Run(string(tc.from)+"_to_"+string(tc.to)+"_denied", func(t *testing.T) {
			assert.ErrorIs(t, validateOrderTransition(tc.from, tc.to), ErrValidation)
		})
	}

	t.Run("unknown status", func(t *testing.T) {
		assert.ErrorIs(t, validateOrderTransition("bogus", repository.OrderStatusOpen), ErrValidation)
	})
}

func TestValidateAuctionTransition(t *testing.T) {
	t.Run("active can be cancelled", func(t *testing.T) {
		assert.NoError(t, validateAuctionTransition(repository.AuctionStatusActive, repository.AuctionStatusCancelled))
	})

	t.Run("sold is terminal", func(t *testing.T) {
		assert.ErrorIs(t, validateAuctionTransition(repository.AuctionStatusSold, repository.AuctionStatusCancelled), ErrValidation)
	})

	t.Run("sold is never a plain status target", func(t *testing.T) {
		assert.ErrorIs(t, validateAuctionTransition(repository.AuctionStatusActive, repository.AuctionStatusSold), ErrValidation)
	})

	t.Run("cancelled cannot be reactivated", func(t *testing.T) {
		assert.ErrorIs(t, validateAuctionTransition(repository.AuctionStatusCancelled, repository.AuctionStatusActive), ErrValidation)
	})
}

func TestValidateBillingTransition(t *testing.T) {
	t.Run("pending can be approved", func(t *testing.T) {
		assert.NoError(t, validateBillingTransition(repository.BillingStatusPending, repository.BillingStatusApproved))
	})

	t.Run("pending can be rejected", func(t *testing.T) {
		assert.NoError(t, validateBillingTransition(repository.BillingStatusPending, repository.BillingStatusRejected))
	})

	t.Run("approved can be paid", func(t *testing.T) {
		assert.NoError(t, validateBillingTransition(repository.BillingStatusApproved, repository.BillingStatusPaid))
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		assert.ErrorIs(t, validateBillingTransition(repository.BillingStatusRejected, repository.BillingStatusApproved), ErrValidation)
	})

	t.Run("paid is terminal", func(t *testing.T) {
		assert.ErrorIs(t, validateBillingTransition(repository.BillingStatusPaid, repository.BillingStatusCancelled), ErrValidation)
	})
}
