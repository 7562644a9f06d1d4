package core

import (
	"fmt"

	"carbroker/internal/repository"
)

// Single lineage: delivery handover moves an order straight from
// in_progress to completed, there is no intermediate delivered state.
var orderTransitions = map[repository.OrderStatus][]repository.OrderStatus{
	repository.OrderStatusOpen:       {repository.OrderStatusAssigned, repository.OrderStatusCancelled},
	repository.OrderStatusAssigned:   {repository.OrderStatusInProgress, repository.OrderStatusOpen, repository.OrderStatusCancelled},
	repository.OrderStatusInProgress: {repository.OrderStatusCompleted, repository.OrderStatusCancelled},
	repository.OrderStatusCompleted:  {},
	repository.OrderStatusCancelled:  {},
}

// sold is reachable only through the purchase transaction, never through
// a plain status update.
var auctionTransitions = map[repository.AuctionStatus][]repository.AuctionStatus{
	repository.AuctionStatusActive:    {repository.AuctionStatusCancelled},
	repository.AuctionStatusSold:      {},
	repository.AuctionStatusCancelled: {},
}

var billingTransitions = map[repository.BillingStatus][]repository.BillingStatus{
	repository.BillingStatusPending:   {repository.BillingStatusApproved, repository.BillingStatusRejected, repository.BillingStatusCancelled},
	repository.BillingStatusApproved:  {repository.BillingStatusPaid, repository.BillingStatusCancelled},
	repository.BillingStatusRejected:  {},
	repository.BillingStatusPaid:      {},
	repository.BillingStatusCancelled: {},
}

func validateOrderTransition(from, to repository.OrderStatus) error {
	next, ok := orderTransitions[from]
	if !ok {
		return fmt.Errorf("%w: unknown order status %q", ErrValidation, from)
	}
	for _, s := range next {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%w: order transition %s -> %s not allowed", ErrValidation, from, to)
}

func validateAuctionTransition(from, to repository.AuctionStatus) error {
	next, ok := auctionTransitions[from]
	if !ok {
		return fmt.Errorf("%w: unknown auction status %q", ErrValidation, from)
	}
	for _, s := range next {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%w: auction transition %s -> %s not allowed", ErrValidation, from, to)
}

func validateBillingTransition(from, to repository.BillingStatus) error {
	next, ok := billingTransitions[from]
	if !ok {
		return fmt.Errorf("%w: unknown billing status %q", ErrValidation, from)
	}
	for _, s := range next {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%w: billing transition %s -> %s not allowed", ErrValidation, from, to)
}
