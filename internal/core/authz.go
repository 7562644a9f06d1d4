package core

import (
	"fmt"

	"carbroker/internal/repository"
)

// Principal is the authenticated caller. Resolution from credentials is
// the HTTP layer's job; the core only sees id, role and account status.
type Principal struct {
	UserID string
	Role   repository.Role
	Status repository.UserStatus
}

type operation string

const (
	opCreateOrder           operation = "create_order"
	opUpdateOrder           operation = "update_order"
	opAssignOrder           operation = "assign_order"
	opAcceptOrder           operation = "accept_order"
	opRejectOrder           operation = "reject_order"
	opUpdateOrderStatus     operation = "update_order_status"
	opDeleteOrder           operation = "delete_order"
	opListOrders            operation = "list_orders"
	opCreateAuction         operation = "create_auction"
	opPurchaseAuction       operation = "purchase_auction"
	opUpdateAuctionStatus   operation = "update_auction_status"
	opDeleteAuction         operation = "delete_auction"
	opListAuctions          operation = "list_auctions"
	opCreateCompletionBill  operation = "create_completion_billing"
	opUpdateBillingStatus   operation = "update_billing_status"
	opListBillings          operation = "list_billings"
	opCreateHandover        operation = "create_handover"
	opListHandovers         operation = "list_handovers"
	opDecideApproval        operation = "decide_approval"
	opManageUsers           operation = "manage_users"
)

var allowedRoles = map[operation][]repository.Role{
	opCreateOrder:          {repository.RoleAdmin, repository.RoleDisponent},
	opUpdateOrder:          {repository.RoleAdmin, repository.RoleDisponent},
	opAssignOrder:          {repository.RoleAdmin},
	opAcceptOrder:          {repository.RoleDriver},
	opRejectOrder:          {repository.RoleDriver},
	opUpdateOrderStatus:    {repository.RoleAdmin, repository.RoleDriver},
	opDeleteOrder:          {repository.RoleAdmin},
	opListOrders:           {repository.RoleAdmin, repository.RoleDisponent, repository.RoleDriver},
	opCreateAuction:        {repository.RoleAdmin},
	opPurchaseAuction:      {repository.RoleDriver},
	opUpdateAuctionStatus:  {repository.RoleAdmin},
	opDeleteAuction:        {repository.RoleAdmin},
	opListAuctions:         {repository.RoleAdmin, repository.RoleDisponent, repository.RoleDriver},
	opCreateCompletionBill: {repository.RoleAdmin},
	opUpdateBillingStatus:  {repository.RoleAdmin},
	opListBillings:         {repository.RoleAdmin, repository.RoleDriver},
	opCreateHandover:       {repository.RoleDriver},
	opListHandovers:        {repository.RoleAdmin, repository.RoleDisponent, repository.RoleDriver},
	opDecideApproval:       {repository.RoleAdmin, repository.RoleDriver},
	opManageUsers:          {repository.RoleAdmin},
}

// authorize runs before any store access. A driver must additionally have
// an active account for the operations that commit it to a job.
func authorize(p Principal, op operation) error {
	roles, ok := allowedRoles[op]
	if !ok {
		return fmt.Errorf("%w: unknown operation %q", ErrForbidden, op)
	}
	for _, r := range roles {
		if r != p.Role {
			continue
		}
		if p.Role == repository.RoleDriver && requiresActiveDriver(op) && p.Status != repository.UserStatusActive {
			return fmt.Errorf("%w: driver account is not active", ErrForbidden)
		}
		return nil
	}
	return fmt.Errorf("%w: role %s may not perform %s", ErrForbidden, p.Role, op)
}

func requiresActiveDriver(op operation) bool {
	switch op {
	case opPurchaseAuction, opAcceptOrder, opCreateHandover:
		return true
	}
	return false
}
