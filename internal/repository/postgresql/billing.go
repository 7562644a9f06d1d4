package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"carbroker/internal/core"
	"carbroker/internal/db"
	"carbroker/internal/repository"
)

const billingInsert = `
        INSERT INTO billings (
            id, user_id, order_id, auction_id, amount, original_amount, type,
            status, description, admin_notes, approved_by, approved_at,
            created_by_id, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

type BillingRepo struct {
	db db.DB
}

func NewBillingRepo(db db.DB) core.BillingRepository {
	return &BillingRepo{db: db}
}

func billingArgs(b *repository.Billing) []interface{} {
	return []interface{}{
		b.ID, b.UserID, b.OrderID, b.AuctionID, b.Amount, b.OriginalAmount, b.Type,
		b.Status, b.Description, b.AdminNotes, b.ApprovedBy, b.ApprovedAt,
		b.CreatedByID, b.CreatedAt, b.UpdatedAt,
	}
}

func (r *BillingRepo) Create(ctx context.Context, billing *repository.Billing) error {
	_, err := r.db.Exec(ctx, billingInsert, billingArgs(billing)...)
	return err
}

func (r *BillingRepo) CreateTx(ctx context.Context, tx db.Tx, billing *repository.Billing) error {
	_, err := tx.Exec(ctx, billingInsert, billingArgs(billing)...)
	return err
}

// CreateCompletionTx inserts the payout only when the order has no
// completion_payment row yet. The existence check sits in the same
// statement as the insert, so concurrent confirmations cannot both
// pass it.
func (r *BillingRepo) CreateCompletionTx(ctx context.Context, tx db.Tx, billing *repository.Billing) (bool, error) {
	tag, err := tx.Exec(ctx, `
        INSERT INTO billings (
            id, user_id, order_id, auction_id, amount, original_amount, type,
            status, description, admin_notes, approved_by, approved_at,
            created_by_id, created_at, updated_at
        )
        SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
        WHERE NOT EXISTS (
            SELECT 1 FROM billings
            WHERE order_id = $3 AND type = 'completion_payment'
        )
    `, billingArgs(billing)...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BillingRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Billing, error) {
	var billing repository.Billing
	err := tx.Get(ctx, &billing, "SELECT * FROM billings WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &billing, nil
}

func (r *BillingRepo) UpdateTx(ctx context.Context, tx db.Tx, billing *repository.Billing) error {
	_, err := tx.Exec(ctx, `
        UPDATE billings
        SET
            amount = $1,
            original_amount = $2,
            status = $3,
            admin_notes = $4,
            approved_by = $5,
            approved_at = $6,
            updated_at = $7
        WHERE id = $8
    `, billing.Amount, billing.OriginalAmount, billing.Status, billing.AdminNotes,
		billing.ApprovedBy, billing.ApprovedAt, billing.UpdatedAt, billing.ID)
	return err
}

func (r *BillingRepo) ListByUser(ctx context.Context, userID string) ([]*repository.Billing, error) {
	var billings []*repository.Billing
	err := r.db.Select(ctx, &billings,
		"SELECT * FROM billings WHERE user_id = $1 ORDER BY created_at DESC", userID)
	return billings, err
}

func (r *BillingRepo) List(ctx context.Context) ([]*repository.Billing, error) {
	var billings []*repository.Billing
	err := r.db.Select(ctx, &billings, "SELECT * FROM billings ORDER BY created_at DESC")
	return billings, err
}
