package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"

	"carbroker/internal/core"
	"carbroker/internal/db"
	"carbroker/internal/repository"
)

type ApprovalRepo struct {
	db db.DB
}

func NewApprovalRepo(db db.DB) core.ApprovalRepository {
	return &ApprovalRepo{db: db}
}

func (r *ApprovalRepo) CreateTx(ctx context.Context, tx db.Tx, a *repository.OrderApproval) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO order_approvals (
            id, order_id, requested_by, kind, proposed_amount, status,
            expires_at, decided_by, decided_at, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, a.ID, a.OrderID, a.RequestedBy, a.Kind, a.ProposedAmount, a.Status,
		a.ExpiresAt, a.DecidedBy, a.DecidedAt, a.CreatedAt)
	return err
}

func (r *ApprovalRepo) GetByID(ctx context.Context, id string) (*repository.OrderApproval, error) {
	var approval repository.OrderApproval
	err := r.db.Get(ctx, &approval, "SELECT * FROM order_approvals WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &approval, nil
}

// Decide only flips rows that are still pending and unexpired, so a
// decision racing the sweep (or another decision) loses cleanly.
func (r *ApprovalRepo) Decide(ctx context.Context, id string, status repository.ApprovalStatus, decidedBy string, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE order_approvals
        SET status = $2, decided_by = $3, decided_at = $4
        WHERE id = $1 AND status = 'pending' AND expires_at > $4
    `, id, status, decidedBy, at)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ApprovalRepo) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE order_approvals
        SET status = 'expired'
        WHERE status = 'pending' AND expires_at <= $1
    `, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
