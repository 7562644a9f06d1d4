package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"

	"carbroker/internal/core"
	"carbroker/internal/db"
	"carbroker/internal/repository"
)

const uniqueViolation = "23505"

type HandoverRepo struct {
	db db.DB
}

func NewHandoverRepo(db db.DB) core.HandoverRepository {
	return &HandoverRepo{db: db}
}

func (r *HandoverRepo) CreateTx(ctx context.Context, tx db.Tx, h *repository.VehicleHandover) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO vehicle_handovers (
            id, order_id, driver_id, type, km_reading, fuel_level, condition,
            damage_notes, photos, signature, location, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `, h.ID, h.OrderID, h.DriverID, h.Type, h.KmReading, h.FuelLevel, h.Condition,
		h.DamageNotes, h.Photos, h.Signature, h.Location, h.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// The (order_id, type) unique index makes handovers write-once.
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *HandoverRepo) ListByOrder(ctx context.Context, orderID string) ([]*repository.VehicleHandover, error) {
	var handovers []*repository.VehicleHandover
	err := r.db.Select(ctx, &handovers,
		"SELECT * FROM vehicle_handovers WHERE order_id = $1 ORDER BY created_at ASC", orderID)
	return handovers, err
}
