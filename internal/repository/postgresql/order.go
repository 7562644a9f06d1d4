package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"carbroker/internal/core"
	"carbroker/internal/db"
	"carbroker/internal/repository"
)

const orderColumns = `
        id, pickup_location, delivery_location, vehicle_brand, vehicle_model,
        vehicle_year, pickup_date, delivery_date, pickup_time_from, pickup_time_to,
        delivery_time_from, delivery_time_to, price, distance_km, notes, status,
        assigned_driver_id, created_by_id, from_auction, auction_id, created_at, updated_at`

const orderInsert = `
        INSERT INTO orders (` + orderColumns + `
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`

const orderUpdate = `
        UPDATE orders
        SET
            pickup_location = $1,
            delivery_location = $2,
            vehicle_brand = $3,
            vehicle_model = $4,
            vehicle_year = $5,
            pickup_date = $6,
            delivery_date = $7,
            pickup_time_from = $8,
            pickup_time_to = $9,
            delivery_time_from = $10,
            delivery_time_to = $11,
            price = $12,
            distance_km = $13,
            notes = $14,
            status = $15,
            assigned_driver_id = $16,
            updated_at = $17
        WHERE id = $18`

type OrderRepo struct {
	db db.DB
}

func NewOrderRepo(db db.DB) core.OrderRepository {
	return &OrderRepo{db: db}
}

func orderInsertArgs(o *repository.Order) []interface{} {
	return []interface{}{
		o.ID, o.PickupLocation, o.DeliveryLocation, o.VehicleBrand, o.VehicleModel,
		o.VehicleYear, o.PickupDate, o.DeliveryDate, o.PickupTimeFrom, o.PickupTimeTo,
		o.DeliveryTimeFrom, o.DeliveryTimeTo, o.Price, o.DistanceKm, o.Notes, o.Status,
		o.AssignedDriverID, o.CreatedByID, o.FromAuction, o.AuctionID, o.CreatedAt, o.UpdatedAt,
	}
}

func orderUpdateArgs(o *repository.Order) []interface{} {
	return []interface{}{
		o.PickupLocation, o.DeliveryLocation, o.VehicleBrand, o.VehicleModel,
		o.VehicleYear, o.PickupDate, o.DeliveryDate, o.PickupTimeFrom, o.PickupTimeTo,
		o.DeliveryTimeFrom, o.DeliveryTimeTo, o.Price, o.DistanceKm, o.Notes, o.Status,
		o.AssignedDriverID, o.UpdatedAt, o.ID,
	}
}

func (r *OrderRepo) Create(ctx context.Context, order *repository.Order) error {
	_, err := r.db.Exec(ctx, orderInsert, orderInsertArgs(order)...)
	return err
}

func (r *OrderRepo) CreateTx(ctx context.Context, tx db.Tx, order *repository.Order) error {
	_, err := tx.Exec(ctx, orderInsert, orderInsertArgs(order)...)
	return err
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*repository.Order, error) {
	var order repository.Order
	err := r.db.Get(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Order, error) {
	var order repository.Order
	err := tx.Get(ctx, &order, "SELECT * FROM orders WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) Update(ctx context.Context, order *repository.Order) error {
	_, err := r.db.Exec(ctx, orderUpdate, orderUpdateArgs(order)...)
	return err
}

func (r *OrderRepo) UpdateTx(ctx context.Context, tx db.Tx, order *repository.Order) error {
	_, err := tx.Exec(ctx, orderUpdate, orderUpdateArgs(order)...)
	return err
}

func (r *OrderRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *OrderRepo) List(ctx context.Context) ([]*repository.Order, error) {
	var orders []*repository.Order
	err := r.db.Select(ctx, &orders, "SELECT * FROM orders ORDER BY created_at DESC")
	return orders, err
}

func (r *OrderRepo) ListByCreator(ctx context.Context, creatorID string) ([]*repository.Order, error) {
	var orders []*repository.Order
	err := r.db.Select(ctx, &orders,
		"SELECT * FROM orders WHERE created_by_id = $1 ORDER BY created_at DESC", creatorID)
	return orders, err
}

func (r *OrderRepo) ListByDriver(ctx context.Context, driverID string) ([]*repository.Order, error) {
	var orders []*repository.Order
	err := r.db.Select(ctx, &orders,
		"SELECT * FROM orders WHERE assigned_driver_id = $1 ORDER BY created_at DESC", driverID)
	return orders, err
}

func (r *OrderRepo) ListCompletedWithoutCompletionBilling(ctx context.Context) ([]*repository.Order, error) {
	query := `
        SELECT o.* FROM orders o
        WHERE o.status = 'completed'
          AND NOT EXISTS (
              SELECT 1 FROM billings b
              WHERE b.order_id = o.id AND b.type = 'completion_payment'
          )
        ORDER BY o.updated_at ASC`
	var orders []*repository.Order
	err := r.db.Select(ctx, &orders, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed orders without billing: %w", err)
	}
	return orders, nil
}
