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

const auctionInsert = `
        INSERT INTO auctions (
            id, pickup_location, delivery_location, vehicle_brand, vehicle_model,
            vehicle_year, pickup_date, delivery_date, pickup_time_from, pickup_time_to,
            delivery_time_from, delivery_time_to, instant_price, distance_km, notes,
            status, created_by_id, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

type AuctionRepo struct {
	db db.DB
}

func NewAuctionRepo(db db.DB) core.AuctionRepository {
	return &AuctionRepo{db: db}
}

func (r *AuctionRepo) Create(ctx context.Context, a *repository.Auction) error {
	_, err := r.db.Exec(ctx, auctionInsert,
		a.ID, a.PickupLocation, a.DeliveryLocation, a.VehicleBrand, a.VehicleModel,
		a.VehicleYear, a.PickupDate, a.DeliveryDate, a.PickupTimeFrom, a.PickupTimeTo,
		a.DeliveryTimeFrom, a.DeliveryTimeTo, a.InstantPrice, a.DistanceKm, a.Notes,
		a.Status, a.CreatedByID, a.CreatedAt, a.UpdatedAt)
	return err
}

func (r *AuctionRepo) GetByID(ctx context.Context, id string) (*repository.Auction, error) {
	var auction repository.Auction
	err := r.db.Get(ctx, &auction, "SELECT * FROM auctions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &auction, nil
}

func (r *AuctionRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Auction, error) {
	var auction repository.Auction
	err := tx.Get(ctx, &auction, "SELECT * FROM auctions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &auction, nil
}

func (r *AuctionRepo) Update(ctx context.Context, a *repository.Auction) error {
	_, err := r.db.Exec(ctx, `
        UPDATE auctions
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
            instant_price = $12,
            distance_km = $13,
            notes = $14,
            status = $15,
            updated_at = $16
        WHERE id = $17
    `, a.PickupLocation, a.DeliveryLocation, a.VehicleBrand, a.VehicleModel,
		a.VehicleYear, a.PickupDate, a.DeliveryDate, a.PickupTimeFrom, a.PickupTimeTo,
		a.DeliveryTimeFrom, a.DeliveryTimeTo, a.InstantPrice, a.DistanceKm, a.Notes,
		a.Status, a.UpdatedAt, a.ID)
	return err
}

// MarkSoldTx is the compare-and-swap that guarantees at most one sale:
// the WHERE clause re-checks status together with the write. Zero
// affected rows means another transaction sold the auction first.
func (r *AuctionRepo) MarkSoldTx(ctx context.Context, tx db.Tx, id, buyerID string, at time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, `
        UPDATE auctions
        SET status = 'sold', purchased_by_id = $2, purchased_at = $3, updated_at = $3
        WHERE id = $1 AND status = 'active'
    `, id, buyerID, at)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AuctionRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM auctions WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AuctionRepo) ListActive(ctx context.Context) ([]*repository.Auction, error) {
	var auctions []*repository.Auction
	err := r.db.Select(ctx, &auctions,
		"SELECT * FROM auctions WHERE status = 'active' ORDER BY created_at DESC")
	return auctions, err
}
