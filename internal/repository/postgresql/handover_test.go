package postgresql_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "carbroker/internal/db/mocks"
	"carbroker/internal/repository"
	"carbroker/internal/repository/postgresql"
)

func testHandover(now time.Time) *repository.VehicleHandover {
	return &repository.VehicleHandover{
		ID:        "handover-123",
		OrderID:   "order-123",
		DriverID:  "driver-789",
		Type:      repository.HandoverTypePickup,
		KmReading: 48210,
		FuelLevel: "3/4",
		Condition: "good",
		Photos:    json.RawMessage(`["front.jpg","rear.jpg"]`),
		Location:  "Hamburg",
		CreatedAt: now,
	}
}

func TestHandoverRepo_CreateTx(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewHandoverRepo(mockDB)

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, query string, _ ...interface{}) (pgconn.CommandTag, error) {
				assert.Contains(t, query, "INSERT INTO vehicle_handovers")
				return pgconn.CommandTag("INSERT 0 1"), nil
			})

		err := repo.CreateTx(ctx, mockTx, testHandover(now))
		assert.NoError(t, err)
	})

	t.Run("second report of the same type", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewHandoverRepo(mockDB)

		pgErr := &pgconn.PgError{Code: "23505"}
		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, pgErr)

		err := repo.CreateTx(ctx, mockTx, testHandover(now))
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewHandoverRepo(mockDB)

		expectedErr := errors.New("database error")
		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, expectedErr)

		err := repo.CreateTx(ctx, mockTx, testHandover(now))
		assert.Equal(t, expectedErr, err)
	})
}

func TestHandoverRepo_ListByOrder(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("both reports returned oldest first", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewHandoverRepo(mockDB)

		pickup := testHandover(now)
		delivery := testHandover(now.Add(2 * time.Hour))
		delivery.ID = "handover-456"
		delivery.Type = repository.HandoverTypeDelivery
		delivery.Location = "Munich"

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("order-123")).
			DoAndReturn(func(_ context.Context, dest interface{}, query string, _ ...interface{}) error {
				assert.Contains(t, query, "ORDER BY created_at ASC")
				out := dest.(*[]*repository.VehicleHandover)
				*out = []*repository.VehicleHandover{pickup, delivery}
				return nil
			})

		handovers, err := repo.ListByOrder(ctx, "order-123")
		assert.NoError(t, err)
		assert.Len(t, handovers, 2)
		assert.Equal(t, repository.HandoverTypePickup, handovers[0].Type)
		assert.Equal(t, repository.HandoverTypeDelivery, handovers[1].Type)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewHandoverRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(expectedErr)

		_, err := repo.ListByOrder(ctx, "order-123")
		assert.Equal(t, expectedErr, err)
	})
}
