package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "carbroker/internal/db/mocks"
	"carbroker/internal/repository"
	"carbroker/internal/repository/postgresql"
)

func TestApprovalRepo_Decide(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("pending approval is decided", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewApprovalRepo(mockDB)

		mockDB.EXPECT().Exec(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq("approval-123"),
			gomock.Eq(repository.ApprovalStatusAccepted),
			gomock.Eq("driver-789"),
			gomock.Eq(now),
		).DoAndReturn(func(_ context.Context, query string, _ ...interface{}) (pgconn.CommandTag, error) {
			assert.Contains(t, query, "status = 'pending'")
			return pgconn.CommandTag("UPDATE 1"), nil
		})

		decided, err := repo.Decide(ctx, "approval-123", repository.ApprovalStatusAccepted, "driver-789", now)
		assert.NoError(t, err)
		assert.True(t, decided)
	})

	t.Run("already decided or expired", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewApprovalRepo(mockDB)

		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgconn.CommandTag("UPDATE 0"), nil)

		decided, err := repo.Decide(ctx, "approval-123", repository.ApprovalStatusRejected, "driver-789", now)
		assert.NoError(t, err)
		assert.False(t, decided)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewApprovalRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, expectedErr)

		decided, err := repo.Decide(ctx, "approval-123", repository.ApprovalStatusAccepted, "driver-789", now)
		assert.Equal(t, expectedErr, err)
		assert.False(t, decided)
	})
}

func TestApprovalRepo_ExpireOverdue(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("expires overdue approvals", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewApprovalRepo(mockDB)

		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq(now)).
			Return(pgconn.CommandTag("UPDATE 3"), nil)

		expired, err := repo.ExpireOverdue(ctx, now)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), expired)
	})

	t.Run("nothing overdue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewApprovalRepo(mockDB)

		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq(now)).
			Return(pgconn.CommandTag("UPDATE 0"), nil)

		expired, err := repo.ExpireOverdue(ctx, now)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), expired)
	})
}

func TestApprovalRepo_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("approval not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewApprovalRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		approval, err := repo.GetByID(ctx, "non-existent-id")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, approval)
	})
}
