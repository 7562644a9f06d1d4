package core_test

import (
	"testing"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"carbroker/internal/core"
	mock_core "carbroker/internal/core/mocks"
	mock_database "carbroker/internal/db/mocks"
	"carbroker/internal/repository"
)

type coreMocks struct {
	db        *mock_database.MockDB
	tx        *mock_database.MockTx
	orders    *mock_core.MockOrderRepository
	auctions  *mock_core.MockAuctionRepository
	billings  *mock_core.MockBillingRepository
	handovers *mock_core.MockHandoverRepository
	approvals *mock_core.MockApprovalRepository
	users     *mock_core.MockUserRepository
	outbox    *mock_core.MockOutboxTaskRepository
}

func newTestCore(t *testing.T, ctrl *gomock.Controller) (*core.Core, *coreMocks) {
	t.Helper()

	m := &coreMocks{
		db:        mock_database.NewMockDB(ctrl),
		tx:        mock_database.NewMockTx(ctrl),
		orders:    mock_core.NewMockOrderRepository(ctrl),
		auctions:  mock_core.NewMockAuctionRepository(ctrl),
		billings:  mock_core.NewMockBillingRepository(ctrl),
		handovers: mock_core.NewMockHandoverRepository(ctrl),
		approvals: mock_core.NewMockApprovalRepository(ctrl),
		users:     mock_core.NewMockUserRepository(ctrl),
		outbox:    mock_core.NewMockOutboxTaskRepository(ctrl),
	}
	c := core.New(m.db, m.orders, m.auctions, m.billings, m.handovers,
		m.approvals, m.users, m.outbox, zap.NewNop())
	return c, m
}

// expectTx wires BeginTx to hand out the mock transaction. Rollback is
// deferred in every transactional operation, so it may fire after a
// successful commit as well.
func (m *coreMocks) expectTx() {
	m.db.EXPECT().BeginTx(gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()
}

var (
	adminPrincipal     = core.Principal{UserID: "admin-1", Role: repository.RoleAdmin, Status: repository.UserStatusActive}
	disponentPrincipal = core.Principal{UserID: "disp-1", Role: repository.RoleDisponent, Status: repository.UserStatusActive}
	driverPrincipal    = core.Principal{UserID: "drv-1", Role: repository.RoleDriver, Status: repository.UserStatusActive}
)
