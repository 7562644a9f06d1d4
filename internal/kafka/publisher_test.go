package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"carbroker/internal/db"
	mock_database "carbroker/internal/db/mocks"
	"carbroker/internal/repository"
)

type recordingProducer struct {
	sent    []sentMessage
	sendErr error
}

type sentMessage struct {
	topic string
	key   string
	value string
}

func (p *recordingProducer) SendMessage(_ context.Context, topic string, key []byte, value []byte) error {
	if p.sendErr != nil {
		return p.sendErr
	}
	p.sent = append(p.sent, sentMessage{topic: topic, key: string(key), value: string(value)})
	return nil
}

func (p *recordingProducer) Close() error { return nil }

type stubOutboxRepo struct {
	tasks         []*repository.OutboxTask
	fetchErr      error
	statusUpdates []repository.TaskStatus
	lastAttempts  int
	lastError     *string
}

func (r *stubOutboxRepo) GetProcessableTasks(_ context.Context, _ db.DB, _ int) ([]*repository.OutboxTask, error) {
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	return r.tasks, nil
}

func (r *stubOutboxRepo) UpdateTaskStatusTx(_ context.Context, _ db.Tx, _ uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, _ *time.Time) error {
	r.statusUpdates = append(r.statusUpdates, status)
	r.lastAttempts = attempts
	r.lastError = lastError
	return nil
}

func (r *stubOutboxRepo) UpdateTaskStatus(_ context.Context, _ db.DB, _ uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, _ *time.Time) error {
	r.statusUpdates = append(r.statusUpdates, status)
	r.lastAttempts = attempts
	r.lastError = lastError
	return nil
}

func testTask() *repository.OutboxTask {
	return &repository.OutboxTask{
		ID:      uuid.New(),
		Status:  repository.TaskStatusCreated,
		Payload: json.RawMessage(`{"action":"purchase_auction"}`),
		Topic:   "audit_logs",
	}
}

func newTestPublisher(t *testing.T, repo OutboxTaskRepository, producer Producer) (*Publisher, *mock_database.MockDB, *mock_database.MockTx) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockDB := mock_database.NewMockDB(ctrl)
	mockTx := mock_database.NewMockTx(ctrl)

	p := NewPublisher(mockDB, repo, producer, PublisherConfig{
		PollInterval: time.Hour,
		BatchSize:    10,
		MaxAttempts:  3,
	}, zap.NewNop())
	return p, mockDB, mockTx
}

func TestPublisher_ProcessBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("task is marked processing then done after send", func(t *testing.T) {
		task := testTask()
		repo := &stubOutboxRepo{tasks: []*repository.OutboxTask{task}}
		producer := &recordingProducer{}
		p, mockDB, mockTx := newTestPublisher(t, repo, producer)

		mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil)
		mockTx.EXPECT().Commit(gomock.Any()).Return(nil)
		mockTx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()

		err := p.processBatch(ctx)
		assert.NoError(t, err)

		assert.Equal(t, []repository.TaskStatus{repository.TaskStatusProcessing, repository.TaskStatusDone}, repo.statusUpdates)
		assert.Len(t, producer.sent, 1)
		assert.Equal(t, "audit_logs", producer.sent[0].topic)
		assert.Equal(t, task.ID.String(), producer.sent[0].key)
		assert.JSONEq(t, `{"action":"purchase_auction"}`, producer.sent[0].value)
	})

	t.Run("send failure marks the task failed with the error", func(t *testing.T) {
		task := testTask()
		task.Attempts = 1
		repo := &stubOutboxRepo{tasks: []*repository.OutboxTask{task}}
		producer := &recordingProducer{sendErr: errors.New("broker unreachable")}
		p, mockDB, mockTx := newTestPublisher(t, repo, producer)

		mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil)
		mockTx.EXPECT().Commit(gomock.Any()).Return(nil)
		mockTx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()

		err := p.processBatch(ctx)
		assert.NoError(t, err)

		assert.Equal(t, []repository.TaskStatus{repository.TaskStatusProcessing, repository.TaskStatusFailed}, repo.statusUpdates)
		assert.Equal(t, 2, repo.lastAttempts)
		if assert.NotNil(t, repo.lastError) {
			assert.Equal(t, "broker unreachable", *repo.lastError)
		}
		assert.Empty(t, producer.sent)
	})

	t.Run("empty batch commits without sends", func(t *testing.T) {
		repo := &stubOutboxRepo{}
		producer := &recordingProducer{}
		p, mockDB, mockTx := newTestPublisher(t, repo, producer)

		mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil)
		mockTx.EXPECT().Commit(gomock.Any()).Return(nil)
		mockTx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()

		err := p.processBatch(ctx)
		assert.NoError(t, err)
		assert.Empty(t, repo.statusUpdates)
		assert.Empty(t, producer.sent)
	})

	t.Run("fetch failure rolls back", func(t *testing.T) {
		repo := &stubOutboxRepo{fetchErr: errors.New("database error")}
		producer := &recordingProducer{}
		p, mockDB, mockTx := newTestPublisher(t, repo, producer)

		mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil)
		mockTx.EXPECT().Rollback(gomock.Any()).Return(nil)

		err := p.processBatch(ctx)
		assert.Error(t, err)
		assert.Empty(t, producer.sent)
	})
}
