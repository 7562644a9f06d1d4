package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"carbroker/internal/repository"
)

// DecideApproval answers a pending approval request. The row-level
// pending guard is in the repository update, so a late decision on an
// already answered or swept row fails with a conflict.
func (c *Core) DecideApproval(ctx context.Context, p Principal, approvalID string, accept bool) (*repository.OrderApproval, error) {
	if err := authorize(p, opDecideApproval); err != nil {
		return nil, err
	}

	approval, err := c.approvals.GetByID(ctx, approvalID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get approval: %w", err)
	}

	now := time.Now().UTC()
	if approval.Status != repository.ApprovalStatusPending || !approval.ExpiresAt.After(now) {
		return nil, fmt.Errorf("%w: approval is no longer pending", ErrConflict)
	}

	status := repository.ApprovalStatusRejected
	if accept {
		status = repository.ApprovalStatusAccepted
	}
	decided, err := c.approvals.Decide(ctx, approvalID, status, p.UserID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to decide approval: %w", err)
	}
	if !decided {
		return nil, fmt.Errorf("%w: approval is no longer pending", ErrConflict)
	}

	approval.Status = status
	approval.DecidedBy = &p.UserID
	approval.DecidedAt = &now
	return approval, nil
}

// ApprovalSweeper expires overdue pending approval requests on an
// interval. Start it from main with the process context.
type ApprovalSweeper struct {
	approvals ApprovalRepository
	interval  time.Duration
	logger    *zap.Logger
	wg        sync.WaitGroup
}

func NewApprovalSweeper(approvals ApprovalRepository, interval time.Duration, logger *zap.Logger) *ApprovalSweeper {
	return &ApprovalSweeper{
		approvals: approvals,
		interval:  interval,
		logger:    logger,
	}
}

func (s *ApprovalSweeper) Run(ctx context.Context) {
	s.wg.Add(1)
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := s.approvals.ExpireOverdue(ctx, time.Now().UTC())
			if err != nil {
				s.logger.Error("approval sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				s.logger.Info("expired overdue approvals", zap.Int64("count", n))
			}
		case <-ctx.Done():
			s.logger.Info("approval sweeper stopping")
			return
		}
	}
}

func (s *ApprovalSweeper) Wait() {
	s.wg.Wait()
}
