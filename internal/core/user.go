package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"carbroker/internal/repository"
)

type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	Role     repository.Role
	Status   repository.UserStatus
}

func (c *Core) CreateUser(ctx context.Context, p Principal, input CreateUserInput) (*repository.User, error) {
	if err := authorize(p, opManageUsers); err != nil {
		return nil, err
	}
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", ErrValidation)
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	switch input.Role {
	case repository.RoleAdmin, repository.RoleDisponent, repository.RoleDriver:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, input.Role)
	}
	status := input.Status
	if status == "" {
		status = repository.UserStatusPending
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &repository.User{
		ID:        uuid.New().String(),
		Email:     strings.ToLower(input.Email),
		Name:      input.Name,
		Password:  string(hashed),
		Role:      input.Role,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email is already registered", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	c.logger.Info("user created",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return user, nil
}

func (c *Core) UpdateUserStatus(ctx context.Context, p Principal, userID string, status repository.UserStatus) error {
	if err := authorize(p, opManageUsers); err != nil {
		return err
	}
	switch status {
	case repository.UserStatusPending, repository.UserStatusActive, repository.UserStatusInactive:
	default:
		return fmt.Errorf("%w: unknown user status %q", ErrValidation, status)
	}
	updated, err := c.users.UpdateStatus(ctx, userID, status)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}
