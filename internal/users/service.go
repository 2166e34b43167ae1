package users

import (
	"context"
	"fmt"
	"strings"

	"ticketeer/internal/shared/apperr"
	"ticketeer/internal/shared/validation"
	"ticketeer/pkg/logger"
)

type Service interface {
	Register(ctx context.Context, userID int64, req RegisterRequest) (*User, error)
	GetUser(ctx context.Context, userID int64) (*User, error)
	Deposit(ctx context.Context, userID int64, amount float64) (*User, error)
}

type service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{repo: repo, log: logger.GetDefault()}
}

// Register opens a ledger row for an identity that has none yet.
func (s *service) Register(ctx context.Context, userID int64, req RegisterRequest) (*User, error) {
	if userID <= 0 {
		return nil, apperr.Invalid("user", "id", "must be greater than 0")
	}
	user := &User{
		ID:          userID,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		DisplayName: strings.TrimSpace(req.DisplayName),
		TimeZone:    strings.TrimSpace(req.TimeZone),
		Version:     1,
	}
	if user.TimeZone == "" {
		user.TimeZone = "UTC"
	}
	if err := validation.Struct("user", user); err != nil {
		return nil, err
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	return user, nil
}

func (s *service) GetUser(ctx context.Context, userID int64) (*User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *service) Deposit(ctx context.Context, userID int64, amount float64) (*User, error) {
	if amount <= 0 {
		return nil, apperr.Invalid("deposit", "amount", "must be greater than 0")
	}
	if err := s.repo.Credit(ctx, userID, amount); err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}

	s.log.InfoContext(ctx, "Balance Deposited", "user_id", userID, "amount", amount)
	return s.repo.GetUserByID(ctx, userID)
}
