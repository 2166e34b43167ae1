package users_test

import (
	"context"
	"testing"

	"ticketeer/internal/shared/apperr"
	"ticketeer/internal/testutil/memstore"
	"ticketeer/internal/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	svc := users.NewService(memstore.New())
	ctx := context.Background()

	user, err := svc.Register(ctx, 5, users.RegisterRequest{Email: " Ann@Example.com ", DisplayName: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, "UTC", user.TimeZone)
	assert.Zero(t, user.Balance)

	_, err = svc.Register(ctx, 5, users.RegisterRequest{Email: "other@example.com", DisplayName: "Other"})
	require.ErrorIs(t, err, apperr.ErrValidation, "one ledger row per identity")

	_, err = svc.Register(ctx, 6, users.RegisterRequest{Email: "ann@example.com", DisplayName: "Twin"})
	require.ErrorIs(t, err, apperr.ErrValidation, "emails are unique")
}

func TestRegisterValidation(t *testing.T) {
	svc := users.NewService(memstore.New())

	tests := []struct {
		name   string
		userID int64
		req    users.RegisterRequest
	}{
		{"no identity", 0, users.RegisterRequest{Email: "a@example.com", DisplayName: "A"}},
		{"bad email", 1, users.RegisterRequest{Email: "not-an-email", DisplayName: "A"}},
		{"blank name", 1, users.RegisterRequest{Email: "a@example.com", DisplayName: "  "}},
		{"unknown zone", 1, users.RegisterRequest{Email: "a@example.com", DisplayName: "A", TimeZone: "Mars/Olympus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.userID, tt.req)
			require.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestDeposit(t *testing.T) {
	store := memstore.New()
	store.SeedUser(3, 5)
	svc := users.NewService(store)
	ctx := context.Background()

	user, err := svc.Deposit(ctx, 3, 12.5)
	require.NoError(t, err)
	assert.Equal(t, 17.5, user.Balance)

	_, err = svc.Deposit(ctx, 3, 0)
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Deposit(ctx, 4, 10)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
