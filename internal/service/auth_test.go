package service

import (
	"context"
	"testing"

	"github.com/ausare-dev/personal-finance-manager/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(repository.NewMemoryStore(), bcrypt.MinCost)

	u, err := svc.Register(ctx, "Alice@Example.com", "hunter2hunter2", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email, "email lowercased")
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "hunter2hunter2", u.PasswordHash)

	got, err := svc.Login(ctx, "alice@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(repository.NewMemoryStore(), bcrypt.MinCost)

	_, err := svc.Register(ctx, "not-an-email", "hunter2hunter2", "")
	assert.True(t, IsValidation(err))

	_, err = svc.Register(ctx, "a@b.com", "short", "")
	assert.True(t, IsValidation(err))

	_, err = svc.Register(ctx, "a@b.com", "hunter2hunter2", "")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "A@B.com", "hunter2hunter2", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}
