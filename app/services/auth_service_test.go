package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/akxton/app/models"
	"github.com/shashiranjanraj/akxton/pkg/auth"
)

func TestRegisterCreatesSignedInUser(t *testing.T) {
	users := &fakeUserStore{}
	svc := NewAuthService(users, &fakeAdminStore{})

	user, token, err := svc.Register(context.Background(), RegisterInput{
		Name:     "  Asha Verma ",
		Email:    "Asha@Example.COM",
		Number:   "9876543210",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "Asha Verma", user.Name)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")
	assert.True(t, auth.CheckPassword(user.Password, "secret123"))

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, auth.KindUser, claims.Kind)
	assert.Equal(t, user.ID.Hex(), claims.Subject)
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	users := &fakeUserStore{users: []*models.User{{
		ID:    mustOID(t),
		Email: "taken@example.com",
	}}}
	svc := NewAuthService(users, &fakeAdminStore{})

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Someone",
		Email:    "Taken@example.com",
		Number:   "9876543210",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)

	users := &fakeUserStore{users: []*models.User{{
		ID:       mustOID(t),
		Email:    "asha@example.com",
		Password: hash,
	}}}
	svc := NewAuthService(users, &fakeAdminStore{})
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		user, token, err := svc.Login(ctx, "Asha@Example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "asha@example.com", user.Email)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "asha@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email looks identical to wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ghost@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLoginAdmin(t *testing.T) {
	hash, err := auth.HashPassword("admin123")
	require.NoError(t, err)

	admins := &fakeAdminStore{admins: []*models.Admin{{
		ID:       mustOID(t),
		Name:     "admin",
		Password: hash,
	}}}
	svc := NewAuthService(&fakeUserStore{}, admins)
	ctx := context.Background()

	admin, token, err := svc.LoginAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Name)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, auth.KindAdmin, claims.Kind, "admin tokens carry the admin kind")

	_, _, err = svc.LoginAdmin(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
