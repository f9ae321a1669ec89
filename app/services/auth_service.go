package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shashiranjanraj/akxton/app/models"
	"github.com/shashiranjanraj/akxton/app/repositories"
	"github.com/shashiranjanraj/akxton/pkg/auth"
	"github.com/shashiranjanraj/akxton/pkg/logger"
)

// AuthService registers and authenticates both principal kinds. Users and
// admins live in separate collections but share one token issuance path.
type AuthService struct {
	users  UserStore
	admins AdminStore
}

func NewAuthService(users UserStore, admins AdminStore) *AuthService {
	return &AuthService{users: users, admins: admins}
}

// RegisterInput carries a new-account submission.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Number   string `json:"number" validate:"required,min=10,max=15"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register creates a user account and signs them in. The email is stored
// lowercased; a taken email fails with ErrDuplicateIdentity.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Number:   strings.TrimSpace(in.Number),
		Password: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, "", ErrDuplicateIdentity
		}
		return nil, "", err
	}

	token, err := auth.GenerateToken(auth.KindUser, user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	logger.WithCtx(ctx).Info("user registered", "user_id", user.ID.Hex())
	return user, token, nil
}

// Login authenticates a user by email and password. An unknown email and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(auth.KindUser, user.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// LoginAdmin authenticates an admin by name and password.
func (s *AuthService) LoginAdmin(ctx context.Context, name, password string) (*models.Admin, string, error) {
	admin, err := s.admins.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !auth.CheckPassword(admin.Password, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(auth.KindAdmin, admin.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	return admin, token, nil
}
