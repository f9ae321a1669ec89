package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shashiranjanraj/akxton/app/models"
	"github.com/shashiranjanraj/akxton/app/repositories"
	"github.com/shashiranjanraj/akxton/pkg/auth"
)

// UserService serves the signed-in user's own account: the dashboard
// profile and profile updates.
type UserService struct {
	users      UserStore
	properties PropertyStore
	saved      SavedStore
	requests   RequestStore
}

func NewUserService(users UserStore, properties PropertyStore, saved SavedStore, requests RequestStore) *UserService {
	return &UserService{users: users, properties: properties, saved: saved, requests: requests}
}

// Profile is the dashboard payload: the account plus its activity counts.
type Profile struct {
	User             *models.User `json:"user"`
	Listings         int64        `json:"listings"`
	SavedCount       int64        `json:"saved"`
	ReceivedRequests int64        `json:"receivedRequests"`
}

// Profile assembles the dashboard for the signed-in user.
func (s *UserService) Profile(ctx context.Context, user *models.User) (*Profile, error) {
	listings, err := s.properties.CountByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	saved, err := s.saved.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	received, err := s.requests.CountByReceiver(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:             user,
		Listings:         listings,
		SavedCount:       saved,
		ReceivedRequests: received,
	}, nil
}

// UpdateProfileInput carries a profile edit. Empty fields keep their stored
// value; changing the password requires the current one.
type UpdateProfileInput struct {
	Name            string `json:"name" validate:"nullable,max=100"`
	Email           string `json:"email" validate:"nullable,email"`
	Number          string `json:"number" validate:"nullable,min=10,max=15"`
	Password        string `json:"password" validate:"nullable,min=6"`
	CurrentPassword string `json:"currentPassword"`
}

// UpdateProfile applies the submitted fields to the signed-in user and
// issues a fresh token for the updated account.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, in UpdateProfileInput) (*models.User, string, error) {
	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" {
		user.Email = email
	}
	if number := strings.TrimSpace(in.Number); number != "" {
		user.Number = number
	}
	if in.Password != "" {
		if !auth.CheckPassword(user.Password, in.CurrentPassword) {
			return nil, "", ErrInvalidCredentials
		}
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, "", err
		}
		user.Password = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, "", ErrDuplicateIdentity
		}
		return nil, "", err
	}

	token, err := auth.GenerateToken(auth.KindUser, user.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
