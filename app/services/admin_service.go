package services

import (
	"context"

	"github.com/shashiranjanraj/akxton/app/models"
)

// AdminService serves the moderation surface: platform stats, full listings
// of users, properties and messages, and the deletion cascades.
type AdminService struct {
	users      UserStore
	properties PropertyStore
	requests   RequestStore
	messages   MessageStore
	cascade    *Cascade
}

func NewAdminService(users UserStore, properties PropertyStore, requests RequestStore, messages MessageStore, cascade *Cascade) *AdminService {
	return &AdminService{
		users:      users,
		properties: properties,
		requests:   requests,
		messages:   messages,
		cascade:    cascade,
	}
}

// Stats is the admin dashboard payload.
type Stats struct {
	Users      int64 `json:"users"`
	Properties int64 `json:"properties"`
	Requests   int64 `json:"requests"`
	Messages   int64 `json:"messages"`
}

// Stats counts the platform's main collections.
func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	properties, err := s.properties.Count(ctx)
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.Count(ctx)
	if err != nil {
		return nil, err
	}
	messages, err := s.messages.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{Users: users, Properties: properties, Requests: requests, Messages: messages}, nil
}

// Users returns every account, newest first.
func (s *AdminService) Users(ctx context.Context) ([]*models.User, error) {
	return s.users.All(ctx)
}

// Properties returns every listing with owners populated, newest first.
func (s *AdminService) Properties(ctx context.Context) ([]*models.Property, error) {
	return s.properties.All(ctx)
}

// Messages returns every contact-form submission, newest first.
func (s *AdminService) Messages(ctx context.Context) ([]*models.Message, error) {
	return s.messages.All(ctx)
}

// DeleteUser removes an account and everything it owns or references.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return mapStoreErr(err)
	}
	return s.cascade.DeleteUser(ctx, user)
}

// DeleteProperty removes any listing through the full cascade, regardless
// of owner.
func (s *AdminService) DeleteProperty(ctx context.Context, id string) error {
	property, err := s.properties.FindByID(ctx, id)
	if err != nil {
		return mapStoreErr(err)
	}
	return s.cascade.DeleteProperty(ctx, property)
}

// DeleteMessage removes a contact-form submission.
func (s *AdminService) DeleteMessage(ctx context.Context, id string) error {
	message, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return mapStoreErr(err)
	}
	return s.messages.Delete(ctx, message.ID)
}
