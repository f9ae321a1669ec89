package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/akxton/app/models"
	"github.com/shashiranjanraj/akxton/app/repositories"
)

// SavedService manages per-user property bookmarks.
type SavedService struct {
	saved      SavedStore
	properties PropertyStore
}

func NewSavedService(saved SavedStore, properties PropertyStore) *SavedService {
	return &SavedService{saved: saved, properties: properties}
}

// Toggle flips the bookmark state for (user, property) and reports the new
// state. Toggling converges under concurrency: a racing duplicate insert is
// absorbed as "already saved".
func (s *SavedService) Toggle(ctx context.Context, user *models.User, propertyID string) (bool, error) {
	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return false, mapStoreErr(err)
	}

	existing, err := s.saved.Find(ctx, user.ID, property.ID)
	switch {
	case err == nil:
		if err := s.saved.Delete(ctx, existing.ID); err != nil {
			return false, err
		}
		return false, nil

	case errors.Is(err, repositories.ErrNotFound):
		err := s.saved.Create(ctx, &models.Saved{UserID: user.ID, PropertyID: property.ID})
		if err != nil && !errors.Is(err, repositories.ErrDuplicate) {
			return false, err
		}
		return true, nil

	default:
		return false, err
	}
}

// Check reports whether the user has bookmarked the property.
func (s *SavedService) Check(ctx context.Context, user *models.User, propertyID string) (bool, error) {
	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return false, mapStoreErr(err)
	}

	_, err = s.saved.Find(ctx, user.ID, property.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns the user's bookmarks with their properties populated. Rows
// whose property has since been deleted are dropped from the result.
func (s *SavedService) List(ctx context.Context, user *models.User) ([]*models.SavedEntry, error) {
	rows, err := s.saved.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PropertyID)
	}
	byID, err := s.properties.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]*models.SavedEntry, 0, len(rows))
	for _, row := range rows {
		property, ok := byID[row.PropertyID]
		if !ok {
			continue // property deleted since the bookmark was made
		}
		entries = append(entries, &models.SavedEntry{Saved: *row, Property: property})
	}
	return entries, nil
}
