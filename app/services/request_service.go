package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/akxton/app/models"
	"github.com/shashiranjanraj/akxton/app/repositories"
	"github.com/shashiranjanraj/akxton/pkg/logger"
)

// RequestService manages enquiries between users about listings.
type RequestService struct {
	requests   RequestStore
	properties PropertyStore
}

func NewRequestService(requests RequestStore, properties PropertyStore) *RequestService {
	return &RequestService{requests: requests, properties: properties}
}

// Send records an enquiry from sender about the property. The receiver is
// the property's owner at send time and is never rewritten afterwards.
// Owners cannot enquire about their own listings, and a sender gets at most
// one enquiry per property.
func (s *RequestService) Send(ctx context.Context, sender *models.User, propertyID string) (*models.RequestEntry, error) {
	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if property.UserID == sender.ID {
		return nil, Validation("you cannot enquire about your own property")
	}

	if _, err := s.requests.Find(ctx, property.ID, sender.ID); err == nil {
		return nil, ErrDuplicateRequest
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	request := &models.Request{
		PropertyID: property.ID,
		SenderID:   sender.ID,
		ReceiverID: property.UserID,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateRequest
		}
		return nil, err
	}

	logger.WithCtx(ctx).Info("enquiry sent",
		"request_id", request.ID.Hex(),
		"property_id", property.ID.Hex(),
		"sender_id", sender.ID.Hex())

	summary := property.Summary()
	from := sender.Summary()
	entry := &models.RequestEntry{Request: *request, Property: &summary, Sender: &from}
	if property.Owner != nil {
		entry.Receiver = property.Owner
	}
	return entry, nil
}

// Sent returns the user's outgoing enquiries with the property and its
// owner populated.
func (s *RequestService) Sent(ctx context.Context, user *models.User) ([]*models.RequestEntry, error) {
	rows, err := s.requests.ListBySender(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, rows, func(e *models.RequestEntry, u *models.UserSummary) { e.Receiver = u },
		func(r *models.Request) primitive.ObjectID { return r.ReceiverID })
}

// Received returns the enquiries addressed to the user with the property
// and the sender populated.
func (s *RequestService) Received(ctx context.Context, user *models.User) ([]*models.RequestEntry, error) {
	rows, err := s.requests.ListByReceiver(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, rows, func(e *models.RequestEntry, u *models.UserSummary) { e.Sender = u },
		func(r *models.Request) primitive.ObjectID { return r.SenderID })
}

// Delete removes one of the user's own sent enquiries.
func (s *RequestService) Delete(ctx context.Context, actor *models.User, id string) error {
	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return mapStoreErr(err)
	}
	if request.SenderID != actor.ID {
		return ErrForbidden
	}
	return s.requests.Delete(ctx, request.ID)
}

// populate batch-loads the referenced properties and counterpart users for
// a page of requests. References deleted since the enquiry stay nil.
func (s *RequestService) populate(ctx context.Context, rows []*models.Request,
	attach func(*models.RequestEntry, *models.UserSummary),
	counterpart func(*models.Request) primitive.ObjectID,
) ([]*models.RequestEntry, error) {
	propertyIDs := make([]primitive.ObjectID, 0, len(rows))
	userIDs := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		propertyIDs = append(propertyIDs, row.PropertyID)
		userIDs = append(userIDs, counterpart(row))
	}

	properties, err := s.properties.FindByIDs(ctx, propertyIDs)
	if err != nil {
		return nil, err
	}
	users, err := s.requests.LoadUserSummaries(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]*models.RequestEntry, 0, len(rows))
	for _, row := range rows {
		entry := &models.RequestEntry{Request: *row}
		if property, ok := properties[row.PropertyID]; ok {
			summary := property.Summary()
			entry.Property = &summary
		}
		if u, ok := users[counterpart(row)]; ok {
			u := u
			attach(entry, &u)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
