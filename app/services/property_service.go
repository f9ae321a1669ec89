package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/akxton/app/models"
	"github.com/shashiranjanraj/akxton/app/repositories"
	"github.com/shashiranjanraj/akxton/pkg/imagestore"
	"github.com/shashiranjanraj/akxton/pkg/logger"
)

// PropertyService owns the listing lifecycle: creation with image uploads,
// public search, owner edits, and the deletion cascade.
type PropertyService struct {
	properties PropertyStore
	images     imagestore.Store
	cascade    *Cascade
}

func NewPropertyService(properties PropertyStore, images imagestore.Store, cascade *Cascade) *PropertyService {
	return &PropertyService{properties: properties, images: images, cascade: cascade}
}

// ImageUpload is one decoded multipart file.
type ImageUpload struct {
	Data        []byte
	ContentType string
}

// PropertyInput carries a listing submission. Nil numeric fields and empty
// strings mean "not supplied" so the same shape serves create and update.
type PropertyInput struct {
	PropertyName string
	Address      string
	Description  string
	Price        *float64
	Deposit      *float64
	Type         string
	Offer        string
	Status       string
	Furnished    string
	Loan         string
	Bhk          *int
	Bedroom      *int
	Bathroom     *int
	Balcony      *int
	Carpet       *int
	Age          *int
	TotalFloors  *int
	RoomFloor    *int
	Amenities    *models.Amenities
}

func (in PropertyInput) validateEnums() error {
	checks := []struct {
		value   string
		allowed []string
		field   string
	}{
		{in.Type, models.PropertyTypes, "type"},
		{in.Offer, models.OfferTypes, "offer"},
		{in.Status, models.StatusValues, "status"},
		{in.Furnished, models.FurnishedValues, "furnished"},
		{in.Loan, models.LoanValues, "loan"},
	}
	for _, c := range checks {
		if c.value != "" && !models.ValidEnum(c.value, c.allowed) {
			return Validation(fmt.Sprintf("invalid %s value %q", c.field, c.value))
		}
	}
	return nil
}

func (in PropertyInput) validateCreate() error {
	required := []struct {
		ok    bool
		field string
	}{
		{in.PropertyName != "", "propertyName"},
		{in.Address != "", "address"},
		{in.Description != "", "description"},
		{in.Price != nil, "price"},
		{in.Carpet != nil, "carpet"},
		{in.Type != "", "type"},
		{in.Offer != "", "offer"},
		{in.Status != "", "status"},
		{in.Furnished != "", "furnished"},
	}
	for _, r := range required {
		if !r.ok {
			return Validation(fmt.Sprintf("the %s field is required", r.field))
		}
	}
	if err := in.validateEnums(); err != nil {
		return err
	}
	return in.validateBounds()
}

// validateBounds mirrors the collection schema limits. Nil numerics mean
// "not supplied" and pass; supplied values must sit inside their range.
func (in PropertyInput) validateBounds() error {
	lengths := []struct {
		value string
		max   int
		field string
	}{
		{in.PropertyName, 100, "propertyName"},
		{in.Address, 200, "address"},
		{in.Description, 2000, "description"},
	}
	for _, l := range lengths {
		if len(l.value) > l.max {
			return Validation(fmt.Sprintf("%s must be at most %d characters", l.field, l.max))
		}
	}

	if in.Price != nil && *in.Price < 0 {
		return Validation("price must not be negative")
	}
	if in.Deposit != nil && *in.Deposit < 0 {
		return Validation("deposit must not be negative")
	}
	if in.Carpet != nil && *in.Carpet <= 0 {
		return Validation("carpet area must be positive")
	}

	ranges := []struct {
		value    *int
		min, max int
		field    string
	}{
		{in.Bhk, 0, 20, "bhk"},
		{in.Bedroom, 0, 20, "bedroom"},
		{in.Bathroom, 0, 20, "bathroom"},
		{in.Balcony, 0, 20, "balcony"},
		{in.Age, 0, 99, "age"},
		{in.TotalFloors, 0, 200, "totalFloors"},
		{in.RoomFloor, 0, 200, "roomFloor"},
	}
	for _, r := range ranges {
		if r.value != nil && (*r.value < r.min || *r.value > r.max) {
			return Validation(fmt.Sprintf("%s must be between %d and %d", r.field, r.min, r.max))
		}
	}
	return nil
}

// Create validates the submission, uploads the images, and persists the
// listing owned by the caller. When an upload fails midway the already
// uploaded images are removed again before the error is returned.
func (s *PropertyService) Create(ctx context.Context, owner *models.User, in PropertyInput, uploads []ImageUpload) (*models.Property, error) {
	if err := in.validateCreate(); err != nil {
		return nil, err
	}
	if len(uploads) > models.MaxImages {
		return nil, Validation(fmt.Sprintf("a property can have at most %d images", models.MaxImages))
	}

	urls, err := s.uploadAll(ctx, uploads)
	if err != nil {
		return nil, err
	}

	property := &models.Property{
		UserID:       owner.ID,
		PropertyName: in.PropertyName,
		Address:      in.Address,
		Description:  in.Description,
		Price:        *in.Price,
		Carpet:       *in.Carpet,
		Type:         in.Type,
		Offer:        in.Offer,
		Status:       in.Status,
		Furnished:    in.Furnished,
		Loan:         models.DefaultLoan,
		Images:       urls,
	}
	if in.Loan != "" {
		property.Loan = in.Loan
	}
	if in.Deposit != nil {
		property.Deposit = *in.Deposit
	}
	if in.Bhk != nil {
		property.Bhk = *in.Bhk
	}
	if in.Bedroom != nil {
		property.Bedroom = *in.Bedroom
	}
	if in.Bathroom != nil {
		property.Bathroom = *in.Bathroom
	}
	if in.Balcony != nil {
		property.Balcony = *in.Balcony
	}
	if in.Age != nil {
		property.Age = *in.Age
	}
	if in.TotalFloors != nil {
		property.TotalFloors = *in.TotalFloors
	}
	if in.RoomFloor != nil {
		property.RoomFloor = *in.RoomFloor
	}
	if in.Amenities != nil {
		property.Amenities = *in.Amenities
	}

	if err := s.properties.Create(ctx, property); err != nil {
		s.cascade.deleteImages(ctx, urls)
		return nil, err
	}

	summary := owner.Summary()
	property.Owner = &summary

	logger.WithCtx(ctx).Info("property created",
		"property_id", property.ID.Hex(), "owner_id", owner.ID.Hex(), "images", len(urls))
	return property, nil
}

// Get returns a single listing with its owner populated.
func (s *PropertyService) Get(ctx context.Context, id string) (*models.Property, error) {
	property, err := s.properties.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return property, nil
}

// SearchResult is one page of listings plus the pagination envelope.
type SearchResult struct {
	Properties []*models.Property `json:"properties"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Pages      int64              `json:"pages"`
}

// Search runs the public listing search. Total and Pages are computed from
// the same predicate as the page slice.
func (s *PropertyService) Search(ctx context.Context, q repositories.SearchQuery) (*SearchResult, error) {
	properties, total, err := s.properties.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	if properties == nil {
		properties = []*models.Property{}
	}

	return &SearchResult{
		Properties: properties,
		Total:      total,
		Page:       q.Page,
		Pages:      q.Pages(total),
	}, nil
}

// MyListings returns the caller's own listings, newest first.
func (s *PropertyService) MyListings(ctx context.Context, owner *models.User) ([]*models.Property, error) {
	return s.properties.FindByOwner(ctx, owner.ID)
}

// Update applies the supplied fields to an owned listing and appends any new
// image uploads. Only the owner may edit; the combined image count may not
// exceed the cap.
func (s *PropertyService) Update(ctx context.Context, actor *models.User, id string, in PropertyInput, uploads []ImageUpload) (*models.Property, error) {
	property, err := s.ownedProperty(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := in.validateEnums(); err != nil {
		return nil, err
	}
	if err := in.validateBounds(); err != nil {
		return nil, err
	}
	if len(property.Images)+len(uploads) > models.MaxImages {
		return nil, Validation(fmt.Sprintf("a property can have at most %d images", models.MaxImages))
	}

	if in.PropertyName != "" {
		property.PropertyName = in.PropertyName
	}
	if in.Address != "" {
		property.Address = in.Address
	}
	if in.Description != "" {
		property.Description = in.Description
	}
	if in.Type != "" {
		property.Type = in.Type
	}
	if in.Offer != "" {
		property.Offer = in.Offer
	}
	if in.Status != "" {
		property.Status = in.Status
	}
	if in.Furnished != "" {
		property.Furnished = in.Furnished
	}
	if in.Loan != "" {
		property.Loan = in.Loan
	}
	if in.Price != nil {
		property.Price = *in.Price
	}
	if in.Deposit != nil {
		property.Deposit = *in.Deposit
	}
	if in.Carpet != nil {
		property.Carpet = *in.Carpet
	}
	if in.Bhk != nil {
		property.Bhk = *in.Bhk
	}
	if in.Bedroom != nil {
		property.Bedroom = *in.Bedroom
	}
	if in.Bathroom != nil {
		property.Bathroom = *in.Bathroom
	}
	if in.Balcony != nil {
		property.Balcony = *in.Balcony
	}
	if in.Age != nil {
		property.Age = *in.Age
	}
	if in.TotalFloors != nil {
		property.TotalFloors = *in.TotalFloors
	}
	if in.RoomFloor != nil {
		property.RoomFloor = *in.RoomFloor
	}
	if in.Amenities != nil {
		property.Amenities = *in.Amenities
	}

	urls, err := s.uploadAll(ctx, uploads)
	if err != nil {
		return nil, err
	}
	property.Images = append(property.Images, urls...)

	if err := s.properties.Update(ctx, property); err != nil {
		s.cascade.deleteImages(ctx, urls)
		return nil, err
	}
	return property, nil
}

// DeleteImage removes one image from an owned listing. The record is
// updated first; removing the hosted copy is best-effort.
func (s *PropertyService) DeleteImage(ctx context.Context, actor *models.User, id, imageURL string) (*models.Property, error) {
	property, err := s.ownedProperty(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	remaining := make([]string, 0, len(property.Images))
	found := false
	for _, url := range property.Images {
		if url == imageURL && !found {
			found = true
			continue
		}
		remaining = append(remaining, url)
	}
	if !found {
		return nil, ErrNotFound
	}

	property.Images = remaining
	if err := s.properties.Update(ctx, property); err != nil {
		return nil, err
	}

	s.cascade.deleteImages(ctx, []string{imageURL})
	return property, nil
}

// Delete removes an owned listing through the full cascade.
func (s *PropertyService) Delete(ctx context.Context, actor *models.User, id string) error {
	property, err := s.ownedProperty(ctx, actor, id)
	if err != nil {
		return err
	}
	return s.cascade.DeleteProperty(ctx, property)
}

func (s *PropertyService) ownedProperty(ctx context.Context, actor *models.User, id string) (*models.Property, error) {
	property, err := s.properties.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if property.UserID != actor.ID {
		return nil, ErrForbidden
	}
	return property, nil
}

// uploadAll stores the given uploads and returns their URLs. On a midway
// failure the images stored so far are deleted again.
func (s *PropertyService) uploadAll(ctx context.Context, uploads []ImageUpload) ([]string, error) {
	urls := make([]string, 0, len(uploads))
	for _, up := range uploads {
		url, err := s.images.Upload(ctx, up.Data, up.ContentType, "properties")
		if err != nil {
			s.cascade.deleteImages(ctx, urls)
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// mapStoreErr lifts repository sentinels into the service taxonomy.
func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repositories.ErrDuplicate):
		return ErrDuplicateIdentity
	default:
		return err
	}
}
