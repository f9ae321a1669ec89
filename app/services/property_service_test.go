package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/akxton/app/models"
	"github.com/shashiranjanraj/akxton/app/repositories"
)

type propertyFixture struct {
	properties *fakePropertyStore
	saved      *fakeSavedStore
	requests   *fakeRequestStore
	users      *fakeUserStore
	images     *fakeImageStore
	svc        *PropertyService
}

func newPropertyFixture(t *testing.T) *propertyFixture {
	t.Helper()
	f := &propertyFixture{
		properties: &fakePropertyStore{},
		saved:      &fakeSavedStore{},
		requests:   &fakeRequestStore{},
		users:      &fakeUserStore{},
		images:     &fakeImageStore{},
	}
	cascade := NewCascade(f.users, f.properties, f.saved, f.requests, f.images)
	f.svc = NewPropertyService(f.properties, f.images, cascade)
	return f
}

func validInput() PropertyInput {
	return PropertyInput{
		PropertyName: "Sunrise Residency",
		Address:      "Sector 9, Pune",
		Description:  "2 BHK near the park",
		Price:        floatPtr(4500000),
		Carpet:       intPtr(850),
		Type:         "flat",
		Offer:        "sale",
		Status:       "ready to move",
		Furnished:    "furnished",
	}
}

func TestCreatePropertyValidation(t *testing.T) {
	owner := testUser(t, "asha")
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*PropertyInput)
	}{
		{"missing name", func(in *PropertyInput) { in.PropertyName = "" }},
		{"missing address", func(in *PropertyInput) { in.Address = "" }},
		{"missing price", func(in *PropertyInput) { in.Price = nil }},
		{"missing carpet", func(in *PropertyInput) { in.Carpet = nil }},
		{"bad type", func(in *PropertyInput) { in.Type = "castle" }},
		{"bad offer", func(in *PropertyInput) { in.Offer = "lease" }},
		{"bad status", func(in *PropertyInput) { in.Status = "haunted" }},
		{"bad furnished", func(in *PropertyInput) { in.Furnished = "partly" }},
		{"bad loan", func(in *PropertyInput) { in.Loan = "maybe" }},
		{"negative price", func(in *PropertyInput) { in.Price = floatPtr(-1) }},
		{"zero carpet", func(in *PropertyInput) { in.Carpet = intPtr(0) }},
		{"name too long", func(in *PropertyInput) { in.PropertyName = strings.Repeat("n", 500) }},
		{"address too long", func(in *PropertyInput) { in.Address = strings.Repeat("a", 201) }},
		{"description too long", func(in *PropertyInput) { in.Description = strings.Repeat("d", 9000) }},
		{"negative bhk", func(in *PropertyInput) { in.Bhk = intPtr(-5) }},
		{"bhk past the cap", func(in *PropertyInput) { in.Bhk = intPtr(21) }},
		{"negative bathroom", func(in *PropertyInput) { in.Bathroom = intPtr(-1) }},
		{"implausible age", func(in *PropertyInput) { in.Age = intPtr(4000) }},
		{"roomFloor past the cap", func(in *PropertyInput) { in.RoomFloor = intPtr(201) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPropertyFixture(t)
			in := validInput()
			tt.mutate(&in)

			_, err := f.svc.Create(ctx, owner, in, nil)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, f.properties.properties, "nothing may be persisted")
		})
	}
}

func TestCreatePropertyUploadsAndDefaults(t *testing.T) {
	f := newPropertyFixture(t)
	owner := testUser(t, "asha")

	uploads := []ImageUpload{
		{Data: []byte("a"), ContentType: "image/jpeg"},
		{Data: []byte("b"), ContentType: "image/png"},
	}
	property, err := f.svc.Create(context.Background(), owner, validInput(), uploads)
	require.NoError(t, err)

	assert.Len(t, property.Images, 2)
	assert.Equal(t, models.DefaultLoan, property.Loan)
	assert.Equal(t, owner.ID, property.UserID)
	require.NotNil(t, property.Owner)
	assert.Equal(t, owner.Name, property.Owner.Name)
	assert.Len(t, f.properties.properties, 1)
}

func TestCreatePropertyImageCap(t *testing.T) {
	f := newPropertyFixture(t)
	owner := testUser(t, "asha")

	uploads := make([]ImageUpload, models.MaxImages+1)
	_, err := f.svc.Create(context.Background(), owner, validInput(), uploads)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, f.images.uploads, "no upload may start past the cap")
}

func TestCreatePropertyCleansUpAfterFailedUpload(t *testing.T) {
	f := newPropertyFixture(t)
	f.images.failOn = 2
	owner := testUser(t, "asha")

	uploads := []ImageUpload{
		{Data: []byte("a"), ContentType: "image/jpeg"},
		{Data: []byte("b"), ContentType: "image/jpeg"},
	}
	_, err := f.svc.Create(context.Background(), owner, validInput(), uploads)
	require.Error(t, err)

	assert.Empty(t, f.properties.properties)
	assert.Equal(t, []string{"properties/img1"}, f.images.deletedIDs(),
		"the image stored before the failure must be removed again")
}

func TestUpdatePropertyOwnershipAndPartialEdit(t *testing.T) {
	f := newPropertyFixture(t)
	owner := testUser(t, "asha")
	stranger := testUser(t, "ravi")
	property := testProperty(t, owner, 4500000)
	f.properties.properties = []*models.Property{property}
	ctx := context.Background()

	_, err := f.svc.Update(ctx, stranger, property.ID.Hex(), PropertyInput{Price: floatPtr(1)}, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := f.svc.Update(ctx, owner, property.ID.Hex(), PropertyInput{
		Price:  floatPtr(4700000),
		Status: "under construction",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 4700000.0, updated.Price)
	assert.Equal(t, "under construction", updated.Status)
	assert.Equal(t, "Sunrise Residency", updated.PropertyName, "unsupplied fields keep their values")
}

func TestUpdatePropertyEnforcesBounds(t *testing.T) {
	owner := testUser(t, "asha")
	ctx := context.Background()

	tests := []struct {
		name string
		in   PropertyInput
	}{
		{"description too long", PropertyInput{Description: strings.Repeat("d", 2001)}},
		{"negative bhk", PropertyInput{Bhk: intPtr(-5)}},
		{"implausible age", PropertyInput{Age: intPtr(100)}},
		{"totalFloors past the cap", PropertyInput{TotalFloors: intPtr(201)}},
		{"negative deposit", PropertyInput{Deposit: floatPtr(-100)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPropertyFixture(t)
			property := testProperty(t, owner, 4500000)
			f.properties.properties = []*models.Property{property}

			_, err := f.svc.Update(ctx, owner, property.ID.Hex(), tt.in, nil)
			assert.ErrorIs(t, err, ErrValidation)

			stored, findErr := f.properties.FindByID(ctx, property.ID.Hex())
			require.NoError(t, findErr)
			assert.Equal(t, "2 BHK near the park", stored.Description, "the stored listing stays untouched")
		})
	}
}

func TestUpdatePropertyImageCapCountsExisting(t *testing.T) {
	f := newPropertyFixture(t)
	owner := testUser(t, "asha")
	property := testProperty(t, owner, 4500000,
		"https://img.test/akxton/properties/a.jpg",
		"https://img.test/akxton/properties/b.jpg",
		"https://img.test/akxton/properties/c.jpg",
		"https://img.test/akxton/properties/d.jpg")
	f.properties.properties = []*models.Property{property}

	uploads := []ImageUpload{
		{Data: []byte("x"), ContentType: "image/jpeg"},
		{Data: []byte("y"), ContentType: "image/jpeg"},
	}
	_, err := f.svc.Update(context.Background(), owner, property.ID.Hex(), PropertyInput{}, uploads)
	assert.ErrorIs(t, err, ErrValidation)

	uploads = uploads[:1]
	updated, err := f.svc.Update(context.Background(), owner, property.ID.Hex(), PropertyInput{}, uploads)
	require.NoError(t, err)
	assert.Len(t, updated.Images, models.MaxImages)
}

func TestDeleteImage(t *testing.T) {
	f := newPropertyFixture(t)
	owner := testUser(t, "asha")
	keep := "https://img.test/akxton/properties/keep.jpg"
	gone := "https://img.test/akxton/properties/gone.jpg"
	property := testProperty(t, owner, 4500000, keep, gone)
	f.properties.properties = []*models.Property{property}
	ctx := context.Background()

	_, err := f.svc.DeleteImage(ctx, owner, property.ID.Hex(), "https://img.test/akxton/properties/other.jpg")
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := f.svc.DeleteImage(ctx, owner, property.ID.Hex(), gone)
	require.NoError(t, err)
	assert.Equal(t, []string{keep}, updated.Images)
	assert.Equal(t, []string{"properties/gone"}, f.images.deletedIDs())
}

func TestDeletePropertyCascades(t *testing.T) {
	f := newPropertyFixture(t)
	owner := testUser(t, "asha")
	fan := testUser(t, "ravi")
	property := testProperty(t, owner, 4500000,
		"https://img.test/akxton/properties/one.jpg",
		"https://img.test/akxton/properties/two.jpg",
		"https://elsewhere.example.com/photo.jpg") // foreign host, left alone
	other := testProperty(t, owner, 9000000)
	f.properties.properties = []*models.Property{property, other}
	f.saved.rows = []*models.Saved{
		{ID: mustOID(t), UserID: fan.ID, PropertyID: property.ID},
		{ID: mustOID(t), UserID: fan.ID, PropertyID: other.ID},
	}
	f.requests.rows = []*models.Request{
		{ID: mustOID(t), PropertyID: property.ID, SenderID: fan.ID, ReceiverID: owner.ID},
	}
	ctx := context.Background()

	_, errStranger := f.svc.Get(ctx, property.ID.Hex())
	require.NoError(t, errStranger)

	err := f.svc.Delete(ctx, fan, property.ID.Hex())
	assert.ErrorIs(t, err, ErrForbidden, "only the owner may delete")

	require.NoError(t, f.svc.Delete(ctx, owner, property.ID.Hex()))

	_, err = f.svc.Get(ctx, property.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, f.properties.properties, 1, "other listings stay")
	assert.Len(t, f.saved.rows, 1, "only bookmarks of the deleted listing go")
	assert.Empty(t, f.requests.rows)
	assert.Equal(t, []string{"properties/one", "properties/two"}, f.images.deletedIDs())
}

func TestDeletePropertySurvivesImageStoreFailure(t *testing.T) {
	f := newPropertyFixture(t)
	f.images.failIDs = map[string]bool{"properties/one": true}
	owner := testUser(t, "asha")
	property := testProperty(t, owner, 4500000,
		"https://img.test/akxton/properties/one.jpg",
		"https://img.test/akxton/properties/two.jpg")
	f.properties.properties = []*models.Property{property}

	require.NoError(t, f.svc.Delete(context.Background(), owner, property.ID.Hex()))
	assert.Empty(t, f.properties.properties, "record delete proceeds past image failures")
	assert.Equal(t, []string{"properties/two"}, f.images.deletedIDs(),
		"the remaining image is still attempted")
}

func TestSearchEnvelope(t *testing.T) {
	f := newPropertyFixture(t)
	owner := testUser(t, "asha")
	f.properties.properties = []*models.Property{
		testProperty(t, owner, 3000000),
		testProperty(t, owner, 1000000),
		testProperty(t, owner, 9000000),
		testProperty(t, owner, 2000000),
	}

	result, err := f.svc.Search(context.Background(), repositories.SearchQuery{
		MinPrice: "1500000",
		MaxPrice: "5000000",
		Sort:     "price_asc",
		Page:     1,
		PageSize: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, int64(1), result.Pages)
	require.Len(t, result.Properties, 2)
	assert.Equal(t, 2000000.0, result.Properties[0].Price, "ascending price order")
	assert.Equal(t, 3000000.0, result.Properties[1].Price)
}

func TestSearchEmptyResultKeepsShape(t *testing.T) {
	f := newPropertyFixture(t)

	result, err := f.svc.Search(context.Background(), repositories.SearchQuery{Page: 3, PageSize: 12})
	require.NoError(t, err)
	assert.NotNil(t, result.Properties, "empty pages serialise as [], not null")
	assert.Zero(t, result.Total)
	assert.Zero(t, result.Pages)
	assert.Equal(t, 3, result.Page)
}
