package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/akxton/app/models"
	"github.com/shashiranjanraj/akxton/app/repositories"
)

// In-memory fakes for the store interfaces. They reproduce the sentinel
// behavior of the real repositories (ErrNotFound, ErrDuplicate on unique
// violations) so the services under test see the same contract.

type fakeUserStore struct {
	users []*models.User
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	email = strings.ToLower(email)
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrNotFound
	}
	for _, u := range f.users {
		if u.ID == oid {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserStore) Update(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.ID != user.ID && u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	for i, u := range f.users {
		if u.ID == user.ID {
			f.users[i] = user
			return nil
		}
	}
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeUserStore) All(_ context.Context) ([]*models.User, error) {
	return append([]*models.User(nil), f.users...), nil
}

func (f *fakeUserStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeAdminStore struct {
	admins []*models.Admin
}

func (f *fakeAdminStore) FindByName(_ context.Context, name string) (*models.Admin, error) {
	for _, a := range f.admins {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeAdminStore) FindByID(_ context.Context, id string) (*models.Admin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrNotFound
	}
	for _, a := range f.admins {
		if a.ID == oid {
			return a, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeAdminStore) Create(_ context.Context, admin *models.Admin) error {
	for _, a := range f.admins {
		if a.Name == admin.Name {
			return repositories.ErrDuplicate
		}
	}
	admin.ID = primitive.NewObjectID()
	f.admins = append(f.admins, admin)
	return nil
}

type fakePropertyStore struct {
	properties []*models.Property
}

func (f *fakePropertyStore) Create(_ context.Context, property *models.Property) error {
	property.ID = primitive.NewObjectID()
	if property.Images == nil {
		property.Images = []string{}
	}
	f.properties = append(f.properties, property)
	return nil
}

func (f *fakePropertyStore) FindByID(_ context.Context, id string) (*models.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrNotFound
	}
	for _, p := range f.properties {
		if p.ID == oid {
			return p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// Search implements the price-range filter and price sorts, which is the
// slice of the query language the service-level tests exercise. The full
// predicate construction is covered by the query builder's own tests.
func (f *fakePropertyStore) Search(_ context.Context, q repositories.SearchQuery) ([]*models.Property, int64, error) {
	var matched []*models.Property
	for _, p := range f.properties {
		if min, err := strconv.ParseFloat(q.MinPrice, 64); err == nil && p.Price < min {
			continue
		}
		if max, err := strconv.ParseFloat(q.MaxPrice, 64); err == nil && p.Price > max {
			continue
		}
		matched = append(matched, p)
	}

	switch q.Sort {
	case "price_asc":
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case "price_desc":
		sort.Slice(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	}

	total := int64(len(matched))
	skip := int(q.Skip())
	if skip > len(matched) {
		skip = len(matched)
	}
	end := skip + int(q.Limit())
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (f *fakePropertyStore) FindByOwner(_ context.Context, ownerID primitive.ObjectID) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range f.properties {
		if p.UserID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePropertyStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Property, error) {
	out := make(map[primitive.ObjectID]*models.Property, len(ids))
	for _, id := range ids {
		for _, p := range f.properties {
			if p.ID == id {
				out[id] = p
			}
		}
	}
	return out, nil
}

func (f *fakePropertyStore) All(_ context.Context) ([]*models.Property, error) {
	return append([]*models.Property(nil), f.properties...), nil
}

func (f *fakePropertyStore) Update(_ context.Context, property *models.Property) error {
	for i, p := range f.properties {
		if p.ID == property.ID {
			f.properties[i] = property
			return nil
		}
	}
	return nil
}

func (f *fakePropertyStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, p := range f.properties {
		if p.ID == id {
			f.properties = append(f.properties[:i], f.properties[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakePropertyStore) CountByOwner(_ context.Context, ownerID primitive.ObjectID) (int64, error) {
	var n int64
	for _, p := range f.properties {
		if p.UserID == ownerID {
			n++
		}
	}
	return n, nil
}

func (f *fakePropertyStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.properties)), nil
}

type fakeSavedStore struct {
	rows []*models.Saved
}

func (f *fakeSavedStore) Find(_ context.Context, userID, propertyID primitive.ObjectID) (*models.Saved, error) {
	for _, s := range f.rows {
		if s.UserID == userID && s.PropertyID == propertyID {
			return s, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeSavedStore) Create(_ context.Context, saved *models.Saved) error {
	for _, s := range f.rows {
		if s.UserID == saved.UserID && s.PropertyID == saved.PropertyID {
			return repositories.ErrDuplicate
		}
	}
	saved.ID = primitive.NewObjectID()
	f.rows = append(f.rows, saved)
	return nil
}

func (f *fakeSavedStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, s := range f.rows {
		if s.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeSavedStore) ListByUser(_ context.Context, userID primitive.ObjectID) ([]*models.Saved, error) {
	var out []*models.Saved
	for _, s := range f.rows {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSavedStore) CountByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	rows, _ := f.ListByUser(context.Background(), userID)
	return int64(len(rows)), nil
}

func (f *fakeSavedStore) DeleteByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	return f.deleteWhere(func(s *models.Saved) bool { return s.UserID == userID }), nil
}

func (f *fakeSavedStore) DeleteByProperty(_ context.Context, propertyID primitive.ObjectID) (int64, error) {
	return f.deleteWhere(func(s *models.Saved) bool { return s.PropertyID == propertyID }), nil
}

func (f *fakeSavedStore) deleteWhere(match func(*models.Saved) bool) int64 {
	var kept []*models.Saved
	var removed int64
	for _, s := range f.rows {
		if match(s) {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	f.rows = kept
	return removed
}

type fakeRequestStore struct {
	rows      []*models.Request
	summaries map[primitive.ObjectID]models.UserSummary
}

func (f *fakeRequestStore) Find(_ context.Context, propertyID, senderID primitive.ObjectID) (*models.Request, error) {
	for _, r := range f.rows {
		if r.PropertyID == propertyID && r.SenderID == senderID {
			return r, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeRequestStore) FindByID(_ context.Context, id string) (*models.Request, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrNotFound
	}
	for _, r := range f.rows {
		if r.ID == oid {
			return r, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeRequestStore) Create(_ context.Context, request *models.Request) error {
	for _, r := range f.rows {
		if r.PropertyID == request.PropertyID && r.SenderID == request.SenderID {
			return repositories.ErrDuplicate
		}
	}
	request.ID = primitive.NewObjectID()
	f.rows = append(f.rows, request)
	return nil
}

func (f *fakeRequestStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, r := range f.rows {
		if r.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRequestStore) ListBySender(_ context.Context, senderID primitive.ObjectID) ([]*models.Request, error) {
	var out []*models.Request
	for _, r := range f.rows {
		if r.SenderID == senderID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestStore) ListByReceiver(_ context.Context, receiverID primitive.ObjectID) ([]*models.Request, error) {
	var out []*models.Request
	for _, r := range f.rows {
		if r.ReceiverID == receiverID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestStore) CountByReceiver(_ context.Context, receiverID primitive.ObjectID) (int64, error) {
	rows, _ := f.ListByReceiver(context.Background(), receiverID)
	return int64(len(rows)), nil
}

func (f *fakeRequestStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.rows)), nil
}

func (f *fakeRequestStore) DeleteByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	return f.deleteWhere(func(r *models.Request) bool {
		return r.SenderID == userID || r.ReceiverID == userID
	}), nil
}

func (f *fakeRequestStore) DeleteByProperty(_ context.Context, propertyID primitive.ObjectID) (int64, error) {
	return f.deleteWhere(func(r *models.Request) bool { return r.PropertyID == propertyID }), nil
}

func (f *fakeRequestStore) deleteWhere(match func(*models.Request) bool) int64 {
	var kept []*models.Request
	var removed int64
	for _, r := range f.rows {
		if match(r) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return removed
}

func (f *fakeRequestStore) LoadUserSummaries(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	out := make(map[primitive.ObjectID]models.UserSummary, len(ids))
	for _, id := range ids {
		if s, ok := f.summaries[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

type fakeMessageStore struct {
	rows []*models.Message
}

func (f *fakeMessageStore) Create(_ context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	f.rows = append(f.rows, message)
	return nil
}

func (f *fakeMessageStore) All(_ context.Context) ([]*models.Message, error) {
	return append([]*models.Message(nil), f.rows...), nil
}

func (f *fakeMessageStore) FindByID(_ context.Context, id string) (*models.Message, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repositories.ErrNotFound
	}
	for _, m := range f.rows {
		if m.ID == oid {
			return m, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeMessageStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, m := range f.rows {
		if m.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeMessageStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.rows)), nil
}

// fakeImageStore records every upload and delete. The cascade engine
// deletes in parallel, so it is guarded by a mutex.
type fakeImageStore struct {
	mu       sync.Mutex
	uploads  int
	deleted  []string
	failIDs  map[string]bool // public IDs whose delete should fail
	uploadAt string          // base URL, defaults to https://img.test
	failOn   int             // 1-based upload ordinal that fails, 0 = never
}

func (f *fakeImageStore) base() string {
	if f.uploadAt != "" {
		return f.uploadAt
	}
	return "https://img.test"
}

func (f *fakeImageStore) Upload(_ context.Context, _ []byte, _, folder string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	if f.failOn > 0 && f.uploads == f.failOn {
		return "", fmt.Errorf("image store unavailable")
	}
	return fmt.Sprintf("%s/akxton/%s/img%d.jpg", f.base(), folder, f.uploads), nil
}

func (f *fakeImageStore) Delete(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[publicID] {
		return fmt.Errorf("delete rejected")
	}
	f.deleted = append(f.deleted, publicID)
	return nil
}

func (f *fakeImageStore) Recognizes(url string) bool {
	return strings.HasPrefix(url, f.base()+"/")
}

func (f *fakeImageStore) deletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string(nil), f.deleted...)
	sort.Strings(out)
	return out
}
