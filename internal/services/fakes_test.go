package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/scalixity-dev/Pms-backend-sub001/internal/models"
)

/* ------------------------------------------------------------------
   In-memory repositories
------------------------------------------------------------------ */

type fakePMRepo struct {
	managers map[uuid.UUID]*models.PropertyManager
}

func newFakePMRepo() *fakePMRepo {
	return &fakePMRepo{managers: map[uuid.UUID]*models.PropertyManager{}}
}

func (f *fakePMRepo) Ensure(_ context.Context, pm *models.PropertyManager) error {
	if _, ok := f.managers[pm.ID]; ok {
		return nil
	}
	f.managers[pm.ID] = pm
	return nil
}

type fakePropertyRepo struct {
	props map[uuid.UUID]*models.Property
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{props: map[uuid.UUID]*models.Property{}}
}

func (f *fakePropertyRepo) Create(_ context.Context, p *models.Property) error {
	f.props[p.ID] = p
	return nil
}

func (f *fakePropertyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	return f.props[id], nil
}

func (f *fakePropertyRepo) ListByManagerID(_ context.Context, managerID uuid.UUID) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range f.props {
		if p.ManagerID == managerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePropertyRepo) UpdateStatus(_ context.Context, id uuid.UUID, status models.PropertyStatusType) error {
	p, ok := f.props[id]
	if !ok {
		return errors.New("property not found")
	}
	p.Status = status
	return nil
}

type fakeUnitRepo struct {
	units map[uuid.UUID]*models.Unit
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{units: map[uuid.UUID]*models.Unit{}}
}

func (f *fakeUnitRepo) Create(_ context.Context, u *models.Unit) error {
	f.units[u.ID] = u
	return nil
}

func (f *fakeUnitRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Unit, error) {
	return f.units[id], nil
}

func (f *fakeUnitRepo) ListByPropertyID(_ context.Context, propertyID uuid.UUID) ([]*models.Unit, error) {
	var out []*models.Unit
	for _, u := range f.units {
		if u.PropertyID == propertyID {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeLeasingRepo struct {
	byProperty map[uuid.UUID]*models.Leasing
}

func newFakeLeasingRepo() *fakeLeasingRepo {
	return &fakeLeasingRepo{byProperty: map[uuid.UUID]*models.Leasing{}}
}

func (f *fakeLeasingRepo) Upsert(_ context.Context, l *models.Leasing) error {
	f.byProperty[l.PropertyID] = l
	return nil
}

func (f *fakeLeasingRepo) GetByPropertyID(_ context.Context, propertyID uuid.UUID) (*models.Leasing, error) {
	return f.byProperty[propertyID], nil
}

// fakeListingRepo couples listing creation with property activation the
// way the SQL transaction does: on a forced failure neither side lands.
type fakeListingRepo struct {
	listings map[uuid.UUID]*models.Listing
	props    *fakePropertyRepo

	failCreate error
}

func newFakeListingRepo(props *fakePropertyRepo) *fakeListingRepo {
	return &fakeListingRepo{listings: map[uuid.UUID]*models.Listing{}, props: props}
}

func (f *fakeListingRepo) CreateWithPropertyActivation(ctx context.Context, l *models.Listing) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.listings[l.ID] = l
	return f.props.UpdateStatus(ctx, l.PropertyID, models.PropertyStatusActive)
}

func (f *fakeListingRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Listing, error) {
	return f.listings[id], nil
}

func (f *fakeListingRepo) List(_ context.Context, managerID *uuid.UUID) ([]*models.Listing, error) {
	var out []*models.Listing
	for _, l := range f.listings {
		if managerID != nil {
			p := f.props.props[l.PropertyID]
			if p == nil || p.ManagerID != *managerID {
				continue
			}
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeListingRepo) ListByPropertyID(_ context.Context, propertyID uuid.UUID) ([]*models.Listing, error) {
	var out []*models.Listing
	for _, l := range f.listings {
		if l.PropertyID == propertyID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeListingRepo) Update(_ context.Context, l *models.Listing) error {
	if _, ok := f.listings[l.ID]; !ok {
		return errors.New("listing not found")
	}
	f.listings[l.ID] = l
	return nil
}

func (f *fakeListingRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.listings, id)
	return nil
}

type fakeAmenityRepo struct {
	amenities map[uuid.UUID]*models.Amenity
}

func newFakeAmenityRepo() *fakeAmenityRepo {
	return &fakeAmenityRepo{amenities: map[uuid.UUID]*models.Amenity{}}
}

func (f *fakeAmenityRepo) Create(_ context.Context, a *models.Amenity) error {
	f.amenities[a.ID] = a
	return nil
}

func (f *fakeAmenityRepo) ListByPropertyID(_ context.Context, propertyID uuid.UUID) ([]*models.Amenity, error) {
	var out []*models.Amenity
	for _, a := range f.amenities {
		if a.PropertyID == propertyID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeTaskRepo struct {
	tasks map[uuid.UUID]*models.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[uuid.UUID]*models.Task{}}
}

func (f *fakeTaskRepo) Create(_ context.Context, t *models.Task) error {
	f.tasks[t.ID] = t
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Task, error) {
	return f.tasks[id], nil
}

func (f *fakeTaskRepo) ListByManagerID(_ context.Context, managerID uuid.UUID) ([]*models.Task, error) {
	var out []*models.Task
	for _, t := range f.tasks {
		if t.ManagerID == managerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, t *models.Task) error {
	if _, ok := f.tasks[t.ID]; !ok {
		return errors.New("task not found")
	}
	f.tasks[t.ID] = t
	return nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.tasks, id)
	return nil
}

type fakeAttachmentRepo struct {
	attachments map[uuid.UUID]*models.Attachment
}

func newFakeAttachmentRepo() *fakeAttachmentRepo {
	return &fakeAttachmentRepo{attachments: map[uuid.UUID]*models.Attachment{}}
}

func (f *fakeAttachmentRepo) Create(_ context.Context, a *models.Attachment) error {
	f.attachments[a.ID] = a
	return nil
}

func (f *fakeAttachmentRepo) GetByURL(_ context.Context, url string) (*models.Attachment, error) {
	for _, a := range f.attachments {
		if a.URL == url {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAttachmentRepo) ListByPropertyID(_ context.Context, propertyID uuid.UUID) ([]*models.Attachment, error) {
	var out []*models.Attachment
	for _, a := range f.attachments {
		if a.PropertyID == propertyID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAttachmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.attachments, id)
	return nil
}

type fakePhotoRepo struct {
	photos map[uuid.UUID]*models.PropertyPhoto
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{photos: map[uuid.UUID]*models.PropertyPhoto{}}
}

func (f *fakePhotoRepo) Create(_ context.Context, p *models.PropertyPhoto) error {
	f.photos[p.ID] = p
	return nil
}

func (f *fakePhotoRepo) GetByURL(_ context.Context, url string) (*models.PropertyPhoto, error) {
	for _, p := range f.photos {
		if p.URL == url {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePhotoRepo) ListByPropertyID(_ context.Context, propertyID uuid.UUID) ([]*models.PropertyPhoto, error) {
	var out []*models.PropertyPhoto
	for _, p := range f.photos {
		if p.PropertyID == propertyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePhotoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.photos, id)
	return nil
}

/* ------------------------------------------------------------------
   In-memory object store
------------------------------------------------------------------ */

type fakeStore struct {
	objects map[string][]byte

	putCalls    []string
	deleteCalls []string

	failPut    error
	failDelete error
	buckets    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}, buckets: 1}
}

func (f *fakeStore) EnsureBucket(context.Context) error { return nil }

func (f *fakeStore) PutObject(_ context.Context, key, _ string, body io.Reader) error {
	f.putCalls = append(f.putCalls, key)
	if f.failPut != nil {
		return f.failPut
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStore) DeleteObject(_ context.Context, key string) error {
	f.deleteCalls = append(f.deleteCalls, key)
	if f.failDelete != nil {
		return f.failDelete
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeStore) PresignGet(_ context.Context, key string, duration time.Duration) (string, error) {
	return f.PublicURL(key) + "?signed=1", nil
}

func (f *fakeStore) CountBuckets(context.Context) (int, error) { return f.buckets, nil }

func (f *fakeStore) PublicURL(key string) string {
	return "https://test-bucket.s3.us-east-1.amazonaws.com/" + key
}

func (f *fakeStore) KeyFromURL(url string) (string, error) {
	const base = "https://test-bucket.s3.us-east-1.amazonaws.com/"
	if len(url) > len(base) && url[:len(base)] == base {
		return url[len(base):], nil
	}
	return "", errors.New("url does not look like a stored object")
}

func (f *fakeStore) Bucket() string { return "test-bucket" }
func (f *fakeStore) Region() string { return "us-east-1" }
