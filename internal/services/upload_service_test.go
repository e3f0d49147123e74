package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/scalixity-dev/Pms-backend-sub001/internal/constants"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/models"
)

// tiny but valid PNG header so content sniffing sees an image
var pngBytes = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4, 0x89,
}

type uploadFixture struct {
	svc     *UploadService
	store   *fakeStore
	props   *fakePropertyRepo
	attach  *fakeAttachmentRepo
	photos  *fakePhotoRepo
	manager uuid.UUID
}

func newUploadFixture() *uploadFixture {
	store := newFakeStore()
	props := newFakePropertyRepo()
	attach := newFakeAttachmentRepo()
	photos := newFakePhotoRepo()
	return &uploadFixture{
		svc:     NewUploadService(store, props, attach, photos),
		store:   store,
		props:   props,
		attach:  attach,
		photos:  photos,
		manager: uuid.New(),
	}
}

func (f *uploadFixture) addProperty() *models.Property {
	p := &models.Property{ID: uuid.New(), ManagerID: f.manager, PropertyType: models.PropertyTypeSingle}
	f.props.props[p.ID] = p
	return p
}

/* ------------------------------------------------------------------
   Upload
------------------------------------------------------------------ */

func TestUploadRejectsUnknownCategoryBeforeStore(t *testing.T) {
	f := newUploadFixture()

	_, err := f.svc.Upload(context.Background(), f.manager, nil, "ARCHIVE", "a.zip", "application/zip", pngBytes)
	requireAppErrorStatus(t, err, http.StatusBadRequest)
	require.Empty(t, f.store.putCalls)
}

func TestUploadRejectsDisallowedMimeBeforeStore(t *testing.T) {
	f := newUploadFixture()

	_, err := f.svc.Upload(context.Background(), f.manager, nil, constants.CategoryImage, "a.svg", "image/svg+xml", pngBytes)
	requireAppErrorStatus(t, err, http.StatusBadRequest)
	require.Empty(t, f.store.putCalls)
}

func TestUploadRejectsMismatchedContent(t *testing.T) {
	f := newUploadFixture()

	// declared image/png but the payload is plain text
	_, err := f.svc.Upload(context.Background(), f.manager, nil, constants.CategoryImage, "a.png", "image/png", []byte("just some text"))
	requireAppErrorStatus(t, err, http.StatusBadRequest)
	require.Empty(t, f.store.putCalls)
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	f := newUploadFixture()

	_, err := f.svc.Upload(context.Background(), f.manager, nil, constants.CategoryDocument, "a.pdf", "application/pdf", nil)
	requireAppErrorStatus(t, err, http.StatusBadRequest)
}

func TestUploadAcceptsMimeWithParameters(t *testing.T) {
	f := newUploadFixture()

	resp, err := f.svc.Upload(context.Background(), f.manager, nil,
		constants.CategoryDocument, "notes.txt", "text/plain; charset=utf-8", []byte("hello world"))
	require.NoError(t, err)
	require.Len(t, f.store.putCalls, 1)
	require.Equal(t, int64(11), resp.SizeBytes)
}

func TestUploadImageForPropertyRecordsPhoto(t *testing.T) {
	f := newUploadFixture()
	prop := f.addProperty()

	resp, err := f.svc.Upload(context.Background(), f.manager, &prop.ID,
		constants.CategoryImage, "front door.png", "image/png", pngBytes)
	require.NoError(t, err)

	require.Len(t, f.photos.photos, 1)
	require.Empty(t, f.attach.attachments)
	for _, p := range f.photos.photos {
		require.Equal(t, prop.ID, p.PropertyID)
		require.Equal(t, resp.URL, p.URL)
	}
}

func TestUploadDocumentForPropertyRecordsAttachment(t *testing.T) {
	f := newUploadFixture()
	prop := f.addProperty()

	resp, err := f.svc.Upload(context.Background(), f.manager, &prop.ID,
		constants.CategoryDocument, "lease.pdf", "application/pdf", []byte("%PDF-1.4 fake"))
	require.NoError(t, err)

	require.Len(t, f.attach.attachments, 1)
	for _, a := range f.attach.attachments {
		require.Equal(t, prop.ID, a.PropertyID)
		require.Equal(t, resp.URL, a.URL)
		require.Equal(t, "lease.pdf", a.FileName)
	}
}

func TestUploadForeignPropertyForbidden(t *testing.T) {
	f := newUploadFixture()
	prop := f.addProperty()

	_, err := f.svc.Upload(context.Background(), uuid.New(), &prop.ID,
		constants.CategoryImage, "a.png", "image/png", pngBytes)
	requireAppErrorStatus(t, err, http.StatusForbidden)
	require.Empty(t, f.store.putCalls)
}

func TestUploadUnknownPropertyNotFound(t *testing.T) {
	f := newUploadFixture()
	missing := uuid.New()

	_, err := f.svc.Upload(context.Background(), f.manager, &missing,
		constants.CategoryImage, "a.png", "image/png", pngBytes)
	requireAppErrorStatus(t, err, http.StatusNotFound)
}

/* ------------------------------------------------------------------
   Delete
------------------------------------------------------------------ */

func TestDeleteByURLRemovesRowAndObject(t *testing.T) {
	f := newUploadFixture()
	prop := f.addProperty()

	resp, err := f.svc.Upload(context.Background(), f.manager, &prop.ID,
		constants.CategoryImage, "a.png", "image/png", pngBytes)
	require.NoError(t, err)

	_, err = f.svc.DeleteByURL(context.Background(), f.manager, resp.URL)
	require.NoError(t, err)

	require.Empty(t, f.photos.photos)
	require.Len(t, f.store.deleteCalls, 1)
	require.Equal(t, resp.Key, f.store.deleteCalls[0])
}

func TestDeleteByURLUnknownFileFailsClosed(t *testing.T) {
	f := newUploadFixture()

	_, err := f.svc.DeleteByURL(context.Background(), f.manager,
		"https://test-bucket.s3.us-east-1.amazonaws.com/image/properties/x/whatever.png")
	requireAppErrorStatus(t, err, http.StatusNotFound)
	require.Empty(t, f.store.deleteCalls)
}

func TestDeleteByURLForeignOwnerIndistinguishableFromUnknown(t *testing.T) {
	f := newUploadFixture()
	prop := f.addProperty()

	resp, err := f.svc.Upload(context.Background(), f.manager, &prop.ID,
		constants.CategoryImage, "a.png", "image/png", pngBytes)
	require.NoError(t, err)

	_, foreignErr := f.svc.DeleteByURL(context.Background(), uuid.New(), resp.URL)
	_, unknownErr := f.svc.DeleteByURL(context.Background(), f.manager,
		"https://test-bucket.s3.us-east-1.amazonaws.com/image/properties/x/nothing.png")

	requireAppErrorStatus(t, foreignErr, http.StatusNotFound)
	requireAppErrorStatus(t, unknownErr, http.StatusNotFound)
	require.Equal(t, foreignErr.Error(), unknownErr.Error())
	require.Len(t, f.photos.photos, 1)
	require.Empty(t, f.store.deleteCalls)
}

/* ------------------------------------------------------------------
   Presign and connection test
------------------------------------------------------------------ */

func TestPresignDefaultsDuration(t *testing.T) {
	f := newUploadFixture()
	url := f.store.PublicURL("image/users/u/123-abc-a.png")

	resp, err := f.svc.Presign(context.Background(), url, 0)
	require.NoError(t, err)
	require.Equal(t, int(constants.DefaultPresignDuration.Seconds()), resp.ExpiresIn)
	require.Contains(t, resp.PresignedURL, "signed=1")
}

func TestPresignMalformedURLRejected(t *testing.T) {
	f := newUploadFixture()

	_, err := f.svc.Presign(context.Background(), "https://example.com/other/thing.png", 0)
	requireAppErrorStatus(t, err, http.StatusBadRequest)
}

func TestConnectionTestProbeCleanupFailureSwallowed(t *testing.T) {
	f := newUploadFixture()
	f.store.failDelete = errors.New("simulated store failure")

	resp, err := f.svc.ConnectionTest(context.Background())
	require.NoError(t, err)
	require.Equal(t, "OK", resp.Status)
	require.Equal(t, "test-bucket", resp.Bucket)
	require.Equal(t, 1, resp.BucketCount)
}

/* ------------------------------------------------------------------
   Key derivation
------------------------------------------------------------------ */

func TestDeriveKeyShape(t *testing.T) {
	userID := uuid.New()
	now := time.UnixMilli(1700000000000)

	key := DeriveKey(constants.CategoryImage, nil, userID, "My Photo (1).PNG", now)

	require.True(t, strings.HasPrefix(key, "image/users/"+userID.String()+"/1700000000000-"))
	require.True(t, strings.HasSuffix(key, "-MyPhoto1.png"))
	require.NotContains(t, key, " ")
	require.NotContains(t, key, "(")
}

func TestDeriveKeyPropertyScope(t *testing.T) {
	propID := uuid.New()
	key := DeriveKey(constants.CategoryDocument, &propID, uuid.New(), "lease.pdf", time.Now())
	require.Contains(t, key, "document/properties/"+propID.String()+"/")
}

func TestDeriveKeyRandomSuffixDiffers(t *testing.T) {
	userID := uuid.New()
	now := time.Now()
	k1 := DeriveKey(constants.CategoryImage, nil, userID, "a.png", now)
	k2 := DeriveKey(constants.CategoryImage, nil, userID, "a.png", now)
	require.NotEqual(t, k1, k2)
}

func TestSanitizeBaseName(t *testing.T) {
	require.Equal(t, "hello-world.v2", SanitizeBaseName("hello-world.v2"))
	require.Equal(t, "abc", SanitizeBaseName("a b/c!"))
	require.Equal(t, "file", SanitizeBaseName("@#$%"))

	long := strings.Repeat("x", 200)
	require.Len(t, SanitizeBaseName(long), constants.MaxBaseNameLength)
}

func TestValidateMimeTypeCaseInsensitive(t *testing.T) {
	require.NoError(t, ValidateMimeType(constants.CategoryImage, "IMAGE/JPEG"))
	require.Error(t, ValidateMimeType(constants.CategoryImage, "application/pdf"))
}
