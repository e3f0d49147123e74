package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/scalixity-dev/Pms-backend-sub001/internal/constants"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/dtos"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/models"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/repositories"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/utils"
)

// ObjectStore is the object-store gateway the upload service talks
// to. *storage.Client implements it; tests use a fake.
type ObjectStore interface {
	EnsureBucket(ctx context.Context) error
	PutObject(ctx context.Context, key, contentType string, body io.Reader) error
	DeleteObject(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, duration time.Duration) (string, error)
	CountBuckets(ctx context.Context) (int, error)
	PublicURL(key string) string
	KeyFromURL(url string) (string, error)
	Bucket() string
	Region() string
}

type UploadService struct {
	store      ObjectStore
	propRepo   repositories.PropertyRepository
	attachRepo repositories.AttachmentRepository
	photoRepo  repositories.PropertyPhotoRepository
}

func NewUploadService(
	store ObjectStore,
	propRepo repositories.PropertyRepository,
	attachRepo repositories.AttachmentRepository,
	photoRepo repositories.PropertyPhotoRepository,
) *UploadService {
	return &UploadService{
		store:      store,
		propRepo:   propRepo,
		attachRepo: attachRepo,
		photoRepo:  photoRepo,
	}
}

// InitAtStartup runs the bucket bootstrap once at boot. A failure here
// is logged but not fatal; the first upload retries it.
func (s *UploadService) InitAtStartup(ctx context.Context) {
	if err := s.store.EnsureBucket(ctx); err != nil {
		utils.Logger.WithError(err).Warn("Bucket initialization failed at startup, deferring to first use")
	}
}

/*
Upload validates the declared MIME type against the category's
allow-list, derives a storage key, writes the object, and records an
attachment or photo row when the upload targets a property.

Validation failures never reach the object store.
*/
func (s *UploadService) Upload(
	ctx context.Context,
	callerID uuid.UUID,
	propertyID *uuid.UUID,
	category string,
	fileName string,
	contentType string,
	data []byte,
) (*dtos.UploadFileResponse, error) {
	if err := ValidateMimeType(category, contentType); err != nil {
		return nil, err
	}
	if err := sniffCheck(category, data); err != nil {
		return nil, err
	}
	if len(data) > constants.MaxUploadSizeBytes {
		return nil, utils.NewValidationError("file exceeds the %d byte upload limit", constants.MaxUploadSizeBytes)
	}

	if propertyID != nil {
		prop, err := s.propRepo.GetByID(ctx, *propertyID)
		if err != nil {
			return nil, err
		}
		if prop == nil {
			return nil, utils.NewNotFoundError("property %s not found", *propertyID)
		}
		if callerID != uuid.Nil && prop.ManagerID != callerID {
			return nil, utils.NewForbiddenError("you do not manage property %s", *propertyID)
		}
	}

	key := DeriveKey(category, propertyID, callerID, fileName, time.Now())

	if err := s.store.PutObject(ctx, key, contentType, bytes.NewReader(data)); err != nil {
		if utils.IsAppError(err) {
			return nil, err
		}
		return nil, utils.NewInternalError("failed to store file", err)
	}

	url := s.store.PublicURL(key)

	if propertyID != nil {
		if category == constants.CategoryImage {
			photo := &models.PropertyPhoto{
				ID:         uuid.New(),
				PropertyID: *propertyID,
				URL:        url,
			}
			if err := s.photoRepo.Create(ctx, photo); err != nil {
				return nil, utils.NewInternalError("failed to record photo", err)
			}
		} else {
			att := &models.Attachment{
				ID:          uuid.New(),
				PropertyID:  *propertyID,
				URL:         url,
				FileName:    fileName,
				ContentType: contentType,
				SizeBytes:   int64(len(data)),
			}
			if err := s.attachRepo.Create(ctx, att); err != nil {
				return nil, utils.NewInternalError("failed to record attachment", err)
			}
		}
	}

	return &dtos.UploadFileResponse{
		URL:         url,
		Key:         key,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
	}, nil
}

/*
DeleteByURL removes a stored object after verifying the caller owns
the property referencing it. A URL with no referencing attachment or
photo row fails exactly like an ownership mismatch, so an anonymous
probe can't distinguish "unknown file" from "someone else's file".
*/
func (s *UploadService) DeleteByURL(ctx context.Context, callerID uuid.UUID, url string) (*dtos.DeleteFileResponse, error) {
	propertyID, cleanup, err := s.lookupFileOwner(ctx, url)
	if err != nil {
		return nil, err
	}

	prop, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil || (callerID != uuid.Nil && prop.ManagerID != callerID) {
		return nil, fileDenied()
	}

	key, err := s.store.KeyFromURL(url)
	if err != nil {
		return nil, utils.NewValidationError("malformed file url: %v", err)
	}

	if err := cleanup(ctx); err != nil {
		return nil, utils.NewInternalError("failed to remove file record", err)
	}
	if err := s.store.DeleteObject(ctx, key); err != nil {
		if utils.IsAppError(err) {
			return nil, err
		}
		return nil, utils.NewInternalError("failed to delete stored file", err)
	}

	return &dtos.DeleteFileResponse{Message: "file deleted"}, nil
}

// lookupFileOwner resolves which property references the URL and
// returns a cleanup that removes the referencing row.
func (s *UploadService) lookupFileOwner(ctx context.Context, url string) (uuid.UUID, func(context.Context) error, error) {
	att, err := s.attachRepo.GetByURL(ctx, url)
	if err != nil {
		return uuid.Nil, nil, err
	}
	if att != nil {
		return att.PropertyID, func(ctx context.Context) error {
			return s.attachRepo.Delete(ctx, att.ID)
		}, nil
	}

	photo, err := s.photoRepo.GetByURL(ctx, url)
	if err != nil {
		return uuid.Nil, nil, err
	}
	if photo != nil {
		return photo.PropertyID, func(ctx context.Context) error {
			return s.photoRepo.Delete(ctx, photo.ID)
		}, nil
	}

	// no referencing row: fail closed
	return uuid.Nil, nil, fileDenied()
}

func fileDenied() error {
	return utils.NewNotFoundError("file not found or access denied")
}

// Presign returns a time-limited read URL for a stored object.
func (s *UploadService) Presign(ctx context.Context, url string, durationMinutes int) (*dtos.PresignResponse, error) {
	key, err := s.store.KeyFromURL(url)
	if err != nil {
		return nil, utils.NewValidationError("malformed file url: %v", err)
	}

	duration := constants.DefaultPresignDuration
	if durationMinutes > 0 {
		duration = time.Duration(durationMinutes) * time.Minute
	}

	presigned, err := s.store.PresignGet(ctx, key, duration)
	if err != nil {
		return nil, utils.NewInternalError("failed to presign url", err)
	}
	return &dtos.PresignResponse{
		PresignedURL: presigned,
		ExpiresIn:    int(duration.Seconds()),
	}, nil
}

// ConnectionTest exercises the store end to end: list buckets, then
// round-trip a probe object. Probe cleanup failures are logged and
// swallowed.
func (s *UploadService) ConnectionTest(ctx context.Context) (*dtos.ConnectionTestResponse, error) {
	count, err := s.store.CountBuckets(ctx)
	if err != nil {
		return nil, utils.NewInternalError("object store unreachable", err)
	}

	probeKey := fmt.Sprintf("diagnostics/connection-test-%d-%s.txt", time.Now().UnixMilli(), utils.RandomHex(6))
	if err := s.store.PutObject(ctx, probeKey, "text/plain", strings.NewReader("ok")); err != nil {
		return nil, utils.NewInternalError("probe upload failed", err)
	}
	if err := s.store.DeleteObject(ctx, probeKey); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to clean up probe object %s", probeKey)
	}

	return &dtos.ConnectionTestResponse{
		Status:      "OK",
		Bucket:      s.store.Bucket(),
		Region:      s.store.Region(),
		BucketCount: count,
	}, nil
}

/* ------------------------------------------------------------------
   Validation and key derivation
------------------------------------------------------------------ */

// ValidateMimeType checks the declared content type against the
// category's allow-list.
func ValidateMimeType(category, contentType string) error {
	allowed, ok := constants.AllowedMimeTypes[category]
	if !ok {
		return utils.NewValidationError("unknown upload category %q", category)
	}
	normalized := strings.ToLower(strings.TrimSpace(contentType))
	// drop any parameters, e.g. "text/plain; charset=utf-8"
	if i := strings.Index(normalized, ";"); i >= 0 {
		normalized = strings.TrimSpace(normalized[:i])
	}
	for _, m := range allowed {
		if normalized == m {
			return nil
		}
	}
	return utils.NewValidationError("content type %q is not allowed for category %s", contentType, category)
}

// sniffCheck cross-checks the payload's detected type against the
// declared category for media uploads. Documents are too varied to
// sniff reliably.
func sniffCheck(category string, data []byte) error {
	if len(data) == 0 {
		return utils.NewValidationError("file is empty")
	}
	switch category {
	case constants.CategoryImage, constants.CategoryVideo:
		detected := mimetype.Detect(data)
		want := "image/"
		if category == constants.CategoryVideo {
			want = "video/"
		}
		if !strings.HasPrefix(detected.String(), want) {
			return utils.NewValidationError(
				"file content looks like %s, which does not match category %s", detected.String(), category)
		}
	}
	return nil
}

/*
DeriveKey builds the storage key:

	{category}/{properties/<id> | users/<id>}/{millis}-{hex}-{name}.{ext}

The base name is stripped to [A-Za-z0-9.-] and truncated.
*/
func DeriveKey(category string, propertyID *uuid.UUID, userID uuid.UUID, fileName string, now time.Time) string {
	scope := "users/" + userID.String()
	if propertyID != nil {
		scope = "properties/" + propertyID.String()
	}

	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))

	sanitized := SanitizeBaseName(base)
	key := fmt.Sprintf("%s/%s/%d-%s-%s",
		strings.ToLower(category),
		scope,
		now.UnixMilli(),
		utils.RandomHex(constants.KeyRandomHexLen),
		sanitized,
	)
	if ext != "" {
		key += "." + SanitizeBaseName(strings.ToLower(ext))
	}
	return key
}

// SanitizeBaseName strips everything but letters, digits, dots and
// dashes, then truncates.
func SanitizeBaseName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		out = "file"
	}
	if len(out) > constants.MaxBaseNameLength {
		out = out[:constants.MaxBaseNameLength]
	}
	return out
}
