package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/scalixity-dev/Pms-backend-sub001/internal/models"
)

type AttachmentRepository interface {
	Create(ctx context.Context, a *models.Attachment) error
	GetByURL(ctx context.Context, url string) (*models.Attachment, error)
	ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type attachmentRepo struct {
	db DB
}

func NewAttachmentRepository(db DB) AttachmentRepository {
	return &attachmentRepo{db: db}
}

func (r *attachmentRepo) Create(ctx context.Context, a *models.Attachment) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO attachments (id, property_id, url, file_name, content_type, size_bytes, created_at)
        VALUES ($1,$2,$3,$4,$5,$6, NOW())
    `,
		a.ID, a.PropertyID, a.URL, a.FileName, a.ContentType, a.SizeBytes,
	)
	return err
}

func (r *attachmentRepo) GetByURL(ctx context.Context, url string) (*models.Attachment, error) {
	row := r.db.QueryRow(ctx, baseSelectAttachment()+" WHERE url=$1", url)
	return scanAttachment(row)
}

func (r *attachmentRepo) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Attachment, error) {
	rows, err := r.db.Query(ctx, baseSelectAttachment()+" WHERE property_id=$1 ORDER BY created_at", propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Attachment
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *attachmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM attachments WHERE id=$1`, id)
	return err
}

func baseSelectAttachment() string {
	return `
        SELECT id, property_id, url, file_name, content_type, size_bytes, created_at
        FROM attachments
    `
}

func scanAttachment(row pgx.Row) (*models.Attachment, error) {
	var a models.Attachment
	err := row.Scan(
		&a.ID,
		&a.PropertyID,
		&a.URL,
		&a.FileName,
		&a.ContentType,
		&a.SizeBytes,
		&a.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
