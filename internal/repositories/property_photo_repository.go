package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/scalixity-dev/Pms-backend-sub001/internal/models"
)

type PropertyPhotoRepository interface {
	Create(ctx context.Context, p *models.PropertyPhoto) error
	GetByURL(ctx context.Context, url string) (*models.PropertyPhoto, error)
	ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.PropertyPhoto, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type propertyPhotoRepo struct {
	db DB
}

func NewPropertyPhotoRepository(db DB) PropertyPhotoRepository {
	return &propertyPhotoRepo{db: db}
}

func (r *propertyPhotoRepo) Create(ctx context.Context, p *models.PropertyPhoto) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO property_photos (id, property_id, url, position, created_at)
        VALUES ($1,$2,$3,$4, NOW())
    `,
		p.ID, p.PropertyID, p.URL, p.Position,
	)
	return err
}

func (r *propertyPhotoRepo) GetByURL(ctx context.Context, url string) (*models.PropertyPhoto, error) {
	row := r.db.QueryRow(ctx, baseSelectPhoto()+" WHERE url=$1", url)
	return scanPhoto(row)
}

func (r *propertyPhotoRepo) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.PropertyPhoto, error) {
	rows, err := r.db.Query(ctx, baseSelectPhoto()+" WHERE property_id=$1 ORDER BY position", propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.PropertyPhoto
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *propertyPhotoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM property_photos WHERE id=$1`, id)
	return err
}

func baseSelectPhoto() string {
	return `
        SELECT id, property_id, url, position, created_at
        FROM property_photos
    `
}

func scanPhoto(row pgx.Row) (*models.PropertyPhoto, error) {
	var p models.PropertyPhoto
	err := row.Scan(
		&p.ID,
		&p.PropertyID,
		&p.URL,
		&p.Position,
		&p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
