package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/scalixity-dev/Pms-backend-sub001/internal/models"
)

type AmenityRepository interface {
	Create(ctx context.Context, a *models.Amenity) error
	ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Amenity, error)
}

type amenityRepo struct {
	db DB
}

func NewAmenityRepository(db DB) AmenityRepository {
	return &amenityRepo{db: db}
}

func (r *amenityRepo) Create(ctx context.Context, a *models.Amenity) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO amenities (id, property_id, name) VALUES ($1,$2,$3)
    `, a.ID, a.PropertyID, a.Name)
	return err
}

func (r *amenityRepo) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Amenity, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, property_id, name FROM amenities WHERE property_id=$1 ORDER BY name
    `, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Amenity
	for rows.Next() {
		var a models.Amenity
		if err := rows.Scan(&a.ID, &a.PropertyID, &a.Name); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
