package repositories

import (
	"context"

	"github.com/scalixity-dev/Pms-backend-sub001/internal/models"
)

// PropertyManagerRepository provisions manager rows from the token
// identity. Managers are born in the auth provider, so the only write
// here is an idempotent first-touch insert.
type PropertyManagerRepository interface {
	Ensure(ctx context.Context, pm *models.PropertyManager) error
}

type pmRepo struct {
	db DB
}

func NewPropertyManagerRepository(db DB) PropertyManagerRepository {
	return &pmRepo{db: db}
}

func (r *pmRepo) Ensure(ctx context.Context, pm *models.PropertyManager) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO property_managers (id, email, business_name, created_at)
        VALUES ($1,$2,$3, NOW())
        ON CONFLICT (id) DO NOTHING
    `, pm.ID, pm.Email, pm.BusinessName)
	return err
}
