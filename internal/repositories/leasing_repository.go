package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/scalixity-dev/Pms-backend-sub001/internal/models"
)

type LeasingRepository interface {
	// Upsert inserts or replaces the leasing terms for l.PropertyID.
	Upsert(ctx context.Context, l *models.Leasing) error
	GetByPropertyID(ctx context.Context, propertyID uuid.UUID) (*models.Leasing, error)
}

type leasingRepo struct {
	db DB
}

func NewLeasingRepository(db DB) LeasingRepository {
	return &leasingRepo{db: db}
}

func (r *leasingRepo) Upsert(ctx context.Context, l *models.Leasing) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO leasings (
            id, property_id, monthly_rent, security_deposit, amount_refundable,
            lease_duration_min, lease_duration_max, available_from,
            pets_allowed, application_fee, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, NOW(), NOW())
        ON CONFLICT (property_id) DO UPDATE SET
            monthly_rent=EXCLUDED.monthly_rent,
            security_deposit=EXCLUDED.security_deposit,
            amount_refundable=EXCLUDED.amount_refundable,
            lease_duration_min=EXCLUDED.lease_duration_min,
            lease_duration_max=EXCLUDED.lease_duration_max,
            available_from=EXCLUDED.available_from,
            pets_allowed=EXCLUDED.pets_allowed,
            application_fee=EXCLUDED.application_fee,
            updated_at=NOW()
    `,
		l.ID,
		l.PropertyID,
		l.MonthlyRent,
		l.SecurityDeposit,
		l.AmountRefundable,
		l.LeaseDurationMin,
		l.LeaseDurationMax,
		l.AvailableFrom,
		l.PetsAllowed,
		l.ApplicationFee,
	)
	return err
}

func (r *leasingRepo) GetByPropertyID(ctx context.Context, propertyID uuid.UUID) (*models.Leasing, error) {
	row := r.db.QueryRow(ctx, baseSelectLeasing()+" WHERE property_id=$1", propertyID)
	return scanLeasing(row)
}

func baseSelectLeasing() string {
	return `
        SELECT
            id, property_id, monthly_rent, security_deposit, amount_refundable,
            lease_duration_min, lease_duration_max, available_from,
            pets_allowed, application_fee, created_at, updated_at
        FROM leasings
    `
}

func scanLeasing(row pgx.Row) (*models.Leasing, error) {
	var l models.Leasing
	err := row.Scan(
		&l.ID,
		&l.PropertyID,
		&l.MonthlyRent,
		&l.SecurityDeposit,
		&l.AmountRefundable,
		&l.LeaseDurationMin,
		&l.LeaseDurationMax,
		&l.AvailableFrom,
		&l.PetsAllowed,
		&l.ApplicationFee,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}
