package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/scalixity-dev/Pms-backend-sub001/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type ListingRepository interface {
	// CreateWithPropertyActivation inserts the listing and flips the
	// property's status to ACTIVE in one transaction. If either write
	// fails, neither is committed.
	CreateWithPropertyActivation(ctx context.Context, l *models.Listing) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	List(ctx context.Context, managerID *uuid.UUID) ([]*models.Listing, error)
	ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Listing, error)

	Update(ctx context.Context, l *models.Listing) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type listingRepo struct {
	db DB
}

func NewListingRepository(db DB) ListingRepository {
	return &listingRepo{db: db}
}

func (r *listingRepo) CreateWithPropertyActivation(ctx context.Context, l *models.Listing) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	_, err = tx.Exec(ctx, insertListingSQL(),
		l.ID,
		l.PropertyID,
		l.UnitID,
		l.ListingType,
		l.Status,
		l.Occupancy,
		l.Visibility,
		l.IsActive,
		l.Title,
		l.Description,
		l.MonthlyRent,
		l.SecurityDeposit,
		l.AmountRefundable,
		l.LeaseDurationMin,
		l.LeaseDurationMax,
		l.AvailableFrom,
		l.PetsAllowed,
		l.ApplicationFee,
	)
	if err != nil {
		return err
	}

	res, err := tx.Exec(ctx, `
        UPDATE properties SET status=$1, updated_at=NOW() WHERE id=$2
    `, models.PropertyStatusActive, l.PropertyID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		err = pgx.ErrNoRows
		return err
	}
	return nil
}

func (r *listingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	row := r.db.QueryRow(ctx, baseSelectListing()+" WHERE l.id=$1", id)
	return scanListing(row)
}

func (r *listingRepo) List(ctx context.Context, managerID *uuid.UUID) ([]*models.Listing, error) {
	sql := baseSelectListing()
	var args []interface{}
	if managerID != nil {
		sql += ` JOIN properties p ON p.id=l.property_id WHERE p.manager_id=$1`
		args = append(args, *managerID)
	}
	sql += " ORDER BY l.created_at DESC"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *listingRepo) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*models.Listing, error) {
	rows, err := r.db.Query(ctx, baseSelectListing()+" WHERE l.property_id=$1 ORDER BY l.created_at DESC", propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *listingRepo) Update(ctx context.Context, l *models.Listing) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE listings SET
            listing_type=$1, status=$2, occupancy=$3, visibility=$4, is_active=$5,
            title=$6, description=$7,
            monthly_rent=$8, security_deposit=$9, amount_refundable=$10,
            lease_duration_min=$11, lease_duration_max=$12, available_from=$13,
            pets_allowed=$14, application_fee=$15,
            updated_at=NOW()
        WHERE id=$16
    `,
		l.ListingType, l.Status, l.Occupancy, l.Visibility, l.IsActive,
		l.Title, l.Description,
		l.MonthlyRent, l.SecurityDeposit, l.AmountRefundable,
		l.LeaseDurationMin, l.LeaseDurationMax, l.AvailableFrom,
		l.PetsAllowed, l.ApplicationFee,
		l.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *listingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM listings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func insertListingSQL() string {
	return `
        INSERT INTO listings (
            id, property_id, unit_id, listing_type, status, occupancy,
            visibility, is_active, title, description,
            monthly_rent, security_deposit, amount_refundable,
            lease_duration_min, lease_duration_max, available_from,
            pets_allowed, application_fee,
            created_at, updated_at
        ) VALUES (
            $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,
            $11,$12,$13,$14,$15,$16,$17,$18, NOW(), NOW()
        )
    `
}

func baseSelectListing() string {
	return `
        SELECT
            l.id, l.property_id, l.unit_id, l.listing_type, l.status,
            l.occupancy, l.visibility, l.is_active, l.title, l.description,
            l.monthly_rent, l.security_deposit, l.amount_refundable,
            l.lease_duration_min, l.lease_duration_max, l.available_from,
            l.pets_allowed, l.application_fee,
            l.created_at, l.updated_at
        FROM listings l
    `
}

func scanListing(row pgx.Row) (*models.Listing, error) {
	var l models.Listing
	err := row.Scan(
		&l.ID,
		&l.PropertyID,
		&l.UnitID,
		&l.ListingType,
		&l.Status,
		&l.Occupancy,
		&l.Visibility,
		&l.IsActive,
		&l.Title,
		&l.Description,
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
