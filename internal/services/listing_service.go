package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/scalixity-dev/Pms-backend-sub001/internal/dtos"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/models"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/repositories"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/utils"
)

type ListingService struct {
	propRepo    repositories.PropertyRepository
	unitRepo    repositories.UnitRepository
	leasingRepo repositories.LeasingRepository
	listingRepo repositories.ListingRepository
	amenityRepo repositories.AmenityRepository
}

func NewListingService(
	propRepo repositories.PropertyRepository,
	unitRepo repositories.UnitRepository,
	leasingRepo repositories.LeasingRepository,
	listingRepo repositories.ListingRepository,
	amenityRepo repositories.AmenityRepository,
) *ListingService {
	return &ListingService{
		propRepo:    propRepo,
		unitRepo:    unitRepo,
		leasingRepo: leasingRepo,
		listingRepo: listingRepo,
		amenityRepo: amenityRepo,
	}
}

/*
Create derives a listing from a property and its leasing defaults,
persists it, and flips the property's status to ACTIVE, atomically.

Derivation rules:
  - listing type: explicit override, else UNIT for MULTI properties,
    else ENTIRE_PROPERTY
  - unit: required for MULTI properties; auto-assigned only when the
    property has exactly one unit
  - every pricing/terms field: taken from the request when the caller
    sent it (explicit null stores null), else inherited from leasing
*/
func (s *ListingService) Create(
	ctx context.Context,
	callerID uuid.UUID,
	req dtos.CreateListingRequest,
) (*models.Listing, error) {
	prop, err := s.propRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, utils.NewNotFoundError("property %s not found", req.PropertyID)
	}

	if callerID != uuid.Nil && prop.ManagerID != callerID {
		return nil, utils.NewForbiddenError("you do not manage property %s", req.PropertyID)
	}

	leasing, err := s.leasingRepo.GetByPropertyID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if leasing == nil {
		return nil, utils.NewValidationError(
			"property %s has no leasing terms; add leasing details before creating a listing", req.PropertyID)
	}

	units, err := s.unitRepo.ListByPropertyID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	listingType := models.ListingTypeEntireProperty
	if prop.PropertyType == models.PropertyTypeMulti {
		listingType = models.ListingTypeUnit
	}
	if req.ListingType.Present && !req.ListingType.Null {
		listingType = req.ListingType.Value
	}

	unitID, err := resolveUnit(prop, units, req.UnitID)
	if err != nil {
		return nil, err
	}

	monthlyRent := leasing.MonthlyRent
	if req.MonthlyRent.Present {
		if req.MonthlyRent.Null {
			return nil, utils.NewValidationError("monthly_rent cannot be null")
		}
		monthlyRent = req.MonthlyRent.Value
	}

	listing := &models.Listing{
		ID:          uuid.New(),
		PropertyID:  prop.ID,
		UnitID:      unitID,
		ListingType: listingType,
		Status:      overrideOr(req.Status, models.ListingStatusDraft),
		Occupancy:   overrideOr(req.Occupancy, models.OccupancyVacant),
		Visibility:  overrideOr(req.Visibility, models.VisibilityPublic),
		IsActive:    overrideOr(req.IsActive, true),

		Title:       req.Title.PtrIfPresent(),
		Description: req.Description.PtrIfPresent(),

		MonthlyRent:      monthlyRent,
		SecurityDeposit:  inherit(req.SecurityDeposit, leasing.SecurityDeposit),
		AmountRefundable: inherit(req.AmountRefundable, leasing.AmountRefundable),
		LeaseDurationMin: inherit(req.LeaseDurationMin, leasing.LeaseDurationMin),
		LeaseDurationMax: inherit(req.LeaseDurationMax, leasing.LeaseDurationMax),
		AvailableFrom:    inherit(req.AvailableFrom, leasing.AvailableFrom),
		PetsAllowed:      inherit(req.PetsAllowed, leasing.PetsAllowed),
		ApplicationFee:   inherit(req.ApplicationFee, leasing.ApplicationFee),

		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.listingRepo.CreateWithPropertyActivation(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// resolveUnit applies the MULTI-property unit rules. SINGLE properties
// carry no explicit unit.
func resolveUnit(prop *models.Property, units []*models.Unit, requested *uuid.UUID) (*uuid.UUID, error) {
	if prop.PropertyType != models.PropertyTypeMulti {
		if requested != nil {
			return nil, utils.NewValidationError(
				"property %s is SINGLE and cannot take a unit_id", prop.ID)
		}
		return nil, nil
	}

	if requested == nil {
		switch len(units) {
		case 0:
			return nil, utils.NewValidationError("property %s has no units to list", prop.ID)
		case 1:
			id := units[0].ID
			return &id, nil
		default:
			return nil, utils.NewValidationError(
				"property %s has %d units; unit_id must be specified", prop.ID, len(units))
		}
	}

	for _, u := range units {
		if u.ID == *requested {
			id := u.ID
			return &id, nil
		}
	}
	return nil, utils.NewValidationError("unit %s does not belong to property %s", *requested, prop.ID)
}

// overrideOr returns the request value when the caller sent a concrete
// one, else the default. Explicit null is meaningless for these
// non-nullable fields and falls back to the default.
func overrideOr[T any](o dtos.Optional[T], def T) T {
	if o.Present && !o.Null {
		return o.Value
	}
	return def
}

// inherit implements present-overrides / null-clears / absent-inherits
// for the nullable listing fields.
func inherit[T any](o dtos.Optional[T], def *T) *T {
	if o.Present {
		return o.Ptr()
	}
	if def == nil {
		return nil
	}
	v := *def
	return &v
}

/* ------------------------------------------------------------------
   Update / Delete
------------------------------------------------------------------ */

func (s *ListingService) Update(
	ctx context.Context,
	callerID uuid.UUID,
	listingID uuid.UUID,
	req dtos.UpdateListingRequest,
) (*models.Listing, error) {
	listing, err := s.ownedListing(ctx, callerID, listingID)
	if err != nil {
		return nil, err
	}

	if req.Title.Present {
		listing.Title = req.Title.Ptr()
	}
	if req.Description.Present {
		listing.Description = req.Description.Ptr()
	}
	if req.Status.Present && !req.Status.Null {
		listing.Status = req.Status.Value
	}
	if req.Occupancy.Present && !req.Occupancy.Null {
		listing.Occupancy = req.Occupancy.Value
	}
	if req.Visibility.Present && !req.Visibility.Null {
		listing.Visibility = req.Visibility.Value
	}
	if req.IsActive.Present && !req.IsActive.Null {
		listing.IsActive = req.IsActive.Value
	}
	if req.MonthlyRent.Present {
		if req.MonthlyRent.Null {
			return nil, utils.NewValidationError("monthly_rent cannot be null")
		}
		listing.MonthlyRent = req.MonthlyRent.Value
	}
	if req.SecurityDeposit.Present {
		listing.SecurityDeposit = req.SecurityDeposit.Ptr()
	}
	if req.AmountRefundable.Present {
		listing.AmountRefundable = req.AmountRefundable.Ptr()
	}
	if req.LeaseDurationMin.Present {
		listing.LeaseDurationMin = req.LeaseDurationMin.Ptr()
	}
	if req.LeaseDurationMax.Present {
		listing.LeaseDurationMax = req.LeaseDurationMax.Ptr()
	}
	if req.AvailableFrom.Present {
		listing.AvailableFrom = req.AvailableFrom.Ptr()
	}
	if req.PetsAllowed.Present {
		listing.PetsAllowed = req.PetsAllowed.Ptr()
	}
	if req.ApplicationFee.Present {
		listing.ApplicationFee = req.ApplicationFee.Ptr()
	}

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *ListingService) Delete(
	ctx context.Context,
	callerID uuid.UUID,
	listingID uuid.UUID,
) (*dtos.DeleteListingResponse, error) {
	listing, err := s.ownedListing(ctx, callerID, listingID)
	if err != nil {
		return nil, err
	}

	if err := s.listingRepo.Delete(ctx, listingID); err != nil {
		return nil, err
	}
	return &dtos.DeleteListingResponse{
		Message: "listing deleted",
		Deleted: listing,
	}, nil
}

// ownedListing loads a listing and verifies the caller manages the
// property it belongs to.
func (s *ListingService) ownedListing(ctx context.Context, callerID, listingID uuid.UUID) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, utils.NewNotFoundError("listing %s not found", listingID)
	}

	prop, err := s.propRepo.GetByID(ctx, listing.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, utils.NewNotFoundError("property %s not found", listing.PropertyID)
	}
	if callerID != uuid.Nil && prop.ManagerID != callerID {
		return nil, utils.NewForbiddenError("you do not manage property %s", listing.PropertyID)
	}
	return listing, nil
}

/* ------------------------------------------------------------------
   Queries
------------------------------------------------------------------ */

func (s *ListingService) Get(ctx context.Context, callerID, listingID uuid.UUID) (*dtos.ListingDTO, error) {
	listing, err := s.ownedListing(ctx, callerID, listingID)
	if err != nil {
		return nil, err
	}
	return s.buildListingDTO(ctx, listing, map[uuid.UUID]*models.Property{}, map[uuid.UUID]*models.Unit{})
}

func (s *ListingService) List(ctx context.Context, managerID *uuid.UUID) (*dtos.ListListingsResponse, error) {
	listings, err := s.listingRepo.List(ctx, managerID)
	if err != nil {
		return nil, err
	}
	return s.buildListResponse(ctx, listings)
}

func (s *ListingService) ListByProperty(
	ctx context.Context,
	callerID uuid.UUID,
	propertyID uuid.UUID,
) (*dtos.ListListingsResponse, error) {
	prop, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, utils.NewNotFoundError("property %s not found", propertyID)
	}
	if callerID != uuid.Nil && prop.ManagerID != callerID {
		return nil, utils.NewForbiddenError("you do not manage property %s", propertyID)
	}

	listings, err := s.listingRepo.ListByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return s.buildListResponse(ctx, listings)
}

func (s *ListingService) buildListResponse(ctx context.Context, listings []*models.Listing) (*dtos.ListListingsResponse, error) {
	// cache relations per property across the result set
	propsCache := make(map[uuid.UUID]*models.Property)
	unitCache := make(map[uuid.UUID]*models.Unit)

	results := make([]dtos.ListingDTO, 0, len(listings))
	for _, l := range listings {
		dto, err := s.buildListingDTO(ctx, l, propsCache, unitCache)
		if err != nil {
			return nil, err
		}
		results = append(results, *dto)
	}
	return &dtos.ListListingsResponse{Results: results, Total: len(results)}, nil
}

func (s *ListingService) buildListingDTO(
	ctx context.Context,
	l *models.Listing,
	propsCache map[uuid.UUID]*models.Property,
	unitCache map[uuid.UUID]*models.Unit,
) (*dtos.ListingDTO, error) {
	prop, ok := propsCache[l.PropertyID]
	if !ok {
		var err error
		prop, err = s.propRepo.GetByID(ctx, l.PropertyID)
		if err != nil {
			return nil, err
		}
		propsCache[l.PropertyID] = prop
	}

	var unit *models.Unit
	if l.UnitID != nil {
		unit, ok = unitCache[*l.UnitID]
		if !ok {
			var err error
			unit, err = s.unitRepo.GetByID(ctx, *l.UnitID)
			if err != nil {
				return nil, err
			}
			unitCache[*l.UnitID] = unit
		}
	}

	amenities, err := s.amenityRepo.ListByPropertyID(ctx, l.PropertyID)
	if err != nil {
		return nil, err
	}

	return &dtos.ListingDTO{
		Listing:   l,
		Property:  prop,
		Unit:      unit,
		Amenities: amenities,
	}, nil
}
