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

type PropertyService struct {
	propRepo    repositories.PropertyRepository
	unitRepo    repositories.UnitRepository
	leasingRepo repositories.LeasingRepository
	amenityRepo repositories.AmenityRepository
	pmRepo      repositories.PropertyManagerRepository
}

func NewPropertyService(
	propRepo repositories.PropertyRepository,
	unitRepo repositories.UnitRepository,
	leasingRepo repositories.LeasingRepository,
	amenityRepo repositories.AmenityRepository,
	pmRepo repositories.PropertyManagerRepository,
) *PropertyService {
	return &PropertyService{
		propRepo:    propRepo,
		unitRepo:    unitRepo,
		leasingRepo: leasingRepo,
		amenityRepo: amenityRepo,
		pmRepo:      pmRepo,
	}
}

// Create registers the property. The manager row is provisioned on
// first touch so the properties FK holds for callers the auth
// provider has never written through this service before.
func (s *PropertyService) Create(ctx context.Context, callerID uuid.UUID, callerEmail string, req dtos.CreatePropertyRequest) (*models.Property, error) {
	if req.PropertyType == models.PropertyTypeSingle && len(req.Units) > 0 {
		return nil, utils.NewValidationError("SINGLE properties cannot carry explicit units")
	}

	if err := s.pmRepo.Ensure(ctx, &models.PropertyManager{
		ID:        callerID,
		Email:     callerEmail,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	prop := &models.Property{
		ID:           uuid.New(),
		ManagerID:    callerID,
		PropertyName: req.PropertyName,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		PropertyType: req.PropertyType,
		Status:       models.PropertyStatusPending,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := s.propRepo.Create(ctx, prop); err != nil {
		return nil, err
	}

	for _, u := range req.Units {
		unit := &models.Unit{
			ID:         uuid.New(),
			PropertyID: prop.ID,
			UnitNumber: u.UnitNumber,
			Bedrooms:   u.Bedrooms,
			Bathrooms:  u.Bathrooms,
			SquareFeet: u.SquareFeet,
		}
		if err := s.unitRepo.Create(ctx, unit); err != nil {
			return nil, err
		}
		prop.Units = append(prop.Units, unit)
	}

	for _, name := range req.Amenities {
		amenity := &models.Amenity{ID: uuid.New(), PropertyID: prop.ID, Name: name}
		if err := s.amenityRepo.Create(ctx, amenity); err != nil {
			return nil, err
		}
		prop.Amenities = append(prop.Amenities, amenity)
	}

	return prop, nil
}

// Get loads a property with its units, leasing and amenities.
func (s *PropertyService) Get(ctx context.Context, callerID, propertyID uuid.UUID) (*models.Property, error) {
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

	if prop.Units, err = s.unitRepo.ListByPropertyID(ctx, propertyID); err != nil {
		return nil, err
	}
	if prop.Leasing, err = s.leasingRepo.GetByPropertyID(ctx, propertyID); err != nil {
		return nil, err
	}
	if prop.Amenities, err = s.amenityRepo.ListByPropertyID(ctx, propertyID); err != nil {
		return nil, err
	}
	return prop, nil
}

func (s *PropertyService) List(ctx context.Context, callerID uuid.UUID) (*dtos.ListPropertiesResponse, error) {
	props, err := s.propRepo.ListByManagerID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return &dtos.ListPropertiesResponse{Results: props, Total: len(props)}, nil
}

// UpsertLeasing sets or replaces a property's default lease terms.
func (s *PropertyService) UpsertLeasing(
	ctx context.Context,
	callerID uuid.UUID,
	propertyID uuid.UUID,
	req dtos.UpsertLeasingRequest,
) (*models.Leasing, error) {
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

	leasing := &models.Leasing{
		ID:               uuid.New(),
		PropertyID:       propertyID,
		MonthlyRent:      req.MonthlyRent,
		SecurityDeposit:  req.SecurityDeposit.PtrIfPresent(),
		AmountRefundable: req.AmountRefundable.PtrIfPresent(),
		LeaseDurationMin: req.LeaseDurationMin.PtrIfPresent(),
		LeaseDurationMax: req.LeaseDurationMax.PtrIfPresent(),
		AvailableFrom:    req.AvailableFrom.PtrIfPresent(),
		PetsAllowed:      req.PetsAllowed.PtrIfPresent(),
		ApplicationFee:   req.ApplicationFee.PtrIfPresent(),
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}
	if err := s.leasingRepo.Upsert(ctx, leasing); err != nil {
		return nil, err
	}
	return leasing, nil
}
