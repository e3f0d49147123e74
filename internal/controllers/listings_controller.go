package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/scalixity-dev/Pms-backend-sub001/internal/dtos"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/services"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/utils"
)

type ListingsController struct {
	listingService *services.ListingService
	validate       *validator.Validate
}

func NewListingsController(ls *services.ListingService) *ListingsController {
	return &ListingsController{
		listingService: ls,
		validate:       validator.New(),
	}
}

// ----------------------------------------------------------------
// POST /api/v1/listings
// ----------------------------------------------------------------
func (c *ListingsController) CreateListingHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := getCallerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for create-listing payload", nil, err,
		)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	listing, svcErr := c.listingService.Create(r.Context(), callerID, req)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, listing)
}

// ----------------------------------------------------------------
// GET /api/v1/listings
// Optional ?property_id= narrows to one property's listings.
// ----------------------------------------------------------------
func (c *ListingsController) ListListingsHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := getCallerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	if propIDStr := r.URL.Query().Get("property_id"); propIDStr != "" {
		propID, pErr := uuid.Parse(propIDStr)
		if pErr != nil {
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
				"Invalid property_id query param", nil, pErr,
			)
			return
		}
		resp, svcErr := c.listingService.ListByProperty(r.Context(), callerID, propID)
		if svcErr != nil {
			utils.HandleAppError(w, svcErr)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, resp)
		return
	}

	resp, svcErr := c.listingService.List(r.Context(), &callerID)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/listings/{listingID}
// ----------------------------------------------------------------
func (c *ListingsController) GetListingHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := getCallerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	listingID, err := pathUUID(mux.Vars(r), "listingID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	dto, svcErr := c.listingService.Get(r.Context(), callerID, listingID)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto)
}

// ----------------------------------------------------------------
// PATCH /api/v1/listings/{listingID}
// ----------------------------------------------------------------
func (c *ListingsController) UpdateListingHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := getCallerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	listingID, err := pathUUID(mux.Vars(r), "listingID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for update-listing payload", nil, err,
		)
		return
	}

	listing, svcErr := c.listingService.Update(r.Context(), callerID, listingID, req)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, listing)
}

// ----------------------------------------------------------------
// DELETE /api/v1/listings/{listingID}
// ----------------------------------------------------------------
func (c *ListingsController) DeleteListingHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := getCallerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	listingID, err := pathUUID(mux.Vars(r), "listingID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp, svcErr := c.listingService.Delete(r.Context(), callerID, listingID)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
