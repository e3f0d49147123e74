package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/scalixity-dev/Pms-backend-sub001/internal/dtos"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/services"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/utils"
)

type PropertiesController struct {
	propertyService *services.PropertyService
	validate        *validator.Validate
}

func NewPropertiesController(ps *services.PropertyService) *PropertiesController {
	return &PropertiesController{
		propertyService: ps,
		validate:        validator.New(),
	}
}

// ----------------------------------------------------------------
// POST /api/v1/properties
// ----------------------------------------------------------------
func (c *PropertiesController) CreatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := getCallerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for create-property payload", nil, err,
		)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	prop, svcErr := c.propertyService.Create(r.Context(), callerID, getCallerEmail(r), req)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, prop)
}

// ----------------------------------------------------------------
// GET /api/v1/properties
// ----------------------------------------------------------------
func (c *PropertiesController) ListPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := getCallerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp, svcErr := c.propertyService.List(r.Context(), callerID)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/properties/{propertyID}
// ----------------------------------------------------------------
func (c *PropertiesController) GetPropertyHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := getCallerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	propertyID, err := pathUUID(mux.Vars(r), "propertyID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	prop, svcErr := c.propertyService.Get(r.Context(), callerID, propertyID)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, prop)
}

// ----------------------------------------------------------------
// PUT /api/v1/properties/{propertyID}/leasing
// ----------------------------------------------------------------
func (c *PropertiesController) UpsertLeasingHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := getCallerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	propertyID, err := pathUUID(mux.Vars(r), "propertyID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpsertLeasingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for leasing payload", nil, err,
		)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	leasing, svcErr := c.propertyService.UpsertLeasing(r.Context(), callerID, propertyID, req)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, leasing)
}
