package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/scalixity-dev/Pms-backend-sub001/internal/constants"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/dtos"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/services"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/utils"
)

type FilesController struct {
	uploadService *services.UploadService
	validate      *validator.Validate
}

func NewFilesController(us *services.UploadService) *FilesController {
	return &FilesController{
		uploadService: us,
		validate:      validator.New(),
	}
}

// ----------------------------------------------------------------
// POST /api/v1/files/upload  (multipart form)
// Fields: category (required), property_id (optional), file (required)
// ----------------------------------------------------------------
func (c *FilesController) UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := getCallerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	if err := r.ParseMultipartForm(constants.MaxUploadSizeBytes); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Failed to parse form", nil, err)
		return
	}
	form := r.MultipartForm

	categoryVals := form.Value["category"]
	if len(categoryVals) == 0 || categoryVals[0] == "" {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "category is required", nil, nil)
		return
	}
	category := categoryVals[0]

	var propertyID *uuid.UUID
	if propVals := form.Value["property_id"]; len(propVals) > 0 && propVals[0] != "" {
		id, pErr := uuid.Parse(propVals[0])
		if pErr != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "invalid property_id", nil, pErr)
			return
		}
		propertyID = &id
	}

	fileHeaders := form.File["file"]
	if len(fileHeaders) == 0 {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "file is required", nil, nil)
		return
	}
	header := fileHeaders[0]
	file, err := header.Open()
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "failed to open file", nil, err)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "failed to read file", nil, err)
		return
	}

	contentType := header.Header.Get("Content-Type")

	resp, svcErr := c.uploadService.Upload(
		r.Context(), callerID, propertyID, category, header.Filename, contentType, data,
	)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// ----------------------------------------------------------------
// POST /api/v1/files/delete
// ----------------------------------------------------------------
func (c *FilesController) DeleteFileHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := getCallerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.DeleteFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for delete-file payload", nil, err,
		)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	resp, svcErr := c.uploadService.DeleteByURL(r.Context(), callerID, req.URL)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// POST /api/v1/files/presign
// ----------------------------------------------------------------
func (c *FilesController) PresignFileHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := getCallerID(r); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.PresignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for presign payload", nil, err,
		)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	resp, svcErr := c.uploadService.Presign(r.Context(), req.URL, req.DurationMinute)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/files/connection-test
// ----------------------------------------------------------------
func (c *FilesController) ConnectionTestHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := getCallerID(r); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp, svcErr := c.uploadService.ConnectionTest(r.Context())
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
