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

type TasksController struct {
	taskService *services.TaskService
	validate    *validator.Validate
}

func NewTasksController(ts *services.TaskService) *TasksController {
	return &TasksController{
		taskService: ts,
		validate:    validator.New(),
	}
}

// ----------------------------------------------------------------
// POST /api/v1/tasks
// ----------------------------------------------------------------
func (c *TasksController) CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := getCallerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for create-task payload", nil, err,
		)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	task, svcErr := c.taskService.Create(r.Context(), callerID, req)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, task)
}

// ----------------------------------------------------------------
// GET /api/v1/tasks
// ----------------------------------------------------------------
func (c *TasksController) ListTasksHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := getCallerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp, svcErr := c.taskService.List(r.Context(), callerID)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/tasks/{taskID}
// ----------------------------------------------------------------
func (c *TasksController) GetTaskHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := getCallerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	taskID, err := pathUUID(mux.Vars(r), "taskID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	task, svcErr := c.taskService.Get(r.Context(), callerID, taskID)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, task)
}

// ----------------------------------------------------------------
// PATCH /api/v1/tasks/{taskID}
// ----------------------------------------------------------------
func (c *TasksController) UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := getCallerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	taskID, err := pathUUID(mux.Vars(r), "taskID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Invalid JSON for update-task payload", nil, err,
		)
		return
	}

	task, svcErr := c.taskService.Update(r.Context(), callerID, taskID, req)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, task)
}

// ----------------------------------------------------------------
// DELETE /api/v1/tasks/{taskID}
// ----------------------------------------------------------------
func (c *TasksController) DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := getCallerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	taskID, err := pathUUID(mux.Vars(r), "taskID")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	resp, svcErr := c.taskService.Delete(r.Context(), callerID, taskID)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
