package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/scalixity-dev/Pms-backend-sub001/internal/models"
)

type CreateTaskRequest struct {
	PropertyID  *uuid.UUID              `json:"property_id,omitempty"`
	Title       string                  `json:"title" validate:"required,max=200"`
	Description string                  `json:"description"`
	Priority    models.TaskPriorityType `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time              `json:"due_date,omitempty"`
}

type UpdateTaskRequest struct {
	Title       Optional[string]                  `json:"title"`
	Description Optional[string]                  `json:"description"`
	Status      Optional[models.TaskStatusType]   `json:"status"`
	Priority    Optional[models.TaskPriorityType] `json:"priority"`
	DueDate     Optional[time.Time]               `json:"due_date"`
}

type ListTasksResponse struct {
	Results []*models.Task `json:"results"`
	Total   int            `json:"total"`
}

type DeleteTaskResponse struct {
	Message string       `json:"message"`
	Deleted *models.Task `json:"deleted"`
}
