package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatusType string

const (
	TaskStatusOpen       TaskStatusType = "OPEN"
	TaskStatusInProgress TaskStatusType = "IN_PROGRESS"
	TaskStatusDone       TaskStatusType = "DONE"
)

type TaskPriorityType string

const (
	TaskPriorityLow    TaskPriorityType = "LOW"
	TaskPriorityMedium TaskPriorityType = "MEDIUM"
	TaskPriorityHigh   TaskPriorityType = "HIGH"
)

// Task is a manager-owned to-do item, optionally tied to a property.
type Task struct {
	ID          uuid.UUID        `json:"id"`
	ManagerID   uuid.UUID        `json:"manager_id"`
	PropertyID  *uuid.UUID       `json:"property_id,omitempty"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      TaskStatusType   `json:"status"`
	Priority    TaskPriorityType `json:"priority"`
	DueDate     *time.Time       `json:"due_date,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
