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

// TaskService is plain ownership-scoped CRUD over manager tasks.
type TaskService struct {
	taskRepo repositories.TaskRepository
	propRepo repositories.PropertyRepository
}

func NewTaskService(taskRepo repositories.TaskRepository, propRepo repositories.PropertyRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, propRepo: propRepo}
}

func (s *TaskService) Create(ctx context.Context, callerID uuid.UUID, req dtos.CreateTaskRequest) (*models.Task, error) {
	if req.PropertyID != nil {
		prop, err := s.propRepo.GetByID(ctx, *req.PropertyID)
		if err != nil {
			return nil, err
		}
		if prop == nil {
			return nil, utils.NewNotFoundError("property %s not found", *req.PropertyID)
		}
		if prop.ManagerID != callerID {
			return nil, utils.NewForbiddenError("you do not manage property %s", *req.PropertyID)
		}
	}

	priority := req.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	task := &models.Task{
		ID:          uuid.New(),
		ManagerID:   callerID,
		PropertyID:  req.PropertyID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatusOpen,
		Priority:    priority,
		DueDate:     req.DueDate,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, callerID, taskID uuid.UUID) (*models.Task, error) {
	return s.ownedTask(ctx, callerID, taskID)
}

func (s *TaskService) List(ctx context.Context, callerID uuid.UUID) (*dtos.ListTasksResponse, error) {
	tasks, err := s.taskRepo.ListByManagerID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return &dtos.ListTasksResponse{Results: tasks, Total: len(tasks)}, nil
}

func (s *TaskService) Update(ctx context.Context, callerID, taskID uuid.UUID, req dtos.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.ownedTask(ctx, callerID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title.Present && !req.Title.Null {
		task.Title = req.Title.Value
	}
	if req.Description.Present && !req.Description.Null {
		task.Description = req.Description.Value
	}
	if req.Status.Present && !req.Status.Null {
		task.Status = req.Status.Value
	}
	if req.Priority.Present && !req.Priority.Null {
		task.Priority = req.Priority.Value
	}
	if req.DueDate.Present {
		task.DueDate = req.DueDate.Ptr()
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, callerID, taskID uuid.UUID) (*dtos.DeleteTaskResponse, error) {
	task, err := s.ownedTask(ctx, callerID, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return nil, err
	}
	return &dtos.DeleteTaskResponse{Message: "task deleted", Deleted: task}, nil
}

func (s *TaskService) ownedTask(ctx context.Context, callerID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, utils.NewNotFoundError("task %s not found", taskID)
	}
	if task.ManagerID != callerID {
		return nil, utils.NewForbiddenError("task %s does not belong to you", taskID)
	}
	return task, nil
}
