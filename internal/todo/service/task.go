package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/store"
	"github.com/aussiebroadwan/todo/pkg/idx"
	"github.com/aussiebroadwan/todo/pkg/slogx"
)

// TaskService manages a user's task list. Every operation is scoped to the
// userID it is given; callers pass the id of the resolved session user.
type TaskService struct {
	Store store.Store
}

// CreateTask appends an incomplete task to the user's list.
func (s *TaskService) CreateTask(ctx context.Context, userID, description string) (domain.Task, error) {
	log := slogx.FromContext(ctx)

	if strings.TrimSpace(description) == "" {
		return domain.Task{}, ErrMissingFields
	}

	task, err := s.Store.Tasks().CreateTask(ctx, userID, description)
	if err != nil {
		log.Error("task: insert failed", slog.String("user_id", userID), slog.Any("error", err))
		return domain.Task{}, storeErr(err)
	}

	log.Debug("task created", slog.String("task_id", task.ID))
	return task, nil
}

// CompleteTask marks taskID complete if userID owns it. A task that does not
// exist or belongs to someone else is left untouched without error, and so is
// an id that is not a ULID at all.
func (s *TaskService) CompleteTask(ctx context.Context, userID, taskID string) error {
	log := slogx.FromContext(ctx)

	id, err := idx.Parse(taskID)
	if err != nil {
		log.Debug("task: complete ignored malformed id", slog.String("task_id", taskID))
		return nil
	}

	ok, err := s.Store.Tasks().CompleteTask(ctx, userID, id.String())
	if err != nil {
		log.Error("task: complete failed", slog.String("task_id", taskID), slog.Any("error", err))
		return storeErr(err)
	}
	if !ok {
		log.Debug("task: complete matched nothing", slog.String("task_id", taskID))
	}
	return nil
}

// PurgeCompleted deletes the user's completed tasks. Calling it again is a no-op.
func (s *TaskService) PurgeCompleted(ctx context.Context, userID string) error {
	log := slogx.FromContext(ctx)

	n, err := s.Store.Tasks().DeleteCompletedTasks(ctx, userID)
	if err != nil {
		log.Error("task: purge failed", slog.String("user_id", userID), slog.Any("error", err))
		return storeErr(err)
	}

	log.Debug("tasks purged", slog.Int64("count", n))
	return nil
}

// ListTasks returns the user's tasks in the order they were created.
func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	tasks, err := s.Store.Tasks().ListTasksByUser(ctx, userID)
	if err != nil {
		slogx.FromContext(ctx).Error("task: list failed", slog.String("user_id", userID), slog.Any("error", err))
		return nil, storeErr(err)
	}
	return tasks, nil
}
