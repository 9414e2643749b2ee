package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/pkg/idx"
)

type tasksRepo struct {
	db dbtx
}

func (r *tasksRepo) CreateTask(ctx context.Context, userID, description string) (domain.Task, error) {
	t := domain.Task{
		ID:          idx.New().String(),
		UserID:      userID,
		Description: description,
		IsComplete:  false,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (task_id, user_id, task_desc, is_complete, created_at) VALUES (?, ?, ?, 0, ?)`,
		t.ID, t.UserID, t.Description, t.CreatedAt,
	)
	if err != nil {
		return domain.Task{}, mapConstraint(err)
	}
	return t, nil
}

// ListTasksByUser orders by task_id; ids are monotonic ULIDs so this is insertion order.
func (r *tasksRepo) ListTasksByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT task_id, user_id, task_desc, is_complete, created_at
		   FROM tasks
		  WHERE user_id = ?
		  ORDER BY task_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Description, &t.IsComplete, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *tasksRepo) CompleteTask(ctx context.Context, userID, taskID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET is_complete = 1 WHERE user_id = ? AND task_id = ?`, userID, taskID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *tasksRepo) DeleteCompletedTasks(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE user_id = ? AND is_complete = 1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
