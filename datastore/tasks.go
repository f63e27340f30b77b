package datastore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/coreybb/tasker/models"
)

type TaskRepository struct {
	conn *Conn
}

func NewTaskRepository(conn *Conn) *TaskRepository {
	return &TaskRepository{conn: conn}
}

const taskColumns = `id, title, due_date, description, status, folder_id, user_id`

// CreateTask inserts a task. task.DueDate is expected in UTC.
func (r *TaskRepository) CreateTask(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.conn.exec(ctx, query,
		task.ID,
		task.Title,
		task.DueDate.UTC(),
		task.Description,
		task.Status,
		task.FolderID,
		task.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", classify(err, writeUpsert))
	}
	return nil
}

func (r *TaskRepository) GetTasks(ctx context.Context, userID string) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ? ORDER BY due_date`
	rows, err := r.conn.query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks for user %s: %w", userID, err)
	}
	return scanTasks(rows)
}

// GetTasksByFolder lists a user's tasks in one folder.
func (r *TaskRepository) GetTasksByFolder(ctx context.Context, userID, folderID string) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ? AND folder_id = ? ORDER BY due_date`
	rows, err := r.conn.query(ctx, query, userID, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks for user %s in folder %s: %w", userID, folderID, err)
	}
	return scanTasks(rows)
}

func (r *TaskRepository) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	var t models.Task
	err := r.conn.queryRow(ctx, query, taskID).Scan(
		&t.ID, &t.Title, &t.DueDate, &t.Description, &t.Status, &t.FolderID, &t.UserID,
	)
	if err != nil {
		return nil, notFound(err, "task", taskID)
	}
	t.DueDate = t.DueDate.UTC()
	return &t, nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, taskID string) (int64, error) {
	res, err := r.conn.exec(ctx, `DELETE FROM tasks WHERE id = ?`, taskID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete task %s: %w", taskID, classify(err, writeDelete))
	}
	return rowsAffected(res)
}

// PatchTask updates the non-nil columns of patch.
func (r *TaskRepository) PatchTask(ctx context.Context, taskID string, patch models.TaskPatch) (int64, error) {
	var cols []string
	var args []any
	if patch.Title != nil {
		cols = append(cols, "title")
		args = append(args, *patch.Title)
	}
	if patch.DueDate != nil {
		cols = append(cols, "due_date")
		args = append(args, patch.DueDate.UTC())
	}
	if patch.Description != nil {
		cols = append(cols, "description")
		args = append(args, *patch.Description)
	}
	if patch.Status != nil {
		cols = append(cols, "status")
		args = append(args, *patch.Status)
	}
	if patch.FolderID != nil {
		cols = append(cols, "folder_id")
		args = append(args, *patch.FolderID)
	}
	if len(cols) == 0 {
		return 0, fmt.Errorf("empty patch for task %s", taskID)
	}
	args = append(args, taskID)

	query := `UPDATE tasks SET ` + setClause(cols) + ` WHERE id = ?`
	res, err := r.conn.exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update task %s: %w", taskID, classify(err, writeUpsert))
	}
	return rowsAffected(res)
}

func scanTasks(rows *sql.Rows) ([]models.Task, error) {
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.DueDate, &t.Description, &t.Status, &t.FolderID, &t.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		t.DueDate = t.DueDate.UTC()
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}
