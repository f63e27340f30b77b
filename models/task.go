package models

import (
	"errors"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DueDatePrecision is the resolution due dates are stored at.
const DueDatePrecision = time.Second

// Task is a unit of work filed in a folder. Status is whatever the caller
// sends ("pending", "done", ...); it is not constrained here.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	DueDate     time.Time `json:"due_date"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	FolderID    string    `json:"folder_id"`
	UserID      string    `json:"user_id"`
}

// TaskPatch carries the columns a PATCH /task may change. Nil fields are left alone.
type TaskPatch struct {
	Title       *string
	DueDate     *time.Time
	Description *string
	Status      *string
	FolderID    *string
}

func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.DueDate == nil && p.Description == nil && p.Status == nil && p.FolderID == nil
}

// ParseDueDate normalizes a date-like string (RFC 3339, "2006-01-02 15:04:05",
// "2006-01-02", unix seconds, ...) into a UTC timestamp at DueDatePrecision.
// Inputs without a zone are read as UTC.
func ParseDueDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("due date is empty")
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC().Truncate(DueDatePrecision), nil
}
