package routehandlers

import (
	"log/slog"
	"net/http"

	"github.com/coreybb/tasker/models"
	"github.com/coreybb/tasker/webutil"
	"github.com/google/uuid"
)

type TaskHandler struct {
	Repo     TaskStore
	Validate TaskValidator
}

func NewTaskHandler(repo TaskStore, validate TaskValidator) *TaskHandler {
	return &TaskHandler{Repo: repo, Validate: validate}
}

func (h *TaskHandler) HandleCreateTask(w http.ResponseWriter, r *http.Request) error {
	var req models.CreateTaskRequest
	if err := webutil.DecodeJSON(w, r, &req); err != nil {
		return err
	}
	if err := h.Validate.CreateTask(req); err != nil {
		return invalid(err)
	}

	dueDate, err := models.ParseDueDate(req.DueDate)
	if err != nil {
		return webutil.ErrValidationWrap("due_date must be a date or timestamp", err)
	}

	task := models.Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		DueDate:     dueDate,
		Description: req.Description,
		Status:      req.Status,
		FolderID:    req.FolderID,
		UserID:      req.UserID,
	}
	if err := h.Repo.CreateTask(r.Context(), &task); err != nil {
		return storeError(err, "create task", "")
	}

	slog.InfoContext(r.Context(), "Task created", "id", task.ID, "folder_id", task.FolderID, "user_id", task.UserID)
	webutil.RespondWithJSON(w, http.StatusOK, task)
	return nil
}

// HandleGetTasks lists a user's tasks, narrowed to one folder when
// ?folder_id is present.
func (h *TaskHandler) HandleGetTasks(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	req := models.GetTasksRequest{UserID: q.Get("user_id"), FolderID: q.Get("folder_id")}
	if err := h.Validate.GetTasks(req); err != nil {
		return invalid(err)
	}

	var (
		tasks []models.Task
		err   error
	)
	if req.FolderID != "" {
		tasks, err = h.Repo.GetTasksByFolder(r.Context(), req.UserID, req.FolderID)
	} else {
		tasks, err = h.Repo.GetTasks(r.Context(), req.UserID)
	}
	if err != nil {
		return storeError(err, "retrieve tasks", "")
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, tasks)
	return nil
}

func (h *TaskHandler) HandleGetTask(w http.ResponseWriter, r *http.Request) error {
	req := models.GetTaskRequest{ID: r.URL.Query().Get("id")}
	if err := h.Validate.GetTask(req); err != nil {
		return invalid(err)
	}

	task, err := h.Repo.GetTask(r.Context(), req.ID)
	if err != nil {
		return storeError(err, "retrieve task", "Task not found")
	}
	webutil.RespondWithJSON(w, http.StatusOK, task)
	return nil
}

func (h *TaskHandler) HandleDeleteTask(w http.ResponseWriter, r *http.Request) error {
	req := models.DeleteTaskRequest{ID: r.URL.Query().Get("id")}
	if err := h.Validate.DeleteTask(req); err != nil {
		return invalid(err)
	}

	n, err := h.Repo.DeleteTask(r.Context(), req.ID)
	if err != nil {
		return storeError(err, "delete task", "")
	}

	slog.InfoContext(r.Context(), "Task deleted", "id", req.ID, "affected", n)
	respondAck(w, req.ID, n)
	return nil
}

func (h *TaskHandler) HandlePatchTask(w http.ResponseWriter, r *http.Request) error {
	var req models.PatchTaskRequest
	if err := webutil.DecodeJSON(w, r, &req); err != nil {
		return err
	}
	if err := h.Validate.PatchTask(req); err != nil {
		return invalid(err)
	}

	patch := models.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		FolderID:    req.FolderID,
	}
	if req.DueDate != nil {
		dueDate, err := models.ParseDueDate(*req.DueDate)
		if err != nil {
			return webutil.ErrValidationWrap("due_date must be a date or timestamp", err)
		}
		patch.DueDate = &dueDate
	}

	n, err := h.Repo.PatchTask(r.Context(), req.ID, patch)
	if err != nil {
		return storeError(err, "update task", "")
	}

	slog.InfoContext(r.Context(), "Task updated", "id", req.ID, "affected", n)
	respondAck(w, req.ID, n)
	return nil
}
