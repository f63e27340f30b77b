package routehandlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/coreybb/tasker/datastore"
	"github.com/coreybb/tasker/models"
	"github.com/coreybb/tasker/webutil"
)

// Data access the handlers need. *datastore.UserRepository and friends
// satisfy these; tests substitute in-memory doubles.

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, userID string) (int64, error)
	PatchUser(ctx context.Context, userID string, patch models.UserPatch) (int64, error)
}

type FolderStore interface {
	CreateFolder(ctx context.Context, folder *models.Folder) error
	GetFolders(ctx context.Context, userID string) ([]models.Folder, error)
	GetFolder(ctx context.Context, folderID string) (*models.Folder, error)
	DeleteFolder(ctx context.Context, folderID string) (int64, error)
	PatchFolder(ctx context.Context, folderID, name string) (int64, error)
}

type TaskStore interface {
	CreateTask(ctx context.Context, task *models.Task) error
	GetTasks(ctx context.Context, userID string) ([]models.Task, error)
	GetTasksByFolder(ctx context.Context, userID, folderID string) ([]models.Task, error)
	GetTask(ctx context.Context, taskID string) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID string) (int64, error)
	PatchTask(ctx context.Context, taskID string, patch models.TaskPatch) (int64, error)
}

// Schemas the handlers gate on. *validators.Validator satisfies all three.

type UserValidator interface {
	CreateUser(req models.CreateUserRequest) error
	GetUser(req models.GetUserRequest) error
	DeleteUser(req models.DeleteUserRequest) error
	PatchUser(req models.PatchUserRequest) error
}

type FolderValidator interface {
	CreateFolder(req models.CreateFolderRequest) error
	GetFolders(req models.GetFoldersRequest) error
	GetFolder(req models.GetFolderRequest) error
	DeleteFolder(req models.DeleteFolderRequest) error
	PatchFolder(req models.PatchFolderRequest) error
}

type TaskValidator interface {
	CreateTask(req models.CreateTaskRequest) error
	GetTasks(req models.GetTasksRequest) error
	GetTask(req models.GetTaskRequest) error
	DeleteTask(req models.DeleteTaskRequest) error
	PatchTask(req models.PatchTaskRequest) error
}

// PasswordHasher is a one-way salted hash, e.g. webutil.BcryptHasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// ackResponse is the body of PATCH and DELETE responses.
type ackResponse struct {
	ID       string `json:"id"`
	Affected int64  `json:"affected"`
}

func respondAck(w http.ResponseWriter, id string, affected int64) {
	webutil.RespondWithJSON(w, http.StatusOK, ackResponse{ID: id, Affected: affected})
}

// invalid wraps a validator failure as a 400.
func invalid(err error) error {
	return webutil.ErrValidationWrap(err.Error(), err)
}

// storeError maps a datastore error onto the HTTP error taxonomy.
func storeError(err error, action, notFoundMsg string) error {
	failed := "Failed to " + action
	switch {
	case errors.Is(err, datastore.ErrNotFound):
		return webutil.ErrNotFoundWrap(notFoundMsg, err)
	case errors.Is(err, datastore.ErrConflict):
		return webutil.ErrConflictWrap(failed+": conflicts with existing data", err)
	case errors.Is(err, datastore.ErrInvalidReference):
		return webutil.ErrValidationWrap(failed+": referenced resource does not exist", err)
	default:
		return webutil.ErrPersistenceWrap(failed, err)
	}
}
