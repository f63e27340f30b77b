package models

// Request payloads, one per endpoint. Body requests decode from JSON;
// query requests are filled from the URL query string by the handlers.
// The validate tags are the schema enforced by package validators.

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=4,max=72"`
}

// GetUserRequest looks a user up by exactly one of ID or Email.
type GetUserRequest struct {
	ID    string `json:"id" validate:"omitempty,notblank"`
	Email string `json:"email" validate:"omitempty,email"`
}

type DeleteUserRequest struct {
	ID string `json:"id" validate:"required,notblank"`
}

type PatchUserRequest struct {
	ID       string  `json:"id" validate:"required,notblank"`
	Name     *string `json:"name" validate:"omitempty,notblank,max=255"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=4,max=72"`
}

type CreateFolderRequest struct {
	Name   string `json:"name" validate:"required,notblank,max=255"`
	UserID string `json:"user_id" validate:"required,notblank"`
}

type GetFoldersRequest struct {
	UserID string `json:"user_id" validate:"required,notblank"`
}

type GetFolderRequest struct {
	ID string `json:"id" validate:"required,notblank"`
}

type DeleteFolderRequest struct {
	ID string `json:"id" validate:"required,notblank"`
}

type PatchFolderRequest struct {
	ID   string `json:"id" validate:"required,notblank"`
	Name string `json:"name" validate:"required,notblank,max=255"`
}

type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=255"`
	DueDate     string `json:"due_date" validate:"required,duedate"`
	Description string `json:"description" validate:"max=2000"`
	Status      string `json:"status" validate:"required,notblank,max=64"`
	FolderID    string `json:"folder_id" validate:"required,notblank"`
	UserID      string `json:"user_id" validate:"required,notblank"`
}

type GetTasksRequest struct {
	UserID   string `json:"user_id" validate:"required,notblank"`
	FolderID string `json:"folder_id" validate:"omitempty,notblank"`
}

type GetTaskRequest struct {
	ID string `json:"id" validate:"required,notblank"`
}

type DeleteTaskRequest struct {
	ID string `json:"id" validate:"required,notblank"`
}

type PatchTaskRequest struct {
	ID          string  `json:"id" validate:"required,notblank"`
	Title       *string `json:"title" validate:"omitempty,notblank,max=255"`
	DueDate     *string `json:"due_date" validate:"omitempty,duedate"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Status      *string `json:"status" validate:"omitempty,notblank,max=64"`
	FolderID    *string `json:"folder_id" validate:"omitempty,notblank"`
}
