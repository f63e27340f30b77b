package validators

import "github.com/coreybb/tasker/models"

func (v *Validator) CreateTask(req models.CreateTaskRequest) error {
	return v.check(req)
}

// GetTasks lists by user, optionally narrowed to one folder.
func (v *Validator) GetTasks(req models.GetTasksRequest) error {
	return v.check(req)
}

func (v *Validator) GetTask(req models.GetTaskRequest) error {
	return v.check(req)
}

func (v *Validator) DeleteTask(req models.DeleteTaskRequest) error {
	return v.check(req)
}

func (v *Validator) PatchTask(req models.PatchTaskRequest) error {
	if err := v.check(req); err != nil {
		return err
	}
	if req.Title == nil && req.DueDate == nil && req.Description == nil && req.Status == nil && req.FolderID == nil {
		return &Failure{
			Fields:  []string{"title", "due_date", "description", "status", "folder_id"},
			Message: "at least one task field is required",
		}
	}
	return nil
}
