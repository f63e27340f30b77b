package validators

import "github.com/coreybb/tasker/models"

func (v *Validator) CreateFolder(req models.CreateFolderRequest) error {
	return v.check(req)
}

func (v *Validator) GetFolders(req models.GetFoldersRequest) error {
	return v.check(req)
}

func (v *Validator) GetFolder(req models.GetFolderRequest) error {
	return v.check(req)
}

func (v *Validator) DeleteFolder(req models.DeleteFolderRequest) error {
	return v.check(req)
}

func (v *Validator) PatchFolder(req models.PatchFolderRequest) error {
	return v.check(req)
}
