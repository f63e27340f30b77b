package validators

import "github.com/coreybb/tasker/models"

func (v *Validator) CreateUser(req models.CreateUserRequest) error {
	return v.check(req)
}

// GetUser requires exactly one lookup key.
func (v *Validator) GetUser(req models.GetUserRequest) error {
	switch {
	case req.ID == "" && req.Email == "":
		return &Failure{Fields: []string{"id", "email"}, Message: "one of id or email is required"}
	case req.ID != "" && req.Email != "":
		return &Failure{Fields: []string{"id", "email"}, Message: "only one of id or email may be given"}
	}
	return v.check(req)
}

func (v *Validator) DeleteUser(req models.DeleteUserRequest) error {
	return v.check(req)
}

func (v *Validator) PatchUser(req models.PatchUserRequest) error {
	if err := v.check(req); err != nil {
		return err
	}
	if req.Name == nil && req.Email == nil && req.Password == nil {
		return &Failure{Fields: []string{"name", "email", "password"}, Message: "at least one of name, email or password is required"}
	}
	return nil
}
