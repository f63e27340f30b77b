package routehandlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/coreybb/tasker/models"
	"github.com/coreybb/tasker/webutil"
	"github.com/google/uuid"
)

type UserHandler struct {
	Repo     UserStore
	Validate UserValidator
	Hasher   PasswordHasher
}

func NewUserHandler(repo UserStore, validate UserValidator, hasher PasswordHasher) *UserHandler {
	return &UserHandler{Repo: repo, Validate: validate, Hasher: hasher}
}

func (h *UserHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) error {
	var req models.CreateUserRequest
	if err := webutil.DecodeJSON(w, r, &req); err != nil {
		return err
	}
	if err := h.Validate.CreateUser(req); err != nil {
		return invalid(err)
	}

	hash, err := h.Hasher.Hash(req.Password)
	if err != nil {
		return webutil.ErrPersistenceWrap("Failed to hash password", err)
	}

	newUser := models.User{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Name:      req.Name,
		Email:     req.Email,
		Password:  hash,
	}
	if err := h.Repo.CreateUser(r.Context(), &newUser); err != nil {
		return storeError(err, "create user", "")
	}

	slog.InfoContext(r.Context(), "User created", "id", newUser.ID)
	webutil.RespondWithJSON(w, http.StatusOK, newUser)
	return nil
}

// HandleGetUser looks a user up by ?id or ?email.
func (h *UserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	req := models.GetUserRequest{ID: q.Get("id"), Email: q.Get("email")}
	if err := h.Validate.GetUser(req); err != nil {
		return invalid(err)
	}

	var (
		user *models.User
		err  error
	)
	if req.ID != "" {
		user, err = h.Repo.GetUserByID(r.Context(), req.ID)
	} else {
		user, err = h.Repo.GetUserByEmail(r.Context(), req.Email)
	}
	if err != nil {
		return storeError(err, "retrieve user", "User not found")
	}

	webutil.RespondWithJSON(w, http.StatusOK, user)
	return nil
}

func (h *UserHandler) HandleGetUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := h.Repo.GetUsers(r.Context())
	if err != nil {
		return storeError(err, "retrieve users", "")
	}
	if users == nil {
		users = []models.User{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, users)
	return nil
}

func (h *UserHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) error {
	req := models.DeleteUserRequest{ID: r.URL.Query().Get("id")}
	if err := h.Validate.DeleteUser(req); err != nil {
		return invalid(err)
	}

	n, err := h.Repo.DeleteUser(r.Context(), req.ID)
	if err != nil {
		return storeError(err, "delete user", "")
	}

	slog.InfoContext(r.Context(), "User deleted", "id", req.ID, "affected", n)
	respondAck(w, req.ID, n)
	return nil
}

// HandlePatchUser applies the fields present in the body. A new password is
// hashed before it reaches the datastore.
func (h *UserHandler) HandlePatchUser(w http.ResponseWriter, r *http.Request) error {
	var req models.PatchUserRequest
	if err := webutil.DecodeJSON(w, r, &req); err != nil {
		return err
	}
	if err := h.Validate.PatchUser(req); err != nil {
		return invalid(err)
	}

	patch := models.UserPatch{Name: req.Name, Email: req.Email}
	if req.Password != nil {
		hash, err := h.Hasher.Hash(*req.Password)
		if err != nil {
			return webutil.ErrPersistenceWrap("Failed to hash password", err)
		}
		patch.Password = &hash
	}

	n, err := h.Repo.PatchUser(r.Context(), req.ID, patch)
	if err != nil {
		return storeError(err, "update user", "")
	}

	slog.InfoContext(r.Context(), "User updated", "id", req.ID, "affected", n)
	respondAck(w, req.ID, n)
	return nil
}
