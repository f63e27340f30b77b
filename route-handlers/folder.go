package routehandlers

import (
	"log/slog"
	"net/http"

	"github.com/coreybb/tasker/models"
	"github.com/coreybb/tasker/webutil"
	"github.com/google/uuid"
)

// FolderHandler serves /folder and /folders. None of its operations check
// that the caller owns the folder.
type FolderHandler struct {
	Repo     FolderStore
	Validate FolderValidator
}

func NewFolderHandler(repo FolderStore, validate FolderValidator) *FolderHandler {
	return &FolderHandler{Repo: repo, Validate: validate}
}

func (h *FolderHandler) HandleCreateFolder(w http.ResponseWriter, r *http.Request) error {
	var req models.CreateFolderRequest
	if err := webutil.DecodeJSON(w, r, &req); err != nil {
		return err
	}
	if err := h.Validate.CreateFolder(req); err != nil {
		return invalid(err)
	}

	folder := models.Folder{
		ID:     uuid.NewString(),
		Name:   req.Name,
		UserID: req.UserID,
	}
	if err := h.Repo.CreateFolder(r.Context(), &folder); err != nil {
		return storeError(err, "create folder", "")
	}

	slog.InfoContext(r.Context(), "Folder created", "id", folder.ID, "user_id", folder.UserID)
	webutil.RespondWithJSON(w, http.StatusOK, folder)
	return nil
}

func (h *FolderHandler) HandleGetFolders(w http.ResponseWriter, r *http.Request) error {
	req := models.GetFoldersRequest{UserID: r.URL.Query().Get("user_id")}
	if err := h.Validate.GetFolders(req); err != nil {
		return invalid(err)
	}

	folders, err := h.Repo.GetFolders(r.Context(), req.UserID)
	if err != nil {
		return storeError(err, "retrieve folders", "")
	}
	if folders == nil {
		folders = []models.Folder{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, folders)
	return nil
}

func (h *FolderHandler) HandleGetFolder(w http.ResponseWriter, r *http.Request) error {
	req := models.GetFolderRequest{ID: r.URL.Query().Get("id")}
	if err := h.Validate.GetFolder(req); err != nil {
		return invalid(err)
	}

	folder, err := h.Repo.GetFolder(r.Context(), req.ID)
	if err != nil {
		return storeError(err, "retrieve folder", "Folder not found")
	}
	webutil.RespondWithJSON(w, http.StatusOK, folder)
	return nil
}

// HandleDeleteFolder removes the folder only; its tasks stay behind.
func (h *FolderHandler) HandleDeleteFolder(w http.ResponseWriter, r *http.Request) error {
	req := models.DeleteFolderRequest{ID: r.URL.Query().Get("id")}
	if err := h.Validate.DeleteFolder(req); err != nil {
		return invalid(err)
	}

	n, err := h.Repo.DeleteFolder(r.Context(), req.ID)
	if err != nil {
		return storeError(err, "delete folder", "")
	}

	slog.InfoContext(r.Context(), "Folder deleted", "id", req.ID, "affected", n)
	respondAck(w, req.ID, n)
	return nil
}

func (h *FolderHandler) HandlePatchFolder(w http.ResponseWriter, r *http.Request) error {
	var req models.PatchFolderRequest
	if err := webutil.DecodeJSON(w, r, &req); err != nil {
		return err
	}
	if err := h.Validate.PatchFolder(req); err != nil {
		return invalid(err)
	}

	n, err := h.Repo.PatchFolder(r.Context(), req.ID, req.Name)
	if err != nil {
		return storeError(err, "update folder", "")
	}

	slog.InfoContext(r.Context(), "Folder renamed", "id", req.ID, "affected", n)
	respondAck(w, req.ID, n)
	return nil
}
