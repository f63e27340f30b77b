package routehandlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/coreybb/tasker/datastore"
	"github.com/coreybb/tasker/models"
	"github.com/coreybb/tasker/validators"
)

func TestCreateFolder(t *testing.T) {
	var saved models.Folder
	store := &fakeFolderStore{createFunc: func(ctx context.Context, f *models.Folder) error {
		saved = *f
		return nil
	}}
	h := NewFolderHandler(store, validators.New())

	rec := serve(t, h.HandleCreateFolder, http.MethodPost, "/folder", `{"name":"Work","user_id":"u1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}
	if store.calls != 1 || saved.ID == "" || saved.UserID != "u1" || saved.Name != "Work" {
		t.Fatalf("calls = %d, saved = %+v", store.calls, saved)
	}

	rec = serve(t, h.HandleCreateFolder, http.MethodPost, "/folder", `{"name":"Work"}`)
	if rec.Code != http.StatusBadRequest || store.calls != 1 {
		t.Fatalf("missing user_id: status = %d, calls = %d", rec.Code, store.calls)
	}
}

func TestCreateFolder_UnknownOwner(t *testing.T) {
	store := &fakeFolderStore{createFunc: func(ctx context.Context, f *models.Folder) error {
		return fmt.Errorf("failed to insert folder: %w", datastore.ErrInvalidReference)
	}}
	h := NewFolderHandler(store, validators.New())
	rec := serve(t, h.HandleCreateFolder, http.MethodPost, "/folder", `{"name":"Work","user_id":"ghost"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body := decodeError(t, rec); body.Message != "Failed to create folder: referenced resource does not exist" {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestGetFolders(t *testing.T) {
	var gotUser string
	store := &fakeFolderStore{listFunc: func(ctx context.Context, userID string) ([]models.Folder, error) {
		gotUser = userID
		return []models.Folder{{ID: "f1", Name: "Work", UserID: userID}}, nil
	}}
	h := NewFolderHandler(store, validators.New())

	rec := serve(t, h.HandleGetFolders, http.MethodGet, "/folders?user_id=u1", "")
	if rec.Code != http.StatusOK || gotUser != "u1" {
		t.Fatalf("status = %d, user = %q", rec.Code, gotUser)
	}
	var folders []models.Folder
	if err := json.Unmarshal(rec.Body.Bytes(), &folders); err != nil || len(folders) != 1 {
		t.Fatalf("folders = %+v, %v", folders, err)
	}

	rec = serve(t, h.HandleGetFolders, http.MethodGet, "/folders", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing user_id: status = %d", rec.Code)
	}
}

func TestGetFolder_NotFoundIsDistinct(t *testing.T) {
	store := &fakeFolderStore{getFunc: func(ctx context.Context, id string) (*models.Folder, error) {
		if id == "f1" {
			return &models.Folder{ID: "f1", Name: "Work", UserID: "u1"}, nil
		}
		return nil, fmt.Errorf("folder %s: %w", id, datastore.ErrNotFound)
	}}
	h := NewFolderHandler(store, validators.New())

	found := serve(t, h.HandleGetFolder, http.MethodGet, "/folder?id=f1", "")
	if found.Code != http.StatusOK {
		t.Fatalf("found: status = %d", found.Code)
	}
	var f models.Folder
	if err := json.Unmarshal(found.Body.Bytes(), &f); err != nil || f.ID != "f1" {
		t.Fatalf("found body = %s", found.Body.String())
	}

	missing := serve(t, h.HandleGetFolder, http.MethodGet, "/folder?id=99", "")
	if missing.Code != http.StatusNotFound {
		t.Fatalf("missing: status = %d, want 404", missing.Code)
	}
	if strings.Contains(missing.Body.String(), `"user_id"`) {
		t.Fatalf("missing folder body looks like an entity: %s", missing.Body.String())
	}
	decodeError(t, missing)
}

func TestDeleteFolder_SingleCallKeyedOnID(t *testing.T) {
	folders := &fakeFolderStore{}
	tasks := &fakeTaskStore{}
	folderHandler := NewFolderHandler(folders, validators.New())
	_ = NewTaskHandler(tasks, validators.New())

	rec := serve(t, folderHandler.HandleDeleteFolder, http.MethodDelete, "/folder?id=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
	}
	if folders.calls != 1 || len(folders.deletedIDs) != 1 || folders.deletedIDs[0] != "5" {
		t.Fatalf("calls = %d, deleted = %v; want one delete of 5", folders.calls, folders.deletedIDs)
	}
	// Folder deletion does not cascade to tasks.
	if tasks.calls != 0 {
		t.Fatalf("task store touched %d times", tasks.calls)
	}
}

func TestDeleteFolder_MissingID(t *testing.T) {
	store := &fakeFolderStore{}
	h := NewFolderHandler(store, validators.New())
	rec := serve(t, h.HandleDeleteFolder, http.MethodDelete, "/folder", "")
	if rec.Code != http.StatusBadRequest || store.calls != 0 {
		t.Fatalf("status = %d, calls = %d", rec.Code, store.calls)
	}
}

func TestPatchFolder(t *testing.T) {
	var gotID, gotName string
	store := &fakeFolderStore{patchFunc: func(ctx context.Context, id, name string) (int64, error) {
		gotID, gotName = id, name
		return 1, nil
	}}
	h := NewFolderHandler(store, validators.New())

	rec := serve(t, h.HandlePatchFolder, http.MethodPatch, "/folder", `{"id":"f1","name":"Office"}`)
	if rec.Code != http.StatusOK || gotID != "f1" || gotName != "Office" {
		t.Fatalf("status = %d, id = %q, name = %q", rec.Code, gotID, gotName)
	}

	rec = serve(t, h.HandlePatchFolder, http.MethodPatch, "/folder", `{"id":"f1","name":"  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank name: status = %d, want 400", rec.Code)
	}
}
