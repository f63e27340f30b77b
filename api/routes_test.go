package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coreybb/tasker/datastore"
	"github.com/coreybb/tasker/models"
	rh "github.com/coreybb/tasker/route-handlers"
	"github.com/coreybb/tasker/validators"
	"github.com/coreybb/tasker/webutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := sql.Open("sqlite3", "file:api_"+strings.ReplaceAll(t.Name(), "/", "_")+"?mode=memory&cache=shared&_foreign_keys=on")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	conn := datastore.NewConn(db, datastore.DialectSQLite)
	if err := conn.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	v := validators.New()
	router := SetupRoutes(
		rh.NewUserHandler(datastore.NewUserRepository(conn), v, webutil.NewBcryptHasher(4)),
		rh.NewFolderHandler(datastore.NewFolderRepository(conn), v),
		rh.NewTaskHandler(datastore.NewTaskRepository(conn), v),
		Options{
			Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
			RequestTimeout: 5 * time.Second,
			DB:             conn,
		},
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any, out any) int {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, srv.URL+path, rdr)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, raw, err)
		}
	}
	return resp.StatusCode
}

func TestEndToEnd_UserFolderTaskLifecycle(t *testing.T) {
	srv := newTestServer(t)

	var user map[string]any
	status := do(t, srv, http.MethodPost, "/user", map[string]string{
		"name": "Test User", "email": "test@test.com", "password": "test",
	}, &user)
	if status != http.StatusOK {
		t.Fatalf("create user: %d %v", status, user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("create user response has password: %v", user)
	}
	userID := user["id"].(string)

	var fetched map[string]any
	if status := do(t, srv, http.MethodGet, "/user?email=test@test.com", nil, &fetched); status != http.StatusOK {
		t.Fatalf("get user: %d", status)
	}
	if fetched["id"] != userID {
		t.Fatalf("get user = %v", fetched)
	}
	if _, leaked := fetched["password"]; leaked {
		t.Fatalf("get user response has password: %v", fetched)
	}

	var folder models.Folder
	if status := do(t, srv, http.MethodPost, "/folder", map[string]string{"name": "Work", "user_id": userID}, &folder); status != http.StatusOK {
		t.Fatalf("create folder: %d", status)
	}

	var task models.Task
	status = do(t, srv, http.MethodPost, "/task", map[string]string{
		"title": "Report", "due_date": "2024-03-01T18:30:00+01:00", "status": "pending",
		"folder_id": folder.ID, "user_id": userID,
	}, &task)
	if status != http.StatusOK {
		t.Fatalf("create task: %d", status)
	}

	var stored models.Task
	if status := do(t, srv, http.MethodGet, "/task?id="+task.ID, nil, &stored); status != http.StatusOK {
		t.Fatalf("get task: %d", status)
	}
	if !stored.DueDate.Equal(time.Date(2024, 3, 1, 17, 30, 0, 0, time.UTC)) {
		t.Fatalf("due_date round trip = %v", stored.DueDate)
	}

	var inFolder []models.Task
	if status := do(t, srv, http.MethodGet, "/tasks?user_id="+userID+"&folder_id="+folder.ID, nil, &inFolder); status != http.StatusOK || len(inFolder) != 1 {
		t.Fatalf("list tasks in folder: %d %v", status, inFolder)
	}

	var ack map[string]any
	if status := do(t, srv, http.MethodDelete, "/folder?id="+folder.ID, nil, &ack); status != http.StatusOK {
		t.Fatalf("delete folder: %d", status)
	}

	var errBody webutil.ErrorBody
	if status := do(t, srv, http.MethodGet, "/folder?id="+folder.ID, nil, &errBody); status != http.StatusNotFound || errBody.Status != http.StatusNotFound {
		t.Fatalf("get deleted folder: %d %+v", status, errBody)
	}

	// The task outlives its folder.
	if status := do(t, srv, http.MethodGet, "/task?id="+task.ID, nil, &stored); status != http.StatusOK || stored.FolderID != folder.ID {
		t.Fatalf("orphaned task: %d %+v", status, stored)
	}
}

func TestEndToEnd_ErrorBodies(t *testing.T) {
	srv := newTestServer(t)

	var body webutil.ErrorBody
	if status := do(t, srv, http.MethodPost, "/user", map[string]string{"name": "A", "email": "bad", "password": "secret"}, &body); status != http.StatusBadRequest {
		t.Fatalf("bad email: %d", status)
	}
	if body.Status != http.StatusBadRequest || body.Message == "" {
		t.Fatalf("bad email body = %+v", body)
	}

	if status := do(t, srv, http.MethodPost, "/folder", map[string]string{"name": "Work", "user_id": "ghost"}, &body); status != http.StatusBadRequest {
		t.Fatalf("folder for unknown user: %d %+v", status, body)
	}

	user := map[string]string{"name": "A", "email": "a@b.co", "password": "secret"}
	do(t, srv, http.MethodPost, "/user", user, nil)
	if status := do(t, srv, http.MethodPost, "/user", user, &body); status != http.StatusConflict {
		t.Fatalf("duplicate email: %d %+v", status, body)
	}

	if status := do(t, srv, http.MethodGet, "/user?id=5", nil, &body); status != http.StatusNotFound {
		t.Fatalf("unknown user: %d", status)
	}

	var users []map[string]any
	if status := do(t, srv, http.MethodGet, "/users", nil, &users); status != http.StatusOK || len(users) != 1 {
		t.Fatalf("list users: %d %v", status, users)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + healthPath)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz = %d", resp.StatusCode)
	}

	do(t, srv, http.MethodGet, "/users", nil, nil)
	resp, err = srv.Client().Get(srv.URL + metricsPath)
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(raw), "tasker_http_requests_total") {
		t.Fatalf("metrics output missing request counter")
	}
}

type failingPinger struct{}

func (failingPinger) PingContext(context.Context) error { return errors.New("down") }

func TestHealthCheck_DatabaseDown(t *testing.T) {
	rec := httptest.NewRecorder()
	handleHealthCheck(failingPinger{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, healthPath, nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

// stallingTaskStore blocks reads until the request context ends.
type stallingTaskStore struct {
	rh.TaskStore
}

func (stallingTaskStore) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	<-ctx.Done()
	return nil, fmt.Errorf("failed to query task %s: %w", taskID, ctx.Err())
}

func TestRequestTimeout_RendersGatewayTimeout(t *testing.T) {
	v := validators.New()
	router := SetupRoutes(
		rh.NewUserHandler(nil, v, webutil.NewBcryptHasher(4)),
		rh.NewFolderHandler(nil, v),
		rh.NewTaskHandler(stallingTaskStore{}, v),
		Options{
			Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
			RequestTimeout: 20 * time.Millisecond,
		},
	)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/task?id=t1", nil))
	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504 (body %s)", rec.Code, rec.Body.String())
	}
	var body webutil.ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	if body.Status != http.StatusGatewayTimeout || body.Message != "Request timed out" {
		t.Fatalf("body = %+v", body)
	}
}
