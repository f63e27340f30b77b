package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/coreybb/tasker/metrics"
	rh "github.com/coreybb/tasker/route-handlers"
	"github.com/coreybb/tasker/webutil"
)

const (
	userPath    = "/user"
	usersPath   = "/users"
	folderPath  = "/folder"
	foldersPath = "/folders"
	taskPath    = "/task"
	tasksPath   = "/tasks"
	healthPath  = "/healthz"
	metricsPath = "/metrics"
)

// Pinger reports database reachability for the health check.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	Logger         *slog.Logger
	RequestTimeout time.Duration // zero disables the per-request deadline
	DB             Pinger        // nil skips the database check
}

// SetupRoutes builds the static route table. Entity ids travel in the query
// string or body; there are no path parameters.
func SetupRoutes(
	userHandler *rh.UserHandler,
	folderHandler *rh.FolderHandler,
	taskHandler *rh.TaskHandler,
	opts Options,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(opts.Logger))
	r.Use(middleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout)) // cancels the request context, and with it any in-flight query
	}

	r.Group(func(r chi.Router) {
		r.Use(SetHeader(webutil.HeaderContentType, webutil.ContentTypeJSONUTF8))
		configureUserRoutes(r, userHandler)
		configureFolderRoutes(r, folderHandler)
		configureTaskRoutes(r, taskHandler)
	})

	r.Get(healthPath, handleHealthCheck(opts.DB))
	r.Handle(metricsPath, metrics.Handler())

	return r
}

func configureUserRoutes(r chi.Router, h *rh.UserHandler) {
	r.Post(userPath, webutil.MakeHandler(h.HandleCreateUser))
	r.Get(userPath, webutil.MakeHandler(h.HandleGetUser)) // ?id= or ?email=
	r.Delete(userPath, webutil.MakeHandler(h.HandleDeleteUser))
	r.Patch(userPath, webutil.MakeHandler(h.HandlePatchUser))
	r.Get(usersPath, webutil.MakeHandler(h.HandleGetUsers))
}

func configureFolderRoutes(r chi.Router, h *rh.FolderHandler) {
	r.Post(folderPath, webutil.MakeHandler(h.HandleCreateFolder))
	r.Get(folderPath, webutil.MakeHandler(h.HandleGetFolder))
	r.Delete(folderPath, webutil.MakeHandler(h.HandleDeleteFolder))
	r.Patch(folderPath, webutil.MakeHandler(h.HandlePatchFolder))
	r.Get(foldersPath, webutil.MakeHandler(h.HandleGetFolders)) // ?user_id=
}

func configureTaskRoutes(r chi.Router, h *rh.TaskHandler) {
	r.Post(taskPath, webutil.MakeHandler(h.HandleCreateTask))
	r.Get(taskPath, webutil.MakeHandler(h.HandleGetTask))
	r.Delete(taskPath, webutil.MakeHandler(h.HandleDeleteTask))
	r.Patch(taskPath, webutil.MakeHandler(h.HandlePatchTask))
	r.Get(tasksPath, webutil.MakeHandler(h.HandleGetTasks)) // ?user_id=[&folder_id=]
}

// handleHealthCheck responds 200 while the database answers pings.
func handleHealthCheck(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeTextPlainUTF8)
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				slog.WarnContext(r.Context(), "Health check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("database unavailable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}
