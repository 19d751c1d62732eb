package router

import (
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/chat"
	"github.com/taskdeck/taskdeck/internal/task"
	taskrepo "github.com/taskdeck/taskdeck/internal/task/repo"
	userrepo "github.com/taskdeck/taskdeck/internal/user/repo"
	"github.com/taskdeck/taskdeck/pkg/utilities"
)

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// LoggingMiddleware logs each request at debug level with a generated
// request id, echoed back in the X-Request-Id header.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := utilities.NewRequestID()
			w.Header().Set("X-Request-Id", reqID)
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"request_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
			)
		})
	}
}

// SecurityHeadersMiddleware sets common HTTP security headers.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RegisterRoutes mounts all HTTP handlers on a standard library ServeMux and
// wraps them with the middleware stack.
func RegisterRoutes(logger *zap.SugaredLogger, db *sqlx.DB) http.Handler {
	mux := http.NewServeMux()

	users := userrepo.NewPostgresRepository(db)
	tasks := taskrepo.NewPostgresRepository(db)

	authSvc := auth.NewService(users, nil, auth.NewTokenIssuer(auth.TokenConfigFromEnv()))
	authHandler := auth.NewHandler(authSvc, logger)
	taskHandler := task.NewHandler(task.NewService(tasks), logger)
	chatHandler := chat.NewHandler(chat.NewService(chat.ConfigFromEnv()), logger)

	mux.HandleFunc("GET /api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/signin", authHandler.SignIn)

	requireUser := authSvc.RequireUser(logger)
	protected := func(h http.HandlerFunc) http.Handler {
		return requireUser(h)
	}

	mux.Handle("POST /api/v1/auth/logout", protected(authHandler.Logout))
	mux.Handle("GET /api/v1/auth/me", protected(authHandler.Me))
	mux.Handle("POST /api/v1/chat", protected(chatHandler.Chat))
	mux.Handle("GET /api/v1/tasks", protected(taskHandler.List))
	mux.Handle("POST /api/v1/tasks", protected(taskHandler.Create))
	mux.Handle("GET /api/v1/tasks/{id}", protected(taskHandler.Get))
	mux.Handle("PUT /api/v1/tasks/{id}", protected(taskHandler.UpdateTitle))
	mux.Handle("PATCH /api/v1/tasks/{id}/complete", protected(taskHandler.MarkComplete))
	mux.Handle("PATCH /api/v1/tasks/{id}/incomplete", protected(taskHandler.MarkIncomplete))
	mux.Handle("DELETE /api/v1/tasks/{id}", protected(taskHandler.Delete))

	return LoggingMiddleware(logger)(SecurityHeadersMiddleware()(mux))
}
