// Package server assembles the HTTP surface: the Connect services, plain
// HTTP routes for downloads and operations, and the shared middleware.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/lostfound/internal/auth"
	"github.com/mmynk/lostfound/internal/middleware"
	"github.com/mmynk/lostfound/internal/service"
	"github.com/mmynk/lostfound/internal/storage"
	"github.com/mmynk/lostfound/pkg/api/apiconnect"
)

// Services holds one implementation per RPC service.
type Services struct {
	Auth          *service.AuthService
	Profile       *service.ProfileService
	Items         *service.ItemService
	Claims        *service.ClaimService
	Chat          *service.ChatService
	Notifications *service.NotificationService
	Rewards       *service.RewardService
	Backups       *service.BackupService
	Realtime      *service.RealtimeService
}

// Options configures the router.
type Options struct {
	// AllowedOrigins lists browser origins for CORS. "*" allows any and an
	// empty list disables CORS.
	AllowedOrigins []string
	// Gatherer backs /metrics. Nil disables the route.
	Gatherer prometheus.Gatherer
	// JWT validates bearer tokens on the plain HTTP routes.
	JWT *auth.JWTManager
	// Accounts, when set, rejects tokens whose account no longer exists.
	Accounts middleware.AccountChecker
	// HandlerOptions are applied to every Connect handler, e.g. interceptors.
	HandlerOptions []connect.HandlerOption
	Logger         *slog.Logger
}

// New builds the root handler.
func New(svc Services, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(requestLogger(logger))
	r.Use(corsHandler(opts.AllowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok")); err != nil {
			logger.Warn("Health write failed", "error", err)
		}
	})
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/avatars/{id}", avatarHandler(svc.Profile, logger))
	r.With(bearerAuth(opts.JWT, opts.Accounts, logger)).Get("/backups/{id}", backupHandler(svc.Backups, logger))

	ho := opts.HandlerOptions
	mount := func(path string, h http.Handler) { r.Mount(path, h) }
	mount(apiconnect.NewAuthServiceHandler(svc.Auth, ho...))
	mount(apiconnect.NewProfileServiceHandler(svc.Profile, ho...))
	mount(apiconnect.NewItemServiceHandler(svc.Items, ho...))
	mount(apiconnect.NewClaimServiceHandler(svc.Claims, ho...))
	mount(apiconnect.NewChatServiceHandler(svc.Chat, ho...))
	mount(apiconnect.NewNotificationServiceHandler(svc.Notifications, ho...))
	mount(apiconnect.NewRewardServiceHandler(svc.Rewards, ho...))
	mount(apiconnect.NewBackupServiceHandler(svc.Backups, ho...))
	mount(apiconnect.NewRealtimeServiceHandler(svc.Realtime, ho...))

	return r
}

// bearerAuth validates the Authorization header and stores the claims the
// same way the RPC auth interceptor does.
func bearerAuth(jwt *auth.JWTManager, accounts middleware.AccountChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" || jwt == nil {
				http.Error(w, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
				return
			}
			claims, err := jwt.Validate(token)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			if accounts != nil {
				ok, err := accounts(r.Context(), claims.UserID)
				if err != nil {
					logger.Error("Account lookup failed", "user_id", claims.UserID, "error", err)
					http.Error(w, "internal error", http.StatusInternalServerError)
					return
				}
				if !ok {
					http.Error(w, auth.ErrInvalidToken.Error(), http.StatusUnauthorized)
					return
				}
			}
			next.ServeHTTP(w, r.WithContext(middleware.WithClaims(r.Context(), claims)))
		})
	}
}

func backupHandler(backups *service.BackupService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		backup, payload, err := backups.Download(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/gzip")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="lostfound-%s.json.gz"`, backup.ID))
		w.Header().Set("Content-Length", fmt.Sprint(len(payload)))
		if _, err := w.Write(payload); err != nil {
			logger.Warn("Backup write failed", "backup_id", id, "error", err)
		}
	}
}

func avatarHandler(profiles *service.ProfileService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, err := profiles.Avatar(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			logger.Error("Avatar lookup failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", file.ContentType)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "private, max-age=300")
		if _, err := w.Write(file.Data); err != nil {
			logger.Warn("Avatar write failed", "error", err)
		}
	}
}

// writeError maps a Connect error onto an HTTP status.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch connect.CodeOf(err) {
	case connect.CodeUnauthenticated:
		status = http.StatusUnauthorized
	case connect.CodePermissionDenied:
		status = http.StatusForbidden
	case connect.CodeNotFound:
		status = http.StatusNotFound
	case connect.CodeInvalidArgument:
		status = http.StatusBadRequest
	}
	msg := http.StatusText(status)
	var cerr *connect.Error
	if errors.As(err, &cerr) && status != http.StatusInternalServerError {
		msg = cerr.Message()
	}
	http.Error(w, msg, status)
}
