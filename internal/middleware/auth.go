package middleware

import (
	"context"
	"net/http"

	"github.com/prtracker/prtracker/internal/auth"
	"github.com/prtracker/prtracker/internal/telemetry/tracing"
	"github.com/prtracker/prtracker/internal/users"
	"github.com/prtracker/prtracker/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

type authenticator interface {
	Authenticate(ctx context.Context, authorizationHeader string) (*users.User, error)
}

type AuthMiddlewareHandler struct {
	authService  authenticator
	allowedPaths map[string]bool
}

func NewAuthMiddlewareHandler(authService authenticator) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		authService: authService,
		allowedPaths: map[string]bool{
			"/":         true,
			"/register": true,
			"/login":    true,

			// exercise catalog is shared, no account needed
			"/exo": true,

			// strava redirects back here without our auth header
			"/strava/callback": true,
		},
	}
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			user, err := h.authService.Authenticate(ctx, r.Header.Get("Authorization"))
			if err != nil {
				log.Tracef("[auth middleware] unauthorized => %s: %s", r.URL.Path, err)
				pkg.SendJsonMessage(w, http.StatusUnauthorized, err.Error())
				span.SetStatus(codes.Error, "unauthorized")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.WithUser(ctx, user)))
		})
	}
}
