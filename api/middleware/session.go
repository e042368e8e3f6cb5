package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/metalldk/storefront/api/responses"
	pkgAuth "github.com/metalldk/storefront/pkg/auth"
	"github.com/metalldk/storefront/pkg/config"
	pkgerrors "github.com/metalldk/storefront/pkg/errors"
	"github.com/metalldk/storefront/pkg/logger"
)

// Session reads the user_session cookie. A missing or invalid cookie leaves the
// request anonymous; guests may use every public route.
func Session(cfg config.DevServerConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(pkgAuth.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := pkgAuth.ParseSessionToken(cfg, cookie.Value)
			if err != nil {
				if logg != nil {
					logg.Debug(logg.WithField(r.Context(), "error", err.Error()), "session.cookie.invalid")
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects anonymous requests with 401.
func RequireSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserIDFromContext(r.Context()) == uuid.Nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "not signed in"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
