package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/metalldk/storefront/api/middleware"
	"github.com/metalldk/storefront/api/responses"
	"github.com/metalldk/storefront/api/validators"
	"github.com/metalldk/storefront/internal/devstore"
	pkgAuth "github.com/metalldk/storefront/pkg/auth"
	"github.com/metalldk/storefront/pkg/config"
	pkgerrors "github.com/metalldk/storefront/pkg/errors"
	"github.com/metalldk/storefront/pkg/logger"
)

// Accounts is the user registry behind the session endpoints.
type Accounts interface {
	CreateUser(ctx context.Context, input devstore.CreateUserInput) (*devstore.User, error)
	Authenticate(ctx context.Context, email, phone, password string) (*devstore.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*devstore.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input devstore.UpdateProfileInput) (*devstore.User, error)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required_without=Phone"`
	Phone    string `json:"phone" validate:"required_without=Email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,storefront_email"`
	Phone     string `json:"phone" validate:"required,ru_phone"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type profileRequest struct {
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Email     string `json:"email" validate:"required,storefront_email"`
	Phone     string `json:"phone" validate:"required,ru_phone"`
}

// AuthLogin checks the credentials and sets the session cookie.
func AuthLogin(accounts Accounts, cfg config.DevServerConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := accounts.Authenticate(r.Context(), body.Email, body.Phone, body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		now := time.Now()
		token, err := pkgAuth.MintSessionToken(cfg, now, pkgAuth.SessionPayload{UserID: user.ID, Email: user.Email, Phone: user.Phone})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session"))
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     pkgAuth.SessionCookieName,
			Value:    token,
			Path:     "/",
			Expires:  now.Add(cfg.SessionTTL()),
			MaxAge:   int(cfg.SessionTTL().Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		if logg != nil {
			logg.Info(logg.WithUserID(r.Context(), user.ID.String()), "auth.login.succeeded")
		}
		responses.WriteSuccess(w, responses.StatusOK)
	}
}

// AuthRegister creates an account. It does not sign the caller in.
func AuthRegister(accounts Accounts, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body registerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := accounts.CreateUser(r.Context(), devstore.CreateUserInput{
			Email:     body.Email,
			Phone:     body.Phone,
			Password:  body.Password,
			FirstName: body.FirstName,
			LastName:  body.LastName,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithUserID(r.Context(), user.ID.String()), "auth.register.succeeded")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, responses.StatusOK)
	}
}

// AuthMe returns the signed-in profile. Mounted behind RequireSession.
func AuthMe(accounts Accounts, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := accounts.UserByID(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
				err = pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "not signed in")
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user.Profile())
	}
}

// AuthProfileUpdate saves the account page form and answers with the new
// profile. Mounted behind RequireSession.
func AuthProfileUpdate(accounts Accounts, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body profileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		user, err := accounts.UpdateProfile(r.Context(), userID, devstore.UpdateProfileInput{
			FirstName: validators.SanitizeString(body.FirstName, 100),
			LastName:  validators.SanitizeString(body.LastName, 100),
			Email:     body.Email,
			Phone:     body.Phone,
		})
		if err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
				err = pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "not signed in")
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if logg != nil {
			logg.Info(logg.WithUserID(r.Context(), userID.String()), "auth.profile.updated")
		}
		responses.WriteSuccess(w, user.Profile())
	}
}

// AuthLogout expires the session cookie. It succeeds for guests too.
func AuthLogout(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     pkgAuth.SessionCookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
		})
		responses.WriteSuccess(w, responses.StatusOK)
	}
}
