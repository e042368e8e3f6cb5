package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/metalldk/storefront/internal/storage"
	"github.com/metalldk/storefront/pkg/enums"
	pkgerrors "github.com/metalldk/storefront/pkg/errors"
	"github.com/metalldk/storefront/pkg/logger"
	"github.com/metalldk/storefront/pkg/storefront"
)

// DefaultRememberKey is the storage key holding the remembered login identifier.
const DefaultRememberKey = "rememberedUser"

// Backend is the account slice of the storefront API.
type Backend interface {
	Login(ctx context.Context, creds storefront.Credentials) error
	Register(ctx context.Context, reg storefront.Registration) error
	Me(ctx context.Context) (*storefront.Profile, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, update storefront.ProfileUpdate) (*storefront.Profile, error)
}

type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type LoginForm struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Remember   bool   `json:"-"`
}

type RegisterForm struct {
	Email    string `json:"email" validate:"required,storefront_email"`
	Phone    string `json:"phone" validate:"required,ru_phone"`
	Password string `json:"password" validate:"required"`
}

// ProfileForm is the account page form. Names are optional.
type ProfileForm struct {
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Email     string `json:"email" validate:"required,storefront_email"`
	Phone     string `json:"phone" validate:"required,ru_phone"`
}

// remembered is the persisted prefill record. The password is never stored.
type remembered struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Controller validates the login and registration forms and performs one
// request per submission.
type Controller struct {
	backend     Backend
	kv          kvStore
	rememberKey string
	logg        *logger.Logger
}

func NewController(backend Backend, kv kvStore, rememberKey string, logg *logger.Logger) (*Controller, error) {
	if backend == nil {
		return nil, fmt.Errorf("auth backend required")
	}
	if kv == nil {
		return nil, fmt.Errorf("auth storage required")
	}
	if rememberKey == "" {
		rememberKey = DefaultRememberKey
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Controller{backend: backend, kv: kv, rememberKey: rememberKey, logg: logg}, nil
}

// LoginCredentials validates the form and builds the request body without
// touching the network.
func LoginCredentials(form LoginForm) (storefront.Credentials, error) {
	form.Identifier = strings.TrimSpace(form.Identifier)
	if err := FormError(validate.Struct(form)); err != nil {
		return storefront.Credentials{}, err
	}

	kind, identifier := ClassifyIdentifier(form.Identifier)
	if kind == enums.IdentifierKindPhone {
		return storefront.Credentials{Phone: identifier, Password: form.Password}, nil
	}
	if !strings.Contains(identifier, "@") {
		return storefront.Credentials{}, pkgerrors.New(pkgerrors.CodeValidation, MsgEmailNeedsAt)
	}
	if err := validate.Var(identifier, TagEmail); err != nil {
		return storefront.Credentials{}, pkgerrors.New(pkgerrors.CodeValidation, MsgInvalidEmail)
	}
	return storefront.Credentials{Email: identifier, Password: form.Password}, nil
}

// Login submits the form. With Remember set, the identifier is persisted for
// the next Prefill once the backend accepts the credentials.
func (c *Controller) Login(ctx context.Context, form LoginForm) error {
	creds, err := LoginCredentials(form)
	if err != nil {
		return err
	}
	if err := c.backend.Login(ctx, creds); err != nil {
		return err
	}

	ctx = c.logg.WithField(ctx, "identifier_kind", identifierKind(creds).String())
	c.logg.Info(ctx, "auth.login.succeeded")
	if form.Remember {
		c.remember(ctx, remembered{Email: creds.Email, Phone: creds.Phone})
	}
	return nil
}

// Register validates all fields before posting the registration.
func (c *Controller) Register(ctx context.Context, form RegisterForm) error {
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)
	if err := FormError(validate.Struct(form)); err != nil {
		return err
	}
	if err := c.backend.Register(ctx, storefront.Registration{
		Email:    form.Email,
		Phone:    form.Phone,
		Password: form.Password,
	}); err != nil {
		return err
	}
	c.logg.Info(ctx, "auth.register.succeeded")
	return nil
}

// UpdateProfile validates the account form and saves it. The phone goes
// through the input mask first, as typed into the page.
func (c *Controller) UpdateProfile(ctx context.Context, form ProfileForm) (*storefront.Profile, error) {
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = MaskPhone(form.Phone)
	if err := FormError(validate.Struct(form)); err != nil {
		return nil, err
	}
	profile, err := c.backend.UpdateProfile(ctx, storefront.ProfileUpdate{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Phone:     form.Phone,
	})
	if err != nil {
		if pkgerrors.StatusOf(err) == http.StatusUnauthorized {
			return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "not signed in")
		}
		return nil, err
	}
	c.logg.Info(ctx, "auth.profile.updated")
	return profile, nil
}

// Prefill returns the remembered identifier, or "" when nothing usable is stored.
func (c *Controller) Prefill(ctx context.Context) string {
	raw, err := c.kv.Get(ctx, c.rememberKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "auth.remember.unavailable")
		}
		return ""
	}
	var rec remembered
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "auth.remember.corrupt")
		return ""
	}
	if rec.Email != "" {
		return rec.Email
	}
	return rec.Phone
}

// Logout asks the backend to end the session and does not wait on the result.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.backend.Logout(ctx); err != nil {
		c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "auth.logout.failed")
	}
}

// Profile loads the account behind the current session.
func (c *Controller) Profile(ctx context.Context) (*storefront.Profile, error) {
	profile, err := c.backend.Me(ctx)
	if err != nil {
		if pkgerrors.StatusOf(err) == http.StatusUnauthorized {
			return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "not signed in")
		}
		return nil, err
	}
	return profile, nil
}

func (c *Controller) remember(ctx context.Context, rec remembered) {
	payload, err := json.Marshal(rec)
	if err != nil {
		c.logg.Error(ctx, "auth.remember.encode_failed", err)
		return
	}
	if err := c.kv.Set(ctx, c.rememberKey, string(payload)); err != nil {
		c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "auth.remember.write_failed")
	}
}

func identifierKind(creds storefront.Credentials) enums.IdentifierKind {
	if creds.Phone != "" {
		return enums.IdentifierKindPhone
	}
	return enums.IdentifierKindEmail
}
