package devstore

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/metalldk/storefront/pkg/errors"
	"github.com/metalldk/storefront/pkg/storefront"
)

// User is an account known to the development backend.
type User struct {
	ID           uuid.UUID
	Email        string
	Phone        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile maps the account onto the /api/me payload.
func (u User) Profile() storefront.Profile {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	return storefront.Profile{
		Name:      name,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
	}
}

// CreateUserInput carries the fields accepted by registration.
type CreateUserInput struct {
	Email     string
	Phone     string
	Password  string
	FirstName string
	LastName  string
}

// CreateUser stores a new account. Email and phone must both be unused.
func (s *Store) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	email := normalizeEmail(input.Email)
	phone := strings.TrimSpace(input.Phone)
	if email == "" || phone == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email, phone and password are required")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[email]; ok {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	}
	if _, ok := s.byPhone[phone]; ok {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "phone already registered")
	}

	user := &User{
		ID:           uuid.New(),
		Email:        email,
		Phone:        phone,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	s.users[user.ID] = user
	s.byEmail[email] = user.ID
	s.byPhone[phone] = user.ID

	out := *user
	return &out, nil
}

// Authenticate resolves the account by email, or by phone when email is empty,
// and checks the password.
func (s *Store) Authenticate(ctx context.Context, email, phone, password string) (*User, error) {
	s.mu.RLock()
	var (
		id uuid.UUID
		ok bool
	)
	if email = normalizeEmail(email); email != "" {
		id, ok = s.byEmail[email]
	} else if phone = strings.TrimSpace(phone); phone != "" {
		id, ok = s.byPhone[phone]
	}
	var user User
	if ok {
		user = *s.users[id]
	}
	s.mu.RUnlock()

	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	match, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !match {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	return &user, nil
}

// UpdateProfileInput carries the account page fields.
type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// UpdateProfile replaces the contact details of an account. A new email or
// phone must not belong to another account.
func (s *Store) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*User, error) {
	email := normalizeEmail(input.Email)
	phone := strings.TrimSpace(input.Phone)
	if email == "" || phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and phone are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	if owner, taken := s.byEmail[email]; taken && owner != id {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	}
	if owner, taken := s.byPhone[phone]; taken && owner != id {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "phone already registered")
	}

	delete(s.byEmail, user.Email)
	delete(s.byPhone, user.Phone)
	user.Email = email
	user.Phone = phone
	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)
	s.byEmail[email] = id
	s.byPhone[phone] = id

	out := *user
	return &out, nil
}

// UserByID returns a copy of the account.
func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	out := *user
	return &out, nil
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
