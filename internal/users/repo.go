package users

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repository keeps accounts in memory for the lifetime of the process.
type Repository struct {
	mu      sync.RWMutex
	byEmail map[string]*User
	now     func() time.Time
}

// NewRepository constructs an empty users repo.
func NewRepository() *Repository {
	return &Repository{byEmail: make(map[string]*User), now: time.Now}
}

// NormalizeEmail is the lookup key for an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create stores a new user and returns a copy of it.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	email := NormalizeEmail(dto.Email)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[email]; exists {
		return nil, ErrDuplicateEmail
	}
	user := &User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(dto.Name),
		Email:        email,
		PasswordHash: dto.PasswordHash,
		CreatedAt:    r.now().UTC(),
	}
	r.byEmail[email] = user
	copied := *user
	return &copied, nil
}

// FindByEmail retrieves the user matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byEmail[NormalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

// Count returns the number of stored users.
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byEmail)
}
