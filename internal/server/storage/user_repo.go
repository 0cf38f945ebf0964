package storage

import (
	"context"
	"errors"
	"time"

	"notable/pkg/models"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// GetByEmail returns nil without error when no user matches.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users, err := r.store.loadUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// GetByID returns nil without error when no user matches.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users, err := r.store.loadUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	users, err := r.store.loadUsers()
	if err != nil {
		return err
	}
	users = append(users, *user)
	return r.store.saveUsers(users)
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users, err := r.store.loadUsers()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = *user
			return r.store.saveUsers(users)
		}
	}
	return ErrUserNotFound
}
