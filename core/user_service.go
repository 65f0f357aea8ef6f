package core

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// CreateUserInput is a full user payload, already validated.
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserInput is a partial payload; nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UserService orchestrates CRUD against the repository and translates the
// two recognized store discriminators into domain errors. Any other store
// failure propagates unchanged and surfaces as an internal error.
type UserService struct {
	repo   UserRepository
	hasher PasswordHasher
}

func NewUserService(repo UserRepository, hasher PasswordHasher) *UserService {
	return &UserService{repo: repo, hasher: hasher}
}

// Create persists a new user with the password replaced by its digest.
// Email uniqueness is not pre-checked; the store's conflict signal is
// authoritative.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*UserRecord, error) {
	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &UserRecord{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: digest,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return nil, NewConflictError("User with email %s already exists", input.Email)
		}
		return nil, err
	}
	return user, nil
}

// FindAll returns every user record; full scan is the defined contract.
func (s *UserService) FindAll(ctx context.Context) ([]UserRecord, error) {
	return s.repo.List(ctx)
}

func (s *UserService) FindOne(ctx context.Context, id string) (*UserRecord, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, NewNotFoundError("User with ID %s not found", id)
	}
	user, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, NewNotFoundError("User with ID %s not found", id)
		}
		return nil, err
	}
	return user, nil
}

// Update applies only the supplied fields and always refreshes updatedAt,
// even when no recognized field changed. A supplied password is re-hashed
// before it reaches the store.
func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return NewNotFoundError("User with ID %s not found", id)
	}

	patch := UserPatch{
		Name:      input.Name,
		Email:     input.Email,
		UpdatedAt: time.Now().UTC(),
	}
	if input.Password != nil {
		digest, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return err
		}
		patch.PasswordHash = &digest
	}

	if err := s.repo.Update(ctx, uid, patch); err != nil {
		switch {
		case errors.Is(err, ErrRecordNotFound):
			return NewNotFoundError("User with ID %s not found", id)
		case errors.Is(err, ErrDuplicateKey):
			email := ""
			if input.Email != nil {
				email = *input.Email
			}
			return NewConflictError("User with email %s already exists", email)
		default:
			return err
		}
	}
	return nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return NewNotFoundError("User with ID %s not found", id)
	}
	if err := s.repo.Delete(ctx, uid); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return NewNotFoundError("User with ID %s not found", id)
		}
		return err
	}
	return nil
}
