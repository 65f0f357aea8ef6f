package core

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// fakeUserRepo is an in-memory UserRepository with the same discriminator
// behavior as the postgres implementation.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]UserRecord

	forcedErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]UserRecord)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.forcedErr != nil {
		return r.forcedErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrDuplicateKey
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	out := make([]UserRecord, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.forcedErr != nil {
		return nil, r.forcedErr
	}
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, id uuid.UUID, patch UserPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.forcedErr != nil {
		return r.forcedErr
	}
	u, ok := r.users[id]
	if !ok {
		return ErrRecordNotFound
	}
	if patch.Email != nil {
		for otherID, other := range r.users {
			if otherID != id && other.Email == *patch.Email {
				return ErrDuplicateKey
			}
		}
		u.Email = *patch.Email
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	u.UpdatedAt = patch.UpdatedAt
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.forcedErr != nil {
		return r.forcedErr
	}
	if _, ok := r.users[id]; !ok {
		return ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}

var _ UserRepository = (*fakeUserRepo)(nil)
