package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/plantrack/internal/domain"
)

// MemoryUserRepo serves a fixed user directory. Users are immutable after
// construction.
type MemoryUserRepo struct {
	users []domain.User
}

// NewMemoryUserRepo builds the directory, rejecting duplicate ids and
// usernames (compared case-insensitively) and unknown roles.
func NewMemoryUserRepo(users []domain.User) (*MemoryUserRepo, error) {
	ids := make(map[int]bool, len(users))
	names := make(map[string]bool, len(users))
	for _, u := range users {
		key := strings.ToLower(strings.TrimSpace(u.Username))
		switch {
		case key == "":
			return nil, fmt.Errorf("user %d: username is required", u.ID)
		case ids[u.ID]:
			return nil, fmt.Errorf("user %d: duplicate id", u.ID)
		case names[key]:
			return nil, fmt.Errorf("user %d: duplicate username %q", u.ID, u.Username)
		case !u.IsWorker() && !u.IsSupervisor():
			return nil, fmt.Errorf("user %d: unknown role %q", u.ID, u.Role)
		}
		ids[u.ID] = true
		names[key] = true
	}
	return &MemoryUserRepo{users: append([]domain.User(nil), users...)}, nil
}

func (r *MemoryUserRepo) List(_ context.Context) ([]domain.User, error) {
	return append([]domain.User(nil), r.users...), nil
}

func (r *MemoryUserRepo) GetByID(_ context.Context, id int) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, userNotFound(id)
}

func (r *MemoryUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.MatchesUsername(username) {
			out := u
			return &out, nil
		}
	}
	return nil, &domain.NotFoundError{Entity: domain.EntityUser, Key: strings.TrimSpace(username)}
}
