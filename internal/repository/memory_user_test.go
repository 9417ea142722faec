package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/plantrack/internal/domain"
	"github.com/alexanderramin/plantrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepo_Lookups(t *testing.T) {
	repo, err := NewMemoryUserRepo(testutil.Roster())
	require.NoError(t, err)
	ctx := context.Background()

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	u, err := repo.GetByUsername(ctx, "  WORKER1 ")
	require.NoError(t, err)
	assert.Equal(t, "Bob Worker", u.Name)

	u, err = repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, u.IsSupervisor())

	_, err = repo.GetByUsername(ctx, "nobody")
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "nobody", nf.Key)

	_, err = repo.GetByID(ctx, 99)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMemoryUserRepo_ListIsACopy(t *testing.T) {
	repo, err := NewMemoryUserRepo(testutil.Roster())
	require.NoError(t, err)

	users, _ := repo.List(context.Background())
	users[0].Name = "Mallory"
	again, _ := repo.List(context.Background())
	assert.Equal(t, "Alice Manager", again[0].Name)
}

func TestNewMemoryUserRepo_RejectsBadDirectory(t *testing.T) {
	tests := []struct {
		name  string
		users []domain.User
	}{
		{"duplicate id", []domain.User{
			{ID: 1, Username: "a", Role: domain.RoleWorker},
			{ID: 1, Username: "b", Role: domain.RoleWorker},
		}},
		{"duplicate username ignoring case", []domain.User{
			{ID: 1, Username: "Ana", Role: domain.RoleWorker},
			{ID: 2, Username: "ana", Role: domain.RoleWorker},
		}},
		{"blank username", []domain.User{{ID: 1, Username: " ", Role: domain.RoleWorker}}},
		{"unknown role", []domain.User{{ID: 1, Username: "x", Role: "admin"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewMemoryUserRepo(tc.users)
			assert.Error(t, err)
		})
	}
}
