package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/plantrack/internal/domain"
	"github.com/alexanderramin/plantrack/internal/repository"
	"github.com/alexanderramin/plantrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDirectoryService(t *testing.T) DirectoryService {
	t.Helper()
	users, err := repository.NewMemoryUserRepo(testutil.Roster())
	require.NoError(t, err)
	return NewDirectoryService(users)
}

func TestDirectoryService_Login(t *testing.T) {
	svc := newDirectoryService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		wantName string
		wantErr  error
	}{
		{"exact", "supervisor", "Alice Manager", nil},
		{"case insensitive", "Worker1", "Bob Worker", nil},
		{"surrounding space", "  worker2 ", "Charlie Worker", nil},
		{"blank", "   ", "", domain.ErrValidation},
		{"unknown", "mallory", "", domain.ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u, err := svc.Login(ctx, tc.username)
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantName, u.Name)
		})
	}
}

func TestDirectoryService_Workers(t *testing.T) {
	svc := newDirectoryService(t)
	workers, err := svc.Workers(context.Background())
	require.NoError(t, err)
	require.Len(t, workers, 2)
	for _, w := range workers {
		assert.True(t, w.IsWorker())
	}

	users, err := svc.Users(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 3)

	u, err := svc.GetUser(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "worker2", u.Username)
}
