package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/plantrack/internal/domain"
	"github.com/alexanderramin/plantrack/internal/repository"
)

type directoryService struct {
	users    repository.UserRepo
	observer UseCaseObserver
}

func NewDirectoryService(users repository.UserRepo, observers ...UseCaseObserver) DirectoryService {
	return &directoryService{users: users, observer: useCaseObserverOrNoop(observers)}
}

// Login resolves a username, ignoring case. There are no passwords.
func (s *directoryService) Login(ctx context.Context, username string) (user *domain.User, err error) {
	done := beginUseCase(ctx, s.observer, "login", map[string]any{"username": username})
	defer func() { done(err) }()

	if strings.TrimSpace(username) == "" {
		return nil, domain.NewValidationError("username", "username is required")
	}
	return s.users.GetByUsername(ctx, username)
}

func (s *directoryService) GetUser(ctx context.Context, id int) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *directoryService) Users(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *directoryService) Workers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Workers(users), nil
}
