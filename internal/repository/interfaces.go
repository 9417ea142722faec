package repository

import (
	"context"

	"github.com/alexanderramin/plantrack/internal/domain"
)

// PlanRepo holds the single owned plan collection. Implementations store and
// return deep copies: callers never share slices with the store. List returns
// plans in creation order.
type PlanRepo interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id int64) (*domain.Plan, error)
	List(ctx context.Context) ([]domain.Plan, error)
	Update(ctx context.Context, p *domain.Plan) error
	Delete(ctx context.Context, id int64) error
}

// UserRepo is the static user directory.
type UserRepo interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
