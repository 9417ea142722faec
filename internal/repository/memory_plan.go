package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/plantrack/internal/domain"
)

// MemoryPlanRepo implements PlanRepo with a map guarded by a mutex.
type MemoryPlanRepo struct {
	mu    sync.RWMutex
	plans map[int64]domain.Plan
	order []int64
}

// NewMemoryPlanRepo creates an empty MemoryPlanRepo.
func NewMemoryPlanRepo() *MemoryPlanRepo {
	return &MemoryPlanRepo{plans: make(map[int64]domain.Plan)}
}

func (r *MemoryPlanRepo) Create(_ context.Context, p *domain.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plans[p.ID]; exists {
		return fmt.Errorf("inserting plan: id %d already exists", p.ID)
	}
	r.plans[p.ID] = p.Clone()
	r.order = append(r.order, p.ID)
	return nil
}

func (r *MemoryPlanRepo) GetByID(_ context.Context, id int64) (*domain.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plans[id]
	if !ok {
		return nil, planNotFound(id)
	}
	out := p.Clone()
	return &out, nil
}

func (r *MemoryPlanRepo) List(_ context.Context) ([]domain.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Plan, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.plans[id].Clone())
	}
	return out, nil
}

func (r *MemoryPlanRepo) Update(_ context.Context, p *domain.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plans[p.ID]; !ok {
		return planNotFound(p.ID)
	}
	r.plans[p.ID] = p.Clone()
	return nil
}

func (r *MemoryPlanRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plans[id]; !ok {
		return planNotFound(id)
	}
	delete(r.plans, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
