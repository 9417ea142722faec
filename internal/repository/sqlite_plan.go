package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/plantrack/internal/db"
	"github.com/alexanderramin/plantrack/internal/domain"
)

// SQLitePlanRepo implements PlanRepo on the plans, activities and completions
// tables. A plan and its children are always written in one transaction.
type SQLitePlanRepo struct {
	db  db.DBTX
	uow db.UnitOfWork
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(database *sql.DB) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: database, uow: db.NewSQLiteUnitOfWork(database)}
}

// NewSQLitePlanRepoWithUoW creates a SQLitePlanRepo whose writes run through
// uow instead of a transaction on database.
func NewSQLitePlanRepoWithUoW(database *sql.DB, uow db.UnitOfWork) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: database, uow: uow}
}

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		query := `INSERT INTO plans (id, name, month, year, month_index, deadline) VALUES (?, ?, ?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, query,
			p.ID, p.Name, p.Month, p.Year, p.MonthIndex, formatTime(p.Deadline),
		); err != nil {
			return fmt.Errorf("inserting plan: %w", err)
		}
		return insertActivities(ctx, tx, p)
	})
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id int64) (*domain.Plan, error) {
	query := `SELECT id, name, month, year, month_index, deadline FROM plans WHERE id = ?`
	p, err := scanPlan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, planNotFound(id)
		}
		return nil, err
	}

	byPlan, err := r.loadActivities(ctx, `WHERE a.plan_id = ?`, id)
	if err != nil {
		return nil, err
	}
	p.Activities = byPlan[p.ID]
	return &p, nil
}

func (r *SQLitePlanRepo) List(ctx context.Context) ([]domain.Plan, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, month, year, month_index, deadline FROM plans ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	var plans []domain.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	// The pool holds a single connection; release it before the next query.
	rows.Close()

	byPlan, err := r.loadActivities(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range plans {
		plans[i].Activities = byPlan[plans[i].ID]
	}
	if plans == nil {
		plans = []domain.Plan{}
	}
	return plans, nil
}

// Update rewrites the plan row and replaces its activities wholesale.
func (r *SQLitePlanRepo) Update(ctx context.Context, p *domain.Plan) error {
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		query := `UPDATE plans SET name = ?, month = ?, year = ?, month_index = ?, deadline = ? WHERE id = ?`
		res, err := tx.ExecContext(ctx, query,
			p.Name, p.Month, p.Year, p.MonthIndex, formatTime(p.Deadline), p.ID,
		)
		if err != nil {
			return fmt.Errorf("updating plan: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return planNotFound(p.ID)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM activities WHERE plan_id = ?`, p.ID); err != nil {
			return fmt.Errorf("clearing activities: %w", err)
		}
		return insertActivities(ctx, tx, p)
	})
}

// Delete removes the plan; activities and completions cascade.
func (r *SQLitePlanRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return planNotFound(id)
	}
	return nil
}

func insertActivities(ctx context.Context, tx db.DBTX, p *domain.Plan) error {
	for ai, a := range p.Activities {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO activities (id, plan_id, name, position) VALUES (?, ?, ?, ?)`,
			a.ID, p.ID, a.Name, ai,
		); err != nil {
			return fmt.Errorf("inserting activity %d: %w", a.ID, err)
		}
		for ci, c := range a.Completions {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO completions (activity_id, worker_id, status, evidence_file, position) VALUES (?, ?, ?, ?, ?)`,
				a.ID, c.WorkerID, string(c.Status), c.EvidenceFile, ci,
			); err != nil {
				return fmt.Errorf("inserting completion for activity %d, worker %d: %w", a.ID, c.WorkerID, err)
			}
		}
	}
	return nil
}

// loadActivities reads activities with their completions, grouped by plan id
// and kept in stored order. where filters the activities table (alias a).
func (r *SQLitePlanRepo) loadActivities(ctx context.Context, where string, args ...any) (map[int64][]domain.Activity, error) {
	query := `SELECT a.plan_id, a.id, a.name, c.worker_id, c.status, c.evidence_file
		FROM activities a
		LEFT JOIN completions c ON c.activity_id = a.id
		` + where + `
		ORDER BY a.plan_id, a.position, c.position`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]domain.Activity)
	for rows.Next() {
		var (
			planID, actID int64
			name          string
			workerID      sql.NullInt64
			status        sql.NullString
			evidence      sql.NullString
		)
		if err := rows.Scan(&planID, &actID, &name, &workerID, &status, &evidence); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}

		acts := out[planID]
		if n := len(acts); n == 0 || acts[n-1].ID != actID {
			acts = append(acts, domain.Activity{ID: actID, Name: name, Completions: []domain.Completion{}})
		}
		if workerID.Valid {
			last := &acts[len(acts)-1]
			last.Completions = append(last.Completions, domain.Completion{
				WorkerID:     int(workerID.Int64),
				Status:       domain.CompletionStatus(status.String),
				EvidenceFile: evidence.String,
			})
		}
		out[planID] = acts
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlan(s scanner) (domain.Plan, error) {
	var (
		p        domain.Plan
		deadline string
	)
	if err := s.Scan(&p.ID, &p.Name, &p.Month, &p.Year, &p.MonthIndex, &deadline); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Plan{}, err
		}
		return domain.Plan{}, fmt.Errorf("scanning plan: %w", err)
	}
	t, err := parseTime(deadline)
	if err != nil {
		return domain.Plan{}, err
	}
	p.Deadline = t
	return p, nil
}
