// Package seed loads the startup directory and plans from YAML. Plans are
// created through PlanService so seeded data obeys the same rules as data
// entered by hand.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/plantrack/internal/app"
	"github.com/alexanderramin/plantrack/internal/domain"
	"github.com/alexanderramin/plantrack/internal/service"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultSeed []byte

// MonthPlaceholder in a plan name is replaced by the deadline's month label.
const MonthPlaceholder = "{month}"

type File struct {
	Users []UserSpec `yaml:"users"`
	Plans []PlanSpec `yaml:"plans"`
}

type UserSpec struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Role     string `yaml:"role"`
}

type PlanSpec struct {
	Name       string         `yaml:"name"`
	Deadline   DeadlineSpec   `yaml:"deadline"`
	Activities []ActivitySpec `yaml:"activities"`
}

// DeadlineSpec is either an absolute Date (YYYY-MM-DD) or a day relative to
// the current month. Day 0 means the last day of the month.
type DeadlineSpec struct {
	Date        string `yaml:"date,omitempty"`
	MonthOffset int    `yaml:"month_offset,omitempty"`
	Day         int    `yaml:"day,omitempty"`
}

type ActivitySpec struct {
	Name        string           `yaml:"name"`
	CompletedBy []CompletionSpec `yaml:"completed_by,omitempty"`
}

type CompletionSpec struct {
	Worker   string `yaml:"worker"`
	Evidence string `yaml:"evidence"`
}

// Env is what Apply needs besides the file itself.
type Env struct {
	Users    []domain.User
	Now      time.Time
	Location *time.Location
	Locale   string
}

// Default returns the embedded demo seed.
func Default() (*File, error) {
	return Parse(defaultSeed)
}

// Load reads a seed file; an empty path returns the embedded default.
func Load(path string) (*File, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return f, nil
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding seed: %w", err)
	}
	return &f, nil
}

// DomainUsers converts the user specs, rejecting unknown roles.
func (f *File) DomainUsers() ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.Users))
	for _, u := range f.Users {
		role := strings.ToLower(strings.TrimSpace(u.Role))
		if !domain.ValidRoles[role] {
			return nil, fmt.Errorf("user %q: unknown role %q", u.Username, u.Role)
		}
		out = append(out, domain.User{
			ID:       u.ID,
			Name:     strings.TrimSpace(u.Name),
			Username: strings.TrimSpace(u.Username),
			Role:     domain.Role(role),
		})
	}
	return out, nil
}

// Resolve computes the deadline in loc, at 23:59:59 of the chosen day.
func (d DeadlineSpec) Resolve(now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if d.Date != "" {
		return domain.DeadlineFromDate(d.Date, loc)
	}
	ref := now.In(loc)
	if d.Day == 0 {
		return domain.EndOfMonth(ref, d.MonthOffset), nil
	}
	last := domain.EndOfMonth(ref, d.MonthOffset)
	if d.Day < 0 || d.Day > last.Day() {
		return time.Time{}, fmt.Errorf("day %d is outside %s", d.Day, last.Format("2006-01"))
	}
	return time.Date(last.Year(), last.Month(), d.Day, 23, 59, 59, 0, loc), nil
}

// Apply creates every plan in f and records its completions. It stops at
// the first failure.
func Apply(ctx context.Context, plans service.PlanService, f *File, env Env) error {
	workers := make(map[string]int)
	for _, u := range env.Users {
		if u.IsWorker() {
			workers[strings.ToLower(u.Username)] = u.ID
		}
	}

	for i, ps := range f.Plans {
		deadline, err := ps.Deadline.Resolve(env.Now, env.Location)
		if err != nil {
			return fmt.Errorf("plan %d (%s): %w", i+1, ps.Name, err)
		}
		name := strings.ReplaceAll(ps.Name, MonthPlaceholder, domain.DeriveCalendar(deadline, env.Locale).Label)

		names := make([]string, 0, len(ps.Activities))
		for ai, a := range ps.Activities {
			if strings.TrimSpace(a.Name) == "" {
				return fmt.Errorf("plan %q: activity %d has no name", name, ai+1)
			}
			names = append(names, a.Name)
		}
		p, err := plans.Create(ctx, app.CreatePlanRequest{Name: name, Deadline: deadline, Activities: names})
		if err != nil {
			return fmt.Errorf("creating plan %q: %w", name, err)
		}

		for ai, a := range ps.Activities {
			for _, c := range a.CompletedBy {
				workerID, ok := workers[strings.ToLower(strings.TrimSpace(c.Worker))]
				if !ok {
					return fmt.Errorf("plan %q, activity %q: unknown worker %q", name, a.Name, c.Worker)
				}
				if _, err := plans.RecordCompletion(ctx, app.RecordCompletionRequest{
					PlanID:       p.ID,
					ActivityID:   p.Activities[ai].ID,
					WorkerID:     workerID,
					EvidenceFile: c.Evidence,
				}); err != nil {
					return fmt.Errorf("plan %q, activity %q: %w", name, a.Name, err)
				}
			}
		}
	}
	return nil
}
