package repository

import (
	"fmt"
	"time"

	"github.com/alexanderramin/plantrack/internal/domain"
)

// Deadlines are stored with their offset so the calendar projection can be
// re-derived in the same zone.
const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored time %q: %w", s, err)
	}
	return t, nil
}

func planNotFound(id int64) error {
	return &domain.NotFoundError{Entity: domain.EntityPlan, ID: id}
}

func userNotFound(id int) error {
	return &domain.NotFoundError{Entity: domain.EntityUser, ID: int64(id)}
}
