package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/plantrack/internal/domain"
)

var errNotSignedIn = errors.New("not signed in; use 'login <username>' or --as")

func requireSession(app *App) (*domain.User, error) {
	if app.Session == nil {
		return nil, errNotSignedIn
	}
	return app.Session, nil
}

func requireSupervisor(app *App) (*domain.User, error) {
	u, err := requireSession(app)
	if err != nil {
		return nil, err
	}
	if !u.IsSupervisor() {
		return nil, fmt.Errorf("%s is not a supervisor", u.Username)
	}
	return u, nil
}

func requireWorker(app *App) (*domain.User, error) {
	u, err := requireSession(app)
	if err != nil {
		return nil, err
	}
	if !u.IsWorker() {
		return nil, fmt.Errorf("%s is not a worker", u.Username)
	}
	return u, nil
}

// parsePlanID accepts "12" or "#12".
func parsePlanID(input string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(input), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid plan ID %q", input)
	}
	return id, nil
}

func parseActivityID(input string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(input), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid activity ID %q", input)
	}
	return id, nil
}

func parseWorkerID(input string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(input), "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid worker ID %q", input)
	}
	return id, nil
}

// parseDeadline reads a YYYY-MM-DD date as the end of that day in the app's
// location.
func parseDeadline(app *App, input string) (time.Time, error) {
	return domain.DeadlineFromDate(input, app.location())
}

// validateEvidenceFile accepts only PDF file names.
func validateEvidenceFile(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("evidence file is required")
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		return fmt.Errorf("evidence must be a PDF file, got %q", name)
	}
	return nil
}
