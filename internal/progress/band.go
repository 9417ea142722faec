package progress

import (
	"time"

	"github.com/alexanderramin/plantrack/internal/domain"
)

// Band is the display severity of a percentage. It drives color only.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

const (
	lowBelow    = 40.0
	mediumBelow = 75.0
)

// Clamp bounds pct to [0,100].
func Clamp(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// BandOf classifies pct: below 40 is low, below 75 medium, otherwise high.
func BandOf(pct float64) Band {
	pct = Clamp(pct)
	switch {
	case pct < lowBelow:
		return BandLow
	case pct < mediumBelow:
		return BandMedium
	default:
		return BandHigh
	}
}

// Badge is how one completion is shown. Overdue is computed, never stored.
type Badge string

const (
	BadgeCompleted Badge = "completed"
	BadgeOverdue   Badge = "overdue"
	BadgePending   Badge = "pending"
)

// BadgeFor returns the display badge for c within p at ref.
func BadgeFor(c domain.Completion, p domain.Plan, ref time.Time) Badge {
	if c.IsCompleted() {
		return BadgeCompleted
	}
	if IsPastDeadline(p, ref) {
		return BadgeOverdue
	}
	return BadgePending
}

// CanUpload reports whether the worker view should offer evidence upload for
// c: only pending items whose plan deadline has not passed.
func CanUpload(c domain.Completion, p domain.Plan, ref time.Time) bool {
	return BadgeFor(c, p, ref) == BadgePending
}
