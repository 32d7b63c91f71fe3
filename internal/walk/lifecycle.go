package walk

import (
	"log"
	"time"
)

// Lifecycle transitions validate before mutating so a failed call leaves
// the walk untouched. Callers persist the whole walk afterwards; there are
// no partial effects to roll back.

// Start moves a new walk into in_progress and stamps start_time.
func (w *Walk) Start(now time.Time) error {
	if w.Status == StatusCompleted {
		return ErrWalkCompleted
	}
	if w.Status != StatusNotStarted {
		return ErrInvalidTransition
	}
	if w.StartTime == nil {
		t := now
		w.StartTime = &t
	}
	w.Status = StatusInProgress
	return nil
}

// Pause suspends an in_progress walk and records when the pause began.
func (w *Walk) Pause(now time.Time) error {
	if w.Status == StatusCompleted {
		return ErrWalkCompleted
	}
	if w.Status != StatusInProgress {
		return ErrInvalidTransition
	}
	t := now
	w.PausedAt = &t
	w.Status = StatusPaused
	return nil
}

// Resume folds the open pause interval into total_paused_duration. A paused
// walk without paused_at is corrupt state and is reported, not repaired.
func (w *Walk) Resume(now time.Time) error {
	if w.Status == StatusCompleted {
		return ErrWalkCompleted
	}
	if w.Status != StatusPaused || w.PausedAt == nil {
		return ErrInvalidTransition
	}
	w.TotalPausedDuration += clampSeconds(w.ID, now.Sub(*w.PausedAt))
	w.PausedAt = nil
	w.Status = StatusInProgress
	return nil
}

// Complete finalizes the walk from in_progress or paused. Completing a
// paused walk closes the open pause interval first so duration accounting
// stays exact. Completed walks accept no further mutation.
func (w *Walk) Complete(now time.Time) error {
	switch w.Status {
	case StatusCompleted:
		return ErrWalkCompleted
	case StatusInProgress:
	case StatusPaused:
		if w.PausedAt == nil {
			return ErrInvalidTransition
		}
		w.TotalPausedDuration += clampSeconds(w.ID, now.Sub(*w.PausedAt))
		w.PausedAt = nil
	default:
		return ErrInvalidTransition
	}
	t := now
	w.EndTime = &t
	w.Status = StatusCompleted
	return nil
}

func clampSeconds(walkID string, d time.Duration) float64 {
	s := d.Seconds()
	if s < 0 {
		log.Printf("clock anomaly: walk %s pause interval %v clamped to 0", walkID, d)
		return 0
	}
	return s
}
