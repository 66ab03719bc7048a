package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// DisplayTimeFormat is the layout used for the Created and Updated columns.
const DisplayTimeFormat = "2006-01-02 15:04"

// Statuses returns the status options in the order they are offered to users.
func Statuses() []TaskStatus {
	return []TaskStatus{StatusToDo, StatusInProgress, StatusDone}
}

// Priorities returns the priority options in the order they are offered to users.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// ParseStatus maps s onto a known status, ignoring case and surrounding space.
func ParseStatus(s string) (TaskStatus, bool) {
	s = strings.TrimSpace(s)
	for _, st := range Statuses() {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

// ParsePriority maps s onto a known priority, ignoring case and surrounding space.
func ParsePriority(s string) (Priority, bool) {
	s = strings.TrimSpace(s)
	for _, p := range Priorities() {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return "", false
}

type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	Priority    Priority

	Status TaskStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetStatus moves the task to status and stamps UpdatedAt with now.
// UpdatedAt never goes backwards, even if the clock does.
func (t *Task) SetStatus(status TaskStatus, now time.Time) {
	t.Status = status
	if now.After(t.UpdatedAt) {
		t.UpdatedAt = now
	}
}
