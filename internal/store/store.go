package store

import (
	"errors"
	"task-tracker/internal/domain"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("task not found")

// TaskStore is an append-only ordered sequence of tasks. Position is the
// 0-based index in insertion order.
type TaskStore interface {
	Append(t domain.Task) (domain.Task, error)
	UpdateStatus(position int, status domain.TaskStatus) (domain.Task, error)
	Get(position int) (domain.Task, bool)
	GetByID(id uuid.UUID) (domain.Task, bool)
	List() ([]domain.Task, error)
	Len() int
}
