package memory

import (
	"errors"
	"fmt"
	"sync"
	"task-tracker/internal/domain"
	"task-tracker/internal/store"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotInitialized = errors.New("task store not initialized")
)

type Option func(*TaskStore)

// WithClock replaces time.Now as the source of CreatedAt/UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(ts *TaskStore) {
		ts.now = now
	}
}

type TaskStore struct {
	mu    sync.RWMutex
	tasks []domain.Task
	index map[uuid.UUID]int
	now   func() time.Time
}

func New(opts ...Option) *TaskStore {
	ts := &TaskStore{
		tasks: make([]domain.Task, 0),
		index: make(map[uuid.UUID]int),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(ts)
	}
	return ts
}

func (ts *TaskStore) Append(task domain.Task) (domain.Task, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.tasks == nil {
		return domain.Task{}, ErrNotInitialized
	}

	// id, status and timestamps are owned by the store
	task.ID = uuid.New()
	task.Status = domain.StatusToDo
	task.CreatedAt = ts.now()
	task.UpdatedAt = task.CreatedAt

	ts.index[task.ID] = len(ts.tasks)
	ts.tasks = append(ts.tasks, task)

	return task, nil
}

func (ts *TaskStore) UpdateStatus(position int, status domain.TaskStatus) (domain.Task, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if position < 0 || position >= len(ts.tasks) {
		return domain.Task{}, fmt.Errorf("position %d: %w", position, store.ErrNotFound)
	}

	task := &ts.tasks[position]
	task.SetStatus(status, ts.now())

	return *task, nil
}

func (ts *TaskStore) Get(position int) (domain.Task, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	if position < 0 || position >= len(ts.tasks) {
		return domain.Task{}, false
	}

	// task is non-pointer value
	return ts.tasks[position], true
}

func (ts *TaskStore) GetByID(id uuid.UUID) (domain.Task, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	i, ok := ts.index[id]
	if !ok {
		return domain.Task{}, false
	}
	return ts.tasks[i], true
}

func (ts *TaskStore) List() ([]domain.Task, error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	if ts.tasks == nil {
		return nil, ErrNotInitialized
	}

	tasks := make([]domain.Task, len(ts.tasks))
	copy(tasks, ts.tasks)

	return tasks, nil
}

func (ts *TaskStore) Len() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return len(ts.tasks)
}

var _ store.TaskStore = (*TaskStore)(nil)
