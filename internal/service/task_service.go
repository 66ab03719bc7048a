package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"task-tracker/internal/domain"
	"task-tracker/internal/eventloop"
	"task-tracker/internal/logx"
	"task-tracker/internal/metrics"
	"task-tracker/internal/store"

	"github.com/google/uuid"
)

// NoSelection is the position passed when no row is selected.
const NoSelection = -1

const (
	opCreate = "create_task"
	opUpdate = "update_status"
)

type TaskStore interface {
	Append(task domain.Task) (domain.Task, error)
	UpdateStatus(position int, status domain.TaskStatus) (domain.Task, error)
	Get(position int) (domain.Task, bool)
	GetByID(id uuid.UUID) (domain.Task, bool)
	List() ([]domain.Task, error)
}

type Option func(*TaskService)

// WithStrictPriority rejects priorities outside Low/Medium/High. Without it any
// non-empty priority is accepted.
func WithStrictPriority(strict bool) Option {
	return func(s *TaskService) {
		s.strictPriority = strict
	}
}

func WithMetrics(rec metrics.Recorder) Option {
	return func(s *TaskService) {
		if rec != nil {
			s.metrics = rec
		}
	}
}

func WithLogger(logger *logx.Logger) Option {
	return func(s *TaskService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type TaskService struct {
	store TaskStore
	loop  eventloop.Dispatcher

	strictPriority bool
	metrics        metrics.Recorder
	logger         *logx.Logger
}

func New(store TaskStore, loop eventloop.Dispatcher, opts ...Option) (*TaskService, error) {
	if store == nil {
		return nil, ErrStoreNil
	}
	if loop == nil {
		return nil, ErrLoopNil
	}

	s := &TaskService{
		store:   store,
		loop:    loop,
		metrics: metrics.Nop{},
		logger:  logx.NewLogger("service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *TaskService) CreateTask(ctx context.Context, title, description, priority string) (domain.Task, error) {
	// Blank fields are missing; non-blank text is stored as typed.
	var missing []string
	if strings.TrimSpace(title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(priority) == "" {
		missing = append(missing, "priority")
	}
	if len(missing) > 0 {
		s.reject(opCreate, "missing_field")
		return domain.Task{}, &MissingFieldError{Fields: missing}
	}

	p, known := domain.ParsePriority(priority)
	if !known {
		if s.strictPriority {
			s.reject(opCreate, "unknown_priority")
			return domain.Task{}, fmt.Errorf("%w: %q", ErrUnknownPriority, priority)
		}
		p = domain.Priority(priority)
	}

	var (
		created domain.Task
		err     error
	)
	dispatchErr := s.loop.Do(ctx, func() {
		created, err = s.store.Append(domain.Task{
			Title:       title,
			Description: description,
			Priority:    p,
		})
	})
	if dispatchErr != nil {
		return domain.Task{}, fmt.Errorf("%s: %w", opCreate, dispatchErr)
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("%s: %w", opCreate, err)
	}

	s.metrics.TaskCreated(string(created.Priority))
	s.logger.Debug("created task %s %q priority=%s", created.ID, created.Title, created.Priority)

	return created, nil
}

func (s *TaskService) UpdateStatus(ctx context.Context, position int, status string) (domain.Task, error) {
	if position < 0 {
		s.reject(opUpdate, "no_selection")
		return domain.Task{}, ErrNoSelection
	}

	status = strings.TrimSpace(status)
	if status == "" {
		s.reject(opUpdate, "empty_status")
		return domain.Task{}, ErrEmptyStatus
	}

	st, ok := domain.ParseStatus(status)
	if !ok {
		s.reject(opUpdate, "unknown_status")
		return domain.Task{}, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	var (
		updated domain.Task
		err     error
	)
	dispatchErr := s.loop.Do(ctx, func() {
		updated, err = s.store.UpdateStatus(position, st)
	})
	if dispatchErr != nil {
		return domain.Task{}, fmt.Errorf("%s: %w", opUpdate, dispatchErr)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.reject(opUpdate, "not_found")
			return domain.Task{}, fmt.Errorf("position %d: %w", position, ErrNotFound)
		}
		return domain.Task{}, fmt.Errorf("%s: %w", opUpdate, err)
	}

	s.metrics.StatusUpdated(string(updated.Status))
	s.logger.Debug("task %s at position %d -> %s", updated.ID, position, updated.Status)

	return updated, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var (
		tasks []domain.Task
		err   error
	)
	if dispatchErr := s.loop.Do(ctx, func() { tasks, err = s.store.List() }); dispatchErr != nil {
		return nil, fmt.Errorf("list tasks: %w", dispatchErr)
	}
	return tasks, err
}

// TaskAt returns the task shown at position, e.g. for the description panel.
func (s *TaskService) TaskAt(ctx context.Context, position int) (domain.Task, error) {
	if position < 0 {
		return domain.Task{}, ErrNoSelection
	}

	var (
		task domain.Task
		ok   bool
	)
	if err := s.loop.Do(ctx, func() { task, ok = s.store.Get(position) }); err != nil {
		return domain.Task{}, fmt.Errorf("get task: %w", err)
	}
	if !ok {
		return domain.Task{}, fmt.Errorf("position %d: %w", position, ErrNotFound)
	}
	return task, nil
}

func (s *TaskService) TaskByID(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	if id == uuid.Nil {
		return domain.Task{}, ErrInvalidInput
	}

	var (
		task domain.Task
		ok   bool
	)
	if err := s.loop.Do(ctx, func() { task, ok = s.store.GetByID(id) }); err != nil {
		return domain.Task{}, fmt.Errorf("get task: %w", err)
	}
	if !ok {
		return domain.Task{}, ErrNotFound
	}
	return task, nil
}

func (s *TaskService) reject(op, reason string) {
	s.metrics.Rejected(op, reason)
	s.logger.Debug("%s rejected: %s", op, reason)
}
