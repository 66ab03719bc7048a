package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"task-tracker/internal/domain"
	"task-tracker/internal/eventloop"
	"task-tracker/internal/http/dto"
	"task-tracker/internal/logx"
	"task-tracker/internal/service"

	"github.com/google/uuid"
)

type TaskService interface {
	CreateTask(ctx context.Context, title, description, priority string) (domain.Task, error)
	UpdateStatus(ctx context.Context, position int, status string) (domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	TaskAt(ctx context.Context, position int) (domain.Task, error)
	TaskByID(ctx context.Context, id uuid.UUID) (domain.Task, error)
}

type TaskHandler struct {
	taskService TaskService
	logger      *logx.Logger
}

func New(taskService TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logx.NewLogger("http"),
	}
}

// POST /tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), req.Title, req.Description, req.Priority)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.NewTaskResponse(task))
}

// GET /tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	response := make([]dto.TaskRowResponse, 0, len(tasks))
	for i, task := range tasks {
		response = append(response, dto.NewTaskRowResponse(task, i))
	}

	writeJSON(w, http.StatusOK, response)
}

// GET /tasks/{position}
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	position, ok := parsePosition(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.TaskAt(r.Context(), position)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewTaskResponse(task))
}

// GET /tasks/id/{id}
func (h *TaskHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	task, err := h.taskService.TaskByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewTaskResponse(task))
}

// PUT /tasks/{position}/status
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	position, ok := parsePosition(w, r)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskService.UpdateStatus(r.Context(), position, req.Status)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewTaskResponse(task))
}

func parsePosition(w http.ResponseWriter, r *http.Request) (int, bool) {
	position, err := strconv.Atoi(r.PathValue("position"))
	if err != nil || position < 0 {
		writeError(w, http.StatusBadRequest, "invalid task position")
		return 0, false
	}
	return position, true
}

func (h *TaskHandler) writeServiceError(w http.ResponseWriter, err error) {
	var missing *service.MissingFieldError

	switch {
	case errors.As(err, &missing):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:  service.ErrMissingField.Error(),
			Fields: missing.Fields,
		})
	case errors.Is(err, service.ErrNoSelection),
		errors.Is(err, service.ErrEmptyStatus),
		errors.Is(err, service.ErrUnknownStatus),
		errors.Is(err, service.ErrUnknownPriority),
		errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, service.ErrNotFound.Error())
	case errors.Is(err, eventloop.ErrQueueFull), errors.Is(err, eventloop.ErrLoopClosed):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "request timed out")
	default:
		h.logger.Error("unexpected error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.New("invalid JSON: " + err.Error())
	}
	if dec.More() {
		return errors.New("invalid JSON: multiple JSON values")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{Error: msg})
}
