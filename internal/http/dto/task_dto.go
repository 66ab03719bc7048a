package dto

import (
	"task-tracker/internal/domain"
)

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type TaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Created     string `json:"created"`
	Updated     string `json:"updated"`
}

// TaskRowResponse is one row of the task list; the description is only
// returned for a single task.
type TaskRowResponse struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
	Title    string `json:"title"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
	Created  string `json:"created"`
	Updated  string `json:"updated"`
}

type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func NewTaskResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Created:     t.CreatedAt.Format(domain.DisplayTimeFormat),
		Updated:     t.UpdatedAt.Format(domain.DisplayTimeFormat),
	}
}

func NewTaskRowResponse(t domain.Task, position int) TaskRowResponse {
	return TaskRowResponse{
		ID:       t.ID.String(),
		Position: position,
		Title:    t.Title,
		Priority: string(t.Priority),
		Status:   string(t.Status),
		Created:  t.CreatedAt.Format(domain.DisplayTimeFormat),
		Updated:  t.UpdatedAt.Format(domain.DisplayTimeFormat),
	}
}
