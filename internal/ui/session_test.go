package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"task-tracker/internal/domain"
	"task-tracker/internal/eventloop"
	"task-tracker/internal/service"
	"task-tracker/internal/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*service.TaskService, *memory.TaskStore) {
	t.Helper()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	st := memory.New(memory.WithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	}))

	loop := eventloop.New(8)
	loop.Start()
	t.Cleanup(func() { _ = loop.Shutdown(context.Background()) })

	svc, err := service.New(st, loop)
	require.NoError(t, err)
	return svc, st
}

func runScript(t *testing.T, script string, opts ...Option) (string, *memory.TaskStore, *Session) {
	t.Helper()

	svc, st := newTestService(t)
	var out bytes.Buffer
	session := NewSession(svc, strings.NewReader(script), &out, opts...)

	require.NoError(t, session.Run(context.Background()))
	return out.String(), st, session
}

func TestSession_CreateSelectAndUpdate(t *testing.T) {
	out, st, session := runScript(t, strings.Join([]string{
		"add Write report | Draft design doc | High",
		"select 1",
		"status 2",
		"quit",
	}, "\n"))

	require.Equal(t, 1, st.Len())
	task, _ := st.Get(0)
	assert.Equal(t, domain.StatusInProgress, task.Status)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, domain.PriorityHigh, task.Priority)

	assert.Contains(t, out, "No tasks yet")
	assert.Contains(t, out, "Description: Draft design doc")
	assert.Contains(t, out, "In Progress")
	assert.Contains(t, out, "2024-06-01 12:00")
	assert.Equal(t, 0, session.Selected())
}

func TestSession_MissingFieldWarning(t *testing.T) {
	out, st, _ := runScript(t, "add  | x | Low\nadd only a title\n")

	assert.Equal(t, 0, st.Len())
	assert.Equal(t, 2, strings.Count(out, msgMissingFields))
}

func TestSession_StatusWithoutSelection(t *testing.T) {
	out, st, _ := runScript(t, "add a | b | Low\nstatus Done\n")

	assert.Contains(t, out, msgNoSelection)
	task, _ := st.Get(0)
	assert.Equal(t, domain.StatusToDo, task.Status)
}

func TestSession_EmptyStatusFromForm(t *testing.T) {
	// "status" without an argument reads the status from the next line
	out, st, _ := runScript(t, "add a | b | Low\nselect 1\nstatus\n\n")

	assert.Contains(t, out, msgEmptyStatus)
	task, _ := st.Get(0)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
}

func TestSession_UnknownStatus(t *testing.T) {
	out, st, _ := runScript(t, "add a | b | Low\nselect 1\nstatus Blocked\n")

	assert.Contains(t, out, `unknown status: "Blocked"`)
	assert.Contains(t, out, "(1) To Do (2) In Progress (3) Done")
	task, _ := st.Get(0)
	assert.Equal(t, domain.StatusToDo, task.Status)
}

func TestSession_AddForm(t *testing.T) {
	out, st, _ := runScript(t, "add\nPlan sprint\nCollect stories\n3\n", WithPrompts(true))

	require.Equal(t, 1, st.Len())
	task, _ := st.Get(0)
	assert.Equal(t, "Plan sprint", task.Title)
	assert.Equal(t, "Collect stories", task.Description)
	assert.Equal(t, domain.PriorityHigh, task.Priority)

	assert.Contains(t, out, "Title: ")
	assert.Contains(t, out, "Description: ")
	assert.Contains(t, out, "Priority (1) Low (2) Medium (3) High: ")
}

func TestSession_AddFormEndOfInput(t *testing.T) {
	out, st, _ := runScript(t, "add\nonly title\n")

	assert.Equal(t, 0, st.Len())
	assert.NotContains(t, out, msgMissingFields)
}

func TestSession_Selection(t *testing.T) {
	out, _, session := runScript(t, strings.Join([]string{
		"add a | first | Low",
		"add b | second | Medium",
		"select 5",
		"select x",
		"select 2",
		"show",
		"list",
	}, "\n"))

	assert.Contains(t, out, "Row 5 does not exist.")
	assert.Contains(t, out, `Invalid row "x".`)
	assert.Equal(t, 2, strings.Count(out, "Description: second"))
	assert.Equal(t, 1, session.Selected())

	// last table has the marker on row 2
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], ">"), "got %q", lines[len(lines)-1])
}

func TestSession_ClearSelection(t *testing.T) {
	out, _, session := runScript(t, "add a | b | Low\nselect 1\nselect\nstatus Done\n")

	assert.Equal(t, service.NoSelection, session.Selected())
	assert.Contains(t, out, msgNoSelection)
}

func TestSession_ShowWithoutSelection(t *testing.T) {
	out, _, _ := runScript(t, "show\n")
	assert.Contains(t, out, "No task selected.")
}

func TestSession_UnknownCommandAndHelp(t *testing.T) {
	out, _, _ := runScript(t, "frobnicate\nhelp\n")

	assert.Contains(t, out, `Unknown command "frobnicate"`)
	assert.Contains(t, out, "select <row>")
}

func TestSession_LooseAndNumberedPriority(t *testing.T) {
	_, st, _ := runScript(t, "add a | b | 2\nadd c | d | Someday\n")

	first, _ := st.Get(0)
	second, _ := st.Get(1)
	assert.Equal(t, domain.PriorityMedium, first.Priority)
	assert.Equal(t, domain.Priority("Someday"), second.Priority)
}

func TestSession_ContextCanceled(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	session := NewSession(svc, strings.NewReader("add a | b | Low\n"), &out)

	assert.ErrorIs(t, session.Run(ctx), context.Canceled)
}

func TestPickOption(t *testing.T) {
	opts := []string{"Low", "Medium", "High"}

	assert.Equal(t, "Low", pickOption("1", opts))
	assert.Equal(t, "High", pickOption(" 3 ", opts))
	assert.Equal(t, "4", pickOption("4", opts))
	assert.Equal(t, "medium", pickOption("medium", opts))
	assert.Equal(t, "", pickOption("", opts))
}

func TestRenderTable(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC)
	tasks := []domain.Task{
		{Title: "A", Priority: domain.PriorityLow, Status: domain.StatusToDo, CreatedAt: created, UpdatedAt: created},
		{Title: "B", Priority: domain.PriorityHigh, Status: domain.StatusDone, CreatedAt: created, UpdatedAt: created.Add(time.Hour)},
	}

	var buf bytes.Buffer
	require.NoError(t, renderTable(&buf, tasks, 1))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Title")
	assert.Contains(t, lines[0], "Updated")
	assert.Contains(t, lines[1], "2024-01-02 03:04")
	assert.True(t, strings.HasPrefix(lines[2], ">"))
	assert.Contains(t, lines[2], "2024-01-02 04:04")
}
