// Package ui implements the interactive terminal view of the task list: a
// table of tasks, a create form, a status form, a row selection and a
// read-only description panel.
package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"task-tracker/internal/domain"
	"task-tracker/internal/logx"
	"task-tracker/internal/service"
)

type TaskService interface {
	CreateTask(ctx context.Context, title, description, priority string) (domain.Task, error)
	UpdateStatus(ctx context.Context, position int, status string) (domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	TaskAt(ctx context.Context, position int) (domain.Task, error)
}

// Warnings shown when an action is rejected.
const (
	msgMissingFields = "Invalid Input: Please enter title, description, and priority."
	msgEmptyStatus   = "Invalid Input: Please select a status."
	msgNoSelection   = "No Selection: Please select a task to update."
)

type Option func(*Session)

// WithPrompts prints field prompts and the command prompt. Off by default so
// scripted input produces only the table and messages.
func WithPrompts(enabled bool) Option {
	return func(s *Session) {
		s.prompts = enabled
	}
}

type Session struct {
	svc      TaskService
	in       *bufio.Scanner
	out      io.Writer
	prompts  bool
	selected int
	logger   *logx.Logger
}

func NewSession(svc TaskService, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		svc:      svc,
		in:       bufio.NewScanner(in),
		out:      out,
		selected: service.NoSelection,
		logger:   logx.NewLogger("ui"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Selected returns the selected position or service.NoSelection.
func (s *Session) Selected() int {
	return s.selected
}

// Run reads commands until quit, end of input or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	if s.prompts {
		s.printf("Task Manager. Type 'help' for commands.\n")
	}
	s.render(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.prompt("> ")
		line, ok := s.readLine()
		if !ok {
			return s.in.Err()
		}

		if quit := s.Execute(ctx, line); quit {
			return nil
		}
	}
}

// Execute runs one command line and reports whether the session should end.
func (s *Session) Execute(ctx context.Context, line string) bool {
	cmd, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	args = strings.TrimSpace(args)

	s.logger.Debug("command %q args=%q", cmd, args)

	switch strings.ToLower(cmd) {
	case "":
	case "add", "new":
		s.addTask(ctx, args)
	case "select", "sel":
		s.selectRow(ctx, args)
	case "status", "st":
		s.updateStatus(ctx, args)
	case "show", "desc":
		s.showDescription(ctx)
	case "list", "ls":
		s.render(ctx)
	case "help", "?":
		s.help()
	case "quit", "exit", "q":
		return true
	default:
		s.printf("Unknown command %q. Type 'help' for commands.\n", cmd)
	}
	return false
}

func (s *Session) addTask(ctx context.Context, args string) {
	var title, description, priority string

	if args != "" {
		parts := strings.SplitN(args, "|", 3)
		for len(parts) < 3 {
			parts = append(parts, "")
		}
		title = strings.TrimSpace(parts[0])
		description = strings.TrimSpace(parts[1])
		priority = strings.TrimSpace(parts[2])
	} else {
		var ok bool
		if title, ok = s.ask("Title: "); !ok {
			return
		}
		if description, ok = s.ask("Description: "); !ok {
			return
		}
		if priority, ok = s.ask(fmt.Sprintf("Priority %s: ", optionList(priorityOptions()))); !ok {
			return
		}
	}

	priority = pickOption(priority, priorityOptions())

	if _, err := s.svc.CreateTask(ctx, title, description, priority); err != nil {
		s.warn(err)
		return
	}
	s.render(ctx)
}

func (s *Session) selectRow(ctx context.Context, args string) {
	if args == "" {
		s.selected = service.NoSelection
		s.render(ctx)
		return
	}

	row, err := strconv.Atoi(args)
	if err != nil {
		s.printf("Invalid row %q.\n", args)
		return
	}

	task, err := s.svc.TaskAt(ctx, row-1)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrNoSelection) {
			s.printf("Row %d does not exist.\n", row)
			return
		}
		s.warn(err)
		return
	}

	s.selected = row - 1
	s.printDescription(task)
}

func (s *Session) updateStatus(ctx context.Context, args string) {
	if s.selected == service.NoSelection {
		s.warn(service.ErrNoSelection)
		return
	}

	status := args
	if status == "" {
		var ok bool
		if status, ok = s.ask(fmt.Sprintf("New Status %s: ", optionList(statusOptions()))); !ok {
			return
		}
	}
	status = pickOption(status, statusOptions())

	if _, err := s.svc.UpdateStatus(ctx, s.selected, status); err != nil {
		s.warn(err)
		return
	}
	s.render(ctx)
}

func (s *Session) showDescription(ctx context.Context) {
	if s.selected == service.NoSelection {
		s.printf("No task selected.\n")
		return
	}

	task, err := s.svc.TaskAt(ctx, s.selected)
	if err != nil {
		s.warn(err)
		return
	}
	s.printDescription(task)
}

func (s *Session) printDescription(task domain.Task) {
	s.printf("Description: %s\n", task.Description)
}

func (s *Session) render(ctx context.Context) {
	tasks, err := s.svc.ListTasks(ctx)
	if err != nil {
		s.warn(err)
		return
	}
	if err := renderTable(s.out, tasks, s.selected); err != nil {
		s.logger.Error("render task list: %v", err)
	}
}

func (s *Session) help() {
	s.printf(`Commands:
  add                                  create a task (asks for title, description, priority)
  add <title> | <description> | <priority>
  select <row>                         select a row and show its description
  select                               clear the selection
  status [<status>]                    set the status of the selected task
  show                                 show the description of the selected task
  list                                 redraw the task list
  quit                                 leave
`)
}

func (s *Session) warn(err error) {
	switch {
	case errors.Is(err, service.ErrMissingField):
		s.printf("%s\n", msgMissingFields)
	case errors.Is(err, service.ErrNoSelection):
		s.printf("%s\n", msgNoSelection)
	case errors.Is(err, service.ErrEmptyStatus):
		s.printf("%s\n", msgEmptyStatus)
	case errors.Is(err, service.ErrUnknownStatus):
		s.printf("Invalid Input: %v. Choose one of %s.\n", err, optionList(statusOptions()))
	case errors.Is(err, service.ErrUnknownPriority):
		s.printf("Invalid Input: %v. Choose one of %s.\n", err, optionList(priorityOptions()))
	case errors.Is(err, service.ErrNotFound):
		s.selected = service.NoSelection
		s.printf("%s\n", msgNoSelection)
	default:
		s.logger.Warn("action failed: %v", err)
		s.printf("Error: %v\n", err)
	}
}

func (s *Session) ask(label string) (string, bool) {
	s.prompt(label)
	return s.readLine()
}

func (s *Session) prompt(label string) {
	if s.prompts {
		s.printf("%s", label)
	}
}

func (s *Session) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func statusOptions() []string {
	out := make([]string, 0, 3)
	for _, st := range domain.Statuses() {
		out = append(out, string(st))
	}
	return out
}

func priorityOptions() []string {
	out := make([]string, 0, 3)
	for _, p := range domain.Priorities() {
		out = append(out, string(p))
	}
	return out
}

// optionList renders options as "(1) Low (2) Medium (3) High".
func optionList(options []string) string {
	var b strings.Builder
	for i, opt := range options {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "(%d) %s", i+1, opt)
	}
	return b.String()
}

// pickOption maps a 1-based option number onto its value; anything else is
// returned unchanged.
func pickOption(input string, options []string) string {
	input = strings.TrimSpace(input)
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(options) {
		return input
	}
	return options[n-1]
}
