package ui

import (
	"fmt"
	"io"
	"os"
	"task-tracker/internal/domain"
	"text/tabwriter"

	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func renderTable(out io.Writer, tasks []domain.Task, selected int) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(out, "No tasks yet. Type 'add' to create one.")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\t#\tTitle\tPriority\tStatus\tCreated\tUpdated")
	for i, t := range tasks {
		marker := ""
		if i == selected {
			marker = ">"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			marker,
			i+1,
			t.Title,
			t.Priority,
			t.Status,
			t.CreatedAt.Format(domain.DisplayTimeFormat),
			t.UpdatedAt.Format(domain.DisplayTimeFormat),
		)
	}
	return tw.Flush()
}
