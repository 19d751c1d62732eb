package console

import (
	"flag"
	"fmt"
	"io"
	"strconv"
)

const usage = `usage: todo <command> [arguments]

commands:
  add <title> [description]   add a new task
  list                        list all tasks
  complete <id>               mark a task as complete
  update <id> [-title t] [-description d]
                              update a task
  delete <id>                 delete a task
  tui                         start the interactive terminal ui
`

// Run dispatches one CLI invocation against the store and returns the
// process exit code. Output goes to stdout, errors to stderr.
func Run(store *Store, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			fmt.Fprintln(stderr, "Error: add requires a title.")
			return 2
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		item := store.Add(args[1], description)
		fmt.Fprintf(stdout, "Task added: ID %d, Title: '%s'\n", item.ID, item.Title)
		return 0

	case "list":
		items := store.All()
		if len(items) == 0 {
			fmt.Fprintln(stdout, "No tasks found.")
			return 0
		}
		for _, item := range items {
			fmt.Fprintf(stdout, "ID: %d, Title: %s, Description: %s, Status: %s\n",
				item.ID, item.Title, item.Description, item.Status)
		}
		return 0

	case "complete":
		id, ok := parseID(args[1:], stderr)
		if !ok {
			return 2
		}
		item, found := store.Complete(id)
		if !found {
			fmt.Fprintf(stderr, "Error: Task with ID %d not found.\n", id)
			return 1
		}
		fmt.Fprintf(stdout, "Task %d marked as completed.\n", item.ID)
		return 0

	case "update":
		id, ok := parseID(args[1:], stderr)
		if !ok {
			return 2
		}
		fs := flag.NewFlagSet("update", flag.ContinueOnError)
		fs.SetOutput(stderr)
		title := fs.String("title", "", "new title for the task")
		description := fs.String("description", "", "new description for the task")
		if err := fs.Parse(args[2:]); err != nil {
			return 2
		}
		var newTitle, newDescription *string
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "title":
				newTitle = title
			case "description":
				newDescription = description
			}
		})
		if newTitle == nil && newDescription == nil {
			fmt.Fprintln(stderr, "Error: No update parameters provided. Use -title or -description.")
			return 2
		}
		item, found := store.Update(id, newTitle, newDescription)
		if !found {
			fmt.Fprintf(stderr, "Error: Task with ID %d not found.\n", id)
			return 1
		}
		fmt.Fprintf(stdout, "Task %d updated. New Title: '%s', New Description: '%s'\n",
			item.ID, item.Title, item.Description)
		return 0

	case "delete":
		id, ok := parseID(args[1:], stderr)
		if !ok {
			return 2
		}
		item, found := store.Remove(id)
		if !found {
			fmt.Fprintf(stderr, "Error: Task with ID %d not found.\n", id)
			return 1
		}
		fmt.Fprintf(stdout, "Task %d deleted.\n", item.ID)
		return 0

	default:
		fmt.Fprint(stderr, usage)
		return 2
	}
}

func parseID(args []string, stderr io.Writer) (int, bool) {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "Error: a task id is required.")
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid task id %q.\n", args[0])
		return 0, false
	}
	return id, true
}
