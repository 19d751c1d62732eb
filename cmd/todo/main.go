package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/console"
)

func main() {
	store := console.NewStore()

	args := os.Args[1:]
	if len(args) > 0 && args[0] == "tui" {
		p := tea.NewProgram(console.NewModel(store), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "tui failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	os.Exit(console.Run(store, args, os.Stdout, os.Stderr))
}
