package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/tgienger/kandoro/internal/config"
	"github.com/tgienger/kandoro/internal/storage"
	"github.com/tgienger/kandoro/internal/store"
	"github.com/tgienger/kandoro/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("kandoro %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	// .env is optional
	_ = godotenv.Load()
	cfg := config.Load()

	// Initialize storage
	var db *storage.DB
	var err error
	if cfg.DBPath != "" {
		db, err = storage.Open(cfg.DBPath)
	} else {
		db, err = storage.New()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	st := store.New(store.Options{
		WorkSession:  cfg.WorkSession,
		BreakSession: cfg.BreakSession,
	})

	// A corrupt or unreadable save degrades to a fresh board
	projects, activeProjectID, err := db.Load()
	if err != nil {
		log.Printf("loading saved projects: %v", err)
		projects, activeProjectID = nil, ""
	}

	// Persist every project-collection change
	st.OnChange(func(snapshot store.State) {
		if err := db.Save(snapshot.Projects, snapshot.ActiveProjectID); err != nil {
			log.Printf("saving projects: %v", err)
		}
	})

	st.Bootstrap(projects, activeProjectID)

	// Create and run the application
	app := ui.NewApp(st)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}
