package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/kandoro/internal/store"
	"github.com/tgienger/kandoro/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewProjects View = iota
	ViewBoard
)

type App struct {
	store       *store.Store
	currentView View
	projectList *views.ProjectListView
	board       *views.BoardView
	width       int
	height      int
	ticking     bool
}

// Creates a new application on top of the store
func NewApp(st *store.Store) *App {
	return &App{
		store:       st,
		currentView: ViewProjects,
		projectList: views.NewProjectListView(st),
	}
}

func (a *App) Init() tea.Cmd {
	// Reopen the board if a project selection was restored
	if a.store.State().ActiveProject() != nil {
		return a.openBoard()
	}
	return a.projectList.Init()
}

func (a *App) openBoard() tea.Cmd {
	a.currentView = ViewBoard
	a.board = views.NewBoardView(a.store)

	return tea.Batch(
		a.board.Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

// tickMsg drives the one-second pomodoro countdown
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// tick applies one second of countdown. The store only exposes the time
// update and reset primitives; the scheduling policy lives here in the
// presentation layer, and the loop stops itself whenever the timer is no
// longer active.
func (a *App) tick() tea.Cmd {
	snapshot := a.store.State()
	if !snapshot.Pomodoro.IsActive {
		a.ticking = false
		return nil
	}

	if remaining := snapshot.Pomodoro.TimeRemaining; remaining > 0 {
		a.store.UpdatePomodoroTime(remaining - 1)
		if snapshot.Pomodoro.IsWorkSession && snapshot.Pomodoro.CurrentTaskID != "" && snapshot.ActiveProjectID != "" {
			a.store.IncrementWorkTime(snapshot.ActiveProjectID, snapshot.Pomodoro.CurrentTaskID, 1)
		}
	}

	// Hitting zero completes the session
	if a.store.State().Pomodoro.TimeRemaining == 0 {
		a.store.ResetPomodoro()
	}

	if a.store.State().Pomodoro.IsActive {
		return tickCmd()
	}
	a.ticking = false
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Always update project list size since it persists
		a.projectList.Update(msg)

	case views.SelectedProject:
		a.store.SetActiveProject(msg.ProjectID)
		return a, a.openBoard()

	case views.BackToProjects:
		a.currentView = ViewProjects
		a.projectList.Refresh()
		return a, tea.Batch(
			a.projectList.Init(),
			func() tea.Msg {
				return tea.WindowSizeMsg{Width: a.width, Height: a.height}
			},
		)

	case views.TimerStarted:
		if !a.ticking {
			a.ticking = true
			return a, tickCmd()
		}
		return a, nil

	case tickMsg:
		return a, a.tick()
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewProjects:
		_, cmd = a.projectList.Update(msg)
	case ViewBoard:
		_, cmd = a.board.Update(msg)
	}

	return a, cmd
}

func (a *App) View() string {
	switch a.currentView {
	case ViewBoard:
		if a.board != nil {
			return a.board.View()
		}
	}
	return a.projectList.View()
}
