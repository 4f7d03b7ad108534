package store

import (
	"github.com/tgienger/kandoro/internal/models"
)

// Default session lengths in seconds.
const (
	DefaultWorkSeconds  = 25 * 60
	DefaultBreakSeconds = 5 * 60
)

// PomodoroState is the timer session value. It is never persisted; a fresh
// load starts from a stopped work session.
type PomodoroState struct {
	IsActive           bool
	TimeRemaining      int
	CurrentTaskID      string // empty when no task is focused
	IsWorkSession      bool
	CompletedPomodoros int
}

// PomodoroPatch is a partial update to the pomodoro state.
// Nil fields are left untouched.
type PomodoroPatch struct {
	IsActive           *bool
	TimeRemaining      *int
	CurrentTaskID      *string
	IsWorkSession      *bool
	CompletedPomodoros *int
}

// ModalMode says what the task modal was opened for.
type ModalMode string

const (
	ModalCreate ModalMode = "create"
	ModalEdit   ModalMode = "edit"
	ModalView   ModalMode = "view"
)

// TaskModal is the ephemeral ui-intent state for the task dialog.
type TaskModal struct {
	Open      bool
	Task      *models.Task
	ProjectID string
	ColumnID  string
	Mode      ModalMode
}

// State is an immutable snapshot of everything the store owns. Commands
// never mutate a snapshot that has been handed out; any project touched by
// a command is deep-cloned first.
type State struct {
	Projects        []*models.Project
	ActiveProjectID string
	Pomodoro        PomodoroState
	Modal           TaskModal
}

// ProjectByID returns the project with the given id, or nil.
func (s State) ProjectByID(id string) *models.Project {
	for _, p := range s.Projects {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ActiveProject returns the currently selected project, or nil.
func (s State) ActiveProject() *models.Project {
	if s.ActiveProjectID == "" {
		return nil
	}
	return s.ProjectByID(s.ActiveProjectID)
}

// CurrentTask resolves the focused task in the active project, or nil.
func (s State) CurrentTask() *models.Task {
	p := s.ActiveProject()
	if p == nil || s.Pomodoro.CurrentTaskID == "" {
		return nil
	}
	return p.TaskByID(s.Pomodoro.CurrentTaskID)
}
