package store

import (
	"github.com/tgienger/kandoro/internal/models"
)

// SetPomodoroState shallow-merges the patch into the session state.
// Start/pause from the ui comes through here as an IsActive toggle.
func (s *Store) SetPomodoroState(patch PomodoroPatch) {
	p := &s.state.Pomodoro
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	if patch.TimeRemaining != nil && *patch.TimeRemaining >= 0 {
		p.TimeRemaining = *patch.TimeRemaining
	}
	if patch.CurrentTaskID != nil {
		p.CurrentTaskID = *patch.CurrentTaskID
	}
	if patch.IsWorkSession != nil {
		p.IsWorkSession = *patch.IsWorkSession
	}
	if patch.CompletedPomodoros != nil && *patch.CompletedPomodoros >= 0 {
		p.CompletedPomodoros = *patch.CompletedPomodoros
	}
}

// UpdatePomodoroTime sets the remaining seconds. The one-second countdown is
// driven by the presentation layer's tick; the store only records it.
func (s *Store) UpdatePomodoroTime(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	s.state.Pomodoro.TimeRemaining = seconds
}

// ResetPomodoro returns the timer to a stopped work session at full length.
// Resetting a running session counts as completing it: the session counter
// goes up, and a running work session also credits a pomodoro to the task
// it was tracking. Resetting an already-stopped timer counts nothing.
func (s *Store) ResetPomodoro() {
	p := s.state.Pomodoro
	completed := p.CompletedPomodoros
	if p.IsActive {
		completed++
		if p.IsWorkSession && p.CurrentTaskID != "" {
			s.creditPomodoro(p.CurrentTaskID)
		}
	}
	s.state.Pomodoro = PomodoroState{
		IsActive:           false,
		TimeRemaining:      s.workSeconds,
		CurrentTaskID:      "",
		IsWorkSession:      true,
		CompletedPomodoros: completed,
	}
}

// creditPomodoro bumps the task's pomodoro counter in the active project.
func (s *Store) creditPomodoro(taskID string) {
	projectID := s.state.ActiveProjectID
	if projectID == "" {
		return
	}
	if !s.mutateProject(projectID, func(p *models.Project) bool {
		t := p.TaskByID(taskID)
		if t == nil {
			return false
		}
		t.PomodoroCount++
		return true
	}) {
		return
	}
	s.changed()
}

// SwitchSession manually flips between work and break. The timer stops and
// the clock resets to the full length of the chosen session type.
func (s *Store) SwitchSession(work bool) {
	length := s.breakSeconds
	if work {
		length = s.workSeconds
	}
	s.state.Pomodoro.IsActive = false
	s.state.Pomodoro.IsWorkSession = work
	s.state.Pomodoro.TimeRemaining = length
}

// SetCurrentTask points the timer at a task directly, bypassing the
// resolver. This is the user explicitly picking a focus target.
func (s *Store) SetCurrentTask(taskID string) {
	s.state.Pomodoro.CurrentTaskID = taskID
}

// OpenTaskModal records which task dialog the ui should be showing.
func (s *Store) OpenTaskModal(task *models.Task, projectID, columnID string, mode ModalMode) {
	s.state.Modal = TaskModal{
		Open:      true,
		Task:      task,
		ProjectID: projectID,
		ColumnID:  columnID,
		Mode:      mode,
	}
}

// CloseTaskModal clears the dialog intent.
func (s *Store) CloseTaskModal() {
	s.state.Modal = TaskModal{}
}
