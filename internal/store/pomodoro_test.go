package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/kandoro/internal/models"
)

func TestSetPomodoroStateMergesPatch(t *testing.T) {
	s := New(Options{})

	active := true
	remaining := 90
	s.SetPomodoroState(PomodoroPatch{IsActive: &active, TimeRemaining: &remaining})

	p := s.State().Pomodoro
	assert.True(t, p.IsActive)
	assert.Equal(t, 90, p.TimeRemaining)
	assert.True(t, p.IsWorkSession)

	negative := -5
	s.SetPomodoroState(PomodoroPatch{TimeRemaining: &negative})
	assert.Equal(t, 90, s.State().Pomodoro.TimeRemaining)
}

func TestUpdatePomodoroTimeClampsAtZero(t *testing.T) {
	s := New(Options{})
	s.UpdatePomodoroTime(-10)
	assert.Zero(t, s.State().Pomodoro.TimeRemaining)
}

func TestResetPomodoroCountsOnlyActiveSessions(t *testing.T) {
	s := New(Options{})

	// Resetting a stopped timer counts nothing
	s.ResetPomodoro()
	assert.Zero(t, s.State().Pomodoro.CompletedPomodoros)

	active := true
	s.SetPomodoroState(PomodoroPatch{IsActive: &active})
	s.UpdatePomodoroTime(0)
	s.ResetPomodoro()

	p := s.State().Pomodoro
	assert.False(t, p.IsActive)
	assert.Equal(t, DefaultWorkSeconds, p.TimeRemaining)
	assert.True(t, p.IsWorkSession)
	assert.Equal(t, 1, p.CompletedPomodoros)
	assert.Empty(t, p.CurrentTaskID)
}

func TestResetPomodoroCreditsFocusedTask(t *testing.T) {
	s, p, task := newBoardStore(t)
	activeColumn := columnOfType(t, s, p.ID, models.ColumnActive)
	s.MoveTask(p.ID, task.ID, activeColumn.ID)
	require.Equal(t, task.ID, s.State().Pomodoro.CurrentTaskID)

	running := true
	s.SetPomodoroState(PomodoroPatch{IsActive: &running})
	s.ResetPomodoro()

	assert.Equal(t, 1, s.State().ProjectByID(p.ID).TaskByID(task.ID).PomodoroCount)
	assert.Equal(t, 1, s.State().Pomodoro.CompletedPomodoros)
}

func TestResetPomodoroBreakSessionCreditsNoTask(t *testing.T) {
	s, p, task := newBoardStore(t)
	activeColumn := columnOfType(t, s, p.ID, models.ColumnActive)
	s.MoveTask(p.ID, task.ID, activeColumn.ID)

	s.SwitchSession(false)
	running := true
	s.SetPomodoroState(PomodoroPatch{IsActive: &running})
	s.ResetPomodoro()

	assert.Zero(t, s.State().ProjectByID(p.ID).TaskByID(task.ID).PomodoroCount)
	assert.Equal(t, 1, s.State().Pomodoro.CompletedPomodoros)
}

func TestSwitchSession(t *testing.T) {
	s := New(Options{})
	running := true
	s.SetPomodoroState(PomodoroPatch{IsActive: &running})

	s.SwitchSession(false)
	p := s.State().Pomodoro
	assert.False(t, p.IsActive)
	assert.False(t, p.IsWorkSession)
	assert.Equal(t, DefaultBreakSeconds, p.TimeRemaining)

	s.SwitchSession(true)
	p = s.State().Pomodoro
	assert.True(t, p.IsWorkSession)
	assert.Equal(t, DefaultWorkSeconds, p.TimeRemaining)
}

func TestTaskModalLifecycle(t *testing.T) {
	s, p, task := newBoardStore(t)
	todo := columnOfType(t, s, p.ID, models.ColumnTodo)

	s.OpenTaskModal(task.Clone(), p.ID, todo.ID, ModalEdit)
	m := s.State().Modal
	assert.True(t, m.Open)
	assert.Equal(t, ModalEdit, m.Mode)
	assert.Equal(t, p.ID, m.ProjectID)
	assert.Equal(t, todo.ID, m.ColumnID)
	require.NotNil(t, m.Task)
	assert.Equal(t, task.ID, m.Task.ID)

	s.CloseTaskModal()
	assert.Equal(t, TaskModal{}, s.State().Modal)
}

// A work session hitting zero auto-resets: stopped, clock back to full, one
// more completed pomodoro.
func TestSessionCompletionResets(t *testing.T) {
	s := New(Options{})
	running := true
	one := 1
	s.SetPomodoroState(PomodoroPatch{IsActive: &running, TimeRemaining: &one})

	s.UpdatePomodoroTime(0)
	s.ResetPomodoro()

	p := s.State().Pomodoro
	assert.False(t, p.IsActive)
	assert.Equal(t, 1500, p.TimeRemaining)
	assert.Equal(t, 1, p.CompletedPomodoros)
}
