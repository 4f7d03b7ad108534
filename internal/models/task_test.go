package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		wantErr   error
		wantTitle string
	}{
		{name: "plain title", title: "Write docs", wantTitle: "Write docs"},
		{name: "title is trimmed", title: "  Write docs  ", wantTitle: "Write docs"},
		{name: "empty title", title: "", wantErr: ErrEmptyTitle},
		{name: "whitespace title", title: "   ", wantErr: ErrEmptyTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := NewTask(tt.title, "desc")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, task)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, task.ID)
			assert.Equal(t, tt.wantTitle, task.Title)
			assert.Equal(t, "desc", task.Description)
			assert.Equal(t, StatusTodo, task.Status)
			assert.Equal(t, PriorityMedium, task.Priority)
			assert.Zero(t, task.PomodoroCount)
			assert.Zero(t, task.WorkSeconds)
			assert.Nil(t, task.DueDate)
		})
	}
}

func TestTaskUpdate(t *testing.T) {
	task, err := NewTask("Original", "original desc")
	require.NoError(t, err)

	title := "Renamed"
	desc := "new desc"
	status := StatusDone
	priority := PriorityHigh
	task.Update(TaskPatch{
		Title:       &title,
		Description: &desc,
		Status:      &status,
		Priority:    &priority,
	})

	assert.Equal(t, "Renamed", task.Title)
	assert.Equal(t, "new desc", task.Description)
	assert.Equal(t, StatusDone, task.Status)
	assert.Equal(t, PriorityHigh, task.Priority)
}

func TestTaskUpdateIgnoresInvalidValues(t *testing.T) {
	task, err := NewTask("Stable", "")
	require.NoError(t, err)

	blank := "   "
	badStatus := TaskStatus("blocked")
	badPriority := Priority("urgent")
	negative := -3
	task.Update(TaskPatch{
		Title:         &blank,
		Status:        &badStatus,
		Priority:      &badPriority,
		PomodoroCount: &negative,
		WorkSeconds:   &negative,
	})

	assert.Equal(t, "Stable", task.Title)
	assert.Equal(t, StatusTodo, task.Status)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.Zero(t, task.PomodoroCount)
	assert.Zero(t, task.WorkSeconds)
}

func TestTaskDueDate(t *testing.T) {
	task, err := NewTask("Deadline", "")
	require.NoError(t, err)

	due := time.Now().Add(24 * time.Hour)
	task.Update(TaskPatch{DueDate: &due})
	require.NotNil(t, task.DueDate)
	assert.False(t, task.Overdue(time.Now()))
	assert.True(t, task.Overdue(due.Add(time.Minute)))

	task.Update(TaskPatch{ClearDueDate: true})
	assert.Nil(t, task.DueDate)
	assert.False(t, task.Overdue(time.Now()))
}

func TestTaskClone(t *testing.T) {
	task, err := NewTask("Cloneable", "")
	require.NoError(t, err)
	due := time.Now()
	task.DueDate = &due

	clone := task.Clone()
	clone.Title = "Changed"
	*clone.DueDate = due.Add(time.Hour)

	assert.Equal(t, "Cloneable", task.Title)
	assert.True(t, task.DueDate.Equal(due))
}
