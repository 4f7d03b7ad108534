package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyTitle is returned when a task is created with a blank title.
var ErrEmptyTitle = errors.New("task title must not be empty")

// TaskStatus describes where a task sits in its lifecycle.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

// ValidStatus reports whether s is a known task status.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Priority is the task's urgency level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is a known priority.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents a single unit of work on the board
type Task struct {
	ID            string
	Title         string
	Description   string
	Status        TaskStatus
	Priority      Priority
	PomodoroCount int
	WorkSeconds   int
	DueDate       *time.Time
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewTask creates a task with a fresh id and default fields.
// The title is trimmed and must not be empty.
func NewTask(title, description string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	now := time.Now()
	return &Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      StatusTodo,
		Priority:    PriorityMedium,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// TaskPatch is a partial update to a task. Nil fields are left untouched.
type TaskPatch struct {
	Title         *string
	Description   *string
	Status        *TaskStatus
	Priority      *Priority
	PomodoroCount *int
	WorkSeconds   *int
	DueDate       *time.Time
	ClearDueDate  bool
	Notes         *string
}

// Update merges the patch into the task and refreshes UpdatedAt.
// A title in the patch is trimmed; a blank one is ignored.
func (t *Task) Update(p TaskPatch) {
	if p.Title != nil {
		if title := strings.TrimSpace(*p.Title); title != "" {
			t.Title = title
		}
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil && ValidStatus(*p.Status) {
		t.Status = *p.Status
	}
	if p.Priority != nil && ValidPriority(*p.Priority) {
		t.Priority = *p.Priority
	}
	if p.PomodoroCount != nil && *p.PomodoroCount >= 0 {
		t.PomodoroCount = *p.PomodoroCount
	}
	if p.WorkSeconds != nil && *p.WorkSeconds >= 0 {
		t.WorkSeconds = *p.WorkSeconds
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	t.UpdatedAt = time.Now()
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	return &c
}

// Overdue reports whether the task has a due date in the past.
func (t *Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now)
}
