package models

import (
	"time"

	"github.com/google/uuid"
)

// ColumnType distinguishes the special columns from user-created ones.
// A project has exactly one ColumnActive column; it drives pomodoro focus.
type ColumnType string

const (
	ColumnActive     ColumnType = "active"
	ColumnTodo       ColumnType = "todo"
	ColumnInProgress ColumnType = "in-progress"
	ColumnDone       ColumnType = "done"
	ColumnCustom     ColumnType = "custom"
)

// ValidColumnType reports whether t is a known column type.
func ValidColumnType(t ColumnType) bool {
	switch t {
	case ColumnActive, ColumnTodo, ColumnInProgress, ColumnDone, ColumnCustom:
		return true
	}
	return false
}

// Column is an ordered lane of task ids. It references tasks by id only;
// the owning project holds the tasks themselves.
type Column struct {
	ID        string
	Title     string
	Type      ColumnType
	TaskIDs   []string
	Position  int
	CreatedAt time.Time
}

// NewColumn creates a column with a fresh id.
func NewColumn(title string, typ ColumnType, position int) *Column {
	if !ValidColumnType(typ) {
		typ = ColumnCustom
	}
	return &Column{
		ID:        uuid.NewString(),
		Title:     title,
		Type:      typ,
		Position:  position,
		CreatedAt: time.Now(),
	}
}

// ColumnPatch is a partial update to a column. Nil fields are left untouched.
// The id is never patchable.
type ColumnPatch struct {
	Title    *string
	Type     *ColumnType
	Position *int
}

// Update merges the patch into the column.
func (c *Column) Update(p ColumnPatch) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Type != nil && ValidColumnType(*p.Type) {
		c.Type = *p.Type
	}
	if p.Position != nil {
		c.Position = *p.Position
	}
}

// AddTask appends the id to the bottom of the column. Adding an id that is
// already present is a no-op, so the list stays duplicate-free.
func (c *Column) AddTask(taskID string) {
	if c.HasTask(taskID) {
		return
	}
	c.TaskIDs = append(c.TaskIDs, taskID)
}

// RemoveTask drops the id from the column, preserving the order of the rest.
func (c *Column) RemoveTask(taskID string) {
	for i, id := range c.TaskIDs {
		if id == taskID {
			c.TaskIDs = append(c.TaskIDs[:i], c.TaskIDs[i+1:]...)
			return
		}
	}
}

// HasTask reports whether the id is in the column.
func (c *Column) HasTask(taskID string) bool {
	for _, id := range c.TaskIDs {
		if id == taskID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the column.
func (c *Column) Clone() *Column {
	clone := *c
	clone.TaskIDs = append([]string(nil), c.TaskIDs...)
	return &clone
}
