package models

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyName is returned when a project is created with a blank name.
var ErrEmptyName = errors.New("project name must not be empty")

// Project owns a set of columns and a set of tasks. Columns reference tasks
// by id; cross-reference consistency (a task living in at most one column)
// is enforced by the store, not here.
type Project struct {
	ID          string
	Name        string
	Description string
	Columns     []*Column
	Tasks       []*Task
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProject creates an empty project with a fresh id.
// The name is trimmed and must not be empty.
func NewProject(name, description string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	now := time.Now()
	return &Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ProjectPatch is a partial update to a project. Nil fields are left untouched.
type ProjectPatch struct {
	Name        *string
	Description *string
}

// Update merges the patch into the project and refreshes UpdatedAt.
func (p *Project) Update(patch ProjectPatch) {
	if patch.Name != nil {
		if name := strings.TrimSpace(*patch.Name); name != "" {
			p.Name = name
		}
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	p.UpdatedAt = time.Now()
}

// AddColumn inserts the column and re-sorts by position. The sort is stable,
// so columns sharing a position keep their insertion order.
func (p *Project) AddColumn(c *Column) {
	p.Columns = append(p.Columns, c)
	sort.SliceStable(p.Columns, func(i, j int) bool {
		return p.Columns[i].Position < p.Columns[j].Position
	})
}

// RemoveColumn drops the column. Tasks it referenced stay in the project.
func (p *Project) RemoveColumn(columnID string) {
	for i, c := range p.Columns {
		if c.ID == columnID {
			p.Columns = append(p.Columns[:i], p.Columns[i+1:]...)
			return
		}
	}
}

// AddTask appends the task to the project's task set.
func (p *Project) AddTask(t *Task) {
	p.Tasks = append(p.Tasks, t)
}

// RemoveTask drops the task and cascades the id out of every column.
func (p *Project) RemoveTask(taskID string) {
	for i, t := range p.Tasks {
		if t.ID == taskID {
			p.Tasks = append(p.Tasks[:i], p.Tasks[i+1:]...)
			break
		}
	}
	for _, c := range p.Columns {
		c.RemoveTask(taskID)
	}
}

// ColumnByID returns the column with the given id, or nil.
func (p *Project) ColumnByID(columnID string) *Column {
	for _, c := range p.Columns {
		if c.ID == columnID {
			return c
		}
	}
	return nil
}

// TaskByID returns the task with the given id, or nil.
func (p *Project) TaskByID(taskID string) *Task {
	for _, t := range p.Tasks {
		if t.ID == taskID {
			return t
		}
	}
	return nil
}

// ActiveColumn returns the project's single active-type column, or nil.
func (p *Project) ActiveColumn() *Column {
	for _, c := range p.Columns {
		if c.Type == ColumnActive {
			return c
		}
	}
	return nil
}

// ColumnHolding returns the column whose task list contains the id, or nil.
func (p *Project) ColumnHolding(taskID string) *Column {
	for _, c := range p.Columns {
		if c.HasTask(taskID) {
			return c
		}
	}
	return nil
}

// TasksInColumn returns the column's tasks in task-id order. Ids that no
// longer resolve to a task are dropped rather than treated as an error.
func (p *Project) TasksInColumn(columnID string) []*Task {
	c := p.ColumnByID(columnID)
	if c == nil {
		return nil
	}
	tasks := make([]*Task, 0, len(c.TaskIDs))
	for _, id := range c.TaskIDs {
		if t := p.TaskByID(id); t != nil {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// MoveTaskToColumn pulls the task id out of whichever column holds it and
// appends it to the target column. Placing a task in the active column marks
// it in-progress; any other column marks it todo. No-op when the task or the
// target column does not exist.
func (p *Project) MoveTaskToColumn(taskID, targetColumnID string) {
	task := p.TaskByID(taskID)
	if task == nil {
		return
	}
	target := p.ColumnByID(targetColumnID)
	if target == nil {
		return
	}
	for _, c := range p.Columns {
		c.RemoveTask(taskID)
	}
	target.AddTask(taskID)
	if target.Type == ColumnActive {
		task.Status = StatusInProgress
	} else {
		task.Status = StatusTodo
	}
	task.UpdatedAt = time.Now()
}

// Clone returns a deep copy of the project, its columns and its tasks.
func (p *Project) Clone() *Project {
	clone := *p
	clone.Columns = make([]*Column, len(p.Columns))
	for i, c := range p.Columns {
		clone.Columns[i] = c.Clone()
	}
	clone.Tasks = make([]*Task, len(p.Tasks))
	for i, t := range p.Tasks {
		clone.Tasks[i] = t.Clone()
	}
	return &clone
}

// PriorityCounts returns the number of tasks per priority level.
func (p *Project) PriorityCounts() (low, medium, high int) {
	for _, t := range p.Tasks {
		switch t.Priority {
		case PriorityLow:
			low++
		case PriorityHigh:
			high++
		default:
			medium++
		}
	}
	return low, medium, high
}

// OverdueCount returns the number of tasks past their due date.
func (p *Project) OverdueCount(now time.Time) int {
	n := 0
	for _, t := range p.Tasks {
		if t.Overdue(now) {
			n++
		}
	}
	return n
}
