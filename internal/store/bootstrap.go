package store

import (
	"github.com/tgienger/kandoro/internal/models"
)

// DefaultProject builds the project seeded on first run: the four canonical
// columns plus a few sample tasks so the board is not empty.
func DefaultProject() *models.Project {
	project, _ := models.NewProject("My Project", "Default project with sample tasks")

	active := models.NewColumn("Now Working", models.ColumnActive, 0)
	todo := models.NewColumn("To Do", models.ColumnTodo, 1)
	inProgress := models.NewColumn("In Progress", models.ColumnInProgress, 2)
	done := models.NewColumn("Done", models.ColumnDone, 3)
	for _, c := range []*models.Column{active, todo, inProgress, done} {
		project.AddColumn(c)
	}

	samples := []struct {
		title, description string
		column             *models.Column
	}{
		{"Set up project structure", "Initialize the kanban board", todo},
		{"Design the board layout", "Columns, cards and the timer pane", todo},
		{"Wire up the pomodoro timer", "Track focused time per task", inProgress},
	}
	for _, s := range samples {
		task, _ := models.NewTask(s.title, s.description)
		project.AddTask(task)
		s.column.AddTask(task.ID)
	}
	if t := project.TaskByID(inProgress.TaskIDs[0]); t != nil {
		t.Status = models.StatusInProgress
	}

	return project
}

// NewBoardProject creates a project pre-populated with the four canonical
// columns and no tasks. Every project needs its active column from birth.
func NewBoardProject(name, description string) (*models.Project, error) {
	project, err := models.NewProject(name, description)
	if err != nil {
		return nil, err
	}
	project.AddColumn(models.NewColumn("Now Working", models.ColumnActive, 0))
	project.AddColumn(models.NewColumn("To Do", models.ColumnTodo, 1))
	project.AddColumn(models.NewColumn("In Progress", models.ColumnInProgress, 2))
	project.AddColumn(models.NewColumn("Done", models.ColumnDone, 3))
	return project, nil
}

// Bootstrap installs persisted projects into the store, or seeds the
// default project when nothing was saved.
func (s *Store) Bootstrap(projects []*models.Project, activeProjectID string) {
	if len(projects) == 0 {
		p := DefaultProject()
		s.AddProject(p)
		s.SetActiveProject(p.ID)
		return
	}
	s.SetProjects(projects)
	if activeProjectID != "" && s.State().ProjectByID(activeProjectID) != nil {
		s.SetActiveProject(activeProjectID)
	} else if len(projects) > 0 {
		s.SetActiveProject(projects[0].ID)
	}
}
