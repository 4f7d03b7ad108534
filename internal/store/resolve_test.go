package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/kandoro/internal/models"
)

func resolverProject(t *testing.T) (*models.Project, *models.Column, *models.Column) {
	t.Helper()
	p, err := models.NewProject("Resolver", "")
	require.NoError(t, err)
	active := models.NewColumn("Now Working", models.ColumnActive, 0)
	todo := models.NewColumn("To Do", models.ColumnTodo, 1)
	p.AddColumn(active)
	p.AddColumn(todo)
	return p, active, todo
}

func TestResolveCurrentTaskID(t *testing.T) {
	p, active, todo := resolverProject(t)
	active.AddTask("t1")
	active.AddTask("t2")
	todo.AddTask("t3")
	projects := []*models.Project{p}

	tests := []struct {
		name      string
		preferred string
		activeID  string
		want      string
	}{
		{name: "no active project", preferred: "t1", activeID: "", want: ""},
		{name: "unknown project", preferred: "t1", activeID: "missing", want: ""},
		{name: "preferred task kept", preferred: "t2", activeID: p.ID, want: "t2"},
		{name: "preferred outside active column falls back to first", preferred: "t3", activeID: p.ID, want: "t1"},
		{name: "no preference picks first", preferred: "", activeID: p.ID, want: "t1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveCurrentTaskID(projects, tt.preferred, tt.activeID)
			assert.Equal(t, tt.want, got)

			// Idempotent on unchanged inputs
			assert.Equal(t, got, ResolveCurrentTaskID(projects, tt.preferred, tt.activeID))

			// Resolved ids always sit in the active column
			if got != "" {
				assert.True(t, p.ActiveColumn().HasTask(got))
			}
		})
	}
}

func TestResolveCurrentTaskIDEmptyActiveColumn(t *testing.T) {
	p, _, _ := resolverProject(t)
	assert.Equal(t, "", ResolveCurrentTaskID([]*models.Project{p}, "t1", p.ID))
}

func TestResolveCurrentTaskIDNoActiveColumn(t *testing.T) {
	p, err := models.NewProject("No active", "")
	require.NoError(t, err)
	p.AddColumn(models.NewColumn("To Do", models.ColumnTodo, 0))
	assert.Equal(t, "", ResolveCurrentTaskID([]*models.Project{p}, "", p.ID))
}
