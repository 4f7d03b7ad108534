package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/kandoro/internal/models"
)

// newBoardStore builds a store holding one active board project and one task
// sitting in the To Do column.
func newBoardStore(t *testing.T) (*Store, *models.Project, *models.Task) {
	t.Helper()
	s := New(Options{})
	p, err := NewBoardProject("Demo", "")
	require.NoError(t, err)
	s.AddProject(p)
	s.SetActiveProject(p.ID)

	task, err := models.NewTask("Write spec", "")
	require.NoError(t, err)
	s.AddTask(p.ID, task)
	s.MoveTask(p.ID, task.ID, columnOfType(t, s, p.ID, models.ColumnTodo).ID)

	return s, s.State().ProjectByID(p.ID), task
}

func columnOfType(t *testing.T, s *Store, projectID string, typ models.ColumnType) *models.Column {
	t.Helper()
	p := s.State().ProjectByID(projectID)
	require.NotNil(t, p)
	for _, c := range p.Columns {
		if c.Type == typ {
			return c
		}
	}
	t.Fatalf("no column of type %s", typ)
	return nil
}

func TestAddProjectActivatesFirst(t *testing.T) {
	s := New(Options{})
	first, err := NewBoardProject("First", "")
	require.NoError(t, err)
	second, err := NewBoardProject("Second", "")
	require.NoError(t, err)

	s.AddProject(first)
	s.AddProject(second)

	assert.Equal(t, first.ID, s.State().ActiveProjectID)
	assert.Len(t, s.State().Projects, 2)
}

func TestAddProjectRejectsDuplicateName(t *testing.T) {
	s := New(Options{})
	p, err := NewBoardProject("Demo", "")
	require.NoError(t, err)
	dup, err := NewBoardProject("DEMO", "different description")
	require.NoError(t, err)

	s.AddProject(p)
	s.AddProject(dup)

	require.Len(t, s.State().Projects, 1)
	assert.Equal(t, p.ID, s.State().Projects[0].ID)
}

func TestDeleteProjectMovesSelection(t *testing.T) {
	s := New(Options{})
	first, err := NewBoardProject("First", "")
	require.NoError(t, err)
	second, err := NewBoardProject("Second", "")
	require.NoError(t, err)
	s.AddProject(first)
	s.AddProject(second)

	s.DeleteProject(first.ID)
	assert.Equal(t, second.ID, s.State().ActiveProjectID)

	s.DeleteProject(second.ID)
	assert.Empty(t, s.State().ActiveProjectID)
	assert.Empty(t, s.State().Projects)
}

func TestAddTaskRejectsBlankTitle(t *testing.T) {
	s, p, _ := newBoardStore(t)
	before := len(s.State().ProjectByID(p.ID).Tasks)

	s.AddTask(p.ID, &models.Task{ID: "x", Title: "   "})

	assert.Len(t, s.State().ProjectByID(p.ID).Tasks, before)
}

func TestUpdateTaskRefreshesModalCopy(t *testing.T) {
	s, p, task := newBoardStore(t)
	s.OpenTaskModal(task.Clone(), p.ID, "", ModalEdit)

	title := "Write the design doc"
	s.UpdateTask(p.ID, task.ID, models.TaskPatch{Title: &title})

	assert.Equal(t, "Write the design doc", s.State().ProjectByID(p.ID).TaskByID(task.ID).Title)
	require.NotNil(t, s.State().Modal.Task)
	assert.Equal(t, "Write the design doc", s.State().Modal.Task.Title)
}

func TestDeleteTaskCascades(t *testing.T) {
	s, p, task := newBoardStore(t)
	active := columnOfType(t, s, p.ID, models.ColumnActive)
	s.MoveTask(p.ID, task.ID, active.ID)
	require.Equal(t, task.ID, s.State().Pomodoro.CurrentTaskID)

	s.DeleteTask(p.ID, task.ID)

	fresh := s.State().ProjectByID(p.ID)
	assert.Nil(t, fresh.TaskByID(task.ID))
	assert.Nil(t, fresh.ColumnHolding(task.ID))
	assert.Empty(t, s.State().Pomodoro.CurrentTaskID)
}

func TestMoveTaskSingleColumnMembership(t *testing.T) {
	s, p, task := newBoardStore(t)
	inProgress := columnOfType(t, s, p.ID, models.ColumnInProgress)

	s.MoveTask(p.ID, task.ID, inProgress.ID)
	s.MoveTask(p.ID, task.ID, inProgress.ID) // re-move is a no-op in effect

	holders := 0
	for _, c := range s.State().ProjectByID(p.ID).Columns {
		if c.HasTask(task.ID) {
			holders++
		}
	}
	assert.Equal(t, 1, holders)
	assert.True(t, s.State().ProjectByID(p.ID).ColumnByID(inProgress.ID).HasTask(task.ID))
}

func TestMoveTaskToMissingColumnLeavesStateUntouched(t *testing.T) {
	s, p, task := newBoardStore(t)
	before := s.State().ProjectByID(p.ID).UpdatedAt

	s.MoveTask(p.ID, task.ID, "missing-column")

	fresh := s.State().ProjectByID(p.ID)
	assert.True(t, fresh.ColumnHolding(task.ID).Type == models.ColumnTodo)
	assert.Equal(t, before, fresh.UpdatedAt)
}

// Moving into a non-active column never forces a status; only the active
// column does.
func TestMoveTaskStatusRules(t *testing.T) {
	s, p, task := newBoardStore(t)
	inProgress := columnOfType(t, s, p.ID, models.ColumnInProgress)
	active := columnOfType(t, s, p.ID, models.ColumnActive)

	s.MoveTask(p.ID, task.ID, inProgress.ID)
	got := s.State().ProjectByID(p.ID).TaskByID(task.ID)
	assert.Equal(t, models.StatusTodo, got.Status)
	assert.Equal(t, []*models.Task{got}, s.State().ProjectByID(p.ID).TasksInColumn(inProgress.ID))

	s.MoveTask(p.ID, task.ID, active.ID)
	got = s.State().ProjectByID(p.ID).TaskByID(task.ID)
	assert.Equal(t, models.StatusInProgress, got.Status)
	assert.Equal(t, task.ID, s.State().Pomodoro.CurrentTaskID)
}

func TestMoveTaskWithinColumn(t *testing.T) {
	s, p, first := newBoardStore(t)
	todo := columnOfType(t, s, p.ID, models.ColumnTodo)

	second, err := models.NewTask("Second", "")
	require.NoError(t, err)
	third, err := models.NewTask("Third", "")
	require.NoError(t, err)
	for _, task := range []*models.Task{second, third} {
		s.AddTask(p.ID, task)
		s.MoveTask(p.ID, task.ID, todo.ID)
	}

	s.MoveTaskWithinColumn(p.ID, todo.ID, third.ID, 0)
	ids := s.State().ProjectByID(p.ID).ColumnByID(todo.ID).TaskIDs
	assert.Equal(t, []string{third.ID, first.ID, second.ID}, ids)

	// Index is clamped, not rejected
	s.MoveTaskWithinColumn(p.ID, todo.ID, third.ID, 99)
	ids = s.State().ProjectByID(p.ID).ColumnByID(todo.ID).TaskIDs
	assert.Equal(t, []string{first.ID, second.ID, third.ID}, ids)

	// Task not in the column: no-op
	s.MoveTaskWithinColumn(p.ID, todo.ID, "missing", 0)
	assert.Equal(t, ids, s.State().ProjectByID(p.ID).ColumnByID(todo.ID).TaskIDs)
}

func TestAddColumnRejectsSecondActive(t *testing.T) {
	s, p, _ := newBoardStore(t)
	before := len(s.State().ProjectByID(p.ID).Columns)

	s.AddColumn(p.ID, models.NewColumn("Another Active", models.ColumnActive, 9))

	assert.Len(t, s.State().ProjectByID(p.ID).Columns, before)
}

func TestAddColumnRejectsDuplicateID(t *testing.T) {
	s, p, _ := newBoardStore(t)
	existing := columnOfType(t, s, p.ID, models.ColumnTodo)
	before := len(s.State().ProjectByID(p.ID).Columns)

	dup := models.NewColumn("Copy", models.ColumnCustom, 9)
	dup.ID = existing.ID
	s.AddColumn(p.ID, dup)

	assert.Len(t, s.State().ProjectByID(p.ID).Columns, before)
}

func TestUpdateColumnGuardsActiveType(t *testing.T) {
	s, p, _ := newBoardStore(t)
	active := columnOfType(t, s, p.ID, models.ColumnActive)
	todo := columnOfType(t, s, p.ID, models.ColumnTodo)

	toActive := models.ColumnActive
	s.UpdateColumn(p.ID, todo.ID, models.ColumnPatch{Type: &toActive})
	assert.Equal(t, models.ColumnTodo, s.State().ProjectByID(p.ID).ColumnByID(todo.ID).Type)

	toCustom := models.ColumnCustom
	title := "Focus"
	s.UpdateColumn(p.ID, active.ID, models.ColumnPatch{Title: &title, Type: &toCustom})
	got := s.State().ProjectByID(p.ID).ColumnByID(active.ID)
	assert.Equal(t, models.ColumnActive, got.Type)
	assert.Equal(t, "Focus", got.Title)
}

func TestUpdateColumnReordersOnPositionChange(t *testing.T) {
	s, p, _ := newBoardStore(t)
	todo := columnOfType(t, s, p.ID, models.ColumnTodo)

	last := 99
	s.UpdateColumn(p.ID, todo.ID, models.ColumnPatch{Position: &last})

	columns := s.State().ProjectByID(p.ID).Columns
	assert.Equal(t, todo.ID, columns[len(columns)-1].ID)
}

func TestDeleteColumnProtections(t *testing.T) {
	s, p, task := newBoardStore(t)
	active := columnOfType(t, s, p.ID, models.ColumnActive)
	todo := columnOfType(t, s, p.ID, models.ColumnTodo)

	s.DeleteColumn(p.ID, active.ID)
	assert.NotNil(t, s.State().ProjectByID(p.ID).ColumnByID(active.ID))

	s.DeleteColumn(p.ID, todo.ID)
	fresh := s.State().ProjectByID(p.ID)
	assert.Nil(t, fresh.ColumnByID(todo.ID))
	// Tasks survive their column
	assert.NotNil(t, fresh.TaskByID(task.ID))

	// A single remaining column can never be deleted
	for _, c := range fresh.Columns {
		if c.ID != active.ID {
			s.DeleteColumn(p.ID, c.ID)
		}
	}
	remaining := s.State().ProjectByID(p.ID).Columns
	require.Len(t, remaining, 1)
	s.DeleteColumn(p.ID, remaining[0].ID)
	assert.Len(t, s.State().ProjectByID(p.ID).Columns, 1)
}

func TestIncrementWorkTime(t *testing.T) {
	s, p, task := newBoardStore(t)

	s.IncrementWorkTime(p.ID, task.ID, 1)
	s.IncrementWorkTime(p.ID, task.ID, 59)
	s.IncrementWorkTime(p.ID, task.ID, 0)
	s.IncrementWorkTime(p.ID, "missing", 10)

	assert.Equal(t, 60, s.State().ProjectByID(p.ID).TaskByID(task.ID).WorkSeconds)
}

func TestSnapshotsAreImmutable(t *testing.T) {
	s, p, task := newBoardStore(t)
	inProgress := columnOfType(t, s, p.ID, models.ColumnInProgress)

	before := s.State()
	beforeHolder := before.ProjectByID(p.ID).ColumnHolding(task.ID)

	s.MoveTask(p.ID, task.ID, inProgress.ID)
	title := "Renamed later"
	s.UpdateTask(p.ID, task.ID, models.TaskPatch{Title: &title})

	// The old snapshot still shows the old world
	assert.Equal(t, beforeHolder.ID, before.ProjectByID(p.ID).ColumnHolding(task.ID).ID)
	assert.Equal(t, "Write spec", before.ProjectByID(p.ID).TaskByID(task.ID).Title)
}

func TestOnChangeFiresOnProjectChangesOnly(t *testing.T) {
	s, p, task := newBoardStore(t)
	calls := 0
	s.OnChange(func(State) { calls++ })

	s.UpdatePomodoroTime(100)
	s.SetPomodoroState(PomodoroPatch{})
	s.OpenTaskModal(nil, p.ID, "", ModalCreate)
	s.CloseTaskModal()
	assert.Zero(t, calls)

	title := "Changed"
	s.UpdateTask(p.ID, task.ID, models.TaskPatch{Title: &title})
	assert.Equal(t, 1, calls)
}

func TestBootstrapSeedsDefaultProject(t *testing.T) {
	s := New(Options{})
	s.Bootstrap(nil, "")

	state := s.State()
	require.Len(t, state.Projects, 1)
	p := state.Projects[0]
	assert.Equal(t, p.ID, state.ActiveProjectID)
	assert.Len(t, p.Columns, 4)
	assert.NotNil(t, p.ActiveColumn())
	assert.Len(t, p.Tasks, 3)
}

func TestBootstrapRestoresSavedSelection(t *testing.T) {
	first, err := NewBoardProject("First", "")
	require.NoError(t, err)
	second, err := NewBoardProject("Second", "")
	require.NoError(t, err)

	s := New(Options{})
	s.Bootstrap([]*models.Project{first, second}, second.ID)
	assert.Equal(t, second.ID, s.State().ActiveProjectID)

	// A stale saved id falls back to the first project
	s = New(Options{})
	s.Bootstrap([]*models.Project{first, second}, "gone")
	assert.Equal(t, first.ID, s.State().ActiveProjectID)
}

func TestNewAppliesSessionOptions(t *testing.T) {
	s := New(Options{WorkSession: 50 * time.Minute, BreakSession: 10 * time.Minute})
	assert.Equal(t, 3000, s.WorkSessionSeconds())
	assert.Equal(t, 600, s.BreakSessionSeconds())
	assert.Equal(t, 3000, s.State().Pomodoro.TimeRemaining)

	s = New(Options{})
	assert.Equal(t, DefaultWorkSeconds, s.WorkSessionSeconds())
	assert.Equal(t, DefaultBreakSeconds, s.BreakSessionSeconds())
}
