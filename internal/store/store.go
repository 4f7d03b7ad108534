package store

import (
	"sort"
	"strings"
	"time"

	"github.com/tgienger/kandoro/internal/models"
)

// Store is the single source of truth for projects, the active project
// selection, the pomodoro session and the task-modal intent. All commands
// are synchronous and apply immutably: a project touched by a command is
// deep-cloned before mutation, so snapshots handed out earlier stay stable.
//
// The store is built for a single writer (the ui event loop); it holds no
// locks and spawns no goroutines.
type Store struct {
	state        State
	workSeconds  int
	breakSeconds int
	onChange     func(State)
}

// Options configures session lengths. Zero values fall back to the
// classic 25/5 minute split.
type Options struct {
	WorkSession  time.Duration
	BreakSession time.Duration
}

// New creates an empty store with a stopped work session on the clock.
func New(opts Options) *Store {
	work := int(opts.WorkSession.Seconds())
	if work <= 0 {
		work = DefaultWorkSeconds
	}
	brk := int(opts.BreakSession.Seconds())
	if brk <= 0 {
		brk = DefaultBreakSeconds
	}
	return &Store{
		workSeconds:  work,
		breakSeconds: brk,
		state: State{
			Pomodoro: PomodoroState{
				TimeRemaining: work,
				IsWorkSession: true,
			},
		},
	}
}

// OnChange registers a hook invoked after any command that changes the
// project collection or the active project selection. The persistence
// adapter hangs off this; pomodoro and modal changes never trigger it.
func (s *Store) OnChange(fn func(State)) {
	s.onChange = fn
}

// State returns the current snapshot.
func (s *Store) State() State {
	return s.state
}

// WorkSessionSeconds returns the configured work session length.
func (s *Store) WorkSessionSeconds() int { return s.workSeconds }

// BreakSessionSeconds returns the configured break session length.
func (s *Store) BreakSessionSeconds() int { return s.breakSeconds }

func (s *Store) changed() {
	if s.onChange != nil {
		s.onChange(s.state)
	}
}

// resolve recomputes the focused task against the current projects.
func (s *Store) resolve(preferredTaskID string) {
	s.state.Pomodoro.CurrentTaskID = ResolveCurrentTaskID(
		s.state.Projects, preferredTaskID, s.state.ActiveProjectID)
}

// mutateProject clones the addressed project, applies fn to the clone and
// commits a new projects slice only when fn reports success. A command
// whose precondition fails inside fn leaves the state byte-for-byte
// untouched. Returns whether the mutation was committed.
func (s *Store) mutateProject(projectID string, fn func(*models.Project) bool) bool {
	for i, p := range s.state.Projects {
		if p.ID != projectID {
			continue
		}
		clone := p.Clone()
		if !fn(clone) {
			return false
		}
		clone.UpdatedAt = time.Now()
		projects := append([]*models.Project(nil), s.state.Projects...)
		projects[i] = clone
		s.state.Projects = projects
		return true
	}
	return false
}

// SetProjects replaces the whole project collection, typically on restore
// from persistence. The focused task is re-resolved.
func (s *Store) SetProjects(projects []*models.Project) {
	s.state.Projects = projects
	s.resolve(s.state.Pomodoro.CurrentTaskID)
	s.changed()
}

// AddProject appends the project and makes it the active one if nothing was
// selected yet. A project whose name collides case-insensitively with an
// existing one is dropped.
func (s *Store) AddProject(p *models.Project) {
	if p == nil {
		return
	}
	for _, existing := range s.state.Projects {
		if strings.EqualFold(existing.Name, p.Name) {
			return
		}
	}
	s.state.Projects = append(append([]*models.Project(nil), s.state.Projects...), p)
	if s.state.ActiveProjectID == "" {
		s.state.ActiveProjectID = p.ID
	}
	s.resolve(s.state.Pomodoro.CurrentTaskID)
	s.changed()
}

// UpdateProject merges the patch into the project. No-op if the id is
// unknown.
func (s *Store) UpdateProject(projectID string, patch models.ProjectPatch) {
	if !s.mutateProject(projectID, func(p *models.Project) bool {
		p.Update(patch)
		return true
	}) {
		return
	}
	s.resolve(s.state.Pomodoro.CurrentTaskID)
	s.changed()
}

// DeleteProject removes the project and everything it owns. If it was the
// active project, selection falls to the first remaining project.
func (s *Store) DeleteProject(projectID string) {
	projects := make([]*models.Project, 0, len(s.state.Projects))
	found := false
	for _, p := range s.state.Projects {
		if p.ID == projectID {
			found = true
			continue
		}
		projects = append(projects, p)
	}
	if !found {
		return
	}
	s.state.Projects = projects
	if s.state.ActiveProjectID == projectID {
		s.state.ActiveProjectID = ""
		if len(projects) > 0 {
			s.state.ActiveProjectID = projects[0].ID
		}
	}
	s.resolve(s.state.Pomodoro.CurrentTaskID)
	s.changed()
}

// SetActiveProject switches the selection. Focus does not carry over between
// projects, so the resolver starts from scratch.
func (s *Store) SetActiveProject(projectID string) {
	s.state.ActiveProjectID = projectID
	s.resolve("")
	s.changed()
}

// AddTask appends the task to the project's task set. Tasks with a blank
// title are dropped; title validation belongs to the form boundary, this is
// the backstop.
func (s *Store) AddTask(projectID string, t *models.Task) {
	if t == nil || strings.TrimSpace(t.Title) == "" {
		return
	}
	if !s.mutateProject(projectID, func(p *models.Project) bool {
		p.AddTask(t)
		return true
	}) {
		return
	}
	s.resolve(s.state.Pomodoro.CurrentTaskID)
	s.changed()
}

// UpdateTask merges the patch into the task. If the task modal is currently
// showing this task its displayed copy is refreshed in the same transition.
func (s *Store) UpdateTask(projectID, taskID string, patch models.TaskPatch) {
	var updated *models.Task
	if !s.mutateProject(projectID, func(p *models.Project) bool {
		t := p.TaskByID(taskID)
		if t == nil {
			return false
		}
		t.Update(patch)
		updated = t.Clone()
		return true
	}) {
		return
	}
	if s.state.Modal.Open && s.state.Modal.Task != nil && s.state.Modal.Task.ID == taskID {
		s.state.Modal.Task = updated
	}
	s.resolve(s.state.Pomodoro.CurrentTaskID)
	s.changed()
}

// DeleteTask removes the task from the project and from every column. If it
// was the focused task the resolver picks a new one.
func (s *Store) DeleteTask(projectID, taskID string) {
	if !s.mutateProject(projectID, func(p *models.Project) bool {
		p.RemoveTask(taskID)
		return true
	}) {
		return
	}
	preferred := s.state.Pomodoro.CurrentTaskID
	if preferred == taskID {
		preferred = ""
	}
	s.resolve(preferred)
	s.changed()
}

// MoveTask places the task into the target column, removing it from any
// other column first. No-op when the task or target column is missing.
func (s *Store) MoveTask(projectID, taskID, targetColumnID string) {
	if !s.mutateProject(projectID, func(p *models.Project) bool {
		if p.TaskByID(taskID) == nil || p.ColumnByID(targetColumnID) == nil {
			return false
		}
		p.MoveTaskToColumn(taskID, targetColumnID)
		return true
	}) {
		return
	}
	s.resolve(s.state.Pomodoro.CurrentTaskID)
	s.changed()
}

// MoveTaskWithinColumn moves the task to targetIndex inside its column,
// shifting the others. The index is clamped to the column bounds, so callers
// never need to supply a whole permutation. No-op when the task is not in
// the column.
func (s *Store) MoveTaskWithinColumn(projectID, columnID, taskID string, targetIndex int) {
	if !s.mutateProject(projectID, func(p *models.Project) bool {
		c := p.ColumnByID(columnID)
		if c == nil || !c.HasTask(taskID) {
			return false
		}
		c.RemoveTask(taskID)
		if targetIndex < 0 {
			targetIndex = 0
		}
		if targetIndex > len(c.TaskIDs) {
			targetIndex = len(c.TaskIDs)
		}
		ids := make([]string, 0, len(c.TaskIDs)+1)
		ids = append(ids, c.TaskIDs[:targetIndex]...)
		ids = append(ids, taskID)
		ids = append(ids, c.TaskIDs[targetIndex:]...)
		c.TaskIDs = ids
		return true
	}) {
		return
	}
	s.resolve(s.state.Pomodoro.CurrentTaskID)
	s.changed()
}

// AddColumn appends the column. Rejected (no-op) when the id collides with
// an existing column or when the project would end up with a second
// active-type column.
func (s *Store) AddColumn(projectID string, c *models.Column) {
	if c == nil {
		return
	}
	if !s.mutateProject(projectID, func(p *models.Project) bool {
		if p.ColumnByID(c.ID) != nil {
			return false
		}
		if c.Type == models.ColumnActive && p.ActiveColumn() != nil {
			return false
		}
		p.AddColumn(c)
		return true
	}) {
		return
	}
	s.resolve(s.state.Pomodoro.CurrentTaskID)
	s.changed()
}

// UpdateColumn merges the patch into the column. Type changes that would
// break the one-active-column invariant are dropped from the patch: a
// column cannot become active while another active column exists, and the
// active column cannot stop being active.
func (s *Store) UpdateColumn(projectID, columnID string, patch models.ColumnPatch) {
	if !s.mutateProject(projectID, func(p *models.Project) bool {
		c := p.ColumnByID(columnID)
		if c == nil {
			return false
		}
		if patch.Type != nil {
			toActive := *patch.Type == models.ColumnActive && c.Type != models.ColumnActive
			fromActive := c.Type == models.ColumnActive && *patch.Type != models.ColumnActive
			if toActive || fromActive {
				patch.Type = nil
			}
		}
		c.Update(patch)
		if patch.Position != nil {
			sort.SliceStable(p.Columns, func(i, j int) bool {
				return p.Columns[i].Position < p.Columns[j].Position
			})
		}
		return true
	}) {
		return
	}
	s.resolve(s.state.Pomodoro.CurrentTaskID)
	s.changed()
}

// DeleteColumn removes the column; its tasks stay in the project,
// column-less. Protected in the store rather than the caller: the project's
// last column and its active column cannot be deleted.
func (s *Store) DeleteColumn(projectID, columnID string) {
	if !s.mutateProject(projectID, func(p *models.Project) bool {
		c := p.ColumnByID(columnID)
		if c == nil || len(p.Columns) <= 1 || c.Type == models.ColumnActive {
			return false
		}
		p.RemoveColumn(columnID)
		return true
	}) {
		return
	}
	s.resolve(s.state.Pomodoro.CurrentTaskID)
	s.changed()
}

// IncrementWorkTime adds focused seconds to the task's accumulated total.
// No-op if the task is missing.
func (s *Store) IncrementWorkTime(projectID, taskID string, seconds int) {
	if seconds <= 0 {
		return
	}
	if !s.mutateProject(projectID, func(p *models.Project) bool {
		t := p.TaskByID(taskID)
		if t == nil {
			return false
		}
		t.WorkSeconds += seconds
		return true
	}) {
		return
	}
	s.changed()
}
