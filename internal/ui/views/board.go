package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/kandoro/internal/models"
	"github.com/tgienger/kandoro/internal/store"
	"github.com/tgienger/kandoro/internal/ui/keys"
	"github.com/tgienger/kandoro/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// BackToProjects is emitted when the user leaves the board.
type BackToProjects struct{}

// boardMode is the board's current interaction state
type boardMode int

const (
	modeNormal boardMode = iota
	modeTaskForm
	modeTaskView
	modeColumnForm
	modeConfirmDeleteTask
	modeConfirmDeleteColumn
)

// BoardView renders the active project as a kanban board with the pomodoro
// pane on top. Every mutation goes through the store; the view re-reads the
// snapshot after dispatching.
type BoardView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	mode    boardMode
	colIdx  int
	taskIdx int

	taskForm   taskForm
	columnForm columnForm

	deleteTaskID   string
	deleteColumnID string
}

// NewBoardView creates the board for the store's active project.
func NewBoardView(st *store.Store) *BoardView {
	return &BoardView{
		store:      st,
		styles:     styles.NewStyles(),
		keys:       keys.DefaultKeyMap(),
		taskForm:   newTaskForm(),
		columnForm: newColumnForm(),
	}
}

func (v *BoardView) Init() tea.Cmd {
	return nil
}

func (v *BoardView) project() *models.Project {
	return v.store.State().ActiveProject()
}

// selectedColumn returns the column under the cursor, or nil.
func (v *BoardView) selectedColumn() *models.Column {
	p := v.project()
	if p == nil || len(p.Columns) == 0 {
		return nil
	}
	v.colIdx = clamp(v.colIdx, 0, len(p.Columns)-1)
	return p.Columns[v.colIdx]
}

// selectedTask returns the task under the cursor, or nil.
func (v *BoardView) selectedTask() *models.Task {
	p := v.project()
	c := v.selectedColumn()
	if p == nil || c == nil {
		return nil
	}
	tasks := p.TasksInColumn(c.ID)
	if len(tasks) == 0 {
		return nil
	}
	v.taskIdx = clamp(v.taskIdx, 0, len(tasks)-1)
	return tasks[v.taskIdx]
}

func (v *BoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case modeTaskForm:
			return v.updateTaskForm(msg)
		case modeTaskView:
			return v.updateTaskView(msg)
		case modeColumnForm:
			return v.updateColumnForm(msg)
		case modeConfirmDeleteTask:
			return v.updateConfirmDeleteTask(msg)
		case modeConfirmDeleteColumn:
			return v.updateConfirmDeleteColumn(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *BoardView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := v.project()
	if p == nil {
		return v, func() tea.Msg { return BackToProjects{} }
	}

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackToProjects{} }

	case key.Matches(msg, v.keys.Left):
		v.colIdx = clamp(v.colIdx-1, 0, len(p.Columns)-1)
		v.taskIdx = 0
		return v, nil

	case key.Matches(msg, v.keys.Right):
		v.colIdx = clamp(v.colIdx+1, 0, len(p.Columns)-1)
		v.taskIdx = 0
		return v, nil

	case key.Matches(msg, v.keys.Up):
		v.taskIdx--
		v.selectedTask()
		return v, nil

	case key.Matches(msg, v.keys.Down):
		v.taskIdx++
		v.selectedTask()
		return v, nil

	case key.Matches(msg, v.keys.MoveLeft):
		return v.moveSelected(-1)

	case key.Matches(msg, v.keys.MoveRight):
		return v.moveSelected(1)

	case key.Matches(msg, v.keys.MoveUp):
		return v.reorderSelected(-1)

	case key.Matches(msg, v.keys.MoveDown):
		return v.reorderSelected(1)

	case key.Matches(msg, v.keys.Focus):
		return v.focusSelected()

	case key.Matches(msg, v.keys.New):
		c := v.selectedColumn()
		if c != nil {
			v.store.OpenTaskModal(nil, p.ID, c.ID, store.ModalCreate)
			v.taskForm.reset()
			v.mode = modeTaskForm
		}
		return v, nil

	case key.Matches(msg, v.keys.Edit):
		if t := v.selectedTask(); t != nil {
			c := v.selectedColumn()
			v.store.OpenTaskModal(t.Clone(), p.ID, c.ID, store.ModalEdit)
			v.taskForm.load(t)
			v.mode = modeTaskForm
		}
		return v, nil

	case key.Matches(msg, v.keys.View):
		if t := v.selectedTask(); t != nil {
			c := v.selectedColumn()
			v.store.OpenTaskModal(t.Clone(), p.ID, c.ID, store.ModalView)
			v.mode = modeTaskView
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if t := v.selectedTask(); t != nil {
			v.deleteTaskID = t.ID
			v.mode = modeConfirmDeleteTask
		}
		return v, nil

	case key.Matches(msg, v.keys.NewColumn):
		v.columnForm.reset(false)
		v.mode = modeColumnForm
		return v, nil

	case key.Matches(msg, v.keys.EditColumn):
		if c := v.selectedColumn(); c != nil {
			v.columnForm.load(c)
			v.mode = modeColumnForm
		}
		return v, nil

	case key.Matches(msg, v.keys.DeleteColumn):
		if c := v.selectedColumn(); c != nil {
			v.deleteColumnID = c.ID
			v.mode = modeConfirmDeleteColumn
		}
		return v, nil

	case key.Matches(msg, v.keys.StartPause):
		running := v.store.State().Pomodoro.IsActive
		active := !running
		v.store.SetPomodoroState(store.PomodoroPatch{IsActive: &active})
		if active {
			return v, func() tea.Msg { return TimerStarted{} }
		}
		return v, nil

	case key.Matches(msg, v.keys.Reset):
		v.store.ResetPomodoro()
		return v, nil

	case key.Matches(msg, v.keys.Session):
		v.store.SwitchSession(!v.store.State().Pomodoro.IsWorkSession)
		return v, nil
	}

	return v, nil
}

// TimerStarted tells the app to kick off the one-second tick loop.
type TimerStarted struct{}

// moveSelected sends the task under the cursor to the adjacent column.
func (v *BoardView) moveSelected(dir int) (tea.Model, tea.Cmd) {
	p := v.project()
	t := v.selectedTask()
	if p == nil || t == nil {
		return v, nil
	}
	target := v.colIdx + dir
	if target < 0 || target >= len(p.Columns) {
		return v, nil
	}
	v.store.MoveTask(p.ID, t.ID, p.Columns[target].ID)
	v.colIdx = target
	refreshed := v.store.State().ActiveProject()
	v.taskIdx = len(refreshed.TasksInColumn(refreshed.Columns[target].ID)) - 1
	return v, nil
}

// reorderSelected moves the task one slot up or down within its column.
func (v *BoardView) reorderSelected(dir int) (tea.Model, tea.Cmd) {
	p := v.project()
	c := v.selectedColumn()
	t := v.selectedTask()
	if p == nil || c == nil || t == nil {
		return v, nil
	}
	target := v.taskIdx + dir
	if target < 0 || target >= len(c.TaskIDs) {
		return v, nil
	}
	v.store.MoveTaskWithinColumn(p.ID, c.ID, t.ID, target)
	v.taskIdx = target
	return v, nil
}

// focusSelected puts the task under the cursor into the active column and
// points the timer at it.
func (v *BoardView) focusSelected() (tea.Model, tea.Cmd) {
	p := v.project()
	t := v.selectedTask()
	if p == nil || t == nil {
		return v, nil
	}
	active := p.ActiveColumn()
	if active == nil {
		return v, nil
	}
	if !active.HasTask(t.ID) {
		v.store.MoveTask(p.ID, t.ID, active.ID)
	}
	v.store.SetCurrentTask(t.ID)
	return v, nil
}

func (v *BoardView) updateConfirmDeleteTask(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if p := v.project(); p != nil {
			v.store.DeleteTask(p.ID, v.deleteTaskID)
		}
		v.mode = modeNormal
		return v, nil
	case "n", "N", "esc":
		v.mode = modeNormal
		return v, nil
	}
	return v, nil
}

func (v *BoardView) updateConfirmDeleteColumn(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if p := v.project(); p != nil {
			v.store.DeleteColumn(p.ID, v.deleteColumnID)
		}
		v.mode = modeNormal
		v.selectedColumn()
		return v, nil
	case "n", "N", "esc":
		v.mode = modeNormal
		return v, nil
	}
	return v, nil
}

func (v *BoardView) updateTaskView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Enter):
		v.store.CloseTaskModal()
		v.mode = modeNormal
	case key.Matches(msg, v.keys.Edit):
		modal := v.store.State().Modal
		if modal.Task != nil {
			v.taskForm.load(modal.Task)
			v.store.OpenTaskModal(modal.Task, modal.ProjectID, modal.ColumnID, store.ModalEdit)
			v.mode = modeTaskForm
		}
	}
	return v, nil
}

// View renders the board
func (v *BoardView) View() string {
	p := v.project()
	if p == nil {
		return v.styles.TitleMuted.Render("No project selected.")
	}

	switch v.mode {
	case modeTaskForm:
		return v.renderTaskForm()
	case modeTaskView:
		return v.renderTaskView()
	case modeColumnForm:
		return v.renderColumnForm()
	case modeConfirmDeleteTask:
		return v.renderConfirm("Delete Task?", "The task will be removed from the project.")
	case modeConfirmDeleteColumn:
		return v.renderConfirm("Delete Column?",
			"Its tasks stay in the project. The last column and the active column are protected.")
	}

	timer := v.renderTimer()
	board := v.renderColumns(p)
	status := v.renderStatusBar(p)
	help := v.renderHelp()

	content := lipgloss.JoinVertical(lipgloss.Left, timer, board, status, help)
	return styles.CenterView(content, v.width, v.height)
}

func (v *BoardView) renderColumns(p *models.Project) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	n := len(p.Columns)
	if n == 0 {
		return s.TitleMuted.Render("No columns. Press 'c' to create one.")
	}

	colWidth := clamp(contentWidth/n-4, 16, 40)
	colHeight := clamp(v.height-12, 6, 40)
	currentTaskID := v.store.State().Pomodoro.CurrentTaskID

	rendered := make([]string, 0, n)
	for i, c := range p.Columns {
		rendered = append(rendered, v.renderColumn(p, c, i, colWidth, colHeight, currentTaskID))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (v *BoardView) renderColumn(p *models.Project, c *models.Column, idx, width, height int, currentTaskID string) string {
	s := v.styles

	titleStyle := s.ColumnTitle
	if c.Type == models.ColumnActive {
		titleStyle = s.ColumnActive
	}
	title := titleStyle.Render(c.Title)
	count := s.CardMeta.Render(fmt.Sprintf(" %d", len(c.TaskIDs)))

	lines := []string{title + count, ""}
	tasks := p.TasksInColumn(c.ID)
	for j, t := range tasks {
		selected := v.mode == modeNormal && idx == v.colIdx && j == v.taskIdx
		lines = append(lines, v.renderCard(t, width, selected, t.ID == currentTaskID)...)
	}
	if len(tasks) == 0 {
		lines = append(lines, s.CardMeta.Render("empty"))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	colStyle := s.Column
	if idx == v.colIdx && v.mode == modeNormal {
		colStyle = s.ColumnFocused
	}
	return colStyle.Width(width).Height(height).Render(body)
}

func (v *BoardView) renderCard(t *models.Task, width int, selected, focused bool) []string {
	s := v.styles

	marker := "  "
	if focused {
		marker = s.CardFocused.Render("▶ ")
	}
	prio := lipgloss.NewStyle().
		Foreground(styles.PriorityColor(string(t.Priority))).
		Render("●")

	titleStyle := s.Card
	if selected {
		titleStyle = s.CardSelected
	}
	title := titleStyle.Width(width - 4).Render(marker + prio + " " + t.Title)

	meta := make([]string, 0, 3)
	if t.PomodoroCount > 0 {
		meta = append(meta, fmt.Sprintf("🍅%d", t.PomodoroCount))
	}
	if t.WorkSeconds > 0 {
		meta = append(meta, formatWork(t.WorkSeconds))
	}
	if t.DueDate != nil {
		meta = append(meta, t.DueDate.Format("Jan 2"))
	}
	if len(meta) == 0 {
		return []string{title, ""}
	}
	return []string{title, s.CardMeta.Render("    " + strings.Join(meta, " · ")), ""}
}

func (v *BoardView) renderStatusBar(p *models.Project) string {
	s := v.styles
	low, medium, high := p.PriorityCounts()
	overdue := p.OverdueCount(time.Now())

	parts := []string{
		fmt.Sprintf("%s · %d tasks", p.Name, len(p.Tasks)),
		fmt.Sprintf("high %d / med %d / low %d", high, medium, low),
	}
	if overdue > 0 {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(styles.Current.Error).
			Render(fmt.Sprintf("%d overdue", overdue)))
	}
	return s.StatusBar.Render(strings.Join(parts, "  •  "))
}

func (v *BoardView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth > 0 && contentWidth < 70 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	return v.styles.Help.Render(
		fmt.Sprintf("%s move • %s reorder • %s focus • %s new • %s edit • %s del • %s timer • %s back",
			v.styles.HelpKey.Render("H/L"),
			v.styles.HelpKey.Render("J/K"),
			v.styles.HelpKey.Render("f"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("␣"),
			v.styles.HelpKey.Render("esc"),
		),
	)
}

func (v *BoardView) renderConfirm(title, detail string) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render(title),
		"",
		s.TitleMuted.Render(detail),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonFocused.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *BoardView) renderTaskView() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	modal := v.store.State().Modal
	t := modal.Task
	if t == nil {
		return s.TitleMuted.Render("Nothing to show.")
	}

	due := "none"
	if t.DueDate != nil {
		due = t.DueDate.Format("2006-01-02")
	}
	notes := t.Notes
	if notes == "" {
		notes = s.TitleMuted.Render("no notes")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(t.Title),
		"",
		s.TitleMuted.Render(t.Description),
		"",
		fmt.Sprintf("Status: %s   Priority: %s", t.Status, t.Priority),
		fmt.Sprintf("Pomodoros: %d   Focused: %s   Due: %s", t.PomodoroCount, formatWork(t.WorkSeconds), due),
		"",
		"Notes:",
		notes,
		"",
		s.TitleMuted.Render("e: edit • Esc: close"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Input.Width(clamp(contentWidth-8, 30, 70)).Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

// formatWork renders accumulated seconds as a compact duration.
func formatWork(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm", seconds/60)
	}
	return fmt.Sprintf("%dh%02dm", seconds/3600, (seconds%3600)/60)
}
