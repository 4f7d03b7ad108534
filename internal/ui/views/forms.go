package views

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/kandoro/internal/models"
	"github.com/tgienger/kandoro/internal/store"
	"github.com/tgienger/kandoro/internal/ui/styles"
)

const dueDateLayout = "2006-01-02"

// taskForm holds the inputs for creating or editing a task.
type taskForm struct {
	title    textinput.Model
	desc     textinput.Model
	priority textinput.Model
	due      textinput.Model
	notes    textarea.Model
	focusIdx int // 0=title, 1=desc, 2=priority, 3=due, 4=notes, 5=save
}

func newTaskForm() taskForm {
	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 200

	desc := textinput.New()
	desc.Placeholder = "Description"
	desc.CharLimit = 500

	priority := textinput.New()
	priority.Placeholder = "low / medium / high"
	priority.CharLimit = 10

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD (optional)"
	due.CharLimit = 10

	notes := textarea.New()
	notes.Placeholder = "Notes"
	notes.CharLimit = 5000
	notes.SetWidth(50)
	notes.SetHeight(4)
	notes.ShowLineNumbers = false

	return taskForm{title: title, desc: desc, priority: priority, due: due, notes: notes}
}

func (f *taskForm) reset() {
	f.title.Reset()
	f.desc.Reset()
	f.priority.Reset()
	f.due.Reset()
	f.notes.Reset()
	f.focusIdx = 0
	f.refocus()
}

func (f *taskForm) load(t *models.Task) {
	f.reset()
	f.title.SetValue(t.Title)
	f.desc.SetValue(t.Description)
	f.priority.SetValue(string(t.Priority))
	if t.DueDate != nil {
		f.due.SetValue(t.DueDate.Format(dueDateLayout))
	}
	f.notes.SetValue(t.Notes)
}

func (f *taskForm) refocus() {
	f.title.Blur()
	f.desc.Blur()
	f.priority.Blur()
	f.due.Blur()
	f.notes.Blur()
	switch f.focusIdx {
	case 0:
		f.title.Focus()
	case 1:
		f.desc.Focus()
	case 2:
		f.priority.Focus()
	case 3:
		f.due.Focus()
	case 4:
		f.notes.Focus()
	}
}

func (f *taskForm) cycle(dir int) {
	f.focusIdx = (f.focusIdx + dir + 6) % 6
	f.refocus()
}

// parsePriority is forgiving: prefixes work, anything else is medium.
func parsePriority(s string) models.Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return models.PriorityLow
	case "high", "h":
		return models.PriorityHigh
	default:
		return models.PriorityMedium
	}
}

func (v *BoardView) updateTaskForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &v.taskForm

	switch {
	case key.Matches(msg, v.keys.Back):
		v.store.CloseTaskModal()
		v.mode = modeNormal
		return v, nil

	case msg.String() == "ctrl+s":
		return v.saveTask()

	case msg.String() == "shift+tab":
		f.cycle(-1)
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		f.cycle(1)
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		// Enter advances except in the notes area and on the save button
		if f.focusIdx == 5 {
			return v.saveTask()
		}
		if f.focusIdx != 4 {
			f.cycle(1)
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch f.focusIdx {
	case 0:
		f.title, cmd = f.title.Update(msg)
	case 1:
		f.desc, cmd = f.desc.Update(msg)
	case 2:
		f.priority, cmd = f.priority.Update(msg)
	case 3:
		f.due, cmd = f.due.Update(msg)
	case 4:
		f.notes, cmd = f.notes.Update(msg)
	}
	return v, cmd
}

// saveTask dispatches the form as a create or edit command.
func (v *BoardView) saveTask() (tea.Model, tea.Cmd) {
	f := &v.taskForm
	modal := v.store.State().Modal
	if !modal.Open {
		v.mode = modeNormal
		return v, nil
	}

	priority := parsePriority(f.priority.Value())
	dueStr := strings.TrimSpace(f.due.Value())
	var due *time.Time
	if dueStr != "" {
		if parsed, err := time.Parse(dueDateLayout, dueStr); err == nil {
			due = &parsed
		}
	}
	notes := f.notes.Value()
	desc := f.desc.Value()

	switch modal.Mode {
	case store.ModalCreate:
		task, err := models.NewTask(f.title.Value(), desc)
		if err != nil {
			// Blank title keeps the form open
			return v, nil
		}
		task.Priority = priority
		task.DueDate = due
		task.Notes = notes
		v.store.AddTask(modal.ProjectID, task)
		v.store.MoveTask(modal.ProjectID, task.ID, modal.ColumnID)

	case store.ModalEdit:
		if modal.Task == nil {
			break
		}
		title := f.title.Value()
		patch := models.TaskPatch{
			Title:       &title,
			Description: &desc,
			Priority:    &priority,
			Notes:       &notes,
		}
		if due != nil {
			patch.DueDate = due
		} else {
			patch.ClearDueDate = true
		}
		v.store.UpdateTask(modal.ProjectID, modal.Task.ID, patch)
	}

	v.store.CloseTaskModal()
	v.mode = modeNormal
	return v, nil
}

func (v *BoardView) renderTaskForm() string {
	s := v.styles
	f := &v.taskForm
	contentWidth := styles.ContentWidth(v.width)

	formTitle := "New Task"
	if v.store.State().Modal.Mode == store.ModalEdit {
		formTitle = "Edit Task"
	}

	fieldStyles := [6]lipgloss.Style{s.Input, s.Input, s.Input, s.Input, s.Input, s.Button}
	if f.focusIdx == 5 {
		fieldStyles[5] = s.ButtonFocused
	} else {
		fieldStyles[f.focusIdx] = s.InputFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(formTitle),
		"",
		"Title:",
		fieldStyles[0].Width(inputWidth).Render(f.title.View()),
		"",
		"Description:",
		fieldStyles[1].Width(inputWidth).Render(f.desc.View()),
		"",
		"Priority:",
		fieldStyles[2].Width(24).Render(f.priority.View()),
		"",
		"Due date:",
		fieldStyles[3].Width(24).Render(f.due.View()),
		"",
		"Notes:",
		fieldStyles[4].Render(f.notes.View()),
		"",
		fieldStyles[5].Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

// columnForm holds the inputs for creating or editing a column.
type columnForm struct {
	title    textinput.Model
	typeIdx  int
	editing  bool
	columnID string
	focusIdx int // 0=title, 1=type, 2=save
}

// columnTypes a user can pick. Active is deliberately absent; the seeded
// active column is the only one a project ever has.
var columnTypes = []models.ColumnType{
	models.ColumnTodo,
	models.ColumnInProgress,
	models.ColumnDone,
	models.ColumnCustom,
}

func newColumnForm() columnForm {
	title := textinput.New()
	title.Placeholder = "Column title"
	title.CharLimit = 60
	return columnForm{title: title}
}

func (f *columnForm) reset(editing bool) {
	f.title.Reset()
	f.typeIdx = len(columnTypes) - 1 // custom
	f.editing = editing
	f.columnID = ""
	f.focusIdx = 0
	f.title.Focus()
}

func (f *columnForm) load(c *models.Column) {
	f.reset(true)
	f.columnID = c.ID
	f.title.SetValue(c.Title)
	for i, t := range columnTypes {
		if t == c.Type {
			f.typeIdx = i
		}
	}
}

func (v *BoardView) updateColumnForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &v.columnForm

	switch {
	case key.Matches(msg, v.keys.Back):
		v.mode = modeNormal
		return v, nil

	case msg.String() == "ctrl+s":
		return v.saveColumn()

	case key.Matches(msg, v.keys.Tab):
		f.focusIdx = (f.focusIdx + 1) % 3
		if f.focusIdx == 0 {
			f.title.Focus()
		} else {
			f.title.Blur()
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if f.focusIdx == 2 {
			return v.saveColumn()
		}
		f.focusIdx++
		if f.focusIdx != 0 {
			f.title.Blur()
		}
		return v, nil
	}

	if f.focusIdx == 1 {
		switch msg.String() {
		case "left", "h":
			f.typeIdx = (f.typeIdx + len(columnTypes) - 1) % len(columnTypes)
			return v, nil
		case "right", "l", " ":
			f.typeIdx = (f.typeIdx + 1) % len(columnTypes)
			return v, nil
		}
	}

	var cmd tea.Cmd
	if f.focusIdx == 0 {
		f.title, cmd = f.title.Update(msg)
	}
	return v, cmd
}

func (v *BoardView) saveColumn() (tea.Model, tea.Cmd) {
	f := &v.columnForm
	p := v.project()
	title := strings.TrimSpace(f.title.Value())
	if p == nil || title == "" {
		return v, nil
	}

	if f.editing {
		typ := columnTypes[f.typeIdx]
		v.store.UpdateColumn(p.ID, f.columnID, models.ColumnPatch{
			Title: &title,
			Type:  &typ,
		})
	} else {
		position := 0
		for _, c := range p.Columns {
			if c.Position >= position {
				position = c.Position + 1
			}
		}
		column := models.NewColumn(title, columnTypes[f.typeIdx], position)
		v.store.AddColumn(p.ID, column)
	}

	v.mode = modeNormal
	return v, nil
}

func (v *BoardView) renderColumnForm() string {
	s := v.styles
	f := &v.columnForm
	contentWidth := styles.ContentWidth(v.width)

	formTitle := "New Column"
	if f.editing {
		formTitle = "Edit Column"
	}

	titleStyle := s.Input
	typeStyle := s.Input
	btnStyle := s.Button
	switch f.focusIdx {
	case 0:
		titleStyle = s.InputFocused
	case 1:
		typeStyle = s.InputFocused
	case 2:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 40)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(formTitle),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(f.title.View()),
		"",
		"Type:",
		typeStyle.Width(inputWidth).Render("◂ "+string(columnTypes[f.typeIdx])+" ▸"),
		"",
		btnStyle.Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • ◂▸: type • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}
