package storage

import (
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"github.com/tgienger/kandoro/internal/models"
)

// settingActiveProject remembers which project was selected across runs.
const settingActiveProject = "active_project_id"

// Load reads the full project collection and the saved active project id.
// Malformed rows degrade instead of failing the load: unknown enum values
// fall back to defaults, negative counters clamp to zero, unparseable
// task-id lists become empty and zero timestamps become now.
func (db *DB) Load() ([]*models.Project, string, error) {
	rows, err := db.Query(`
		SELECT id, name, description, created_at, updated_at
		FROM projects ORDER BY created_at
	`)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p := &models.Project{}
		var created, updated sql.NullTime
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &created, &updated); err != nil {
			return nil, "", err
		}
		p.CreatedAt = timeOrNow(created)
		p.UpdatedAt = timeOrNow(updated)
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	for _, p := range projects {
		if p.Columns, err = db.loadColumns(p.ID); err != nil {
			return nil, "", err
		}
		if p.Tasks, err = db.loadTasks(p.ID); err != nil {
			return nil, "", err
		}
	}

	activeID, err := db.GetSetting(settingActiveProject)
	if err != nil {
		return nil, "", err
	}
	return projects, activeID, nil
}

func (db *DB) loadColumns(projectID string) ([]*models.Column, error) {
	rows, err := db.Query(`
		SELECT id, title, type, task_ids, position, created_at
		FROM columns WHERE project_id = ? ORDER BY position
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []*models.Column
	for rows.Next() {
		c := &models.Column{}
		var taskIDs string
		var typ string
		var created sql.NullTime
		if err := rows.Scan(&c.ID, &c.Title, &typ, &taskIDs, &c.Position, &created); err != nil {
			return nil, err
		}
		c.Type = models.ColumnType(typ)
		if !models.ValidColumnType(c.Type) {
			c.Type = models.ColumnCustom
		}
		if err := json.Unmarshal([]byte(taskIDs), &c.TaskIDs); err != nil {
			log.Printf("storage: column %s has malformed task ids, dropping order: %v", c.ID, err)
			c.TaskIDs = nil
		}
		c.CreatedAt = timeOrNow(created)
		columns = append(columns, c)
	}
	return columns, rows.Err()
}

func (db *DB) loadTasks(projectID string) ([]*models.Task, error) {
	rows, err := db.Query(`
		SELECT id, title, description, status, priority, pomodoro_count,
		       work_seconds, due_date, notes, created_at, updated_at
		FROM tasks WHERE project_id = ? ORDER BY created_at
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		t := &models.Task{}
		var status, priority string
		var due, created, updated sql.NullTime
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &status, &priority,
			&t.PomodoroCount, &t.WorkSeconds, &due, &t.Notes, &created, &updated); err != nil {
			return nil, err
		}
		t.Status = models.TaskStatus(status)
		if !models.ValidStatus(t.Status) {
			t.Status = models.StatusTodo
		}
		t.Priority = models.Priority(priority)
		if !models.ValidPriority(t.Priority) {
			t.Priority = models.PriorityMedium
		}
		if t.PomodoroCount < 0 {
			t.PomodoroCount = 0
		}
		if t.WorkSeconds < 0 {
			t.WorkSeconds = 0
		}
		if due.Valid {
			d := due.Time
			t.DueDate = &d
		}
		t.CreatedAt = timeOrNow(created)
		t.UpdatedAt = timeOrNow(updated)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Save rewrites the persisted collection in one transaction. At this scale
// a full rewrite is simpler than diffing, and the transaction keeps a
// half-written state from ever being observable.
func (db *DB) Save(projects []*models.Project, activeProjectID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Children first; the cascade would cover them but being explicit
	// keeps the rewrite independent of the foreign-key pragma.
	for _, table := range []string{"tasks", "columns", "projects"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	for _, p := range projects {
		if _, err := tx.Exec(`
			INSERT INTO projects (id, name, description, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, p.ID, p.Name, p.Description, p.CreatedAt, p.UpdatedAt); err != nil {
			return err
		}
		for _, c := range p.Columns {
			taskIDs, err := json.Marshal(orEmpty(c.TaskIDs))
			if err != nil {
				return err
			}
			if _, err := tx.Exec(`
				INSERT INTO columns (id, project_id, title, type, task_ids, position, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, c.ID, p.ID, c.Title, string(c.Type), string(taskIDs), c.Position, c.CreatedAt); err != nil {
				return err
			}
		}
		for _, t := range p.Tasks {
			var due interface{}
			if t.DueDate != nil {
				due = *t.DueDate
			}
			if _, err := tx.Exec(`
				INSERT INTO tasks (id, project_id, title, description, status, priority,
					pomodoro_count, work_seconds, due_date, notes, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, t.ID, p.ID, t.Title, t.Description, string(t.Status), string(t.Priority),
				t.PomodoroCount, t.WorkSeconds, due, t.Notes, t.CreatedAt, t.UpdatedAt); err != nil {
				return err
			}
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, settingActiveProject, activeProjectID); err != nil {
		return err
	}

	return tx.Commit()
}

func timeOrNow(t sql.NullTime) time.Time {
	if t.Valid && !t.Time.IsZero() {
		return t.Time
	}
	return time.Now()
}

func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
