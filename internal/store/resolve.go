package store

import (
	"github.com/tgienger/kandoro/internal/models"
)

// ResolveCurrentTaskID computes which task the pomodoro timer should track.
// It is a pure function of the project collection, the previously focused
// task and the active project selection:
//
//   - no active project, unknown project, or no active-type column -> ""
//   - preferredTaskID still sits in the active column -> preferredTaskID,
//     so unrelated edits never steal the user's focus
//   - otherwise the first task id in the active column, or "" if empty
//
// The store re-runs this after every structural mutation so the focused-task
// pointer can never dangle.
func ResolveCurrentTaskID(projects []*models.Project, preferredTaskID, activeProjectID string) string {
	if activeProjectID == "" {
		return ""
	}
	var project *models.Project
	for _, p := range projects {
		if p.ID == activeProjectID {
			project = p
			break
		}
	}
	if project == nil {
		return ""
	}

	active := project.ActiveColumn()
	if active == nil {
		return ""
	}

	if preferredTaskID != "" && active.HasTask(preferredTaskID) {
		return preferredTaskID
	}
	if len(active.TaskIDs) > 0 {
		return active.TaskIDs[0]
	}
	return ""
}
