package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/kandoro/internal/ui/styles"
)

// formatClock renders seconds as MM:SS.
func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// renderTimer draws the pomodoro pane above the board.
func (v *BoardView) renderTimer() string {
	s := v.styles
	snapshot := v.store.State()
	p := snapshot.Pomodoro

	sessionStyle := s.TimerRunning
	session := "Work Session"
	total := v.store.WorkSessionSeconds()
	if !p.IsWorkSession {
		sessionStyle = s.TimerBreak
		session = "Break Time"
		total = v.store.BreakSessionSeconds()
	}

	state := "paused"
	if p.IsActive {
		state = "running"
	}

	clock := s.TimerClock.Render(formatClock(p.TimeRemaining))
	bar := renderProgress(total, p.TimeRemaining, 24)

	focus := s.TitleMuted.Render("no focused task")
	if t := snapshot.CurrentTask(); t != nil {
		focus = s.CardFocused.Render("▶ " + t.Title)
	}

	line := strings.Join([]string{
		sessionStyle.Render(session),
		clock,
		bar,
		s.TitleMuted.Render(state),
		s.TitleMuted.Render(fmt.Sprintf("%d done", p.CompletedPomodoros)),
		focus,
	}, "   ")

	return s.Timer.Render(line)
}

// renderProgress draws a simple elapsed-time bar.
func renderProgress(total, remaining, width int) string {
	if total <= 0 {
		total = 1
	}
	elapsed := total - remaining
	if elapsed < 0 {
		elapsed = 0
	}
	filled := elapsed * width / total
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(styles.Current.Primary).Render(bar)
}
