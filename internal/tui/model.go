package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dreamplan/internal/agenda"
	"dreamplan/internal/plan"
	"dreamplan/internal/storage"
	"dreamplan/internal/store"
	"dreamplan/internal/track"
	"dreamplan/internal/ui"
)

type boardModel struct {
	ctx context.Context
	gw  *storage.Gateway

	width  int
	height int

	s   store.Store
	day time.Time

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	s   store.Store
	err error
}

type savedMsg struct {
	s    store.Store
	note string
	err  error
}

// tickMsg drives the running-timer display only; it never writes.
type tickMsg time.Time

func newBoardModel(ctx context.Context, gw *storage.Gateway) boardModel {
	return boardModel{
		ctx:     ctx,
		gw:      gw,
		day:     time.Now(),
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		s, ok, err := m.gw.Load(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		if !ok {
			s = store.Default()
		}
		return loadedMsg{s: s}
	}
}

func (m boardModel) saveCmd(s store.Store, note string) tea.Cmd {
	return func() tea.Msg {
		if err := m.gw.Save(m.ctx, s); err != nil {
			return savedMsg{err: err}
		}
		return savedMsg{s: s, note: note}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m, tick()
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.s = msg.s
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case savedMsg:
		if msg.err != nil {
			m.lastLog = "Save failed: " + msg.err.Error()
			return m, nil
		}
		m.s = msg.s
		m.lastLog = msg.note
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "left", "h":
			m.day = m.day.AddDate(0, 0, -1)
			m.selected = 0
			return m, nil
		case "right", "l":
			m.day = m.day.AddDate(0, 0, 1)
			m.selected = 0
			return m, nil
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if rows := m.rows(); m.selected < len(rows)-1 {
				m.selected++
			}
			return m, nil
		case "enter", " ":
			rows := m.rows()
			if m.selected < 0 || m.selected >= len(rows) {
				return m, nil
			}
			a := rows[m.selected]
			if a.Status == store.ActionDone {
				m.lastLog = "Already done."
				return m, nil
			}
			next, err := agenda.CompleteAction(m.s, a.ID, time.Now())
			if err != nil {
				m.lastLog = err.Error()
				return m, nil
			}
			return m, m.saveCmd(next, "Done: "+a.Title)
		case "s":
			if running := m.s.RunningSession(); running != nil {
				next := track.StopSession(m.s, time.Now())
				return m, m.saveCmd(next, "Timer stopped.")
			}
			m.lastLog = "No running timer; start one with `dp track start`."
			return m, nil
		}
	}
	return m, nil
}

// rows returns the day's actions in display order: timed, untimed, done.
func (m boardModel) rows() []store.Action {
	p := agenda.PlanFor(m.s, store.DayKey(m.day))
	out := make([]store.Action, 0, len(p.Timed)+len(p.Untimed)+len(p.Done))
	out = append(out, p.Timed...)
	out = append(out, p.Untimed...)
	out = append(out, p.Done...)
	return out
}

func (m boardModel) View() string {
	if m.loading {
		return ui.Muted.Render("Loading…")
	}
	if m.err != nil {
		return ui.Bad.Render(ui.IconError + " " + m.err.Error())
	}

	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconAction, "Day board · "+m.day.Format("Mon 2 Jan 2006")) + "\n")

	if focused := plan.FocusedDreams(m.s); len(focused) > 0 {
		parts := make([]string, 0, len(focused))
		for _, d := range focused {
			icon := ui.IconFocus
			if d.IsLeading {
				icon = ui.IconLeading
			}
			parts = append(parts, icon+" "+d.Title)
		}
		b.WriteString(ui.Dim.Render("In focus: "+strings.Join(parts, "  ")) + "\n")
	}

	if running := m.s.RunningSession(); running != nil {
		name := running.ActivityID
		if a := m.s.ActivityByID(running.ActivityID); a != nil {
			name = a.Icon + " " + a.Name
		}
		elapsed := track.Elapsed(*running, time.Now()).Truncate(time.Second)
		b.WriteString(ui.Gold.Render(fmt.Sprintf("%s %s %s", ui.IconClock, name, elapsed)) + ui.Muted.Render("  (s to stop)") + "\n")
	}
	b.WriteString("\n")

	rows := m.rows()
	if len(rows) == 0 {
		b.WriteString(ui.Muted.Render("Nothing planned for this day.") + "\n")
	}
	for i, a := range rows {
		line := m.renderRow(a)
		if i == m.selected {
			line = ui.SelectedRow.Render(line)
		}
		b.WriteString(line + "\n")
	}

	p := agenda.PlanFor(m.s, store.DayKey(m.day))
	if len(p.Undated) > 0 {
		b.WriteString("\n" + ui.H2.Render(fmt.Sprintf("Backlog (%d undated)", len(p.Undated))) + "\n")
	}

	b.WriteString("\n" + ui.Muted.Render("←/→ day · ↑/↓ select · enter complete · s stop timer · r refresh · q quit"))
	if m.lastLog != "" {
		b.WriteString("\n" + ui.Dim.Render(m.lastLog))
	}
	return b.String()
}

func (m boardModel) renderRow(a store.Action) string {
	mark := "[ ]"
	if a.Status == store.ActionDone {
		mark = "[x]"
	}
	at := "     "
	if a.Time != "" {
		at = a.Time
	}
	title := a.Title
	if a.Status == store.ActionDone {
		title = ui.Muted.Render(title)
	}
	extra := ""
	if n := len(a.Subtasks); n > 0 {
		done := 0
		for _, sub := range a.Subtasks {
			if sub.IsCompleted {
				done++
			}
		}
		extra = ui.Muted.Render(fmt.Sprintf(" (%d/%d)", done, n))
	}
	return fmt.Sprintf("%s %s %s%s", mark, ui.Dim.Render(at), title, extra)
}
