package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dreamplan theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconDream   = "🌙"
	IconPrayer  = "🙏"
	IconFocus   = "👁️"
	IconLeading = "⭐"
	IconGoal    = "🎯"
	IconTrophy  = "🏆"
	IconFlag    = "🚩"
	IconStep    = "🪜"
	IconAction  = "☑️"
	IconClock   = "⏱️"
	IconWallet  = "💰"
	IconFund    = "🛡️"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconSparkle = "✨"
)

var (
	cGold   = lipgloss.Color("178") // the app's signature gold
	cAccent = lipgloss.Color("186")
	cGood   = lipgloss.Color("71")
	cWarn   = lipgloss.Color("214")
	cBad    = lipgloss.Color("167")
	cMuted  = lipgloss.Color("245")
	cPrayer = lipgloss.Color("103")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)
	Pray  = lipgloss.NewStyle().Foreground(cPrayer)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Reverse(true)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func StatusText(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "active", "pending":
		return Warn.Render(status)
	case "done", "completed", "passed", "achieved":
		return Good.Render(status)
	case "failed", "cancelled":
		return Bad.Render(status)
	default:
		return Muted.Render(status)
	}
}

// ProgressBar renders a ten-cell bar for 0..100.
func ProgressBar(pct int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct / 10
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
	return fmt.Sprintf("%s %3d%%", Gold.Render(bar), pct)
}

// Minutes renders a minute count as "1h 05m" / "35m".
func Minutes(m int) string {
	if m >= 60 {
		return fmt.Sprintf("%dh %02dm", m/60, m%60)
	}
	return fmt.Sprintf("%dm", m)
}

// DreamIcon picks the icon for a dream card.
func DreamIcon(isPrayer, isLeading, isFocused bool) string {
	switch {
	case isPrayer:
		return IconPrayer
	case isLeading:
		return IconLeading
	case isFocused:
		return IconFocus
	default:
		return IconDream
	}
}
