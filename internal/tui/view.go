package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sumire/bugs/internal/domain"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5F5F5")).Background(lipgloss.Color("#5A4FCF")).Padding(0, 1)
	sectionStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#3C3C3C"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	labelStyle    = lipgloss.NewStyle().Bold(true).Width(14)
	focusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A4FCF")).Bold(true)
	detailStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#5A4FCF")).Padding(0, 1).MarginTop(1)

	statusStyles = map[domain.Status]lipgloss.Style{
		domain.StatusOpen:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00")),
		domain.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF")),
		domain.StatusResolved:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")),
	}
)

// severityLabel returns the display form of a severity. Values outside
// the enumeration are shown as stored.
func severityLabel(s domain.Severity) string {
	switch s {
	case domain.SeverityLow:
		return "🟢 Low"
	case domain.SeverityMedium:
		return "🟡 Medium"
	case domain.SeverityHigh:
		return "🟠 High"
	case domain.SeverityCritical:
		return "🔴 Critical"
	default:
		return string(s)
	}
}

func statusBadge(s domain.Status) string {
	text := fmt.Sprintf("%-11s", s)
	if style, ok := statusStyles[s]; ok {
		return style.Render(text)
	}
	return text
}

// View renders the current screen.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Bug Tracker"))
	b.WriteString("\n")

	switch m.mode {
	case modeForm:
		b.WriteString(m.viewForm())
	default:
		b.WriteString(m.viewList())
	}

	b.WriteString("\n")
	b.WriteString(m.viewStatusBar())
	return b.String()
}

func (m Model) viewList() string {
	var b strings.Builder

	switch {
	case m.state.Loading:
		b.WriteString(faintStyle.Render("Loading bugs..."))
		return b.String()
	case m.state.Err != "":
		b.WriteString(errorStyle.Render(m.state.Err))
		return b.String()
	case len(m.state.Bugs) == 0:
		b.WriteString(sectionStyle.Render("No bugs reported yet"))
		b.WriteString("\n")
		b.WriteString(faintStyle.Render("Press n to report a new bug."))
		return b.String()
	}

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Reported Bugs (%d)", len(m.state.Bugs))))
	b.WriteString("\n")

	for i, bug := range m.state.Bugs {
		row := fmt.Sprintf("%s %-12s %s", statusBadge(bug.Status), severityLabel(bug.Severity), bug.Title)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	if bug, ok := m.selected(); ok {
		b.WriteString(m.viewDetail(bug))
	}

	if m.mode == modeConfirmDelete {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Are you sure you want to delete this bug? (y/N)"))
	}
	return b.String()
}

func (m Model) viewDetail(bug domain.Bug) string {
	assignee := bug.AssignedTo
	if assignee == "" {
		assignee = domain.DefaultAssignee
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(bug.Title),
		bug.Description,
		"",
		labelStyle.Render("Status:") + string(bug.Status),
		labelStyle.Render("Severity:") + severityLabel(bug.Severity),
		labelStyle.Render("Assigned to:") + assignee,
		labelStyle.Render("Reported:") + bug.CreatedAt.Local().Format("2006-01-02 15:04:05"),
	}

	style := detailStyle
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) viewForm() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Report a Bug"))
	b.WriteString("\n")

	if m.formErr != "" {
		b.WriteString(errorStyle.Render(m.formErr))
		b.WriteString("\n")
	}

	field := func(f formField, label, value string) {
		if m.form.focus == f {
			label = focusStyle.Render(label)
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	field(fieldTitle, "Title *", m.form.title.View())
	field(fieldDescription, "Description *", m.form.description.View())
	field(fieldSeverity, "Severity", "‹ "+severityLabel(domain.Severities[m.form.severity])+" ›")
	field(fieldAssignee, "Assigned To", m.form.assignee.View())

	if m.busy {
		b.WriteString(faintStyle.Render("Submitting..."))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewStatusBar() string {
	if m.notice != "" {
		return errorStyle.Render(m.notice)
	}

	var help string
	switch m.mode {
	case modeForm:
		help = "Tab next · S-Tab prev · ←/→ severity · C-s submit · Esc cancel"
	case modeConfirmDelete:
		help = "y delete · any other key cancels"
	default:
		counts := m.state.CountByStatus()
		help = fmt.Sprintf("open %d · in progress %d · resolved %d   n new · o/p/r status · d delete · C-r refresh · q quit",
			counts[domain.StatusOpen], counts[domain.StatusInProgress], counts[domain.StatusResolved])
	}
	return faintStyle.Render(help)
}
