package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sumire/bugs/internal/domain"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldSeverity
	fieldAssignee
	fieldCount
)

// bugForm collects a new bug report. Severity starts at medium and the
// assignee may be left blank.
type bugForm struct {
	title       textinput.Model
	description textinput.Model
	assignee    textinput.Model
	severity    int
	focus       formField
}

func newBugForm() bugForm {
	title := textinput.New()
	title.Placeholder = "Brief description of the bug"
	title.CharLimit = 200

	description := textinput.New()
	description.Placeholder = "Detailed explanation of the bug"

	assignee := textinput.New()
	assignee.Placeholder = "Leave blank if unassigned"
	assignee.CharLimit = 100

	form := bugForm{
		title:       title,
		description: description,
		assignee:    assignee,
		severity:    severityIndex(domain.SeverityMedium),
	}
	form.setFocus(fieldTitle)
	return form
}

func severityIndex(s domain.Severity) int {
	for i, v := range domain.Severities {
		if v == s {
			return i
		}
	}
	return 0
}

func (f *bugForm) setFocus(field formField) {
	f.focus = (field + fieldCount) % fieldCount
	f.title.Blur()
	f.description.Blur()
	f.assignee.Blur()
	switch f.focus {
	case fieldTitle:
		f.title.Focus()
	case fieldDescription:
		f.description.Focus()
	case fieldAssignee:
		f.assignee.Focus()
	}
}

func (f *bugForm) cycleSeverity(delta int) {
	n := len(domain.Severities)
	f.severity = ((f.severity+delta)%n + n) % n
}

// update routes a key press to the focused field.
func (f *bugForm) update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldAssignee:
		f.assignee, cmd = f.assignee.Update(msg)
	case fieldSeverity:
		switch msg.String() {
		case "left", "h":
			f.cycleSeverity(-1)
		case "right", "l", " ":
			f.cycleSeverity(1)
		}
	}
	return cmd
}

// complete reports whether the required fields hold more than whitespace.
func (f bugForm) complete() bool {
	return strings.TrimSpace(f.title.Value()) != "" &&
		strings.TrimSpace(f.description.Value()) != ""
}

func (f bugForm) payload() domain.BugPayload {
	title := f.title.Value()
	description := f.description.Value()
	severity := domain.Severities[f.severity]
	assignee := strings.TrimSpace(f.assignee.Value())
	return domain.BugPayload{
		Title:       &title,
		Description: &description,
		Severity:    &severity,
		AssignedTo:  &assignee,
	}
}
