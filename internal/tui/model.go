package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sumire/bugs/internal/board"
	"github.com/sumire/bugs/internal/client"
	"github.com/sumire/bugs/internal/domain"
)

// API is the subset of the REST client the TUI needs.
type API interface {
	List(ctx context.Context) ([]domain.Bug, error)
	Create(ctx context.Context, p domain.BugPayload) (*domain.Bug, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Bug, error)
	Delete(ctx context.Context, id string) (*client.DeleteResult, error)
}

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirmDelete
)

// requestTimeout bounds every API call made from the TUI.
const requestTimeout = 10 * time.Second

// Messages delivered when an API call returns.
type (
	fetchedMsg struct {
		bugs []domain.Bug
		err  error
	}
	createdMsg struct {
		bug *domain.Bug
		err error
	}
	updatedMsg struct {
		bug *domain.Bug
		err error
	}
	deletedMsg struct {
		id  string
		err error
	}
)

// Model is the bubbletea model for the bug tracker client. The bug list
// lives in a board.State and changes only through board.Reduce after a
// server response arrives.
type Model struct {
	api    API
	keys   KeyMap
	logger *slog.Logger

	state  board.State
	cursor int
	mode   mode
	form   bugForm

	// busy is set while a mutation is in flight; further mutations are
	// ignored until it completes.
	busy bool

	// notice is a transient error shown in the status bar.
	notice string
	// formErr is shown above the form.
	formErr string

	width  int
	height int
}

// NewModel creates a Model backed by api. A nil logger discards logs.
func NewModel(api API, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return Model{
		api:    api,
		keys:   DefaultKeyMap,
		logger: logger,
		form:   newBugForm(),
		state:  board.Reduce(board.State{}, board.FetchStarted{}),
	}
}

// State returns the current bug list state.
func (m Model) State() board.State {
	return m.state
}

// Init starts the initial fetch.
func (m Model) Init() tea.Cmd {
	return fetchBugs(m.api)
}

func fetchBugs(api API) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		bugs, err := api.List(ctx)
		return fetchedMsg{bugs: bugs, err: err}
	}
}

// Update handles a bubbletea message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case fetchedMsg:
		if msg.err != nil {
			m.logger.Error("fetch bugs failed", "error", msg.err)
			m.state = board.Reduce(m.state, board.FetchFailed{Err: "Failed to fetch bugs. Please try again later."})
			return m, nil
		}
		m.state = board.Reduce(m.state, board.Fetched{Bugs: msg.bugs})
		m.clampCursor()
		return m, nil

	case createdMsg:
		m.busy = false
		if msg.err != nil {
			m.logger.Error("create bug failed", "error", msg.err)
			m.formErr = "Failed to create bug. Please try again."
			return m, nil
		}
		m.state = board.Reduce(m.state, board.Added{Bug: *msg.bug})
		m.form = newBugForm()
		m.formErr = ""
		m.mode = modeList
		m.cursor = 0
		return m, nil

	case updatedMsg:
		m.busy = false
		if msg.err != nil {
			m.logger.Error("update bug status failed", "error", msg.err)
			m.notice = "Failed to update status"
			return m, nil
		}
		m.state = board.Reduce(m.state, board.Updated{Bug: *msg.bug})
		return m, nil

	case deletedMsg:
		m.busy = false
		if msg.err != nil {
			m.logger.Error("delete bug failed", "bug_id", msg.id, "error", msg.err)
			m.notice = "Failed to delete bug"
			return m, nil
		}
		m.state = board.Reduce(m.state, board.Removed{ID: msg.id})
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.handleFormKeys(msg)
		case modeConfirmDelete:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleListKeys(msg)
		}
	}
	return m, nil
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.state.Bugs)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Refresh):
		m.state = board.Reduce(m.state, board.FetchStarted{})
		return m, fetchBugs(m.api)

	case key.Matches(msg, m.keys.New):
		m.mode = modeForm
		m.formErr = ""
		m.form.setFocus(fieldTitle)

	case key.Matches(msg, m.keys.MarkOpen):
		cmd := m.changeStatus(domain.StatusOpen)
		return m, cmd

	case key.Matches(msg, m.keys.MarkInProgress):
		cmd := m.changeStatus(domain.StatusInProgress)
		return m, cmd

	case key.Matches(msg, m.keys.MarkResolved):
		cmd := m.changeStatus(domain.StatusResolved)
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.selected(); ok && !m.busy {
			m.mode = modeConfirmDelete
		}
	}
	return m, nil
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeList
	if !key.Matches(msg, m.keys.Confirm) {
		return m, nil
	}

	bug, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.busy = true
	api := m.api
	id := bug.ID
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := api.Delete(ctx, id)
		return deletedMsg{id: id, err: err}
	}
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.formErr = ""
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.form.setFocus(m.form.focus + 1)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.form.setFocus(m.form.focus - 1)
		return m, nil

	case key.Matches(msg, m.keys.Submit), msg.Type == tea.KeyEnter && m.form.focus == fieldAssignee:
		return m.submitForm()
	}

	return m, m.form.update(msg)
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	if !m.form.complete() {
		m.formErr = "Please fill in all required fields"
		return m, nil
	}

	m.formErr = ""
	m.busy = true
	api := m.api
	payload := m.form.payload()
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		bug, err := api.Create(ctx, payload)
		return createdMsg{bug: bug, err: err}
	}
}

// changeStatus issues a status update for the selected bug unless it
// already has that status.
func (m *Model) changeStatus(status domain.Status) tea.Cmd {
	bug, ok := m.selected()
	if !ok || bug.Status == status || m.busy {
		return nil
	}

	m.busy = true
	api := m.api
	id := bug.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		updated, err := api.UpdateStatus(ctx, id, status)
		return updatedMsg{bug: updated, err: err}
	}
}

func (m Model) selected() (domain.Bug, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Bugs) {
		return domain.Bug{}, false
	}
	return m.state.Bugs[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.state.Bugs) {
		m.cursor = len(m.state.Bugs) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
