package tui

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"repoplan/internal/api"
	"repoplan/internal/plan"
)

// — state ———————————————————————————————————————————————————————————————————

type appState int

const (
	stateLanding appState = iota
	stateForm
	stateSubmitting
	stateResult
)

// Notification wording is part of the contract with users; keep it stable.
const (
	noticeMissingFields = "Please fill in both the URL and query fields."
	noticeInvalidURL    = "Please enter a valid URL."
	noticeBadStatus     = "Failed to receive data."
	noticeNoConnection  = "Failed to connect to the server."
)

// — spinner —————————————————————————————————————————————————————————————————

var spinnerFrames = []string{"|", "/", "-", "\\"}

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// — messages ————————————————————————————————————————————————————————————————

type planReceivedMsg struct {
	analysis *plan.Analysis
	err      error
}

// — model ———————————————————————————————————————————————————————————————————

type focusTarget int

const (
	focusURL focusTarget = iota
	focusQuery
)

// Model owns every piece of mutable view state: the two input buffers, the
// in-flight flag (as stateSubmitting), the result markdown, and the
// notification banner. Child components hold no state of their own.
type Model struct {
	state  appState
	width  int
	height int

	urlInput   textinput.Model
	queryInput textarea.Model
	focus      focusTarget

	result   string // markdown as returned by plan.Analysis.Markdown
	rendered string // glamour output shown in the viewport
	view     viewport.Model

	notice        string
	noticeVisible bool

	spinnerFrame int

	client *api.Client
	log    *zap.Logger
}

func New(client *api.Client, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "https://github.com/owner/repo"
	ti.CharLimit = 300

	ta := textarea.New()
	ta.Placeholder = "Describe the feature you want to add…"
	ta.CharLimit = 2000
	ta.SetHeight(5)

	return Model{
		state:      stateLanding,
		urlInput:   ti,
		queryInput: ta,
		view:       viewport.New(0, 0),
		client:     client,
		log:        log,
	}
}

// — commands ————————————————————————————————————————————————————————————————

func submitCmd(client *api.Client, repoURL, feature string) tea.Cmd {
	return func() tea.Msg {
		a, err := client.Process(context.Background(), repoURL, feature)
		return planReceivedMsg{analysis: a, err: err}
	}
}

// — validation ——————————————————————————————————————————————————————————————

// validate applies the submit preconditions to trimmed input values and
// returns the notification text for the first violated one.
func validate(repoURL, feature string) (notice string, ok bool) {
	if repoURL == "" || feature == "" {
		return noticeMissingFields, false
	}
	u, err := url.Parse(repoURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return noticeInvalidURL, false
	}
	return "", true
}

// — tea.Model ———————————————————————————————————————————————————————————————

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.urlInput.Width = m.inputWidth()
		m.queryInput.SetWidth(m.inputWidth())
		m.view.Width = m.width
		m.view.Height = m.resultHeight()
		if m.result != "" {
			m.rendered = renderMarkdown(m.result, m.width)
			m.view.SetContent(m.rendered)
		}
		return m, nil

	case tickMsg:
		if m.state != stateSubmitting {
			return m, nil
		}
		m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerFrames)
		return m, tickCmd()

	case planReceivedMsg:
		return m.receivePlan(msg)
	}

	switch m.state {
	case stateLanding:
		return m.updateLanding(msg)
	case stateForm:
		return m.updateForm(msg)
	case stateSubmitting:
		return m.updateSubmitting(msg)
	default:
		return m.updateResult(msg)
	}
}

func (m Model) receivePlan(msg planReceivedMsg) (tea.Model, tea.Cmd) {
	if m.state != stateSubmitting {
		// Stale response after a reset; drop it.
		return m, nil
	}

	if msg.err != nil {
		m.state = stateForm
		var statusErr *api.StatusError
		if errors.As(msg.err, &statusErr) {
			m.showNotice(noticeBadStatus)
		} else {
			m.showNotice(noticeNoConnection)
		}
		return m, m.focusCmd()
	}

	m.result = msg.analysis.Markdown()
	m.rendered = renderMarkdown(m.result, m.width)
	m.view.Width = m.width
	m.view.Height = m.resultHeight()
	m.view.SetContent(m.rendered)
	m.view.GotoTop()
	m.dismissNotice()
	m.state = stateResult
	return m, nil
}

// — per-state input handling ————————————————————————————————————————————————

func (m Model) updateLanding(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			m.state = stateForm
			m.focus = focusURL
			return m, tea.Batch(m.focusCmd(), textinput.Blink)
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.noticeVisible {
				m.dismissNotice()
				return m, nil
			}
			m.state = stateLanding
			m.blurInputs()
			return m, nil
		case "tab", "shift+tab":
			if m.focus == focusURL {
				m.focus = focusQuery
			} else {
				m.focus = focusURL
			}
			return m, m.focusCmd()
		case "ctrl+s":
			return m.submit()
		case "enter":
			// Enter submits from the URL field; in the query textarea it
			// inserts a newline like any multi-line editor.
			if m.focus == focusURL {
				return m.submit()
			}
		}
	}
	return m.updateInputs(msg)
}

func (m Model) updateSubmitting(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.noticeVisible {
				m.dismissNotice()
			}
			return m, nil
		}
		// Submit is ignored while a request is in flight; there is no
		// second concurrent request to guard against.
		return m, nil
	}
	return m, nil
}

func (m Model) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.noticeVisible {
				m.dismissNotice()
				return m, nil
			}
			return m.reset()
		case "n":
			return m.reset()
		}
	}
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// — transitions —————————————————————————————————————————————————————————————

// submit validates the trimmed inputs and either surfaces a notification or
// fires exactly one request. The trimmed values are what goes on the wire.
func (m Model) submit() (tea.Model, tea.Cmd) {
	repoURL := strings.TrimSpace(m.urlInput.Value())
	feature := strings.TrimSpace(m.queryInput.Value())

	if notice, ok := validate(repoURL, feature); !ok {
		m.showNotice(notice)
		return m, nil
	}

	m.dismissNotice()
	m.state = stateSubmitting
	m.spinnerFrame = 0
	m.blurInputs()
	m.log.Info("submitting", zap.String("repo_url", repoURL))
	return m, tea.Batch(submitCmd(m.client, repoURL, feature), tickCmd())
}

// reset returns to the form, clearing the query, the result, and any
// notification. The URL field survives so a follow-up query against the same
// repository needs no retyping.
func (m Model) reset() (tea.Model, tea.Cmd) {
	m.queryInput.Reset()
	m.result = ""
	m.rendered = ""
	m.dismissNotice()
	m.state = stateForm
	m.focus = focusQuery
	return m, tea.Batch(m.focusCmd(), textinput.Blink)
}

func (m *Model) showNotice(text string) {
	m.notice = text
	m.noticeVisible = true
}

func (m *Model) dismissNotice() {
	m.notice = ""
	m.noticeVisible = false
}

// — input plumbing ——————————————————————————————————————————————————————————

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == focusURL {
		m.urlInput, cmd = m.urlInput.Update(msg)
	} else {
		m.queryInput, cmd = m.queryInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) focusCmd() tea.Cmd {
	if m.focus == focusURL {
		m.queryInput.Blur()
		return m.urlInput.Focus()
	}
	m.urlInput.Blur()
	return m.queryInput.Focus()
}

func (m *Model) blurInputs() {
	m.urlInput.Blur()
	m.queryInput.Blur()
}
