package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// — styles ——————————————————————————————————————————————————————————————————

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	dimStyle   = lipgloss.NewStyle().Faint(true)
	labelStyle = lipgloss.NewStyle().Faint(true)

	helpStyle = lipgloss.NewStyle().
			Faint(true).
			PaddingLeft(2)

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Foreground(lipgloss.Color("214")).
			Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1, 3)

	submitStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Padding(0, 2)

	submitBusyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("241")).
			Padding(0, 2)
)

// — markdown ————————————————————————————————————————————————————————————————

// renderMarkdown styles the plan for the terminal. Glamour handles headings,
// lists, links, inline code, and fenced blocks; code in an unknown language
// falls back to its plaintext style. On any renderer error the raw markdown
// is still readable, so return it as-is.
func renderMarkdown(md string, width int) string {
	if width <= 0 {
		width = 80
	}
	wrap := width - 4
	if wrap > 100 {
		wrap = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// — view ————————————————————————————————————————————————————————————————————

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	var body string
	switch m.state {
	case stateLanding:
		body = m.renderLanding()
	case stateResult:
		body = m.renderResult()
	default: // form and submitting share the form layout
		body = m.renderForm()
	}

	sections := []string{}
	if m.noticeVisible {
		sections = append(sections, m.renderBanner())
	}
	sections = append(sections, body, m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// — landing —————————————————————————————————————————————————————————————————

func (m Model) renderLanding() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("repoplan") + "\n\n")
	b.WriteString("Point it at a repository, describe a feature, and get back\n")
	b.WriteString("an implementation plan: summary, steps, setup, and the files\n")
	b.WriteString("worth reading first.\n\n")
	b.WriteString(dimStyle.Render("No sign-up, no local checkout; analysis runs on the backend."))

	panel := panelStyle.Render(b.String())
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, panel)
}

// — form ————————————————————————————————————————————————————————————————————

func (m Model) renderForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Plan a feature") + "\n\n")
	b.WriteString(labelStyle.Render("Repository URL") + "\n")
	b.WriteString(m.urlInput.View() + "\n\n")
	b.WriteString(labelStyle.Render("Feature query") + "\n")
	b.WriteString(m.queryInput.View() + "\n\n")
	b.WriteString(m.renderSubmit())

	panel := panelStyle.Render(b.String())
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, panel)
}

// renderSubmit is the submit control: a button-looking label that turns into
// a busy indicator while the request is in flight.
func (m Model) renderSubmit() string {
	if m.state == stateSubmitting {
		frame := spinnerFrames[m.spinnerFrame]
		return submitBusyStyle.Render(frame+" Analyzing…") +
			"  " + dimStyle.Render("this can take a minute")
	}
	return submitStyle.Render("Generate plan")
}

// — result ——————————————————————————————————————————————————————————————————

func (m Model) renderResult() string {
	head := titleStyle.Render("Implementation plan") +
		"  " + dimStyle.Render("n new query")
	return head + "\n" + m.view.View()
}

// — notification banner —————————————————————————————————————————————————————

func (m Model) renderBanner() string {
	text := m.notice + "  " + dimStyle.Render("esc dismiss")
	banner := bannerStyle.MaxWidth(m.width).Render(text)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, banner)
}

// — help ————————————————————————————————————————————————————————————————————

func (m Model) renderHelp() string {
	var text string
	switch m.state {
	case stateLanding:
		text = "Enter start   q quit"
	case stateForm:
		text = "Tab switch field   Enter/Ctrl+s submit   Esc back"
	case stateSubmitting:
		text = "Waiting for the backend…   Ctrl+c quit"
	default:
		text = "↑/↓ scroll   n new query   q quit"
	}
	sep := dimStyle.Render(strings.Repeat("─", max(m.width, 0)))
	return sep + "\n" + helpStyle.Render(text)
}

// — layout helpers ——————————————————————————————————————————————————————————

func (m Model) inputWidth() int {
	w := m.width - 16
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// bodyHeight is what remains for the main view after the help footer and,
// when visible, the notification banner.
func (m Model) bodyHeight() int {
	h := m.height - 2
	if m.noticeVisible {
		h -= 3
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) resultHeight() int {
	return m.bodyHeight() - 1
}
