// ABOUTME: Bubble Tea chat model for asking questions about processed documents
// ABOUTME: Runs assistant operations off the UI loop and shows a spinner while busy
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harper/document-assistant/internal/core"
	"github.com/harper/document-assistant/internal/models"
	"github.com/harper/document-assistant/internal/storage"
)

// Model is the Bubble Tea model for the chat application
type Model struct {
	ctx        context.Context
	session    *core.Session
	defaultDir string

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	entries []string
	status  string
	busy    bool
	ready   bool
}

// opDoneMsg reports the outcome of a process, save, or load
type opDoneMsg struct {
	notice string
	err    error
}

// answerMsg carries the result of a question
type answerMsg struct {
	answer models.Answer
	err    error
}

// New creates a chat model bound to a session
func New(ctx context.Context, session *core.Session, defaultDir string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question, or /help"
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	m := Model{
		ctx:        ctx,
		session:    session,
		defaultDir: defaultDir,
		input:      ti,
		viewport:   viewport.New(0, 0),
		spinner:    sp,
	}
	m.status = m.readyStatus()
	return m
}

// Init starts the cursor blinking
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window, and operation events
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, bh := transcriptBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + ih + 1 // header lines, status, input box
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved-bh)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case opDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.addEntry(errorStyle.Render("Error: " + msg.err.Error()))
		} else {
			m.addEntry(noticeStyle.Render(msg.notice))
		}
		m.status = m.readyStatus()
		return m, nil

	case answerMsg:
		m.busy = false
		if msg.err != nil {
			m.addEntry(errorStyle.Render("Error: " + msg.err.Error()))
		} else {
			m.addEntry(renderAnswer(msg.answer))
		}
		m.status = m.readyStatus()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		if msg.Type == tea.KeyEnter {
			line := m.input.Value()
			m.input.Reset()
			return m.handleInput(ParseInput(line))
		}
		if msg.Type == tea.KeyPgUp || msg.Type == tea.KeyPgDown {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleInput(in Input) (tea.Model, tea.Cmd) {
	switch in.Kind {
	case InputNone:
		return m, nil

	case InputQuit:
		return m, tea.Quit

	case InputHelp:
		m.addEntry(noticeStyle.Render(helpText))
		return m, nil

	case InputClear:
		m.session.Clear()
		m.entries = nil
		m.refresh()
		m.status = m.readyStatus()
		return m, nil

	case InputUnknown:
		m.addEntry(errorStyle.Render("Unknown command " + in.Text + ". Type /help for commands."))
		return m, nil

	case InputProcess:
		if len(in.Args) == 0 {
			m.addEntry(errorStyle.Render("Usage: /process <file.pdf>..."))
			return m, nil
		}
		return m.start("Processing documents...", processCmd(m.ctx, m.session, in.Args))

	case InputSave:
		dir := in.dirArg(m.defaultDir)
		return m.start("Saving vector store...", saveCmd(m.ctx, m.session, dir))

	case InputLoad:
		dir := in.dirArg(m.defaultDir)
		return m.start("Loading vector store...", loadCmd(m.ctx, m.session, dir))

	case InputQuestion:
		m.addEntry(userStyle.Render("You: ") + in.Text)
		return m.start("Thinking...", askCmd(m.ctx, m.session, in.Text))
	}
	return m, nil
}

func (m Model) start(status string, op tea.Cmd) (tea.Model, tea.Cmd) {
	m.busy = true
	m.status = status
	return m, tea.Batch(m.spinner.Tick, op)
}

// View renders the header, transcript, input box, and status line
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Document Assistant")
	summary := summaryStyle.Render(m.summary())
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())

	status := statusStyle.Render(m.status)
	if m.busy {
		status = m.spinner.View() + " " + status
	}
	return header + "\n" + summary + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) summary() string {
	a := m.session.Assistant()
	if mf, ok := a.Manifest(); ok {
		return fmt.Sprintf("%d chunks from %d documents | %s | %s",
			mf.ChunkCount, len(mf.Documents), a.EmbeddingModel(), a.GenerationModel())
	}
	return fmt.Sprintf("no vector store loaded | %s | %s", a.EmbeddingModel(), a.GenerationModel())
}

func (m Model) readyStatus() string {
	if m.session.Assistant().Loaded() {
		return "Ready. Ask a question about your documents."
	}
	return "Please process documents first (/process), or load a saved vector store (/load)."
}

func (m *Model) addEntry(s string) {
	m.entries = append(m.entries, s)
	m.refresh()
}

func (m *Model) refresh() {
	if len(m.entries) == 0 {
		m.viewport.SetContent(summaryStyle.Render("No messages yet. Type /help for commands."))
		return
	}
	content := strings.Join(m.entries, "\n\n")
	if m.viewport.Width > 4 {
		content = lipgloss.NewStyle().Width(m.viewport.Width - 4).Render(content)
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

func renderAnswer(a models.Answer) string {
	var b strings.Builder
	b.WriteString(assistantStyle.Render("Assistant: "))
	b.WriteString(a.Answer)
	if len(a.Sources) > 0 {
		b.WriteString("\n")
		b.WriteString(sourcesStyle.Render("Sources:"))
		for _, s := range a.Sources {
			b.WriteString("\n  - " + s)
		}
	}
	return b.String()
}

func processCmd(ctx context.Context, s *core.Session, paths []string) tea.Cmd {
	return func() tea.Msg {
		report, err := s.Assistant().Process(ctx, paths)
		if err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{notice: FormatReport(report)}
	}
}

func saveCmd(ctx context.Context, s *core.Session, dir string) tea.Cmd {
	return func() tea.Msg {
		if err := s.Assistant().Save(ctx, dir); err != nil {
			if errors.Is(err, core.ErrNoVectorStore) {
				return opDoneMsg{err: errors.New("No Vector Store to save.")}
			}
			return opDoneMsg{err: err}
		}
		return opDoneMsg{notice: "Vector Store saved to " + dir}
	}
}

func loadCmd(ctx context.Context, s *core.Session, dir string) tea.Cmd {
	return func() tea.Msg {
		if err := s.Assistant().Load(ctx, dir); err != nil {
			if errors.Is(err, storage.ErrVectorStoreNotFound) {
				return opDoneMsg{err: errors.New("No Vector Store found at the specified directory.")}
			}
			return opDoneMsg{err: err}
		}
		return opDoneMsg{notice: "Vector Store loaded from " + dir}
	}
}

func askCmd(ctx context.Context, s *core.Session, question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := s.Ask(ctx, question)
		return answerMsg{answer: answer, err: err}
	}
}

// FormatReport renders a process report as plain text lines
func FormatReport(r core.ProcessReport) string {
	var lines []string
	for _, f := range r.Files {
		if f.Skipped {
			lines = append(lines, fmt.Sprintf("Skipped %s: %s", f.Path, f.Reason))
			continue
		}
		lines = append(lines, fmt.Sprintf("Processed %s with %d chunks.", f.Path, f.Chunks))
	}
	lines = append(lines, r.Message)
	return strings.Join(lines, "\n")
}

var (
	headerStyle        = lipgloss.NewStyle().Bold(true)
	summaryStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	spinnerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	userStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	sourcesStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	noticeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)
