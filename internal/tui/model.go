// Package tui is the terminal front-end of the tutor. A preference popup
// collects the learner's choices once, then a chat view exchanges messages
// with the tutor backend. ctrl+t switches between the light and dark theme
// and ctrl+k opens the contact form.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/edgard/arabictutor/internal/chat"
	"github.com/edgard/arabictutor/internal/logger"
	"github.com/edgard/arabictutor/internal/theme"
)

type mode int

const (
	modePrefs mode = iota
	modeChat
	modeContact
)

// flushMsg is returned by commands that ran session code off the Update
// goroutine; the model then drains the queued output.
type flushMsg struct {
	exchange bool
	contact  bool
}

// Options configures the chat model.
type Options struct {
	Asker   chat.Asker
	Contact chat.ContactSender
	Themes  theme.Store
	Log     *slog.Logger
}

// Model is the bubbletea model of the chat client.
type Model struct {
	ctx     context.Context
	log     *slog.Logger
	queue   *queueView
	session *chat.Session
	contact *chat.ContactForm
	themes  *theme.Controller
	styles  styles

	mode  mode
	form  *huh.Form
	prefs chat.Preferences
	sub   chat.ContactSubmission

	messages []chat.Message
	alert    string
	errPopup string
	pending  int

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	width    int
	height   int
}

// NewModel creates the chat model. The stored theme is applied immediately.
func NewModel(ctx context.Context, opts Options) *Model {
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}
	store := opts.Themes
	if store == nil {
		store = theme.NewMemoryStore()
	}

	m := &Model{
		ctx:   ctx,
		log:   log.With("component", "tui"),
		queue: &queueView{},
	}
	m.session = chat.NewSession(opts.Asker, m.queue, log)
	m.contact = chat.NewContactForm(opts.Contact, m.queue, log)
	m.themes = theme.NewController(store, m.applyTheme, log)

	m.input = textinput.New()
	m.input.Placeholder = "Type your question..."
	m.input.Prompt = "› "
	m.input.CharLimit = 0
	m.input.Width = 60

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	m.viewport = viewport.New(80, 20)
	m.themes.Load()
	m.form = m.newPrefsForm()
	return m
}

func (m *Model) applyTheme(t theme.Theme) {
	m.styles = newStyles(t)
	if m.form != nil {
		m.form.WithTheme(m.styles.form)
	}
	m.refreshViewport()
}

var titleCase = cases.Title(language.English)

func stringOptions(placeholder string, values []string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption(placeholder, "")}
	for _, v := range values {
		opts = append(opts, huh.NewOption(titleCase.String(v), v))
	}
	return opts
}

func labeledOptions(placeholder string, values []chat.Option) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption(placeholder, "")}
	for _, o := range values {
		opts = append(opts, huh.NewOption(o.Label, o.Value))
	}
	return opts
}

func weekOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("Select week", "")}
	for i, id := range chat.Weeks(chat.WeeksPerLevel) {
		opts = append(opts, huh.NewOption(fmt.Sprintf("Week %d", i+1), id))
	}
	return opts
}

func (m *Model) newPrefsForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Your name").Value(&m.prefs.Name),
			huh.NewSelect[string]().Title("Level").Options(stringOptions("Select level", chat.Levels)...).Value(&m.prefs.Level),
			huh.NewSelect[string]().Title("Week").Options(weekOptions()...).Value(&m.prefs.Week),
			huh.NewSelect[string]().Title("Gender").Options(stringOptions("Select gender", chat.Genders)...).Value(&m.prefs.Gender),
			huh.NewSelect[string]().Title("Language").Options(labeledOptions("Select language", chat.Languages)...).Value(&m.prefs.Language),
		).Title("Welcome! Choose your preferences"),
	).WithTheme(m.styles.form).WithShowHelp(true)
}

func (m *Model) newContactForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&m.sub.Name),
			huh.NewInput().Title("Email").Value(&m.sub.Email),
			huh.NewText().Title("Message").Lines(4).Value(&m.sub.Message),
		).Title("Contact us").Description("esc to close"),
	).WithTheme(m.styles.form).WithShowHelp(true)
}

// Init starts the preference form.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.form.Init(), textinput.Blink)
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case flushMsg:
		return m, m.handleFlush(msg)

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			if _, err := m.themes.Toggle(); err != nil {
				m.log.Warn("Theme not saved", "error", err)
			}
			return m, nil
		}

		if m.alert != "" || m.errPopup != "" {
			switch msg.String() {
			case "enter", "esc", " ":
				m.dismissPopup()
			}
			return m, nil
		}

		switch m.mode {
		case modeChat:
			return m, m.updateChatKeys(msg)
		case modeContact:
			if msg.String() == "esc" {
				m.closeContact()
				return m, m.input.Focus()
			}
		}
	}

	if m.form != nil && m.mode != modeChat {
		return m, m.updateForm(msg)
	}
	if m.mode == modeChat {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateChatKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		return m.send()
	case "ctrl+k":
		m.openContact()
		return m.form.Init()
	case "pgup":
		m.viewport.PageUp()
		return nil
	case "pgdown":
		m.viewport.PageDown()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State != huh.StateCompleted {
		return cmd
	}

	switch m.mode {
	case modePrefs:
		m.form = nil
		_ = m.session.SubmitPreferences(m.prefs)
		return tea.Batch(cmd, m.handleFlush(flushMsg{}))
	case modeContact:
		sub := m.sub
		m.form = nil
		return tea.Batch(cmd, func() tea.Msg {
			_ = m.contact.Submit(m.ctx, sub)
			return flushMsg{contact: true}
		})
	}
	return cmd
}

// send renders the user's message at once and asks the backend in a command.
func (m *Model) send() tea.Cmd {
	ex, ok := m.session.Begin(m.input.Value())
	if !ok {
		return nil
	}
	m.input.Reset()
	m.pending++
	m.drain()

	return tea.Batch(
		func() tea.Msg {
			m.session.Complete(m.ctx, ex)
			return flushMsg{exchange: true}
		},
		m.spinner.Tick,
	)
}

func (m *Model) handleFlush(msg flushMsg) tea.Cmd {
	if msg.exchange && m.pending > 0 {
		m.pending--
	}
	m.drain()

	// A form that is still open after a submission was rejected. The bound
	// values are kept so the user only fills in what is missing.
	switch {
	case m.mode == modePrefs && m.form == nil:
		m.form = m.newPrefsForm()
		return m.form.Init()
	case msg.contact && m.mode == modeContact:
		m.form = m.newContactForm()
		return m.form.Init()
	}
	if m.mode == modeChat {
		return m.input.Focus()
	}
	return nil
}

func (m *Model) drain() {
	for _, e := range m.queue.drain() {
		switch e.kind {
		case eventUser:
			m.messages = append(m.messages, chat.Message{Sender: chat.SenderUser, Text: e.text})
		case eventBot:
			m.messages = append(m.messages, chat.Message{Sender: chat.SenderBot, Text: e.text})
		case eventError:
			m.errPopup = e.text
		case eventAlert:
			m.alert = e.text
		case eventShowChat:
			m.mode = modeChat
			m.form = nil
		case eventCloseContact:
			m.closeContact()
		}
	}
	m.refreshViewport()
}

func (m *Model) dismissPopup() {
	if m.alert != "" {
		m.alert = ""
		return
	}
	m.errPopup = ""
}

func (m *Model) openContact() {
	m.mode = modeContact
	m.sub = chat.ContactSubmission{}
	m.form = m.newContactForm()
	m.input.Blur()
}

func (m *Model) closeContact() {
	if m.mode != modeContact {
		return
	}
	m.mode = modeChat
	m.form = nil
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.viewport.Width = max(width-4, 20)
	m.viewport.Height = max(height-8, 5)
	m.input.Width = max(width-6, 10)
	if m.form != nil {
		m.form.WithWidth(min(width-4, 70))
	}
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	if m.styles.form == nil {
		return
	}
	width := max(m.viewport.Width-2, 10)
	var b strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		label := m.styles.bot.Render("Tutor")
		if msg.Sender == chat.SenderUser {
			label = m.styles.user.Render("You")
		}
		b.WriteString(label + "\n" + m.styles.text.Width(width).Render(msg.Text))
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// Messages returns the rendered message log.
func (m *Model) Messages() []chat.Message {
	return append([]chat.Message(nil), m.messages...)
}

// View renders the model.
func (m *Model) View() string {
	var body string
	switch {
	case m.errPopup != "":
		body = m.styles.errPopup.Render(m.errPopup + "\n\n" + m.styles.help.Render("enter to close"))
	case m.alert != "":
		body = m.styles.popup.Render(m.alert + "\n\n" + m.styles.help.Render("enter to close"))
	case m.mode != modeChat && m.form != nil:
		body = m.form.View()
	case m.mode == modeChat:
		return m.chatView()
	}
	if m.width == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) chatView() string {
	header := m.styles.header.Render("Arabic Tutor")
	if p, ok := m.session.Preferences(); ok {
		header += m.styles.help.Render(fmt.Sprintf("%s · %s · %s", p.Name, titleCase.String(p.Level), p.Week))
	}

	status := ""
	if m.pending > 0 {
		status = m.styles.status.Render(m.spinner.View() + " waiting for the tutor...")
	}

	help := m.styles.help.Render(fmt.Sprintf("enter send · ctrl+t %s theme · ctrl+k contact · ctrl+c quit", opposite(m.styles.theme)))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.styles.chatBox.Render(m.viewport.View()),
		status,
		m.input.View(),
		help,
	)
}

func opposite(t theme.Theme) theme.Theme {
	if t == theme.Dark {
		return theme.Light
	}
	return theme.Dark
}

// Run starts the terminal UI and blocks until the user quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat ui failed: %w", err)
	}
	return nil
}
