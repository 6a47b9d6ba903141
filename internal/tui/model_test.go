package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/edgard/arabictutor/internal/api"
	"github.com/edgard/arabictutor/internal/chat"
	"github.com/edgard/arabictutor/internal/theme"
)

var testPrefs = chat.Preferences{
	Name:     "Dana",
	Level:    "beginner",
	Week:     "week01",
	Gender:   "female",
	Language: string(chat.LanguageDefault),
}

func newChatModel(t *testing.T, asker chat.Asker) *Model {
	t.Helper()
	m := NewModel(context.Background(), Options{Asker: asker})
	if err := m.session.SubmitPreferences(testPrefs); err != nil {
		t.Fatalf("SubmitPreferences() error = %v", err)
	}
	m.Update(flushMsg{})
	if m.mode != modeChat {
		t.Fatalf("mode = %v, want chat", m.mode)
	}
	return m
}

// runCmd executes cmd and feeds every flushMsg it yields back into the model.
func runCmd(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			runCmd(m, c)
		}
	case flushMsg:
		m.Update(msg)
	}
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func TestQueueViewDrain(t *testing.T) {
	t.Parallel()
	q := &queueView{}
	q.AppendUserMessage("hi")
	q.ShowError("boom")
	q.ShowChat()

	got := q.drain()
	if len(got) != 3 {
		t.Fatalf("drain() returned %d events, want 3", len(got))
	}
	if got[0].kind != eventUser || got[0].text != "hi" || got[1].kind != eventError || got[2].kind != eventShowChat {
		t.Errorf("drain() = %+v", got)
	}
	if rest := q.drain(); len(rest) != 0 {
		t.Errorf("second drain() = %+v, want empty", rest)
	}
}

func TestPreferencesShowWelcome(t *testing.T) {
	t.Parallel()
	m := newChatModel(t, nil)

	msgs := m.Messages()
	if len(msgs) != 1 {
		t.Fatalf("messages = %+v, want one welcome", msgs)
	}
	if want := chat.WelcomeMessage(chat.LanguageDefault, "Dana"); msgs[0].Text != want || msgs[0].Sender != chat.SenderBot {
		t.Errorf("welcome = %+v, want bot %q", msgs[0], want)
	}
}

func TestIncompletePreferencesAlert(t *testing.T) {
	t.Parallel()
	m := NewModel(context.Background(), Options{})
	_ = m.session.SubmitPreferences(chat.Preferences{Name: "Dana"})
	m.form = nil
	m.Update(flushMsg{})

	if m.mode != modePrefs {
		t.Errorf("mode = %v, want prefs", m.mode)
	}
	if m.alert != chat.MsgIncompletePreferences {
		t.Errorf("alert = %q, want %q", m.alert, chat.MsgIncompletePreferences)
	}
	if m.form == nil {
		t.Error("preference form was not reopened")
	}
	if !strings.Contains(m.View(), chat.MsgIncompletePreferences) {
		t.Error("View() does not show the alert")
	}
}

func TestSendRendersAnswer(t *testing.T) {
	t.Parallel()
	var got api.AskRequest
	m := newChatModel(t, chat.AskerFunc(func(_ context.Context, req api.AskRequest) (string, error) {
		got = req
		return "kitab means book", nil
	}))

	m.input.SetValue("  what is kitab?  ")
	_, cmd := m.Update(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	if m.input.Value() != "" {
		t.Errorf("input = %q, want cleared", m.input.Value())
	}
	if m.pending != 1 {
		t.Errorf("pending = %d, want 1", m.pending)
	}
	msgs := m.Messages()
	if last := msgs[len(msgs)-1]; last.Sender != chat.SenderUser || last.Text != "what is kitab?" {
		t.Errorf("last message before reply = %+v", last)
	}

	runCmd(m, cmd)

	if got.Question != "what is kitab?" || got.Level != "beginner" || got.Week != "week01" {
		t.Errorf("request = %+v", got)
	}
	msgs = m.Messages()
	if last := msgs[len(msgs)-1]; last.Sender != chat.SenderBot || last.Text != "kitab means book" {
		t.Errorf("last message = %+v, want bot answer", last)
	}
	if m.pending != 0 {
		t.Errorf("pending = %d, want 0", m.pending)
	}
}

func TestBlankInputIsIgnored(t *testing.T) {
	t.Parallel()
	m := newChatModel(t, chat.AskerFunc(func(context.Context, api.AskRequest) (string, error) {
		t.Error("asker called for blank input")
		return "", nil
	}))

	m.input.SetValue("   ")
	if _, cmd := m.Update(key(tea.KeyEnter)); cmd != nil {
		t.Error("blank input returned a command")
	}
	if n := len(m.Messages()); n != 1 {
		t.Errorf("messages = %d, want only the welcome", n)
	}
}

func TestBackendFailureShowsErrorPopup(t *testing.T) {
	t.Parallel()
	m := newChatModel(t, chat.AskerFunc(func(context.Context, api.AskRequest) (string, error) {
		return "", errors.New("connection refused")
	}))

	m.input.SetValue("hello")
	_, cmd := m.Update(key(tea.KeyEnter))
	runCmd(m, cmd)

	if m.errPopup != chat.MsgBackendUnavailable {
		t.Fatalf("errPopup = %q, want %q", m.errPopup, chat.MsgBackendUnavailable)
	}
	if !strings.Contains(m.View(), chat.MsgBackendUnavailable) {
		t.Error("View() does not show the error popup")
	}
	if n := len(m.Messages()); n != 2 {
		t.Errorf("messages = %d, want welcome and question only", n)
	}

	m.Update(key(tea.KeyEnter))
	if m.errPopup != "" {
		t.Errorf("errPopup = %q after enter, want dismissed", m.errPopup)
	}
}

func TestThemeToggle(t *testing.T) {
	t.Parallel()
	store := theme.NewMemoryStore()
	m := NewModel(context.Background(), Options{Themes: store})
	if m.styles.theme != theme.Light {
		t.Fatalf("initial theme = %q, want light", m.styles.theme)
	}

	m.Update(key(tea.KeyCtrlT))
	if m.styles.theme != theme.Dark {
		t.Errorf("theme after toggle = %q, want dark", m.styles.theme)
	}
	if v, _ := store.Get(theme.Key); v != "dark" {
		t.Errorf("stored theme = %q, want dark", v)
	}

	m.Update(key(tea.KeyCtrlT))
	if v, _ := store.Get(theme.Key); v != "light" || m.styles.theme != theme.Light {
		t.Errorf("after second toggle stored = %q applied = %q, want light", v, m.styles.theme)
	}
}

func TestStoredDarkThemeIsApplied(t *testing.T) {
	t.Parallel()
	store := theme.NewMemoryStore()
	_ = store.Set(theme.Key, "dark")

	m := NewModel(context.Background(), Options{Themes: store})
	if m.styles.theme != theme.Dark {
		t.Errorf("theme = %q, want dark", m.styles.theme)
	}
}

func TestContactFormOpenClose(t *testing.T) {
	t.Parallel()
	m := newChatModel(t, nil)

	m.Update(key(tea.KeyCtrlK))
	if m.mode != modeContact || m.form == nil {
		t.Fatalf("mode = %v form = %v, want open contact form", m.mode, m.form)
	}

	m.Update(key(tea.KeyEsc))
	if m.mode != modeChat || m.form != nil {
		t.Errorf("mode = %v after esc, want chat", m.mode)
	}
}

func TestContactSubmissionAcknowledged(t *testing.T) {
	t.Parallel()
	m := newChatModel(t, nil)
	m.Update(key(tea.KeyCtrlK))

	if err := m.contact.Submit(context.Background(), chat.ContactSubmission{Name: "Dana", Email: "d@example.com", Message: "hi"}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	m.Update(flushMsg{contact: true})

	if m.alert != chat.MsgContactThanks {
		t.Errorf("alert = %q, want %q", m.alert, chat.MsgContactThanks)
	}
	if m.mode != modeChat {
		t.Errorf("mode = %v, want chat after submission", m.mode)
	}
}
