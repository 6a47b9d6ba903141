package tui

import "sync"

type eventKind int

const (
	eventUser eventKind = iota
	eventBot
	eventError
	eventAlert
	eventShowChat
	eventCloseContact
)

type event struct {
	kind eventKind
	text string
}

// queueView collects what the chat session renders. Sessions call it from
// tea.Cmd goroutines; the model drains it on the Update goroutine.
type queueView struct {
	mu     sync.Mutex
	events []event
}

func (q *queueView) push(e event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

func (q *queueView) drain() []event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.events
	q.events = nil
	return out
}

func (q *queueView) AppendUserMessage(text string) { q.push(event{kind: eventUser, text: text}) }
func (q *queueView) AppendBotMessage(text string)  { q.push(event{kind: eventBot, text: text}) }
func (q *queueView) ShowError(message string)      { q.push(event{kind: eventError, text: message}) }
func (q *queueView) Alert(message string)          { q.push(event{kind: eventAlert, text: message}) }
func (q *queueView) ShowChat()                     { q.push(event{kind: eventShowChat}) }
func (q *queueView) CloseContact()                 { q.push(event{kind: eventCloseContact}) }
