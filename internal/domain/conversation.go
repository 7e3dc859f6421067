package domain

import "sync"

// Message roles used in the conversation window.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one side of an exchange.
type Message struct {
	Role    string
	Content string
}

// ConversationWindow keeps the last few messages for chat context.
type ConversationWindow struct {
	mu       sync.Mutex
	size     int
	messages []Message
}

// NewConversationWindow returns a window holding at most size messages.
func NewConversationWindow(size int) *ConversationWindow {
	if size <= 0 {
		size = DefaultConversationWindow
	}
	return &ConversationWindow{size: size}
}

// Append adds messages, dropping the oldest beyond the window size.
func (w *ConversationWindow) Append(msgs ...Message) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.messages = append(w.messages, msgs...)
	if over := len(w.messages) - w.size; over > 0 {
		w.messages = append([]Message(nil), w.messages[over:]...)
	}
}

// Messages returns a copy, oldest first.
func (w *ConversationWindow) Messages() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Message(nil), w.messages...)
}

// Len reports how many messages are held.
func (w *ConversationWindow) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.messages)
}
