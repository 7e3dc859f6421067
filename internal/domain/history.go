package domain

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// HistoryEntry is one line of the command audit log.
type HistoryEntry struct {
	ID            string    `json:"id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	Command       string    `json:"command"`
	Intent        Intent    `json:"intent,omitempty"`
	Action        string    `json:"action,omitempty"`
	Success       bool      `json:"success"`
	ResultExcerpt string    `json:"result"`
}

// NewHistoryEntry builds the log line for one dispatched command.
func NewHistoryEntry(command string, intent Intent, action string, result ExecutionResult) HistoryEntry {
	return HistoryEntry{
		ID:            uuid.NewString(),
		Timestamp:     time.Now().UTC().Truncate(time.Second),
		Command:       command,
		Intent:        intent,
		Action:        action,
		Success:       result.Success,
		ResultExcerpt: Excerpt(result.Text, HistoryExcerptLength),
	}
}

// Excerpt cuts text to at most limit runes.
func Excerpt(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit])
}

// TrimHistory keeps the newest max entries of an oldest-first slice.
func TrimHistory(entries []HistoryEntry, max int) []HistoryEntry {
	if max <= 0 || len(entries) <= max {
		return entries
	}
	return append([]HistoryEntry(nil), entries[len(entries)-max:]...)
}
