package domain

import "time"

// SideEffectKind names an observable change a handler made.
type SideEffectKind string

const (
	EffectFileCreated   SideEffectKind = "file_created"
	EffectFileDeleted   SideEffectKind = "file_deleted"
	EffectFileOpened    SideEffectKind = "file_opened"
	EffectAppLaunched   SideEffectKind = "app_launched"
	EffectURLOpened     SideEffectKind = "url_opened"
	EffectClipboardSet  SideEffectKind = "clipboard_set"
	EffectPendingAction SideEffectKind = "confirmation_pending"
)

// SideEffect records what a handler touched.
type SideEffect struct {
	Kind   SideEffectKind `json:"kind"`
	Target string         `json:"target"`
}

// ExecutionResult is what the dispatcher hands back for every record.
type ExecutionResult struct {
	Text        string       `json:"text"`
	Success     bool         `json:"success"`
	SideEffects []SideEffect `json:"side_effects,omitempty"`
}

// Succeeded builds a successful result.
func Succeeded(text string, effects ...SideEffect) ExecutionResult {
	return ExecutionResult{Text: text, Success: true, SideEffects: effects}
}

// Failed builds a failed result.
func Failed(text string) ExecutionResult {
	return ExecutionResult{Text: text}
}

// PendingConfirmation is a destructive action held until the user says yes.
type PendingConfirmation struct {
	Intent    Intent
	Action    string
	Payload   string
	Prompt    string
	CreatedAt time.Time
}
