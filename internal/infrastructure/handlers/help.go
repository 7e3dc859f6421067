package handlers

import (
	"context"
	"fmt"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

const helpText = `Here is what I can do:

📄 Create files
  - create a word document about climate change
  - make an excel spreadsheet for my monthly budget
  - generate a pdf report on the history of AI
  - write a python script for web scraping
  - create a text file about cats

🗂️ Manage files
  - find report
  - delete notes.txt (I'll ask before deleting)
  - list files

🖥️ System
  - open vscode
  - copy hello world to clipboard
  - what's in my clipboard
  - system status

🌐 Web
  - search golang tutorials
  - who was Alan Turing
  - what is the weather in New York

💬 Anything else is treated as conversation. Say 'exit' to quit.`

// HelpHandler serves help.
type HelpHandler struct{}

// Handle implements ports.Handler.
func (HelpHandler) Handle(_ context.Context, rec domain.IntentRecord) (ports.HandlerResult, error) {
	if rec.Action() != domain.ActionShowHelp && rec.Action() != "" {
		return ports.HandlerResult{}, fmt.Errorf("%w: %s", domain.ErrUnknownAction, rec.Action())
	}
	return ports.HandlerResult{Result: domain.Succeeded(helpText)}, nil
}

var _ ports.Handler = HelpHandler{}
