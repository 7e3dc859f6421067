package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/doeshing/jarvis-go/internal/application/assistant"
)

// Renderer prints turn results, styled when the output is a terminal.
type Renderer struct {
	out     io.Writer
	name    lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	pending lipgloss.Style
	styled  bool
}

// NewRenderer builds a renderer for out.
func NewRenderer(out io.Writer) *Renderer {
	r := lipgloss.NewRenderer(out)
	return &Renderer{
		out:     out,
		name:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		success: r.NewStyle(),
		failure: r.NewStyle().Foreground(lipgloss.Color("203")),
		pending: r.NewStyle().Foreground(lipgloss.Color("214")),
		styled:  IsTerminal(out),
	}
}

// RenderTurn prints one reply prefixed with the assistant name.
func (r *Renderer) RenderTurn(assistantName string, res assistant.TurnResult) {
	if res.Reprompt || res.Text == "" {
		return
	}
	style := r.success
	switch {
	case res.AwaitingConfirmation:
		style = r.pending
	case !res.Success:
		style = r.failure
	}
	if !r.styled {
		fmt.Fprintf(r.out, "%s: %s\n", assistantName, res.Text)
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", r.name.Render(assistantName+":"), style.Render(res.Text))
}
