package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/jarvis-go/internal/app"
	"github.com/doeshing/jarvis-go/internal/application/assistant"
)

const (
	commandPrompt      = "You: "
	confirmationPrompt = "Your confirmation (yes/no): "
)

// Turner runs one assistant turn.
type Turner interface {
	Turn(ctx context.Context, input string) assistant.TurnResult
	AwaitingConfirmation() bool
}

// REPL reads commands until an exit word or end of input.
type REPL struct {
	core     Turner
	prompter *Prompter
	renderer *Renderer
	spinner  *Spinner
	out      io.Writer
	name     string
}

// NewREPL builds a loop over in and out. The spinner is only shown on a terminal.
func NewREPL(core *assistant.Core, in io.Reader, out io.Writer) *REPL {
	r := &REPL{
		core:     core,
		prompter: NewPrompter(in, out),
		renderer: NewRenderer(out),
		out:      out,
		name:     core.Config.GetAssistantName(),
	}
	if IsTerminal(out) {
		r.spinner = NewSpinner(out, "thinking...")
	}
	return r
}

// Run loops until the user exits, input ends or ctx is cancelled.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintf(r.out, "%s online. Type 'help' for examples, 'exit' to quit.\n", r.name)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		prompt := commandPrompt
		if r.core.AwaitingConfirmation() {
			prompt = confirmationPrompt
		}
		line, err := r.prompter.ReadLine(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out)
				return nil
			}
			return err
		}

		res := r.turn(ctx, line)
		r.renderer.RenderTurn(r.name, res)
		if res.Exit {
			return nil
		}
	}
}

func (r *REPL) turn(ctx context.Context, line string) assistant.TurnResult {
	if r.spinner != nil && strings.TrimSpace(line) != "" {
		r.spinner.Start()
		defer r.spinner.Stop()
	}
	return r.core.Turn(ctx, line)
}

func newAskCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <command...>",
		Short: "Run a single command and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd.Context(), container.Core, container.Config.GetAssistantName(), strings.Join(args, " "), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runAsk executes one turn. A pending confirmation is answered from in;
// end of input cancels it.
func runAsk(ctx context.Context, core Turner, name string, command string, in io.Reader, out io.Writer) error {
	renderer := NewRenderer(out)
	res := core.Turn(ctx, command)
	renderer.RenderTurn(name, res)
	if !res.AwaitingConfirmation {
		return nil
	}

	answer, err := NewPrompter(in, out).ReadLine(confirmationPrompt)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if answer == "" {
		answer = "no"
	}
	renderer.RenderTurn(name, core.Turn(ctx, answer))
	return nil
}
