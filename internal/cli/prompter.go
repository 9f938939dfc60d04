package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Prompter handles line-based interactive input: confirmations and the plain
// spin entry loop used when no full-screen terminal is wanted.
type Prompter struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewCLIPrompter creates a new CLI prompter with the given reader and writer.
func NewCLIPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// Confirm asks a yes/no question. Anything but y or yes is a no.
func (p *Prompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if _, err := fmt.Fprintf(p.writer, "%s", FormatPrompt(prompt+" [y/N]")); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := p.reader.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// EntryHandler processes one line of entry and returns the feedback to show.
// A returned error is shown and the loop continues.
type EntryHandler func(ctx context.Context, line string) (string, error)

// EntryLoop reads lines until EOF, "q", "quit" or cancellation, passing
// each non-empty line to handle.
func (p *Prompter) EntryLoop(ctx context.Context, prompt string, handle EntryHandler) error {
	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
			return fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := p.reader.ReadLine(ctx)
		switch {
		case errors.Is(err, io.EOF):
			p.println("")
			return nil
		case errors.Is(err, ErrInputCancelled):
			return nil
		case err != nil:
			return err
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit", "exit":
			return nil
		}

		feedback, err := handle(ctx, line)
		if err != nil {
			p.println(FormatError(err.Error()))
			continue
		}
		if feedback != "" {
			p.println(feedback)
		}
	}
}

func (p *Prompter) println(s string) {
	if _, err := fmt.Fprintln(p.writer, s); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}
