package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Console commands.
const (
	CommandSuggest = "/suggest"
	CommandAsk     = "/ask"
	CommandQuit    = "/quit"
)

// Console drives a session from line-oriented input.
type Console struct {
	session *Session
	in      io.Reader
	out     io.Writer
}

// NewConsole creates a console over session.
func NewConsole(session *Session, in io.Reader, out io.Writer) *Console {
	return &Console{
		session: session,
		in:      in,
		out:     out,
	}
}

// Run prints the transcript so far, then reads lines until EOF or /quit.
func (c *Console) Run(ctx context.Context) error {
	for _, msg := range c.session.Transcript() {
		c.print(msg)
	}

	scanner := bufio.NewScanner(c.in)
	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == CommandQuit:
			return nil
		case line == CommandSuggest:
			c.printSuggestions()
			continue
		case strings.HasPrefix(line, CommandAsk):
			suggestion, ok := c.pickSuggestion(strings.TrimSpace(strings.TrimPrefix(line, CommandAsk)))
			if !ok {
				fmt.Fprintf(c.out, "usage: %s <1-%d>\n", CommandAsk, len(c.session.Suggestions()))
				continue
			}
			line = suggestion.Text
		}

		msg, err := c.session.Submit(ctx, line)
		if errors.Is(err, ErrBusy) {
			fmt.Fprintln(c.out, "still waiting for the previous answer")
			continue
		}
		if msg != nil {
			c.print(*msg)
		}
	}
}

func (c *Console) printSuggestions() {
	for i, suggestion := range c.session.Suggestions() {
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, suggestion.Text)
	}
}

func (c *Console) pickSuggestion(arg string) (Suggestion, bool) {
	suggestions := c.session.Suggestions()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(suggestions) {
		return Suggestion{}, false
	}
	return suggestions[n-1], true
}

func (c *Console) print(msg Message) {
	fmt.Fprintf(c.out, "[%s] %s\n", msg.Role, msg.Content)
}
