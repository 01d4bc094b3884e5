package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// Prompter asks the user questions on a terminal.
type Prompter struct {
	writer io.Writer
	reader *bufio.Reader
	mu     sync.Mutex
}

// NewPrompter reads from reader and writes to writer, defaulting to stdin/stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{reader: bufio.NewReader(reader), writer: writer}
}

// Ask prints question and returns the trimmed answer, or def when it is empty.
func (p *Prompter) Ask(ctx context.Context, question, def string) (string, error) {
	label := question
	if def != "" {
		label = fmt.Sprintf("%s [%s]", question, def)
	}
	if _, err := fmt.Fprint(p.writer, FormatPrompt(label)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.readLine(ctx)
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Confirm asks a yes/no question; anything but y/yes is no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	answer, err := p.Ask(ctx, question+" (y/N)", "")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// AskPositive asks until the user enters a number greater than zero.
func (p *Prompter) AskPositive(ctx context.Context, question string, def float64) (float64, error) {
	defText := ""
	if def > 0 {
		defText = strconv.FormatFloat(def, 'f', 2, 64)
	}
	for {
		answer, err := p.Ask(ctx, question, defText)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(answer, 64)
		if err == nil && v > 0 {
			return v, nil
		}
		if _, err := fmt.Fprintln(p.writer, FormatWarning("Enter a number greater than zero")); err != nil {
			return 0, fmt.Errorf("failed to write warning: %w", err)
		}
	}
}

// readLine reads one line, returning early if ctx is done. The read itself
// keeps going in the background until input arrives.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		value, err := p.reader.ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil && !(errors.Is(res.err, io.EOF) && res.value != "") {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}
