package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Notifier prints one-line toasts. It is safe for concurrent use since
// refresh cycles may report while a command is writing.
type Notifier struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewNotifier writes toasts to writer, or stderr when nil.
func NewNotifier(writer io.Writer) *Notifier {
	if writer == nil {
		writer = os.Stderr
	}
	return &Notifier{writer: writer}
}

// Success shows a success toast.
func (n *Notifier) Success(msg string) {
	n.print(FormatSuccess(msg))
}

// Warning shows a warning toast.
func (n *Notifier) Warning(msg string) {
	n.print(FormatWarning(msg))
}

// Error shows an error toast.
func (n *Notifier) Error(msg string) {
	n.print(FormatError(msg))
}

// Info shows a neutral toast.
func (n *Notifier) Info(msg string) {
	n.print(FormatInfo(msg))
}

func (n *Notifier) print(line string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, err := fmt.Fprintln(n.writer, line); err != nil {
		slog.Warn("Failed to write notification", "error", err)
	}
}
