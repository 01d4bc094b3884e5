package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
)

// ProgressReporter draws a done/total bar for a sequential batch.
type ProgressReporter struct {
	writer      io.Writer
	bar         *progressbar.ProgressBar
	description string
}

// NewProgressReporter creates a reporter that draws to writer, or stderr when nil.
func NewProgressReporter(writer io.Writer, description string) *ProgressReporter {
	if writer == nil {
		writer = os.Stderr
	}
	return &ProgressReporter{writer: writer, description: description}
}

// Update sets the bar to done of total, creating it on first use. Its
// signature matches batch.ProgressFunc.
func (p *ProgressReporter) Update(done, total int) {
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.writer),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan][bold]"+p.description+"[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				if _, err := fmt.Fprintln(p.writer); err != nil {
					slog.Warn("Failed to write newline after progress bar", "error", err)
				}
			}),
		)
	}
	if err := p.bar.Set(done); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Done reports whether the bar has reached its total.
func (p *ProgressReporter) Done() bool {
	return p.bar != nil && p.bar.IsFinished()
}
