package status

import (
	"fmt"
	"io"
	"sync"
)

// Writer prints every block as soon as it is presented. A stream cannot
// take back what it already printed, so replace and append both print.
type Writer struct {
	mu          sync.Mutex
	w           io.Writer
	showLoading bool
}

var _ Presenter = (*Writer)(nil)

// NewWriter creates a presenter for plain terminal output. Loading
// messages are only printed when showLoading is set.
func NewWriter(w io.Writer, showLoading bool) *Writer {
	return &Writer{w: w, showLoading: showLoading}
}

func (p *Writer) Present(region Region, message string, severity Severity, appendMode bool) {
	if severity == SeverityLoading && !p.showLoading {
		return
	}

	block := NewBlock(message, severity)
	style := Style(severity)

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, line := range block.Lines {
		fmt.Fprintln(p.w, style.Render(line))
	}
}
