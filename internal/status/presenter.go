// Package status renders transient, severity-tagged messages into named
// output regions.
package status

import "strings"

// Severity classifies a message for presentation only.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityLoading Severity = "loading"
)

// Region names an output area.
type Region string

const (
	RegionSingle    Region = "single"
	RegionBulk      Region = "bulk"
	RegionDownloads Region = "downloads"
)

// Presenter replaces (or appends to) the content of a region with a
// severity-tagged block. Presenting never fails.
type Presenter interface {
	Present(region Region, message string, severity Severity, appendMode bool)
}

// Block is one rendered status message.
type Block struct {
	Severity Severity
	Lines    []string
}

// Text joins the block lines back with newlines.
func (b Block) Text() string {
	return strings.Join(b.Lines, "\n")
}

// NewBlock splits message into lines; every newline becomes a line break.
func NewBlock(message string, severity Severity) Block {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	return Block{
		Severity: severity,
		Lines:    strings.Split(message, "\n"),
	}
}
