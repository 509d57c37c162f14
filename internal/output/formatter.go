// Package output renders notification lists in terminal-friendly formats.
package output

import (
	"io"
	"time"

	"github.com/ghnotify/ghnotify/internal/model"
)

// Format identifies an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formatter renders a set of notifications to a writer.
type Formatter interface {
	Format(items []model.Notification, fetchedAt time.Time, w io.Writer) error
}

// NewFormatter returns the formatter for the named format, defaulting to table.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}
