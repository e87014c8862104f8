package export

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/user/weatherbot/internal/conversation"
	"github.com/user/weatherbot/internal/errors"
)

// GeneratorName identifies the tool in exported documents
const GeneratorName = "weatherbot"

// Transcript is a snapshot of a conversation ready for export
type Transcript struct {
	Metadata Metadata               `json:"metadata"`
	Messages []conversation.Message `json:"messages"`
}

// Metadata contains transcript metadata
type Metadata struct {
	Title        string    `json:"title"`
	ExportedAt   time.Time `json:"exported_at"`
	Generator    Generator `json:"generator"`
	Provider     string    `json:"provider,omitempty"`
	Model        string    `json:"model,omitempty"`
	MessageCount int       `json:"message_count"`
	TurnCount    int       `json:"turn_count"`
}

// Generator information
type Generator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Options describes where a transcript came from
type Options struct {
	Title    string
	Provider string
	Model    string
	Version  string
}

// NewTranscript snapshots messages into a transcript
func NewTranscript(messages []conversation.Message, opts Options) Transcript {
	title := opts.Title
	if title == "" {
		title = "Weather Chat"
	}

	msgs := make([]conversation.Message, len(messages))
	copy(msgs, messages)

	turns := 0
	for _, m := range msgs {
		if m.Role == conversation.RoleUser {
			turns++
		}
	}

	return Transcript{
		Metadata: Metadata{
			Title:      title,
			ExportedAt: time.Now(),
			Generator: Generator{
				Name:    GeneratorName,
				Version: opts.Version,
			},
			Provider:     opts.Provider,
			Model:        opts.Model,
			MessageCount: len(msgs),
			TurnCount:    turns,
		},
		Messages: msgs,
	}
}

// Format is an export file format
type Format string

const (
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

// FormatForPath picks the format from the file extension; anything that is
// not .html or .htm is written as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatJSON
	}
}

// WriteFile exports a transcript to path in the format implied by its extension
func WriteFile(path string, t Transcript) error {
	var err error
	switch FormatForPath(path) {
	case FormatHTML:
		var exporter *HTMLExporter
		exporter, err = NewHTMLExporter()
		if err == nil {
			err = exporter.ExportToHTML(t, path)
		}
	default:
		err = NewJSONExporter().ExportToJSON(t, path)
	}

	if err != nil {
		return errors.NewExportError(path, err)
	}
	return nil
}
