package export

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// JSONDocument is the JSON transcript layout
type JSONDocument struct {
	Metadata Metadata      `json:"metadata"`
	Messages []JSONMessage `json:"messages"`
}

// JSONMessage is a message with its Markdown content plus a plain-text rendition
type JSONMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	PlainText string `json:"plain_text"`
	CreatedAt string `json:"created_at"`
	WordCount int    `json:"word_count"`
}

// JSONExporter converts transcripts to structured JSON documents
type JSONExporter struct {
	markdown goldmark.Markdown
}

// NewJSONExporter creates a new JSON exporter with Goldmark configured
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Build converts a transcript to its JSON layout
func (e *JSONExporter) Build(t Transcript) JSONDocument {
	doc := JSONDocument{
		Metadata: t.Metadata,
		Messages: make([]JSONMessage, 0, len(t.Messages)),
	}

	for _, m := range t.Messages {
		plain := e.plainText([]byte(m.Content))
		doc.Messages = append(doc.Messages, JSONMessage{
			ID:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			PlainText: plain,
			CreatedAt: m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			WordCount: len(strings.Fields(plain)),
		})
	}

	return doc
}

// ExportToJSON writes a transcript to outputPath
func (e *JSONExporter) ExportToJSON(t Transcript, outputPath string) error {
	jsonData, err := json.MarshalIndent(e.Build(t), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}

	return nil
}

// plainText strips Markdown syntax by walking the parsed AST
func (e *JSONExporter) plainText(source []byte) string {
	doc := e.markdown.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock && b.Len() > 0 {
				ensureSpace(&b)
			}
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.CodeSpan:
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					b.Write(t.Segment.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				b.Write(seg.Value(source))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(b.String()), " ")
}

func ensureSpace(b *strings.Builder) {
	s := b.String()
	if !strings.HasSuffix(s, " ") {
		b.WriteByte(' ')
	}
}
