package export

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/user/weatherbot/internal/conversation"
)

// HTMLExporter renders transcripts as standalone HTML documents.
// Message content is treated as Markdown; raw HTML in it is escaped.
type HTMLExporter struct {
	markdown     goldmark.Markdown
	htmlTemplate *template.Template
}

// HTMLDocument represents the data for HTML template rendering
type HTMLDocument struct {
	Metadata Metadata
	Messages []HTMLMessage
	CSS      template.CSS
}

// HTMLMessage is one rendered chat bubble
type HTMLMessage struct {
	Role    string
	Label   string
	Time    string
	Content template.HTML
}

// NewHTMLExporter creates a new HTML exporter with Goldmark configured
func NewHTMLExporter() (*HTMLExporter, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	tmpl, err := loadHTMLTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load HTML template: %w", err)
	}

	return &HTMLExporter{
		markdown:     md,
		htmlTemplate: tmpl,
	}, nil
}

// Render produces the HTML document for a transcript
func (e *HTMLExporter) Render(t Transcript) ([]byte, error) {
	doc := HTMLDocument{
		Metadata: t.Metadata,
		Messages: make([]HTMLMessage, 0, len(t.Messages)),
		CSS:      template.CSS(getDefaultCSS()),
	}

	for _, m := range t.Messages {
		var buf bytes.Buffer
		if err := e.markdown.Convert([]byte(m.Content), &buf); err != nil {
			return nil, fmt.Errorf("failed to convert message %s: %w", m.ID, err)
		}
		doc.Messages = append(doc.Messages, HTMLMessage{
			Role:    m.Role,
			Label:   roleLabel(m.Role),
			Time:    m.CreatedAt.Format("15:04:05"),
			Content: template.HTML(buf.String()),
		})
	}

	var htmlBuf bytes.Buffer
	if err := e.htmlTemplate.Execute(&htmlBuf, doc); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return htmlBuf.Bytes(), nil
}

// ExportToHTML writes a transcript to outputPath
func (e *HTMLExporter) ExportToHTML(t Transcript, outputPath string) error {
	data, err := e.Render(t)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write HTML: %w", err)
	}
	return nil
}

func roleLabel(role string) string {
	switch role {
	case conversation.RoleUser:
		return "You"
	case conversation.RoleAssistant:
		return "Assistant"
	default:
		return role
	}
}

// loadHTMLTemplate loads the HTML template with custom functions
func loadHTMLTemplate() (*template.Template, error) {
	const tmpl = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta name="generator" content="{{.Metadata.Generator.Name}}">
    <title>{{.Metadata.Title}}</title>
    <style>
        {{.CSS}}
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>{{.Metadata.Title}}</h1>
            <div class="meta">{{.Metadata.TurnCount}} turns{{if .Metadata.Model}} &middot; {{.Metadata.Model}}{{end}}</div>
        </header>
        <main>
{{- range .Messages}}
            <div class="message {{.Role}}">
                <div class="label">{{.Label}} <span class="time">{{.Time}}</span></div>
                <div class="content">{{.Content}}</div>
            </div>
{{- else}}
            <p class="empty">No messages.</p>
{{- end}}
        </main>
        <footer>
            <p>Exported on {{formatTime .Metadata.ExportedAt}} by {{.Metadata.Generator.Name}}{{with .Metadata.Generator.Version}} {{.}}{{end}}</p>
        </footer>
    </div>
</body>
</html>`

	return template.New("html").Funcs(template.FuncMap{
		"formatTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04:05")
		},
	}).Parse(tmpl)
}

// getDefaultCSS returns the chat transcript stylesheet
func getDefaultCSS() string {
	return `
        * {
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Helvetica, Arial, sans-serif;
            line-height: 1.6;
            color: #24292f;
            background-color: #f6f8fa;
            margin: 0;
            padding: 0;
        }

        .container {
            max-width: 780px;
            margin: 0 auto;
            padding: 45px 20px;
        }

        header {
            border-bottom: 1px solid #d0d7de;
            margin-bottom: 30px;
        }

        .meta, .time, footer {
            font-size: 12px;
            color: #57606a;
        }

        .message {
            border-radius: 12px;
            margin-bottom: 16px;
            padding: 12px 16px;
            max-width: 85%;
        }

        .message.user {
            background-color: #ddf4ff;
            margin-left: auto;
        }

        .message.assistant {
            background-color: #ffffff;
            border: 1px solid #d0d7de;
        }

        .label {
            font-weight: 600;
            font-size: 13px;
        }

        .content p {
            margin: 4px 0;
        }

        pre {
            border-radius: 6px;
            font-size: 85%;
            overflow: auto;
            padding: 12px;
        }
`
}
