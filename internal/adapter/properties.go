package adapter

import (
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/notion-brain/internal/config"
	"github.com/MKhiriev/notion-brain/models"
)

// Notion caps rich text blocks at 2000 characters; stay under it. Both
// limits count characters, so truncation happens on rune boundaries.
const (
	maxTitleLen = 200
	maxBlockLen = 1900

	// finalStatusName is the status value that marks a page as closed. Pages
	// in any other status count as open when a master value is retired.
	finalStatusName = "Finalizado"
)

// buildPageProperties maps the note's typed metadata onto the configured
// remote property names. Empty select and date values are omitted entirely:
// Notion rejects a select with an empty name.
func buildPageProperties(props config.Properties, note models.Note) map[string]any {
	title := strings.TrimSpace(note.Title)
	if title == "" {
		title = "Sin título"
	}
	title = truncateRunes(title, maxTitleLen)

	page := map[string]any{
		props.Title: map[string]any{
			"title": []map[string]any{
				{"text": map[string]any{"content": title}},
			},
		},
	}

	if note.Area != "" {
		page[props.Area] = selectValue(note.Area)
	}
	if note.Tipo != "" {
		page[props.Tipo] = selectValue(note.Tipo)
	}
	if note.Estado != "" {
		page[props.Estado] = map[string]any{
			"status": map[string]any{"name": note.Estado},
		}
	}
	if note.Fecha != "" {
		page[props.Fecha] = map[string]any{
			"date": map[string]any{"start": note.Fecha},
		}
	}
	if note.Prioridad != "" {
		page[props.Prioridad] = selectValue(note.Prioridad)
	}

	return page
}

func selectValue(name string) map[string]any {
	return map[string]any{
		"select": map[string]any{"name": name},
	}
}

// buildChildren lays out the page body: optional resumen and acciones
// sections followed by the original text, each as a heading plus paragraph.
func buildChildren(note models.Note) []map[string]any {
	var children []map[string]any

	if strings.TrimSpace(note.Resumen) != "" {
		children = append(children, headingBlock("Resumen"), paragraphBlock(note.Resumen))
	}
	if strings.TrimSpace(note.Acciones) != "" {
		children = append(children, headingBlock("Acciones"), paragraphBlock(note.Acciones))
	}
	children = append(children, headingBlock("Texto original"), paragraphBlock(note.RawText))

	return children
}

func headingBlock(text string) map[string]any {
	return map[string]any{
		"object": "block",
		"type":   "heading_3",
		"heading_3": map[string]any{
			"rich_text": richText(text),
		},
	}
}

func paragraphBlock(text string) map[string]any {
	text = truncateRunes(text, maxBlockLen)
	return map[string]any{
		"object": "block",
		"type":   "paragraph",
		"paragraph": map[string]any{
			"rich_text": richText(text),
		},
	}
}

// truncateRunes cuts s to at most max runes, never splitting a multibyte
// character.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

func richText(text string) []map[string]any {
	return []map[string]any{
		{"type": "text", "text": map[string]any{"content": text}},
	}
}
