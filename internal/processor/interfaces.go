// Package processor enriches captured text with suggested metadata using an
// OpenAI-compatible chat endpoint. Suggestions are best-effort: a capture
// never fails because the processor is down or returns garbage.
package processor

import (
	"context"

	"github.com/MKhiriev/notion-brain/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/processor_mock.go -package=mock

// Processor analyses raw note text and proposes metadata.
type Processor interface {
	// Suggest returns a summary, action items and suggested tipo/prioridad
	// for the text. On any failure it returns a zero suggestion together
	// with the error; callers use the zero value and move on.
	Suggest(ctx context.Context, text string) (models.Suggestion, error)
}
