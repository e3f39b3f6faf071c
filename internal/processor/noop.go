package processor

import (
	"context"

	"github.com/MKhiriev/notion-brain/models"
)

type noopProcessor struct{}

// NewNoopProcessor returns a [Processor] that suggests nothing. Used when no
// API key is configured; captures then store exactly what the user typed.
func NewNoopProcessor() Processor {
	return noopProcessor{}
}

func (noopProcessor) Suggest(ctx context.Context, text string) (models.Suggestion, error) {
	return models.Suggestion{}, nil
}
