package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/notion-brain/internal/config"
	"github.com/MKhiriev/notion-brain/internal/logger"
	"github.com/MKhiriev/notion-brain/models"
)

// maxPromptLen caps the text sent for analysis; anything longer adds cost
// without improving the suggestion.
const maxPromptLen = 4000

const systemPrompt = "Eres un asistente que analiza notas empresariales.\n" +
	"Devuelve SOLO JSON válido con:\n" +
	"- resumen (máx 4 líneas)\n" +
	"- acciones (array JSON real si existen, nunca string)\n" +
	"- tipo_sugerido (Nota, Decisión, Incidencia)\n" +
	"- prioridad_sugerida (Baja, Media, Alta)\n" +
	"El campo 'acciones' debe ser un array JSON real, no un string.\n" +
	"No añadas texto fuera del JSON."

var errEmptyCompletion = errors.New("empty completion response")

type openAIProcessor struct {
	client *resty.Client
	model  string
	logger *logger.Logger
}

// NewOpenAIProcessor builds a [Processor] backed by an OpenAI-compatible chat
// completions endpoint.
func NewOpenAIProcessor(cfg config.Processor, log *logger.Logger) Processor {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Authorization", "Bearer "+cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &openAIProcessor{client: cli, model: cfg.Model, logger: log}
}

func (p *openAIProcessor) Suggest(ctx context.Context, text string) (models.Suggestion, error) {
	log := p.logger.GetChildLogger("func", "openAIProcessor.Suggest")

	if strings.TrimSpace(text) == "" {
		return models.Suggestion{}, nil
	}
	if len(text) > maxPromptLen {
		text = text[:maxPromptLen]
	}

	payload := map[string]any{
		"model": p.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": text},
		},
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/chat/completions")
	if err != nil {
		log.Err(err).Msg("suggestion request failed")
		return models.Suggestion{}, fmt.Errorf("suggestion request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode()).Msg("suggestion endpoint returned non-200")
		return models.Suggestion{}, fmt.Errorf("suggestion endpoint: http %d", resp.StatusCode())
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.Body(), &completion); err != nil {
		return models.Suggestion{}, fmt.Errorf("decode completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return models.Suggestion{}, errEmptyCompletion
	}

	suggestion, err := parseSuggestion(completion.Choices[0].Message.Content)
	if err != nil {
		log.Warn().Err(err).Msg("model returned unparseable suggestion")
		return models.Suggestion{}, err
	}

	return suggestion, nil
}

// parseSuggestion decodes the model output, tolerating prose around the JSON
// object and acciones delivered as a single string instead of an array.
func parseSuggestion(content string) (models.Suggestion, error) {
	content = strings.TrimSpace(content)

	raw := struct {
		Resumen   string          `json:"resumen"`
		Acciones  json.RawMessage `json:"acciones"`
		Tipo      string          `json:"tipo_sugerido"`
		Prioridad string          `json:"prioridad_sugerida"`
	}{}

	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start == -1 || end == -1 || start >= end {
			return models.Suggestion{}, fmt.Errorf("no JSON object in model output: %w", err)
		}
		if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
			return models.Suggestion{}, fmt.Errorf("decode model output: %w", err)
		}
	}

	return models.Suggestion{
		Resumen:   strings.TrimSpace(raw.Resumen),
		Acciones:  parseAcciones(raw.Acciones),
		Tipo:      strings.TrimSpace(raw.Tipo),
		Prioridad: strings.TrimSpace(raw.Prioridad),
	}, nil
}

func parseAcciones(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err == nil {
		return cleanAcciones(items)
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		// some models wrap the array in a string; try to unwrap it
		var nested []string
		if err := json.Unmarshal([]byte(single), &nested); err == nil {
			return cleanAcciones(nested)
		}
		return cleanAcciones([]string{single})
	}

	return nil
}

func cleanAcciones(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
