// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/notion-brain/internal/config"
	"github.com/MKhiriev/notion-brain/internal/logger"
	"github.com/MKhiriev/notion-brain/models"
)

const (
	notionBaseURL = "https://api.notion.com"
	notionVersion = "2022-06-28"
)

type notionAdapter struct {
	client *resty.Client
	cfg    config.Notion
	logger *logger.Logger
}

// NewNotionAdapter builds the HTTP implementation of [NotionAdapter] from an
// already-validated configuration.
func NewNotionAdapter(cfg config.Notion, log *logger.Logger) NotionAdapter {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(notionBaseURL).
		SetTimeout(timeout).
		SetHeader("Authorization", "Bearer "+strings.TrimSpace(cfg.Token)).
		SetHeader("Notion-Version", notionVersion).
		SetHeader("Content-Type", "application/json")

	return &notionAdapter{client: cli, cfg: cfg, logger: log}
}

func (n *notionAdapter) ValidateSchema(ctx context.Context) error {
	log := n.logger.GetChildLogger("func", "notionAdapter.ValidateSchema")

	resp, err := n.client.R().
		SetContext(ctx).
		Get("/v1/databases/" + n.cfg.DatabaseID)
	if err = mapNotionError(resp, err); err != nil {
		log.Err(err).Msg("database schema request failed")
		return err
	}

	var db struct {
		Properties map[string]struct {
			Type string `json:"type"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(resp.Body(), &db); err != nil {
		return fmt.Errorf("decode database schema: %w", err)
	}

	expected := []struct {
		name     string
		propType string
	}{
		{n.cfg.Properties.Title, "title"},
		{n.cfg.Properties.Area, "select"},
		{n.cfg.Properties.Tipo, "select"},
		{n.cfg.Properties.Estado, "status"},
		{n.cfg.Properties.Fecha, "date"},
		{n.cfg.Properties.Prioridad, "select"},
	}
	for _, want := range expected {
		prop, ok := db.Properties[want.name]
		if !ok {
			return fmt.Errorf("%w: falta la propiedad %q en Notion", ErrSchema, want.name)
		}
		if prop.Type != want.propType {
			return fmt.Errorf("%w: la propiedad %q debe ser tipo %q, encontrado %q",
				ErrSchema, want.name, want.propType, prop.Type)
		}
	}

	return nil
}

func (n *notionAdapter) CreatePage(ctx context.Context, note models.Note) (string, error) {
	log := n.logger.GetChildLogger("func", "notionAdapter.CreatePage")

	payload := map[string]any{
		"parent":     map[string]any{"database_id": n.cfg.DatabaseID},
		"properties": buildPageProperties(n.cfg.Properties, note),
		"children":   buildChildren(note),
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/v1/pages")
	if err = mapNotionError(resp, err); err != nil {
		log.Err(err).Str("note_id", note.ID).Msg("create page failed")
		return "", err
	}

	var page struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body(), &page); err != nil {
		return "", fmt.Errorf("%w: decode create page response: %s", ErrUnknown, err)
	}
	if page.ID == "" {
		return "", fmt.Errorf("%w: create page response without id", ErrUnknown)
	}

	log.Debug().Str("note_id", note.ID).Str("page_id", page.ID).Msg("page created")
	return page.ID, nil
}

func (n *notionAdapter) UpdatePageStatus(ctx context.Context, pageID string, status string) error {
	log := n.logger.GetChildLogger("func", "notionAdapter.UpdatePageStatus")

	payload := map[string]any{
		"properties": map[string]any{
			n.cfg.Properties.Estado: map[string]any{
				"status": map[string]any{"name": status},
			},
		},
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(payload).
		Patch("/v1/pages/" + pageID)
	if err = mapNotionError(resp, err); err != nil {
		log.Err(err).Str("page_id", pageID).Msg("update page status failed")
		return err
	}

	return nil
}

func (n *notionAdapter) PatchSelectOptions(ctx context.Context, property string, options []string) error {
	log := n.logger.GetChildLogger("func", "notionAdapter.PatchSelectOptions")

	opts := make([]map[string]any, 0, len(options))
	for _, name := range options {
		opts = append(opts, map[string]any{"name": name})
	}
	payload := map[string]any{
		"properties": map[string]any{
			property: map[string]any{
				"select": map[string]any{"options": opts},
			},
		},
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(payload).
		Patch("/v1/databases/" + n.cfg.DatabaseID)
	if err = mapNotionError(resp, err); err != nil {
		log.Err(err).Str("property", property).Msg("patch select options failed")
		return err
	}

	return nil
}

func (n *notionAdapter) CountOpenPages(ctx context.Context, property string, value string) (int, error) {
	log := n.logger.GetChildLogger("func", "notionAdapter.CountOpenPages")

	count := 0
	cursor := ""
	for {
		payload := map[string]any{
			"page_size": 100,
			"filter": map[string]any{
				"and": []map[string]any{
					{
						"property": property,
						"select":   map[string]any{"equals": value},
					},
					{
						"property": n.cfg.Properties.Estado,
						"status":   map[string]any{"does_not_equal": finalStatusName},
					},
				},
			},
		}
		if cursor != "" {
			payload["start_cursor"] = cursor
		}

		resp, err := n.client.R().
			SetContext(ctx).
			SetBody(payload).
			Post("/v1/databases/" + n.cfg.DatabaseID + "/query")
		if err = mapNotionError(resp, err); err != nil {
			log.Err(err).Str("property", property).Str("value", value).Msg("query pages failed")
			return 0, err
		}

		var page struct {
			Results    []json.RawMessage `json:"results"`
			HasMore    bool              `json:"has_more"`
			NextCursor string            `json:"next_cursor"`
		}
		if err := json.Unmarshal(resp.Body(), &page); err != nil {
			return 0, fmt.Errorf("%w: decode query response: %s", ErrUnknown, err)
		}

		count += len(page.Results)
		if !page.HasMore {
			return count, nil
		}
		cursor = page.NextCursor
	}
}
