// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/notion-brain/internal/config"
	"github.com/MKhiriev/notion-brain/internal/logger"
	"github.com/MKhiriev/notion-brain/models"
)

func testProperties() config.Properties {
	return config.Properties{
		Title:     "Actividad",
		Area:      "Area",
		Tipo:      "Tipo",
		Estado:    "Estado",
		Fecha:     "Fecha",
		Prioridad: "Prioridad",
	}
}

// newTestAdapter builds a notionAdapter pointed at a local test server.
func newTestAdapter(t *testing.T, serverURL string) *notionAdapter {
	t.Helper()
	cfg := config.Notion{
		Token:      "secret-token",
		DatabaseID: "db-1",
		Properties: testProperties(),
	}
	cli := resty.New().
		SetBaseURL(serverURL).
		SetHeader("Authorization", "Bearer "+cfg.Token).
		SetHeader("Notion-Version", notionVersion).
		SetHeader("Content-Type", "application/json")
	return &notionAdapter{client: cli, cfg: cfg, logger: logger.Nop()}
}

func schemaResponse(types map[string]string) map[string]any {
	props := map[string]any{}
	for name, propType := range types {
		props[name] = map[string]any{"type": propType}
	}
	return map[string]any{"properties": props}
}

func validSchemaTypes() map[string]string {
	return map[string]string{
		"Actividad": "title",
		"Area":      "select",
		"Tipo":      "select",
		"Estado":    "status",
		"Fecha":     "date",
		"Prioridad": "select",
	}
}

// ── ValidateSchema ──────────────────────────────────────────────────────────

func TestValidateSchema_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/databases/db-1", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, notionVersion, r.Header.Get("Notion-Version"))

		_ = json.NewEncoder(w).Encode(schemaResponse(validSchemaTypes()))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.ValidateSchema(context.Background()))
}

func TestValidateSchema_MissingProperty(t *testing.T) {
	types := validSchemaTypes()
	delete(types, "Prioridad")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(schemaResponse(types))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.ValidateSchema(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchema)
	assert.Contains(t, err.Error(), "Prioridad")
}

func TestValidateSchema_WrongType(t *testing.T) {
	types := validSchemaTypes()
	types["Estado"] = "select"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(schemaResponse(types))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.ValidateSchema(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchema)
	assert.Contains(t, err.Error(), "Estado")
}

func TestValidateSchema_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": "unauthorized", "message": "API token is invalid.",
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.ValidateSchema(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuth)
}

func TestValidateSchema_DatabaseNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": "object_not_found", "message": "Could not find database.",
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.ValidateSchema(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchema)
}

// ── CreatePage ──────────────────────────────────────────────────────────────

func TestCreatePage_Success(t *testing.T) {
	note := models.Note{
		ID:        "note-1",
		Title:     "Llamar al proveedor",
		RawText:   "llamar al proveedor antes del viernes",
		Area:      "General",
		Tipo:      "Tarea",
		Estado:    "Pendiente",
		Prioridad: "Alta",
		Fecha:     "2026-08-30",
		Resumen:   "Contactar con el proveedor",
	}

	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/pages", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]any{"id": "page-123"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	pageID, err := a.CreatePage(context.Background(), note)

	require.NoError(t, err)
	assert.Equal(t, "page-123", pageID)

	parent := captured["parent"].(map[string]any)
	assert.Equal(t, "db-1", parent["database_id"])

	props := captured["properties"].(map[string]any)
	estado := props["Estado"].(map[string]any)["status"].(map[string]any)
	assert.Equal(t, "Pendiente", estado["name"])
	area := props["Area"].(map[string]any)["select"].(map[string]any)
	assert.Equal(t, "General", area["name"])

	children := captured["children"].([]any)
	// resumen heading+paragraph, texto original heading+paragraph
	assert.Len(t, children, 4)
}

func TestCreatePage_OmitsEmptySelects(t *testing.T) {
	note := models.Note{ID: "note-1", RawText: "texto"}

	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "page-1"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.CreatePage(context.Background(), note)

	require.NoError(t, err)
	props := captured["properties"].(map[string]any)
	assert.Contains(t, props, "Actividad")
	assert.NotContains(t, props, "Area")
	assert.NotContains(t, props, "Fecha")

	title := props["Actividad"].(map[string]any)["title"].([]any)
	content := title[0].(map[string]any)["text"].(map[string]any)["content"]
	assert.Equal(t, "Sin título", content)
}

func TestCreatePage_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": "rate_limited", "message": "Rate limited, please retry.",
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.CreatePage(context.Background(), models.Note{ID: "note-1", RawText: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestCreatePage_ValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"code": "validation_error", "message": "Estado is expected to be status.",
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.CreatePage(context.Background(), models.Note{ID: "note-1", RawText: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchema)
}

func TestCreatePage_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	a := newTestAdapter(t, srv.URL)
	_, err := a.CreatePage(context.Background(), models.Note{ID: "note-1", RawText: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestCreatePage_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.CreatePage(context.Background(), models.Note{ID: "note-1", RawText: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknown)
}

// ── UpdatePageStatus ────────────────────────────────────────────────────────

func TestUpdatePageStatus_Success(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/v1/pages/page-123", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "page-123"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.UpdatePageStatus(context.Background(), "page-123", "Finalizado"))

	props := captured["properties"].(map[string]any)
	status := props["Estado"].(map[string]any)["status"].(map[string]any)
	assert.Equal(t, "Finalizado", status["name"])
}

// ── CountOpenPages ──────────────────────────────────────────────────────────

func TestCountOpenPages_Paginates(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/databases/db-1/query", r.URL.Path)
		calls++
		if calls == 1 {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"results":     []map[string]any{{"id": "p1"}, {"id": "p2"}},
				"has_more":    true,
				"next_cursor": "cursor-2",
			})
			return
		}

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "cursor-2", payload["start_cursor"])
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results":  []map[string]any{{"id": "p3"}},
			"has_more": false,
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	count, err := a.CountOpenPages(context.Background(), "Area", "Perceco")

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 2, calls)
}

// ── Classify ────────────────────────────────────────────────────────────────

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want models.ErrorClass
	}{
		{"auth", ErrAuth, models.ErrorClassAuth},
		{"schema", ErrSchema, models.ErrorClassSchema},
		{"network", ErrNetwork, models.ErrorClassNetwork},
		{"rate limited", ErrRateLimited, models.ErrorClassRateLimited},
		{"unknown sentinel", ErrUnknown, models.ErrorClassUnknown},
		{"arbitrary error", assert.AnError, models.ErrorClassUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
