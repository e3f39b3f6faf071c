package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validNotion() Notion {
	return Notion{
		Token:      "secret_abc123",
		DatabaseID: "11111111-2222-3333-4444-555555555555",
		Properties: Properties{
			Title:     "Actividad",
			Area:      "Area",
			Tipo:      "Tipo",
			Estado:    "Estado",
			Fecha:     "Fecha",
			Prioridad: "Prioridad",
		},
	}
}

// ── StructuredConfig.validate ────────────────────────────────────────────────

func TestValidate_DefaultsAreValid(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.validate())
}

func TestValidate_EmptyDSN(t *testing.T) {
	cfg := defaultConfig()
	cfg.Storage.DB.DSN = "   "
	assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)
}

func TestValidate_NegativeRetrySettings(t *testing.T) {
	cfg := defaultConfig()
	cfg.Workers.MaxUnknownAttempts = -1
	assert.ErrorIs(t, cfg.validate(), ErrInvalidRetryConfigs)
}

// ── Notion.Validate ──────────────────────────────────────────────────────────

func TestNotionValidate_OK(t *testing.T) {
	require.NoError(t, validNotion().Validate())
}

func TestNotionValidate_MissingToken(t *testing.T) {
	n := validNotion()
	n.Token = ""
	assert.ErrorIs(t, n.Validate(), ErrNotionNotConfigured)
}

func TestNotionValidate_TokenWithStrayWhitespace(t *testing.T) {
	n := validNotion()
	n.Token = " secret_abc123\n"
	assert.ErrorIs(t, n.Validate(), ErrNotionNotConfigured)
}

func TestNotionValidate_MissingDatabase(t *testing.T) {
	n := validNotion()
	n.DatabaseID = ""
	assert.ErrorIs(t, n.Validate(), ErrNotionNotConfigured)
}

func TestNotionValidate_EmptyPropertyName(t *testing.T) {
	n := validNotion()
	n.Properties.Estado = " "
	assert.ErrorIs(t, n.Validate(), ErrNotionNotConfigured)
}
