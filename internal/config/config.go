// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// notion-brain application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, an optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Notion holds the remote integration settings: token, database id and
	// the property-name mapping of the target database.
	Notion Notion `envPrefix:"NOTION_"`

	// Storage holds the local notes database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the optional local capture API settings. The API is only
	// started when Server.HTTPAddress is non-empty.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds background sync worker settings and the retry policy.
	Workers Workers `envPrefix:"WORKERS_"`

	// Processor holds the optional AI suggestion endpoint settings. The
	// processor is disabled when Processor.APIKey is empty.
	Processor Processor `envPrefix:"PROCESSOR_"`

	// Defaults holds the metadata values pre-filled into new notes.
	Defaults Defaults `envPrefix:"DEFAULTS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged below the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Notion holds everything the remote adapter needs to reach the target
// database.
type Notion struct {
	// Token is the Notion integration token used as a bearer credential.
	// Env: NOTION_TOKEN
	Token string `env:"TOKEN"`

	// DatabaseID identifies the Notion database that receives the notes.
	// Env: NOTION_DATABASE_ID
	DatabaseID string `env:"DATABASE_ID"`

	// RequestTimeout bounds a single outbound Notion API call.
	// Env: NOTION_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Properties maps local note fields onto the database's property names.
	Properties Properties `envPrefix:"PROP_"`
}

// Properties names the typed properties of the remote database. The defaults
// match the database layout the original desktop app provisions.
type Properties struct {
	// Title is the title-type property. Env: NOTION_PROP_TITLE
	Title string `env:"TITLE"`
	// Area is a select-type property. Env: NOTION_PROP_AREA
	Area string `env:"AREA"`
	// Tipo is a select-type property. Env: NOTION_PROP_TIPO
	Tipo string `env:"TIPO"`
	// Estado is a status-type property. Env: NOTION_PROP_ESTADO
	Estado string `env:"ESTADO"`
	// Fecha is a date-type property. Env: NOTION_PROP_FECHA
	Fecha string `env:"FECHA"`
	// Prioridad is a select-type property. Env: NOTION_PROP_PRIORIDAD
	Prioridad string `env:"PRIORIDAD"`
}

// Storage holds local persistence settings.
type Storage struct {
	// DB holds the notes database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the notes database backend.
type DB struct {
	// DSN is either a SQLite file path (default) or a PostgreSQL connection
	// string starting with postgres:// or postgresql://.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds settings for the local capture HTTP API.
type Server struct {
	// HTTPAddress is the TCP address the capture API listens on, in
	// "host:port" format. Empty disables the API entirely.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// CaptureToken, when non-empty, is required as a bearer token on every
	// capture API request.
	// Env: SERVER_CAPTURE_TOKEN
	CaptureToken string `env:"CAPTURE_TOKEN"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds the background sync schedule and the retry policy knobs that
// the sync engine consumes.
type Workers struct {
	// SyncInterval defines how often the background worker triggers a sync
	// pass. Zero disables the worker; sync then runs on demand only.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// RetryDelay is the minimum wait before a failed note becomes eligible
	// for another delivery attempt.
	// Env: WORKERS_RETRY_DELAY
	RetryDelay time.Duration `env:"RETRY_DELAY"`

	// MaxUnknownAttempts caps delivery attempts for notes whose last failure
	// could not be classified. Network and rate-limit failures are retried
	// without a cap.
	// Env: WORKERS_MAX_UNKNOWN_ATTEMPTS
	MaxUnknownAttempts int64 `env:"MAX_UNKNOWN_ATTEMPTS"`
}

// Processor holds settings for the optional AI suggestion endpoint
// (an OpenAI-compatible chat completion API).
type Processor struct {
	// APIKey authenticates against the suggestion endpoint. Empty disables
	// the processor; capture then stores exactly what the user typed.
	// Env: PROCESSOR_API_KEY
	APIKey string `env:"API_KEY"`

	// BaseURL is the endpoint base URL. Env: PROCESSOR_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// Model names the chat model to use. Env: PROCESSOR_MODEL
	Model string `env:"MODEL"`

	// RequestTimeout bounds a single suggestion call.
	// Env: PROCESSOR_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Defaults holds the metadata pre-filled into a new note when the capture
// surface leaves a field empty.
type Defaults struct {
	// Area is the default Area value. Env: DEFAULTS_AREA
	Area string `env:"AREA"`
	// Tipo is the default Tipo value. Env: DEFAULTS_TIPO
	Tipo string `env:"TIPO"`
	// Estado is the default Estado value. Env: DEFAULTS_ESTADO
	Estado string `env:"ESTADO"`
	// Prioridad is the default Prioridad value. Env: DEFAULTS_PRIORIDAD
	Prioridad string `env:"PRIORIDAD"`
}

// GetConfig loads, merges, and validates the application configuration from
// all available sources in the following priority order (earlier sources win;
// later sources only fill fields still empty):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
