// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks the invariants needed to start the application at all.
// Notion settings are intentionally excluded: capture must work before the
// integration is configured, so those are checked by [Notion.Validate] when
// a sync pass begins.
func (cfg *StructuredConfig) validate() error {
	if strings.TrimSpace(cfg.Storage.DB.DSN) == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.MaxUnknownAttempts < 0 || cfg.Workers.RetryDelay < 0 {
		return ErrInvalidRetryConfigs
	}

	return nil
}

// Validate is the sync engine's pre-flight check. It verifies that the
// integration token and database id are present and sane and that every
// configured property name is non-empty. All failures wrap
// [ErrNotionNotConfigured] so callers can distinguish "fix your
// configuration" from per-note delivery errors with a single errors.Is.
func (n Notion) Validate() error {
	token := strings.TrimSpace(n.Token)
	if token == "" {
		return fmt.Errorf("%w: falta el token de Notion", ErrNotionNotConfigured)
	}
	if token != n.Token || strings.ContainsAny(token, " \t\n") {
		return fmt.Errorf("%w: el token de Notion contiene espacios", ErrNotionNotConfigured)
	}

	if strings.TrimSpace(n.DatabaseID) == "" {
		return fmt.Errorf("%w: falta el id de la base de datos de Notion", ErrNotionNotConfigured)
	}

	props := map[string]string{
		"title":     n.Properties.Title,
		"area":      n.Properties.Area,
		"tipo":      n.Properties.Tipo,
		"estado":    n.Properties.Estado,
		"fecha":     n.Properties.Fecha,
		"prioridad": n.Properties.Prioridad,
	}
	for field, name := range props {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: la propiedad %q no puede estar vacía", ErrNotionNotConfigured, field)
		}
	}

	return nil
}
