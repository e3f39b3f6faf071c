// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "strings"

// offlineMarkers are substrings of transport errors that mean the Notion API
// could not be reached at all.
var offlineMarkers = []string{
	"connection refused",
	"dial tcp",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"context deadline exceeded",
}

func humanizeNotionUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	for _, marker := range offlineMarkers {
		if strings.Contains(s, marker) {
			return "Sin red o Notion no disponible"
		}
	}

	return err.Error()
}
