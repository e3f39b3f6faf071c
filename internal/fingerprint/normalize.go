// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package fingerprint turns raw captured text into the canonical form and the
// stable SHA-256 identity used for local deduplication.
//
// Normalization and fingerprinting are pure functions: the same inputs always
// produce the same output, across calls and across process restarts. The raw
// text itself is stored verbatim elsewhere; nothing in this package is lossy
// for the user, only for the dedup key.
package fingerprint

import (
	"regexp"
	"strings"
)

// SourceEmailPasted is the source tag for notes pasted from e-mail clients.
// Those get conservative trailing-signature stripping on top of the common
// normalization rules.
const SourceEmailPasted = "email_pasted"

var spaceRuns = regexp.MustCompile(`[ \t]+`)

// signatureMarkers are line prefixes (lower-cased) that usually open an
// e-mail signature block.
var signatureMarkers = []string{
	"saludos",
	"atentamente",
	"best regards",
	"kind regards",
	"--",
}

// Normalize returns the canonical form of raw for deduplication purposes:
//
//   - line endings unified to \n, outer whitespace trimmed;
//   - runs of spaces and tabs collapsed to a single space, per line;
//   - lower-cased, so notes differing only in capitalisation dedup to one;
//   - for the "email_pasted" source, a trailing signature block is stripped
//     when its marker line sits in the lower two thirds of the text.
//
// Lower-casing applies to the fingerprint input only; the note keeps its raw
// text untouched, so no meaningful content is destroyed.
func Normalize(raw string, source string) string {
	text := normalizeNewlines(raw)
	text = collapseSpaces(text)
	if source == SourceEmailPasted {
		text = stripSignature(text)
		text = collapseSpaces(text)
	}
	return strings.ToLower(text)
}

func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.TrimSpace(text)
}

func collapseSpaces(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRuns.ReplaceAllString(line, " "))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// stripSignature removes a trailing signature block. It is deliberately
// conservative: the marker must be below max(2, len/3) lines, so a short note
// that opens with "Saludos" keeps its content.
func stripSignature(text string) string {
	lines := strings.Split(text, "\n")
	threshold := len(lines) / 3
	if threshold < 2 {
		threshold = 2
	}

	for i := len(lines) - 1; i >= 0; i-- {
		candidate := strings.ToLower(strings.TrimSpace(lines[i]))
		for _, marker := range signatureMarkers {
			if strings.HasPrefix(candidate, marker) {
				if i > threshold {
					return strings.TrimSpace(strings.Join(lines[:i], "\n"))
				}
				return text
			}
		}
	}
	return text
}
