// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fingerprint

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// SourceID computes the deduplication key for a (text, source) pair:
// hex(sha256(len(normalized) || normalized || source)).
//
// The normalized text is length-prefixed (8 bytes, big-endian) before the
// source tag is appended, so no two distinct pairs can collide on the
// concatenation boundary regardless of what characters the source tag
// contains.
func SourceID(rawText string, source string) string {
	normalized := Normalize(rawText, source)

	h := sha256.New()

	var prefix [8]byte
	binary.BigEndian.PutUint64(prefix[:], uint64(len(normalized)))
	h.Write(prefix[:])
	h.Write([]byte(normalized))
	h.Write([]byte(source))

	return hex.EncodeToString(h.Sum(nil))
}
