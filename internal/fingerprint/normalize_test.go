package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ── Normalize ────────────────────────────────────────────────────────────────

func TestNormalize_TrimsAndUnifiesNewlines(t *testing.T) {
	got := Normalize("  hola\r\nmundo\r  ", "manual")
	assert.Equal(t, "hola\nmundo", got)
}

func TestNormalize_CollapsesSpaceRunsPerLine(t *testing.T) {
	got := Normalize("comprar \t  leche\n  y \t pan  ", "manual")
	assert.Equal(t, "comprar leche\ny pan", got)
}

func TestNormalize_LowerCases(t *testing.T) {
	assert.Equal(t, Normalize("Buy Milk", "manual"), Normalize("buy milk", "manual"))
}

func TestNormalize_PreservesLineBreaks(t *testing.T) {
	got := Normalize("uno\ndos\ntres", "manual")
	assert.Equal(t, "uno\ndos\ntres", got)
}

func TestNormalize_EmailSource_StripsTrailingSignature(t *testing.T) {
	raw := "línea 1\nlínea 2\nlínea 3\nlínea 4\nlínea 5\nlínea 6\nlínea 7\nSaludos,\nPepe"
	got := Normalize(raw, SourceEmailPasted)
	assert.NotContains(t, got, "saludos")
	assert.Contains(t, got, "línea 7")
}

func TestNormalize_EmailSource_KeepsMarkerNearTop(t *testing.T) {
	// A short note opening with a marker word must keep its content.
	raw := "Saludos del equipo\nresumen de la reunión"
	got := Normalize(raw, SourceEmailPasted)
	assert.Contains(t, got, "saludos del equipo")
}

func TestNormalize_NonEmailSource_KeepsSignature(t *testing.T) {
	raw := "a\nb\nc\nd\ne\nf\ng\nSaludos,\nPepe"
	got := Normalize(raw, "manual")
	assert.Contains(t, got, "saludos,")
}

func TestNormalize_Deterministic(t *testing.T) {
	raw := "  Una   nota\r\ncon  espacios  "
	assert.Equal(t, Normalize(raw, "manual"), Normalize(raw, "manual"))
}
