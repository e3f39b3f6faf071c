package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/notion-brain/internal/config"
	"github.com/MKhiriev/notion-brain/internal/fingerprint"
	"github.com/MKhiriev/notion-brain/internal/logger"
	"github.com/MKhiriev/notion-brain/internal/mock"
	"github.com/MKhiriev/notion-brain/internal/store"
	"github.com/MKhiriev/notion-brain/models"
)

func testDefaults() config.Defaults {
	return config.Defaults{Estado: "Pendiente", Prioridad: "Media"}
}

func newTestNoteSvc(t *testing.T, ctrl *gomock.Controller) (NoteService, *mock.MockNoteStore, *mock.MockProcessor) {
	t.Helper()
	notes := mock.NewMockNoteStore(ctrl)
	actions := mock.NewMockActionStore(ctrl)
	actions.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Action{}, nil).
		AnyTimes()
	proc := mock.NewMockProcessor(ctrl)
	return NewNoteService(notes, actions, proc, testDefaults(), logger.Nop()), notes, proc
}

func TestCreate_ComputesFingerprintAndInsertsPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, notes, proc := newTestNoteSvc(t, ctrl)
	ctx := context.Background()

	draft := models.NoteDraft{RawText: "Buy milk", Source: "manual"}
	wantSourceID := fingerprint.SourceID("Buy milk", "manual")

	proc.EXPECT().Suggest(ctx, gomock.Any()).Return(models.Suggestion{}, nil)
	notes.EXPECT().
		InsertIfAbsent(ctx, gomock.Any(), wantSourceID).
		DoAndReturn(func(_ context.Context, d models.NoteDraft, sourceID string) (models.Note, error) {
			return models.Note{ID: "n1", SourceID: sourceID, Status: models.StatusPending, Title: d.Title}, nil
		})

	note, err := svc.Create(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, note.Status)
	assert.Equal(t, wantSourceID, note.SourceID)
	assert.Equal(t, "buy milk", note.Title) // derived from the normalized first line
}

func TestCreate_DuplicatePropagated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, notes, proc := newTestNoteSvc(t, ctrl)
	ctx := context.Background()

	proc.EXPECT().Suggest(ctx, gomock.Any()).Return(models.Suggestion{}, nil)
	notes.EXPECT().
		InsertIfAbsent(ctx, gomock.Any(), gomock.Any()).
		Return(models.Note{}, &store.DuplicateNoteError{ExistingID: "n1"})

	_, err := svc.Create(ctx, models.NoteDraft{RawText: "Buy milk", Source: "manual"})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrDuplicateNote)
}

func TestCreate_EmptyTextRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestNoteSvc(t, ctrl)

	_, err := svc.Create(context.Background(), models.NoteDraft{RawText: "   \n "})
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestCreate_SuggestionsFillEmptyFieldsOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, notes, proc := newTestNoteSvc(t, ctrl)
	ctx := context.Background()

	draft := models.NoteDraft{
		RawText: "la impresora no responde",
		Source:  "manual",
		Tipo:    "Nota", // user's explicit choice wins over the suggestion
	}
	suggestion := models.Suggestion{
		Resumen:   "Impresora averiada",
		Acciones:  []string{"Reiniciar impresora", "Avisar a soporte"},
		Tipo:      "Incidencia",
		Prioridad: "Alta",
	}

	proc.EXPECT().Suggest(ctx, gomock.Any()).Return(suggestion, nil)
	notes.EXPECT().
		InsertIfAbsent(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d models.NoteDraft, _ string) (models.Note, error) {
			assert.Equal(t, "Nota", d.Tipo)
			assert.Equal(t, "Alta", d.Prioridad)
			assert.Equal(t, "Impresora averiada", d.Resumen)
			assert.Equal(t, "Reiniciar impresora\nAvisar a soporte", d.Acciones)
			return models.Note{ID: "n1"}, nil
		})

	_, err := svc.Create(ctx, draft)
	require.NoError(t, err)
}

func TestCreate_ProcessorFailureDoesNotFailCapture(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, notes, proc := newTestNoteSvc(t, ctrl)
	ctx := context.Background()

	proc.EXPECT().Suggest(ctx, gomock.Any()).Return(models.Suggestion{}, errors.New("endpoint down"))
	notes.EXPECT().
		InsertIfAbsent(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d models.NoteDraft, _ string) (models.Note, error) {
			assert.Empty(t, d.Resumen)
			return models.Note{ID: "n1"}, nil
		})

	_, err := svc.Create(ctx, models.NoteDraft{RawText: "texto", Source: "manual"})
	require.NoError(t, err)
}

func TestCreate_DefaultsApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, notes, proc := newTestNoteSvc(t, ctrl)
	ctx := context.Background()

	proc.EXPECT().Suggest(ctx, gomock.Any()).Return(models.Suggestion{}, nil)
	notes.EXPECT().
		InsertIfAbsent(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d models.NoteDraft, _ string) (models.Note, error) {
			assert.Equal(t, "Pendiente", d.Estado)
			assert.Equal(t, "Media", d.Prioridad)
			assert.NotEmpty(t, d.Fecha)
			assert.Equal(t, "manual", d.Source) // empty source defaults to manual
			return models.Note{ID: "n1"}, nil
		})

	_, err := svc.Create(ctx, models.NoteDraft{RawText: "texto"})
	require.NoError(t, err)
}

func TestCreate_RegistersActionLines(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	notes := mock.NewMockNoteStore(ctrl)
	actions := mock.NewMockActionStore(ctrl)
	proc := mock.NewMockProcessor(ctrl)
	svc := NewNoteService(notes, actions, proc, testDefaults(), logger.Nop())
	ctx := context.Background()

	proc.EXPECT().Suggest(ctx, gomock.Any()).Return(models.Suggestion{}, nil)
	notes.EXPECT().
		InsertIfAbsent(ctx, gomock.Any(), gomock.Any()).
		Return(models.Note{
			ID:       "n1",
			Area:     "Trabajo",
			Acciones: "Reiniciar impresora\n  \nAvisar a soporte",
		}, nil)

	// one action per non-blank line of the acciones field
	actions.EXPECT().Create(ctx, "n1", "Reiniciar impresora", "Trabajo").Return(models.Action{}, nil)
	actions.EXPECT().Create(ctx, "n1", "Avisar a soporte", "Trabajo").Return(models.Action{}, nil)

	_, err := svc.Create(ctx, models.NoteDraft{RawText: "la impresora no responde", Source: "manual"})
	require.NoError(t, err)
}

func TestCreate_ActionFailureDoesNotFailCapture(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	notes := mock.NewMockNoteStore(ctrl)
	actions := mock.NewMockActionStore(ctrl)
	proc := mock.NewMockProcessor(ctrl)
	svc := NewNoteService(notes, actions, proc, testDefaults(), logger.Nop())
	ctx := context.Background()

	proc.EXPECT().Suggest(ctx, gomock.Any()).Return(models.Suggestion{}, nil)
	notes.EXPECT().
		InsertIfAbsent(ctx, gomock.Any(), gomock.Any()).
		Return(models.Note{ID: "n1", Acciones: "Revisar contrato"}, nil)
	actions.EXPECT().
		Create(ctx, "n1", "Revisar contrato", gomock.Any()).
		Return(models.Action{}, errors.New("db locked"))

	note, err := svc.Create(ctx, models.NoteDraft{RawText: "contrato pendiente", Source: "manual"})
	require.NoError(t, err)
	assert.Equal(t, "n1", note.ID)
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name       string
		normalized string
		want       string
	}{
		{"first line", "primera línea\nsegunda línea", "primera línea"},
		{"whole text when single line", "solo una línea", "solo una línea"},
		{"empty text", "", "Sin título"},
		{
			"long line capped at 120 runes",
			strings.Repeat("a", 150),
			strings.Repeat("a", 120),
		},
		{
			"multibyte character at the cap survives whole",
			strings.Repeat("a", 119) + "ñ y más texto",
			strings.Repeat("a", 119) + "ñ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deriveTitle(tt.normalized)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got), "derived title must be valid UTF-8")
		})
	}
}

func TestDeriveTitle_NeverSplitsRunes(t *testing.T) {
	// every prefix length around the cap keeps the title valid UTF-8
	base := strings.Repeat("ñá", 100)
	got := deriveTitle(base)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, maxDerivedTitleLen, utf8.RuneCountInString(got))
}
