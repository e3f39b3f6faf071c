package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/notion-brain/internal/config"
	"github.com/MKhiriev/notion-brain/internal/logger"
	"github.com/MKhiriev/notion-brain/internal/mock"
	"github.com/MKhiriev/notion-brain/internal/service"
	"github.com/MKhiriev/notion-brain/internal/store"
	"github.com/MKhiriev/notion-brain/models"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

type handlerMocks struct {
	notes   *mock.MockNoteService
	actions *mock.MockActionService
	syncs   *mock.MockSyncService
	masters *mock.MockMasterService
}

// newTestHandler returns a *Handler wired to gomock services so individual
// handler methods can be called directly without going through the router.
func newTestHandler(t *testing.T, ctrl *gomock.Controller, cfg config.Server) (*Handler, handlerMocks) {
	t.Helper()
	m := handlerMocks{
		notes:   mock.NewMockNoteService(ctrl),
		actions: mock.NewMockActionService(ctrl),
		syncs:   mock.NewMockSyncService(ctrl),
		masters: mock.NewMockMasterService(ctrl),
	}
	h := &Handler{
		services: &service.Services{
			NoteService:   m.notes,
			ActionService: m.actions,
			SyncService:   m.syncs,
			MasterService: m.masters,
		},
		cfg:       cfg,
		buildInfo: models.NewAppBuildInfo("1.0.0", "2026-01-01", "abc123"),
		logger:    logger.Nop(),
	}
	return h, m
}

// encodeBody serialises v to JSON and returns it as an io.Reader.
func encodeBody(t *testing.T, v any) io.Reader {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buf).Encode(v))
	return buf
}

// ─────────────────────────────────────────────
// createNote
// ─────────────────────────────────────────────

func TestCreateNote_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(t, ctrl, config.Server{})

	draft := models.NoteDraft{RawText: "comprar tinta", Source: "manual"}
	m.notes.EXPECT().
		Create(gomock.Any(), draft).
		Return(models.Note{ID: "n1", Title: "comprar tinta", Status: models.StatusPending}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/notes/", encodeBody(t, draft))
	rec := httptest.NewRecorder()

	h.createNote(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got models.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "n1", got.ID)
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestCreateNote_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(t, ctrl, config.Server{})

	req := httptest.NewRequest(http.MethodPost, "/api/notes/", strings.NewReader(`{bad json}`))
	rec := httptest.NewRecorder()

	h.createNote(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateNote_EmptyTextRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(t, ctrl, config.Server{})

	m.notes.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(models.Note{}, service.ErrEmptyText)

	req := httptest.NewRequest(http.MethodPost, "/api/notes/", encodeBody(t, models.NoteDraft{RawText: "  "}))
	rec := httptest.NewRecorder()

	h.createNote(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateNote_DuplicateReturnsConflictWithExistingID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(t, ctrl, config.Server{})

	m.notes.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(models.Note{}, &store.DuplicateNoteError{ExistingID: "n42", SourceID: "sha"})

	req := httptest.NewRequest(http.MethodPost, "/api/notes/", encodeBody(t, models.NoteDraft{RawText: "repetida", Source: "manual"}))
	rec := httptest.NewRecorder()

	h.createNote(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)

	var got duplicateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "n42", got.ExistingID)
}

func TestCreateNote_UnexpectedError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(t, ctrl, config.Server{})

	m.notes.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(models.Note{}, errors.New("disk full"))

	req := httptest.NewRequest(http.MethodPost, "/api/notes/", encodeBody(t, models.NoteDraft{RawText: "texto"}))
	rec := httptest.NewRecorder()

	h.createNote(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ─────────────────────────────────────────────
// listNotes / getNote
// ─────────────────────────────────────────────

func TestListNotes_All(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(t, ctrl, config.Server{})

	m.notes.EXPECT().
		List(gomock.Any()).
		Return([]models.Note{{ID: "n1"}, {ID: "n2"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/notes/", nil)
	rec := httptest.NewRecorder()

	h.listNotes(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestListNotes_FilteredByStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(t, ctrl, config.Server{})

	m.notes.EXPECT().
		ListByStatus(gomock.Any(), models.StatusError).
		Return([]models.Note{{ID: "n3", Status: models.StatusError}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/notes/?status=error", nil)
	rec := httptest.NewRecorder()

	h.listNotes(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListNotes_EmptyStoreReturnsEmptyArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(t, ctrl, config.Server{})

	m.notes.EXPECT().List(gomock.Any()).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/notes/", nil)
	rec := httptest.NewRecorder()

	h.listNotes(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestGetNote_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, m := newTestHandler(t, ctrl, config.Server{})

	m.notes.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(models.Note{}, store.ErrNoteNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/notes/n404", nil)
	rec := httptest.NewRecorder()

	h.getNote(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
