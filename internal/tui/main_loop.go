package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/notion-brain/internal/app"
	"github.com/MKhiriev/notion-brain/internal/config"
	"github.com/MKhiriev/notion-brain/internal/service"
	"github.com/MKhiriev/notion-brain/internal/store"
	"github.com/MKhiriev/notion-brain/models"
)

type captureStage int

const (
	captureStageNone captureStage = iota
	captureStageText
	captureStageMeta
)

type mainLoopModel struct {
	ctx       context.Context
	services  *service.Services
	buildInfo models.AppBuildInfo

	notes   []models.Note
	idx     int
	loading bool
	syncing bool
	status  string
	errMsg  string

	detail        bool
	showBuildInfo bool

	sync syncModel

	captureStage  captureStage
	captureArea   textarea.Model
	captureInputs []textinput.Model
	captureFocus  int
	captureDraft  models.NoteDraft
	captureErr    string
	captureSaving bool

	editing        bool
	editInputs     []textinput.Model
	editFocus      int
	editSubmitting bool
	editNoteID     string

	masters mastersModel
}

func newMainLoopModel(ctx context.Context, services *service.Services, buildInfo models.AppBuildInfo) tea.Model {
	return mainLoopModel{
		ctx:       ctx,
		services:  services,
		buildInfo: buildInfo,
		loading:   true,
		sync:      newSyncModel(),
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return m.cmdLoadNotes()
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case notesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.notes = msg.notes
		if m.idx >= len(m.notes) {
			m.idx = len(m.notes) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil

	case syncDoneMsg:
		m.syncing = false
		if msg.err != nil {
			m.errMsg = syncErrorMessage(msg.err)
			return m, nil
		}
		m.status = syncReportMessage(msg.report)
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadNotes()

	case noteSavedMsg:
		m.captureSaving = false
		if msg.err != nil {
			var dup *store.DuplicateNoteError
			switch {
			case errors.As(msg.err, &dup):
				m.status = app.MsgDuplicateNote
				m.errMsg = ""
			case errors.Is(msg.err, service.ErrEmptyText):
				m.captureErr = app.MsgEmptyNote
				return m, nil
			default:
				m.status = ""
				m.errMsg = msg.err.Error()
			}
			m.resetCaptureFlow()
			return m, nil
		}
		m.status = "Nota guardada: " + msg.note.Title
		m.errMsg = ""
		m.resetCaptureFlow()
		m.loading = true
		return m, m.cmdLoadNotes()

	case metadataSavedMsg:
		m.editSubmitting = false
		if msg.err != nil {
			if errors.Is(msg.err, store.ErrInvalidTransition) {
				m.errMsg = app.MsgNoteAlreadySent
				m.editing = false
				return m, nil
			}
			m.errMsg = fmt.Sprintf("Error al guardar: %v", msg.err)
			return m, nil
		}
		m.editing = false
		m.status = "Nota actualizada"
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadNotes()

	case spinner.TickMsg:
		if !m.syncing {
			return m, nil
		}
		var cmd tea.Cmd
		m.sync.spinner, cmd = m.sync.spinner.Update(msg)
		return m, cmd

	case mastersLoadedMsg, masterSavedMsg, masterDeactivatedMsg, schemaPushedMsg:
		return m.updateMasters(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.masters.stage != mastersStageNone {
			return m.updateMasters(msg)
		}
		if m.captureStage != captureStageNone {
			return m.updateCaptureFlow(msg)
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	if m.showBuildInfo {
		if keyMsg.String() == "esc" {
			m.showBuildInfo = false
		}
		return m, nil
	}

	if m.masters.stage != mastersStageNone {
		return m.updateMasters(msg)
	}

	if m.captureStage != captureStageNone {
		return m.updateCaptureFlow(msg)
	}

	if m.editing {
		return m.updateEditing(msg)
	}

	if m.detail {
		note, ok := m.current()
		if !ok {
			m.detail = false
			return m, nil
		}

		switch keyMsg.String() {
		case "esc":
			m.detail = false
		case "e":
			m.detail = false
			m.startEdit(note)
			return m, nil
		case "c":
			if err := clipboard.WriteAll(note.RawText); err != nil {
				m.errMsg = fmt.Sprintf("Error al copiar: %v", err)
				return m, nil
			}
			m.status = "Texto copiado"
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.notes)-1 {
			m.idx++
		}
	case "a":
		m.startCaptureFlow()
		return m, nil
	case "s":
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		m.status = ""
		m.errMsg = ""
		return m, tea.Batch(m.sync.spinner.Tick, m.cmdSync())
	case "r":
		m.loading = true
		return m, m.cmdLoadNotes()
	case "enter":
		if _, ok := m.current(); !ok {
			m.status = "No hay notas"
			return m, nil
		}
		m.detail = true
	case "e":
		note, ok := m.current()
		if !ok {
			m.status = "No hay notas"
			return m, nil
		}
		m.startEdit(note)
		return m, nil
	case "m":
		m.startMasters()
		return m, nil
	case "v":
		m.showBuildInfo = true
		return m, nil
	}

	return m, nil
}

// ── capture flow ──

func (m *mainLoopModel) startCaptureFlow() {
	ta := textarea.New()
	ta.Placeholder = "Escribe la nota"
	ta.SetWidth(54)
	ta.SetHeight(6)
	ta.Focus()

	m.captureArea = ta
	m.captureStage = captureStageText
	m.captureDraft = models.NoteDraft{Source: "manual"}
	m.captureErr = ""
	m.captureSaving = false
}

func (m *mainLoopModel) resetCaptureFlow() {
	m.captureStage = captureStageNone
	m.captureDraft = models.NoteDraft{}
	m.captureInputs = nil
	m.captureFocus = 0
	m.captureErr = ""
	m.captureSaving = false
}

func (m *mainLoopModel) initCaptureMetaInputs() {
	area := textinput.New()
	area.Placeholder = "Área (vacío = por defecto)"
	area.Width = 40
	area.Focus()

	tipo := textinput.New()
	tipo.Placeholder = "Tipo (vacío = sugerido)"
	tipo.Width = 40

	prioridad := textinput.New()
	prioridad.Placeholder = "Prioridad (vacío = sugerida)"
	prioridad.Width = 40

	m.captureInputs = []textinput.Model{area, tipo, prioridad}
	m.captureFocus = 0
}

func (m mainLoopModel) updateCaptureFlow(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.captureStage {
	case captureStageText:
		return m.updateCaptureText(msg)
	case captureStageMeta:
		return m.updateCaptureMeta(msg)
	default:
		return m, nil
	}
}

func (m mainLoopModel) updateCaptureText(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.resetCaptureFlow()
			return m, nil
		case "ctrl+s":
			text := strings.TrimSpace(m.captureArea.Value())
			if text == "" {
				m.captureErr = app.MsgEmptyNote
				return m, nil
			}
			m.captureDraft.RawText = m.captureArea.Value()
			m.captureErr = ""
			m.captureStage = captureStageMeta
			m.initCaptureMetaInputs()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.captureArea, cmd = m.captureArea.Update(msg)
	return m, cmd
}

func (m mainLoopModel) updateCaptureMeta(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.resetCaptureFlow()
			return m, nil
		case "tab":
			m.captureInputs[m.captureFocus].Blur()
			m.captureFocus = (m.captureFocus + 1) % len(m.captureInputs)
			m.captureInputs[m.captureFocus].Focus()
			return m, nil
		case "shift+tab":
			m.captureInputs[m.captureFocus].Blur()
			m.captureFocus = (m.captureFocus - 1 + len(m.captureInputs)) % len(m.captureInputs)
			m.captureInputs[m.captureFocus].Focus()
			return m, nil
		case "enter":
			if m.captureSaving {
				return m, nil
			}

			draft := m.captureDraft
			draft.Area = strings.TrimSpace(m.captureInputs[0].Value())
			draft.Tipo = strings.TrimSpace(m.captureInputs[1].Value())
			draft.Prioridad = strings.TrimSpace(m.captureInputs[2].Value())

			m.captureErr = ""
			m.captureSaving = true
			return m, m.cmdCreate(draft)
		}
	}

	var cmd tea.Cmd
	m.captureInputs[m.captureFocus], cmd = m.captureInputs[m.captureFocus].Update(msg)
	return m, cmd
}

// ── metadata editing ──

func (m *mainLoopModel) startEdit(note models.Note) {
	if note.Status == models.StatusSent {
		m.errMsg = app.MsgNoteAlreadySent
		return
	}

	labels := []struct {
		placeholder string
		value       string
	}{
		{"Título", note.Title},
		{"Área", note.Area},
		{"Tipo", note.Tipo},
		{"Estado", note.Estado},
		{"Prioridad", note.Prioridad},
		{"Fecha (aaaa-mm-dd)", note.Fecha},
	}

	inputs := make([]textinput.Model, 0, len(labels))
	for i, l := range labels {
		in := textinput.New()
		in.Placeholder = l.placeholder
		in.SetValue(l.value)
		in.Width = 40
		if i == 0 {
			in.Focus()
		}
		inputs = append(inputs, in)
	}

	m.editInputs = inputs
	m.editFocus = 0
	m.editSubmitting = false
	m.editNoteID = note.ID
	m.editing = true
	m.errMsg = ""
}

func (m mainLoopModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.editing = false
			m.editSubmitting = false
			m.errMsg = ""
			return m, nil
		case "tab":
			m.editInputs[m.editFocus].Blur()
			m.editFocus = (m.editFocus + 1) % len(m.editInputs)
			m.editInputs[m.editFocus].Focus()
			return m, nil
		case "shift+tab":
			m.editInputs[m.editFocus].Blur()
			m.editFocus = (m.editFocus - 1 + len(m.editInputs)) % len(m.editInputs)
			m.editInputs[m.editFocus].Focus()
			return m, nil
		case "enter":
			if m.editSubmitting {
				return m, nil
			}

			title := strings.TrimSpace(m.editInputs[0].Value())
			if title == "" {
				m.errMsg = "El título es obligatorio"
				return m, nil
			}

			meta := models.NoteMetadata{
				Title:     title,
				Area:      strings.TrimSpace(m.editInputs[1].Value()),
				Tipo:      strings.TrimSpace(m.editInputs[2].Value()),
				Estado:    strings.TrimSpace(m.editInputs[3].Value()),
				Prioridad: strings.TrimSpace(m.editInputs[4].Value()),
				Fecha:     strings.TrimSpace(m.editInputs[5].Value()),
			}

			m.errMsg = ""
			m.editSubmitting = true
			return m, m.cmdUpdateMetadata(m.editNoteID, meta)
		}
	}

	var cmd tea.Cmd
	m.editInputs[m.editFocus], cmd = m.editInputs[m.editFocus].Update(msg)
	return m, cmd
}

// ── views ──

func (m mainLoopModel) View() string {
	if m.showBuildInfo {
		return renderBuildInfoWindow(m.buildInfo)
	}

	if m.masters.stage != mastersStageNone {
		return m.viewMasters()
	}

	switch m.captureStage {
	case captureStageText:
		return m.viewCaptureText()
	case captureStageMeta:
		return m.viewCaptureMeta()
	}

	if m.editing {
		return m.viewEditing()
	}

	if m.detail {
		note, ok := m.current()
		if !ok {
			return renderPage("VER NOTA", "Nota no encontrada", "esc: volver")
		}
		title, body, hotKeys := m.viewDetail(note)
		return renderPage(title, strings.TrimRight(body, "\n"), hotKeys)
	}

	return m.viewList()
}

func (m mainLoopModel) viewList() string {
	out := ""

	if m.loading {
		out += "Cargando notas...\n"
		return renderPage("BANDEJA DE NOTAS", strings.TrimRight(out, "\n"), listHotKeys)
	}

	if m.syncing {
		out += m.sync.View() + "\n"
	}
	if m.errMsg != "" {
		out += errorStyle.Render("Error: "+m.errMsg) + "\n"
	}
	if m.status != "" {
		out += "Estado: " + m.status + "\n"
	}

	if len(m.notes) == 0 {
		if out != "" {
			out += "\n"
		}
		out += "No hay notas\n"
	} else {
		if out != "" {
			out += "\n"
		}
		out += "ID   │ Título                   │ Estado      │ Tipo         │ Fecha\n"
		out += "─────┼──────────────────────────┼─────────────┼──────────────┼────────────\n"
		for i, note := range m.notes {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}

			out += fmt.Sprintf(
				"%s %-3d│ %-24s │ %-11s │ %-12s │ %s\n",
				cursor,
				i+1,
				fitText(note.Title, 24),
				fitText(statusLabel(note), 11),
				fitText(valueOrDash(note.Tipo), 12),
				valueOrDash(note.Fecha),
			)
		}
	}

	return renderPage("BANDEJA DE NOTAS", strings.TrimRight(out, "\n"), listHotKeys)
}

const listHotKeys = "a: capturar │ s: sincr. │ enter: abrir │ e: editar │ m: maestros │ r: recargar │ ↑/↓: nav."

func (m mainLoopModel) viewCaptureText() string {
	out := "[ TEXTO ]\n"
	out += m.captureArea.View()
	if m.captureErr != "" {
		out += "\n" + errorStyle.Render("Error: "+m.captureErr) + "\n"
	}

	return renderPage("CAPTURAR NOTA", strings.TrimRight(out, "\n"), "enter: nueva línea │ ctrl+s: continuar │ esc: cancelar")
}

func (m mainLoopModel) viewCaptureMeta() string {
	out := "[ CLASIFICACIÓN ]\n"
	out += "Área      : [ " + m.captureInputs[0].View() + " ]\n"
	out += "Tipo      : [ " + m.captureInputs[1].View() + " ]\n"
	out += "Prioridad : [ " + m.captureInputs[2].View() + " ]\n"
	if m.captureErr != "" {
		out += "\n" + errorStyle.Render("Error: "+m.captureErr) + "\n"
	}
	if m.captureSaving {
		out += "\nGuardando...\n"
	}

	return renderPage("CAPTURAR: CLASIFICACIÓN", strings.TrimRight(out, "\n"), "tab: sig. campo │ enter: guardar │ esc: cancelar")
}

func (m mainLoopModel) viewEditing() string {
	labels := []string{"Título   ", "Área     ", "Tipo     ", "Estado   ", "Prioridad", "Fecha    "}

	out := "Campo     │ Valor\n"
	out += "──────────┼──────────────────────────────────────────\n"
	for i, label := range labels {
		out += label + " │ [" + m.editInputs[i].View() + "]\n"
	}
	if m.editSubmitting {
		out += "Acción    │ [Guardando...]\n"
	} else {
		out += "Acción    │ [Guardar]\n"
	}
	if m.errMsg != "" {
		out += "Error     │ " + m.errMsg + "\n"
	}

	return renderPage("EDITAR NOTA", strings.TrimRight(out, "\n"), "esc: volver │ tab: sig. campo │ enter: guardar")
}

func (m mainLoopModel) viewDetail(note models.Note) (title, body, hotKeys string) {
	var b strings.Builder

	title = "NOTA: " + note.Title

	b.WriteString("[ PROPIEDADES ]\n")
	b.WriteString("Título    : " + note.Title + "\n")
	b.WriteString("Área      : " + valueOrDash(note.Area) + "\n")
	b.WriteString("Tipo      : " + valueOrDash(note.Tipo) + "\n")
	b.WriteString("Estado    : " + valueOrDash(note.Estado) + "\n")
	b.WriteString("Prioridad : " + valueOrDash(note.Prioridad) + "\n")
	b.WriteString("Fecha     : " + valueOrDash(note.Fecha) + "\n")
	b.WriteString("Origen    : " + valueOrDash(note.Source) + "\n\n")

	b.WriteString("[ TEXTO ]\n")
	if strings.TrimSpace(note.RawText) != "" {
		b.WriteString(note.RawText + "\n")
	} else {
		b.WriteString("(vacío)\n")
	}

	if note.Resumen != "" || note.Acciones != "" {
		b.WriteString("\n[ SUGERENCIAS ]\n")
		if note.Resumen != "" {
			b.WriteString("Resumen   : " + note.Resumen + "\n")
		}
		if note.Acciones != "" {
			b.WriteString("Acciones  : " + strings.ReplaceAll(note.Acciones, "\n", "; ") + "\n")
		}
	}

	b.WriteString("\n[ SINCRONIZACIÓN ]\n")
	b.WriteString("Estado    : " + statusLabel(note) + "\n")
	b.WriteString("Intentos  : " + fmt.Sprintf("%d", note.AttemptCount) + "\n")
	if note.NotionPageID != "" {
		b.WriteString("Página    : " + note.NotionPageID + "\n")
	}
	if note.LastError != "" {
		b.WriteString("Último err: " + note.LastError + "\n")
		if advice := app.ErrorClassGuidance(note.LastErrorClass); advice != "" {
			b.WriteString("Consejo   : " + advice + "\n")
		}
	}

	hotKeys = "e: editar │ c: copiar texto │ esc: volver"
	if note.Status == models.StatusSent {
		hotKeys = "c: copiar texto │ esc: volver"
	}
	return title, b.String(), hotKeys
}

// ── helpers and commands ──

func (m mainLoopModel) current() (models.Note, bool) {
	if len(m.notes) == 0 || m.idx < 0 || m.idx >= len(m.notes) {
		return models.Note{}, false
	}
	return m.notes[m.idx], true
}

func statusLabel(note models.Note) string {
	if note.Status == models.StatusError && note.LastErrorClass != "" {
		return string(note.Status) + " (" + string(note.LastErrorClass) + ")"
	}
	return string(note.Status)
}

func syncErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrSyncInProgress):
		return app.MsgSyncInProgress
	case errors.Is(err, config.ErrNotionNotConfigured):
		return app.MsgNotionNotConfigured
	}

	return "Error de sincronización: " + humanizeNotionUnavailableError(err)
}

func syncReportMessage(report models.SyncReport) string {
	msg := fmt.Sprintf("Sincronización: %d enviadas · %d fallidas · %d omitidas",
		report.Sent, report.Failed, report.Skipped)
	if report.Halted {
		if advice := app.ErrorClassGuidance(models.ErrorClass(report.HaltedBy)); advice != "" {
			msg += " · detenida: " + advice
		} else {
			msg += " · detenida"
		}
	}
	return msg
}

func (m mainLoopModel) cmdLoadNotes() tea.Cmd {
	ctx := m.ctx
	svc := m.services.NoteService

	return func() tea.Msg {
		notes, err := svc.List(ctx)
		return notesLoadedMsg{notes: notes, err: err}
	}
}

func (m mainLoopModel) cmdSync() tea.Cmd {
	ctx := m.ctx
	svc := m.services.SyncService

	return func() tea.Msg {
		report, err := svc.SyncAll(ctx)
		return syncDoneMsg{report: report, err: err}
	}
}

func (m mainLoopModel) cmdCreate(draft models.NoteDraft) tea.Cmd {
	ctx := m.ctx
	svc := m.services.NoteService

	return func() tea.Msg {
		note, err := svc.Create(ctx, draft)
		return noteSavedMsg{note: note, err: err}
	}
}

func (m mainLoopModel) cmdUpdateMetadata(id string, meta models.NoteMetadata) tea.Cmd {
	ctx := m.ctx
	svc := m.services.NoteService

	return func() tea.Msg {
		err := svc.UpdateMetadata(ctx, id, meta)
		return metadataSavedMsg{err: err}
	}
}
