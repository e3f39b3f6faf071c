package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/notion-brain/internal/service"
	"github.com/MKhiriev/notion-brain/internal/store"
	"github.com/MKhiriev/notion-brain/models"
)

type mastersStage int

const (
	mastersStageNone mastersStage = iota
	mastersStageCategory
	mastersStageValues
	mastersStageAdd
)

// mastersModel holds the state of the master-value governance screens: pick
// a category, browse its values, add new ones, deactivate retired ones and
// push the catalog to the Notion database schema.
type mastersModel struct {
	stage      mastersStage
	categories []string
	catIdx     int
	values     []models.Master
	valIdx     int
	input      textinput.Model
	status     string
	errMsg     string
	confirming bool
	busy       bool
}

func (m *mainLoopModel) startMasters() {
	m.masters = mastersModel{
		stage: mastersStageCategory,
		categories: []string{
			models.MasterArea,
			models.MasterTipo,
			models.MasterEstado,
			models.MasterPrioridad,
			models.MasterOrigen,
		},
	}
}

func (m *mainLoopModel) resetMasters() {
	m.masters = mastersModel{}
}

func (m mainLoopModel) selectedCategory() string {
	return m.masters.categories[m.masters.catIdx]
}

func (m mainLoopModel) currentMaster() (models.Master, bool) {
	values := m.masters.values
	if len(values) == 0 || m.masters.valIdx < 0 || m.masters.valIdx >= len(values) {
		return models.Master{}, false
	}
	return values[m.masters.valIdx], true
}

func (m mainLoopModel) updateMasters(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mastersLoadedMsg:
		m.masters.busy = false
		if msg.err != nil {
			m.masters.errMsg = msg.err.Error()
			return m, nil
		}
		m.masters.errMsg = ""
		m.masters.values = msg.masters
		if m.masters.valIdx >= len(m.masters.values) {
			m.masters.valIdx = len(m.masters.values) - 1
		}
		if m.masters.valIdx < 0 {
			m.masters.valIdx = 0
		}
		m.masters.stage = mastersStageValues
		return m, nil

	case masterSavedMsg:
		m.masters.busy = false
		if msg.err != nil {
			m.masters.errMsg = msg.err.Error()
			return m, nil
		}
		m.masters.status = "Valor añadido"
		m.masters.errMsg = ""
		m.masters.stage = mastersStageValues
		m.masters.busy = true
		return m, m.cmdLoadMasters(m.selectedCategory())

	case masterDeactivatedMsg:
		m.masters.busy = false
		if msg.err != nil {
			m.masters.errMsg = deactivateErrorMessage(msg.err)
			return m, nil
		}
		m.masters.status = "Valor desactivado"
		m.masters.errMsg = ""
		m.masters.busy = true
		return m, m.cmdLoadMasters(m.selectedCategory())

	case schemaPushedMsg:
		m.masters.busy = false
		if msg.err != nil {
			m.masters.errMsg = "Error al publicar opciones: " + humanizeNotionUnavailableError(msg.err)
			return m, nil
		}
		m.masters.status = "Opciones publicadas en Notion"
		m.masters.errMsg = ""
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.masters.stage == mastersStageAdd {
			var cmd tea.Cmd
			m.masters.input, cmd = m.masters.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.masters.confirming {
		switch keyMsg.String() {
		case "y":
			m.masters.confirming = false
			value, ok := m.currentMaster()
			if !ok {
				return m, nil
			}
			m.masters.busy = true
			return m, m.cmdDeactivateMaster(m.selectedCategory(), value.Value)
		case "n", "esc":
			m.masters.confirming = false
		}
		return m, nil
	}

	switch m.masters.stage {
	case mastersStageCategory:
		return m.updateMastersCategory(keyMsg)
	case mastersStageValues:
		return m.updateMastersValues(keyMsg)
	case mastersStageAdd:
		return m.updateMastersAdd(msg, keyMsg)
	}
	return m, nil
}

func (m mainLoopModel) updateMastersCategory(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "esc":
		m.resetMasters()
	case "up", "k":
		if m.masters.catIdx > 0 {
			m.masters.catIdx--
		}
	case "down", "j":
		if m.masters.catIdx < len(m.masters.categories)-1 {
			m.masters.catIdx++
		}
	case "enter":
		m.masters.busy = true
		m.masters.status = ""
		return m, m.cmdLoadMasters(m.selectedCategory())
	}
	return m, nil
}

func (m mainLoopModel) updateMastersValues(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "esc":
		m.masters.stage = mastersStageCategory
		m.masters.values = nil
		m.masters.valIdx = 0
		m.masters.errMsg = ""
	case "up", "k":
		if m.masters.valIdx > 0 {
			m.masters.valIdx--
		}
	case "down", "j":
		if m.masters.valIdx < len(m.masters.values)-1 {
			m.masters.valIdx++
		}
	case "a":
		in := textinput.New()
		in.Placeholder = "Nuevo valor"
		in.Width = 40
		in.Focus()
		m.masters.input = in
		m.masters.errMsg = ""
		m.masters.stage = mastersStageAdd
	case "ctrl+d":
		value, ok := m.currentMaster()
		if !ok {
			m.masters.status = "No hay valores"
			return m, nil
		}
		if value.IsLocked {
			m.masters.errMsg = "Valor bloqueado por el sistema"
			return m, nil
		}
		m.masters.confirming = true
	case "p":
		if m.masters.busy {
			return m, nil
		}
		m.masters.busy = true
		m.masters.status = ""
		return m, m.cmdPushSchema()
	}
	return m, nil
}

func (m mainLoopModel) updateMastersAdd(msg tea.Msg, keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "esc":
		m.masters.stage = mastersStageValues
		m.masters.errMsg = ""
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.masters.input.Value())
		if value == "" {
			m.masters.errMsg = "El valor no puede estar vacío"
			return m, nil
		}
		m.masters.busy = true
		return m, m.cmdAddMaster(m.selectedCategory(), value)
	}

	var cmd tea.Cmd
	m.masters.input, cmd = m.masters.input.Update(msg)
	return m, cmd
}

// ── views ──

func (m mainLoopModel) viewMasters() string {
	if m.masters.confirming {
		value, _ := m.currentMaster()
		return confirmModel{message: value.Value}.View()
	}

	switch m.masters.stage {
	case mastersStageCategory:
		return m.viewMastersCategory()
	case mastersStageValues:
		return m.viewMastersValues()
	case mastersStageAdd:
		return m.viewMastersAdd()
	}
	return ""
}

func (m mainLoopModel) viewMastersCategory() string {
	out := ""
	for i, c := range m.masters.categories {
		cursor := " "
		if i == m.masters.catIdx {
			cursor = ">"
		}
		out += fmt.Sprintf("%s %d. %s\n", cursor, i+1, c)
	}
	if m.masters.busy {
		out += "\nCargando...\n"
	}
	if m.masters.errMsg != "" {
		out += "\n" + errorStyle.Render("Error: "+m.masters.errMsg) + "\n"
	}

	return renderPage("MAESTROS: CATEGORÍA", strings.TrimRight(out, "\n"), "enter: abrir │ ↑/↓: nav. │ esc: volver")
}

func (m mainLoopModel) viewMastersValues() string {
	out := ""
	if m.masters.status != "" {
		out += "Estado: " + m.masters.status + "\n\n"
	}

	if len(m.masters.values) == 0 {
		out += "Sin valores\n"
	} else {
		out += "     │ Valor                    │ Activo │ Bloqueado\n"
		out += "─────┼──────────────────────────┼────────┼──────────\n"
		for i, v := range m.masters.values {
			cursor := " "
			if i == m.masters.valIdx {
				cursor = ">"
			}
			out += fmt.Sprintf("%s %-3d│ %-24s │ %-6s │ %s\n",
				cursor, i+1, fitText(v.Value, 24), marcaSiNo(v.IsActive), marcaSiNo(v.IsLocked))
		}
	}
	if m.masters.busy {
		out += "\nTrabajando...\n"
	}
	if m.masters.errMsg != "" {
		out += "\n" + errorStyle.Render("Error: "+m.masters.errMsg) + "\n"
	}

	title := "MAESTROS: " + strings.ToUpper(m.selectedCategory())
	return renderPage(title, strings.TrimRight(out, "\n"), "a: añadir │ ctrl+d: desactivar │ p: publicar │ ↑/↓: nav. │ esc: volver")
}

func (m mainLoopModel) viewMastersAdd() string {
	out := "Valor     : [ " + m.masters.input.View() + " ]\n"
	if m.masters.busy {
		out += "\nGuardando...\n"
	}
	if m.masters.errMsg != "" {
		out += "\n" + errorStyle.Render("Error: "+m.masters.errMsg) + "\n"
	}

	return renderPage("MAESTROS: NUEVO VALOR", strings.TrimRight(out, "\n"), "enter: guardar │ esc: volver")
}

func marcaSiNo(v bool) string {
	if v {
		return "sí"
	}
	return "no"
}

func deactivateErrorMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrMasterLocked):
		return "Valor bloqueado por el sistema"
	case errors.Is(err, service.ErrMasterInUse):
		return err.Error()
	case errors.Is(err, store.ErrMasterNotFound):
		return "Valor no encontrado"
	}
	return err.Error()
}

// ── commands ──

func (m mainLoopModel) cmdLoadMasters(category string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.MasterService

	return func() tea.Msg {
		masters, err := svc.List(ctx, category)
		return mastersLoadedMsg{masters: masters, err: err}
	}
}

func (m mainLoopModel) cmdAddMaster(category, value string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.MasterService

	return func() tea.Msg {
		err := svc.Add(ctx, category, value)
		return masterSavedMsg{err: err}
	}
}

func (m mainLoopModel) cmdDeactivateMaster(category, value string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.MasterService

	return func() tea.Msg {
		err := svc.Deactivate(ctx, category, value)
		return masterDeactivatedMsg{err: err}
	}
}

func (m mainLoopModel) cmdPushSchema() tea.Cmd {
	ctx := m.ctx
	svc := m.services.MasterService

	return func() tea.Msg {
		err := svc.SyncSchema(ctx)
		return schemaPushedMsg{err: err}
	}
}
