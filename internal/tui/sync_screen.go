package tui

import "github.com/charmbracelet/bubbles/spinner"

// syncModel renders the spinner line shown while a sync pass is in flight.
// The pass itself runs in a tea.Cmd; this model only animates.
type syncModel struct {
	spinner spinner.Model
}

func newSyncModel() syncModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return syncModel{spinner: s}
}

func (m syncModel) View() string {
	return m.spinner.View() + " Sincronizando..."
}
