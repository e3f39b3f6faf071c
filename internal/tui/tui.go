// Package tui implements the interactive terminal client: capturing notes,
// browsing the local queue, editing metadata, governing master values and
// triggering sync passes against Notion.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/notion-brain/internal/service"
	"github.com/MKhiriev/notion-brain/models"
)

type TUI struct {
	services  *service.Services
	buildInfo models.AppBuildInfo
}

func New(services *service.Services, buildInfo models.AppBuildInfo) (*TUI, error) {
	return &TUI{services: services, buildInfo: buildInfo}, nil
}

// MainLoop runs the interactive terminal session and blocks until the user
// quits with ctrl+c or q.
func (t *TUI) MainLoop(ctx context.Context) error {
	model := newMainLoopModel(ctx, t.services, t.buildInfo)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
