package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/notion-brain/internal/adapter"
	"github.com/MKhiriev/notion-brain/internal/config"
	"github.com/MKhiriev/notion-brain/internal/logger"
	"github.com/MKhiriev/notion-brain/internal/store"
	"github.com/MKhiriev/notion-brain/models"
)

type masterService struct {
	masters store.MasterStore
	adapter adapter.NotionAdapter
	notion  config.Notion
	logger  *logger.Logger
}

func NewMasterService(masters store.MasterStore, notionAdapter adapter.NotionAdapter, notionCfg config.Notion, log *logger.Logger) MasterService {
	return &masterService{
		masters: masters,
		adapter: notionAdapter,
		notion:  notionCfg,
		logger:  log,
	}
}

func (s *masterService) Values(ctx context.Context, category string) ([]string, error) {
	return s.masters.ListActive(ctx, category)
}

func (s *masterService) List(ctx context.Context, category string) ([]models.Master, error) {
	return s.masters.ListAll(ctx, category)
}

func (s *masterService) Add(ctx context.Context, category, value string) error {
	return s.masters.Add(ctx, category, value)
}

func (s *masterService) Deactivate(ctx context.Context, category, value string) error {
	log := s.logger.GetChildLogger("func", "masterService.Deactivate")

	// with an incomplete Notion configuration the remote usage check is
	// impossible; deactivate locally and let schema sync catch up later
	if s.notion.Validate() != nil {
		log.Warn().Str("category", category).Str("value", value).
			Msg("deactivating without remote usage check, Notion not configured")
		return s.masters.Deactivate(ctx, category, value)
	}

	property, ok := s.notionProperty(category)
	if !ok {
		return s.masters.Deactivate(ctx, category, value)
	}

	openCount, err := s.adapter.CountOpenPages(ctx, property, value)
	if err != nil {
		return fmt.Errorf("consulta de uso del maestro en Notion: %w", err)
	}
	if openCount > 0 {
		return fmt.Errorf("%w: %q aparece en %d página(s) abiertas", ErrMasterInUse, value, openCount)
	}

	return s.masters.Deactivate(ctx, category, value)
}

func (s *masterService) SyncSchema(ctx context.Context) error {
	log := s.logger.GetChildLogger("func", "masterService.SyncSchema")

	if err := s.notion.Validate(); err != nil {
		return err
	}

	for _, category := range []string{
		models.MasterArea,
		models.MasterTipo,
		models.MasterPrioridad,
		models.MasterOrigen,
	} {
		property, ok := s.notionProperty(category)
		if !ok {
			continue
		}

		values, err := s.masters.ListActive(ctx, category)
		if err != nil {
			return err
		}
		if len(values) == 0 {
			continue
		}

		if err := s.adapter.PatchSelectOptions(ctx, property, values); err != nil {
			return fmt.Errorf("sincronización de opciones de %q: %w", property, err)
		}
		log.Debug().Str("property", property).Int("options", len(values)).Msg("select options pushed")
	}

	return nil
}

// notionProperty resolves a master category to the remote property carrying
// its values. Estado is deliberately absent: status options are managed in
// Notion itself.
func (s *masterService) notionProperty(category string) (string, bool) {
	switch category {
	case models.MasterArea:
		return s.notion.Properties.Area, s.notion.Properties.Area != ""
	case models.MasterTipo:
		return s.notion.Properties.Tipo, s.notion.Properties.Tipo != ""
	case models.MasterPrioridad:
		return s.notion.Properties.Prioridad, s.notion.Properties.Prioridad != ""
	case models.MasterOrigen:
		return "Origen", true
	default:
		return "", false
	}
}
