package service

import (
	"github.com/MKhiriev/notion-brain/internal/adapter"
	"github.com/MKhiriev/notion-brain/internal/config"
	"github.com/MKhiriev/notion-brain/internal/logger"
	"github.com/MKhiriev/notion-brain/internal/processor"
	"github.com/MKhiriev/notion-brain/internal/store"
)

type Services struct {
	NoteService   NoteService
	ActionService ActionService
	SyncService   SyncService
	MasterService MasterService
}

func NewServices(storages *store.Storages, notion adapter.NotionAdapter, proc processor.Processor, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		NoteService:   NewNoteService(storages.NoteStore, storages.ActionStore, proc, cfg.Defaults, logger),
		ActionService: NewActionService(storages.ActionStore, storages.NoteStore, notion, cfg.Notion, logger),
		SyncService:   NewSyncService(storages.NoteStore, notion, cfg.Notion, cfg.Workers, logger),
		MasterService: NewMasterService(storages.MasterStore, notion, cfg.Notion, logger),
	}
}
