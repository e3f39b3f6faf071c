package models

// Master categories. Area, Tipo and Prioridad feed select-type Notion
// properties; Estado feeds the status property and its values are locked.
const (
	MasterArea      = "Area"
	MasterTipo      = "Tipo"
	MasterEstado    = "Estado"
	MasterPrioridad = "Prioridad"
	MasterOrigen    = "Origen"
)

// Master is one allowed value for a select-type note property (Area, Tipo,
// Prioridad). Locked rows are seeded by the system and cannot be deactivated.
// Identified by (Category, Value).
type Master struct {
	Category string `json:"category"`
	Value    string `json:"value"`
	IsActive bool   `json:"is_active"`
	IsLocked bool   `json:"is_locked"`
}
