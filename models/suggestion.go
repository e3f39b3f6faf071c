package models

// Suggestion holds processor output for a freshly captured note. All fields
// are optional; empty fields leave the user's values untouched.
type Suggestion struct {
	Resumen   string   `json:"resumen"`
	Acciones  []string `json:"acciones"`
	Tipo      string   `json:"tipo_sugerido"`
	Prioridad string   `json:"prioridad_sugerida"`
}
