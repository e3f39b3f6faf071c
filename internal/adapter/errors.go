package adapter

import (
	"errors"

	"github.com/MKhiriev/notion-brain/models"
)

var (
	// ErrAuth marks a rejected credential (401/403). Not retryable: the user
	// has to fix the integration token.
	ErrAuth = errors.New("notion rechazó las credenciales")

	// ErrSchema marks a mismatch between the configured property mapping and
	// the remote database (missing property, wrong type, unknown database).
	// Not retryable without user intervention.
	ErrSchema = errors.New("el esquema de la base de Notion no coincide")

	// ErrNetwork marks a transport-level failure. Retryable.
	ErrNetwork = errors.New("error de red con Notion")

	// ErrRateLimited marks a 429 response. Retryable after waiting.
	ErrRateLimited = errors.New("notion limitó la velocidad de peticiones")

	// ErrUnknown marks any other remote failure. Retried with caution.
	ErrUnknown = errors.New("error desconocido de Notion")
)

// Classify maps an adapter error to its failure class.
func Classify(err error) models.ErrorClass {
	switch {
	case errors.Is(err, ErrAuth):
		return models.ErrorClassAuth
	case errors.Is(err, ErrSchema):
		return models.ErrorClassSchema
	case errors.Is(err, ErrNetwork):
		return models.ErrorClassNetwork
	case errors.Is(err, ErrRateLimited):
		return models.ErrorClassRateLimited
	default:
		return models.ErrorClassUnknown
	}
}
