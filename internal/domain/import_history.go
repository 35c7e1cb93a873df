package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImportHistoryEntry summarizes one roster import run. Exactly one entry is
// written per invocation, even when header resolution fails before any row is
// processed.
type ImportHistoryEntry struct {
	ID         uuid.UUID `json:"id"`
	SectionID  uuid.UUID `json:"id_curso_paralelo"`
	Inserted   int       `json:"insertados"`
	Updated    int       `json:"actualizados"`
	Skipped    int       `json:"omitidos"`
	ErrorCount int       `json:"errores_count"`
	CreatedAt  time.Time `json:"created_at"`
}
