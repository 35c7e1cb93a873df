package domain

import (
	"time"

	"github.com/google/uuid"
)

// Course is a school grade level (1RO .. 6TO).
type Course struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"nombre"`
	CreatedAt time.Time `json:"created_at"`
}

// Parallel is a section letter within a grade (A, B, C, ...).
type Parallel struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"nombre"`
	CreatedAt time.Time `json:"created_at"`
}

// Section is the (course, parallel) join entity students enroll into.
type Section struct {
	ID         uuid.UUID `json:"id"`
	CourseID   uuid.UUID `json:"id_curso"`
	ParallelID uuid.UUID `json:"id_paralelo"`
	CreatedAt  time.Time `json:"created_at"`
}
