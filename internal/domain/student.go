package domain

import (
	"time"

	"github.com/google/uuid"
)

// Student links a user to the section they are currently enrolled in. A
// student belongs to at most one section at a time; moving a student between
// sections updates SectionID in place rather than inserting a second row.
//
// No score record is created on enrollment. The points row appears when the
// student makes their first deposit.
type Student struct {
	UserID    uuid.UUID `json:"id_user"`
	SectionID uuid.UUID `json:"id_curso_paralelo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
