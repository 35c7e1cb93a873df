package repository

import (
	"context"
	"errors"

	"github.com/ecopuntos/ecoroster/internal/domain"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// UserRepository defines the interface for usuario operations.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
}

// StudentRepository defines the interface for enrollment operations.
type StudentRepository interface {
	// GetByUserAndSection finds the enrollment for a user in one specific section.
	GetByUserAndSection(ctx context.Context, userID, sectionID uuid.UUID) (domain.Student, error)
	// GetByUser finds the user's enrollment in whatever section holds it.
	GetByUser(ctx context.Context, userID uuid.UUID) (domain.Student, error)
	Create(ctx context.Context, student domain.Student) (domain.Student, error)
	// UpdateSection moves an existing enrollment to another section.
	UpdateSection(ctx context.Context, userID, sectionID uuid.UUID) error
}

// SectionRepository defines the interface for course/parallel/section lookups.
type SectionRepository interface {
	ListCourses(ctx context.Context) ([]domain.Course, error)
	ListParallels(ctx context.Context) ([]domain.Parallel, error)
	GetByCourseAndParallel(ctx context.Context, courseID, parallelID uuid.UUID) (domain.Section, error)
	// First returns an arbitrary existing section, used as the fallback key
	// for history entries when header resolution failed.
	First(ctx context.Context) (domain.Section, error)
}

// ImportHistoryRepository stores per-run import summaries for auditing.
type ImportHistoryRepository interface {
	Record(ctx context.Context, entry domain.ImportHistoryEntry) error
	List(ctx context.Context, limit int, offset int) ([]domain.ImportHistoryEntry, error)
}
