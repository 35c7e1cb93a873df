package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecopuntos/ecoroster/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type studentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository wires a repository backed by pgxpool.
func NewStudentRepository(pool *pgxpool.Pool) StudentRepository {
	return &studentRepository{pool: pool}
}

func (r *studentRepository) GetByUserAndSection(ctx context.Context, userID, sectionID uuid.UUID) (domain.Student, error) {
	if r.pool == nil {
		return domain.Student{}, fmt.Errorf("student repository not initialized")
	}

	row := r.pool.QueryRow(
		ctx,
		`SELECT id_user, id_curso_paralelo, created_at, updated_at
		 FROM estudiante
		 WHERE id_user = $1 AND id_curso_paralelo = $2 AND deleted_at IS NULL`,
		userID,
		sectionID,
	)
	return scanStudent(row)
}

func (r *studentRepository) GetByUser(ctx context.Context, userID uuid.UUID) (domain.Student, error) {
	if r.pool == nil {
		return domain.Student{}, fmt.Errorf("student repository not initialized")
	}

	row := r.pool.QueryRow(
		ctx,
		`SELECT id_user, id_curso_paralelo, created_at, updated_at
		 FROM estudiante
		 WHERE id_user = $1 AND deleted_at IS NULL`,
		userID,
	)
	return scanStudent(row)
}

func (r *studentRepository) Create(ctx context.Context, student domain.Student) (domain.Student, error) {
	if r.pool == nil {
		return domain.Student{}, fmt.Errorf("student repository not initialized")
	}

	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO estudiante (id_user, id_curso_paralelo)
		 VALUES ($1, $2)
		 RETURNING id_user, id_curso_paralelo, created_at, updated_at`,
		student.UserID,
		student.SectionID,
	)

	created, err := scanStudent(row)
	if err != nil {
		return domain.Student{}, fmt.Errorf("failed to create enrollment: %w", err)
	}
	return created, nil
}

func (r *studentRepository) UpdateSection(ctx context.Context, userID, sectionID uuid.UUID) error {
	if r.pool == nil {
		return fmt.Errorf("student repository not initialized")
	}

	tag, err := r.pool.Exec(
		ctx,
		`UPDATE estudiante
		 SET id_curso_paralelo = $2, updated_at = now()
		 WHERE id_user = $1 AND deleted_at IS NULL`,
		userID,
		sectionID,
	)
	if err != nil {
		return fmt.Errorf("failed to move enrollment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanStudent(row pgx.Row) (domain.Student, error) {
	var (
		student   domain.Student
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&student.UserID, &student.SectionID, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Student{}, ErrNotFound
		}
		return domain.Student{}, fmt.Errorf("failed to scan enrollment: %w", err)
	}
	if createdAt.Valid {
		student.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		student.UpdatedAt = updatedAt.Time
	}
	return student, nil
}
