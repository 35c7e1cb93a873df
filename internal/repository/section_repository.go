package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecopuntos/ecoroster/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type sectionRepository struct {
	pool *pgxpool.Pool
}

// NewSectionRepository wires a repository backed by pgxpool.
func NewSectionRepository(pool *pgxpool.Pool) SectionRepository {
	return &sectionRepository{pool: pool}
}

func (r *sectionRepository) ListCourses(ctx context.Context) ([]domain.Course, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("section repository not initialized")
	}

	rows, err := r.pool.Query(ctx, `SELECT id, nombre, created_at FROM curso ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := []domain.Course{}
	for rows.Next() {
		var course domain.Course
		if err := rows.Scan(&course.ID, &course.Name, &course.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}
	return courses, nil
}

func (r *sectionRepository) ListParallels(ctx context.Context) ([]domain.Parallel, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("section repository not initialized")
	}

	rows, err := r.pool.Query(ctx, `SELECT id, nombre, created_at FROM paralelo ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("failed to list parallels: %w", err)
	}
	defer rows.Close()

	parallels := []domain.Parallel{}
	for rows.Next() {
		var parallel domain.Parallel
		if err := rows.Scan(&parallel.ID, &parallel.Name, &parallel.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan parallel: %w", err)
		}
		parallels = append(parallels, parallel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate parallels: %w", err)
	}
	return parallels, nil
}

func (r *sectionRepository) GetByCourseAndParallel(ctx context.Context, courseID, parallelID uuid.UUID) (domain.Section, error) {
	if r.pool == nil {
		return domain.Section{}, fmt.Errorf("section repository not initialized")
	}

	var section domain.Section
	err := r.pool.QueryRow(
		ctx,
		`SELECT id, id_curso, id_paralelo, created_at
		 FROM curso_paralelo
		 WHERE id_curso = $1 AND id_paralelo = $2`,
		courseID,
		parallelID,
	).Scan(&section.ID, &section.CourseID, &section.ParallelID, &section.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Section{}, ErrNotFound
		}
		return domain.Section{}, fmt.Errorf("failed to get section: %w", err)
	}
	return section, nil
}

func (r *sectionRepository) First(ctx context.Context) (domain.Section, error) {
	if r.pool == nil {
		return domain.Section{}, fmt.Errorf("section repository not initialized")
	}

	var section domain.Section
	err := r.pool.QueryRow(
		ctx,
		`SELECT id, id_curso, id_paralelo, created_at
		 FROM curso_paralelo
		 ORDER BY created_at, id
		 LIMIT 1`,
	).Scan(&section.ID, &section.CourseID, &section.ParallelID, &section.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Section{}, ErrNotFound
		}
		return domain.Section{}, fmt.Errorf("failed to get fallback section: %w", err)
	}
	return section, nil
}
