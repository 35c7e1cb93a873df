package repository

import (
	"context"
	"fmt"

	"github.com/ecopuntos/ecoroster/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type importHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewImportHistoryRepository wires a repository backed by pgxpool.
func NewImportHistoryRepository(pool *pgxpool.Pool) ImportHistoryRepository {
	return &importHistoryRepository{pool: pool}
}

func (r *importHistoryRepository) Record(ctx context.Context, entry domain.ImportHistoryEntry) error {
	if r.pool == nil {
		return fmt.Errorf("import history repository not initialized")
	}

	id := entry.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO historial_importaciones (id, id_curso_paralelo, insertados, actualizados, omitidos, errores_count)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id,
		entry.SectionID,
		entry.Inserted,
		entry.Updated,
		entry.Skipped,
		entry.ErrorCount,
	)
	if err != nil {
		return fmt.Errorf("failed to record import history: %w", err)
	}
	return nil
}

func (r *importHistoryRepository) List(ctx context.Context, limit int, offset int) ([]domain.ImportHistoryEntry, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("import history repository not initialized")
	}

	if limit <= 0 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, id_curso_paralelo, insertados, actualizados, omitidos, errores_count, created_at
		 FROM historial_importaciones
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list import history: %w", err)
	}
	defer rows.Close()

	entries := []domain.ImportHistoryEntry{}
	for rows.Next() {
		var (
			entry     domain.ImportHistoryEntry
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.SectionID,
			&entry.Inserted,
			&entry.Updated,
			&entry.Skipped,
			&entry.ErrorCount,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan import history: %w", err)
		}
		if createdAt.Valid {
			entry.CreatedAt = createdAt.Time
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate import history: %w", err)
	}
	return entries, nil
}
