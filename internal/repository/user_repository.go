package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecopuntos/ecoroster/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository wires a repository backed by pgxpool.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if r.pool == nil {
		return domain.User{}, fmt.Errorf("user repository not initialized")
	}

	row := r.pool.QueryRow(
		ctx,
		`SELECT id, nombres, primer_apellido, segundo_apellido, email, rol, password, fecha_nacimiento, genero, created_at, updated_at
		 FROM usuario
		 WHERE email = $1`,
		email,
	)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if r.pool == nil {
		return domain.User{}, fmt.Errorf("user repository not initialized")
	}

	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO usuario (id, nombres, primer_apellido, segundo_apellido, email, rol, password, fecha_nacimiento, genero)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, nombres, primer_apellido, segundo_apellido, email, rol, password, fecha_nacimiento, genero, created_at, updated_at`,
		user.ID,
		user.Names,
		user.FirstSurname,
		user.SecondSurname,
		user.Email,
		user.Role,
		user.PasswordHash,
		user.BirthDate,
		nullText(user.Gender),
	)

	created, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

func (r *userRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	if r.pool == nil {
		return domain.User{}, fmt.Errorf("user repository not initialized")
	}

	row := r.pool.QueryRow(
		ctx,
		`UPDATE usuario
		 SET nombres = $2, primer_apellido = $3, segundo_apellido = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING id, nombres, primer_apellido, segundo_apellido, email, rol, password, fecha_nacimiento, genero, created_at, updated_at`,
		user.ID,
		user.Names,
		user.FirstSurname,
		user.SecondSurname,
	)

	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		user      domain.User
		birthDate pgtype.Date
		gender    pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&user.ID,
		&user.Names,
		&user.FirstSurname,
		&user.SecondSurname,
		&user.Email,
		&user.Role,
		&user.PasswordHash,
		&birthDate,
		&gender,
		&createdAt,
		&updatedAt,
	); err != nil {
		return domain.User{}, err
	}

	if birthDate.Valid {
		value := birthDate.Time
		user.BirthDate = &value
	}
	if gender.Valid {
		user.Gender = gender.String
	}
	if createdAt.Valid {
		user.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		user.UpdatedAt = updatedAt.Time
	}

	return user, nil
}

func nullText(value string) pgtype.Text {
	if value == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: value, Valid: true}
}
