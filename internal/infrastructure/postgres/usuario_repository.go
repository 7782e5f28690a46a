package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DarkCodex29/Texfina-Backend/internal/domain"
	"github.com/DarkCodex29/Texfina-Backend/internal/domain/entity"
	"github.com/DarkCodex29/Texfina-Backend/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo persistencia de usuarios sobre PostgreSQL.
type UsuarioRepo struct {
	pool *pgxpool.Pool
}

// NewUsuarioRepository construye el repositorio de usuarios.
func NewUsuarioRepository(pool *pgxpool.Pool) *UsuarioRepo {
	return &UsuarioRepo{pool: pool}
}

// Create inserta un usuario nuevo. Devuelve domain.ErrEmailAlreadyExists si
// el email ya está registrado.
func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	const query = `
	INSERT INTO usuario (id, email, password_hash, nombre, rol, estado, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Nombre, u.Rol, u.Estado, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("usuario.Create: %w", err)
	}
	return nil
}

// FindByEmail busca un usuario por email. Devuelve (nil, nil) si no existe.
func (r *UsuarioRepo) FindByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	const query = `
	SELECT id, email, password_hash, nombre, rol, estado, created_at, updated_at
	FROM usuario
	WHERE email = $1`

	var u entity.Usuario
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Nombre, &u.Rol, &u.Estado,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("usuario.FindByEmail: %w", err)
	}
	return &u, nil
}
