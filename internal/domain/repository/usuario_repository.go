package repository

import (
	"context"

	"github.com/DarkCodex29/Texfina-Backend/internal/domain/entity"
)

// UsuarioRepository persistencia de usuarios para autenticación.
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	// FindByEmail devuelve nil, nil si el email no existe.
	FindByEmail(ctx context.Context, email string) (*entity.Usuario, error)
}
