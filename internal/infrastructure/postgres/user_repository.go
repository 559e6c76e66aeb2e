package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/partsunlimited-catalog/internal/domain"
	"github.com/jhoicas/partsunlimited-catalog/internal/domain/entity"
	"github.com/jhoicas/partsunlimited-catalog/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, user_name, normalized_user_name, email, normalized_email, password_hash,
		security_stamp, name, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.ApplicationUser) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.UserName, u.NormalizedUserName, u.Email, u.NormalizedEmail, u.PasswordHash,
		u.SecurityStamp, u.Name, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.ApplicationUser, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id, "get user by id")
}

// FindByNormalizedUserName obtiene un usuario por su nombre normalizado.
func (r *UserRepo) FindByNormalizedUserName(ctx context.Context, normalized string) (*entity.ApplicationUser, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE normalized_user_name = $1`, normalized, "get user by name")
}

func (r *UserRepo) findOne(ctx context.Context, query, arg, op string) (*entity.ApplicationUser, error) {
	var u entity.ApplicationUser
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.UserName, &u.NormalizedUserName, &u.Email, &u.NormalizedEmail, &u.PasswordHash,
		&u.SecurityStamp, &u.Name, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}
