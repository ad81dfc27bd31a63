package postgres

import (
	"context"
	"errors"
	"fmt"

	"cokilo-admin/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// AdminRepo implements ports.AdminRepository.
type AdminRepo struct {
	pool Pool
}

// NewAdminRepo creates a new AdminRepo.
func NewAdminRepo(pool Pool) *AdminRepo {
	return &AdminRepo{pool: pool}
}

// GetByEmail fetches a staff account by email. Returns nil when no
// account exists, so login can fail without leaking which part was wrong.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	query := `SELECT id, email, name, role, password_hash, status, created_at, updated_at
		FROM admins WHERE email = $1`

	a := &domain.Admin{}
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&a.ID, &a.Email, &a.Name, &a.Role, &a.PasswordHash,
		&a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by email: %w", err)
	}
	return a, nil
}
