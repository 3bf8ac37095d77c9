package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/dsmovie/internal/domain"
)

// UsersRepository reads and writes users and their roles.
type UsersRepository struct {
	pool *pgxpool.Pool
}

// FindByUsername loads a user together with its granted roles.
func (r *UsersRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	const query = `SELECT id, name, username, password FROM users WHERE username = $1`

	var user domain.User
	err := r.pool.QueryRow(ctx, query, username).Scan(&user.ID, &user.Name, &user.Username, &user.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}

	roles, err := r.rolesOf(ctx, user.ID)
	if err != nil {
		return domain.User{}, err
	}
	user.Roles = roles
	return user, nil
}

// SearchUserAndRolesByUsername returns one projection row per role granted to
// username. A user without roles, or an unknown username, yields no rows.
func (r *UsersRepository) SearchUserAndRolesByUsername(ctx context.Context, username string) ([]domain.UserDetailsProjection, error) {
	const query = `
        SELECT u.username, u.password, r.id, r.authority
        FROM users u
        INNER JOIN user_roles ur ON ur.user_id = u.id
        INNER JOIN roles r ON r.id = ur.role_id
        WHERE u.username = $1
        ORDER BY r.id
    `

	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.UserDetailsProjection, 0)
	for rows.Next() {
		var p domain.UserDetailsProjection
		if err := rows.Scan(&p.Username, &p.Password, &p.RoleID, &p.Authority); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Create stores a user. Password must already be hashed.
func (r *UsersRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const query = `
        INSERT INTO users (name, username, password)
        VALUES ($1,$2,$3)
        ON CONFLICT (username) DO UPDATE SET name = EXCLUDED.name, password = EXCLUDED.password
        RETURNING id
    `
	if err := r.pool.QueryRow(ctx, query, user.Name, user.Username, user.Password).Scan(&user.ID); err != nil {
		return domain.User{}, fmt.Errorf("create user %s: %w", user.Username, err)
	}
	user.Roles = nil
	return user, nil
}

// EnsureRole returns the role with the authority, creating it when missing.
func (r *UsersRepository) EnsureRole(ctx context.Context, authority string) (domain.Role, error) {
	const query = `
        INSERT INTO roles (authority)
        VALUES ($1)
        ON CONFLICT (authority) DO UPDATE SET authority = EXCLUDED.authority
        RETURNING id, authority
    `
	var role domain.Role
	if err := r.pool.QueryRow(ctx, query, authority).Scan(&role.ID, &role.Authority); err != nil {
		return domain.Role{}, fmt.Errorf("ensure role %s: %w", authority, err)
	}
	return role, nil
}

// GrantRole attaches a role to a user. Granting twice is a no-op.
func (r *UsersRepository) GrantRole(ctx context.Context, userID, roleID int64) error {
	_, err := r.pool.Exec(ctx, `
        INSERT INTO user_roles (user_id, role_id)
        VALUES ($1,$2)
        ON CONFLICT DO NOTHING
    `, userID, roleID)
	return translateError(err)
}

func (r *UsersRepository) rolesOf(ctx context.Context, userID int64) ([]domain.Role, error) {
	const query = `
        SELECT r.id, r.authority
        FROM roles r
        INNER JOIN user_roles ur ON ur.role_id = r.id
        WHERE ur.user_id = $1
        ORDER BY r.id
    `

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make([]domain.Role, 0)
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Authority); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return roles, nil
}
