package repository

import (
	"context"

	"github.com/iliyamo/inventory-service/internal/model"
)

type RoleRepo struct{ DB Queryer }

func NewRoleRepo(db Queryer) *RoleRepo { return &RoleRepo{DB: db} }

// GetByID returns the role with the given id or ErrNotFound.
func (r *RoleRepo) GetByID(ctx context.Context, id int64) (model.Role, error) {
	var role model.Role
	err := r.DB.QueryRowContext(ctx, "SELECT id, name FROM roles WHERE id = ? LIMIT 1", id).
		Scan(&role.ID, &role.Name)
	return role, notFound(err)
}

// List returns every role ordered by id.
func (r *RoleRepo) List(ctx context.Context) ([]model.Role, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name FROM roles ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Role
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}
