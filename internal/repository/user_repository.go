package repository

import (
	"context"

	"github.com/iliyamo/inventory-service/internal/model"
	"github.com/iliyamo/inventory-service/internal/utils"
)

type UserRepo struct{ DB Queryer }

func NewUserRepo(db Queryer) *UserRepo { return &UserRepo{DB: db} }

const selectUser = `SELECT u.id, u.name, u.password_hash, u.role_id, r.name, u.created_at
	FROM users u JOIN roles r ON r.id = u.role_id`

// Create hashes password and inserts the user, returning its id. Names
// are stored as given. A taken name yields ErrNameExists.
func (r *UserRepo) Create(ctx context.Context, name, password string, roleID int64, cost int) (int64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, password_hash, role_id) VALUES (?,?,?)",
		name, hash, roleID)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrNameExists
		}
		return 0, err
	}
	return res.LastInsertId()
}

// GetByName fetches a user and its role name by login name.
func (r *UserRepo) GetByName(ctx context.Context, name string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, selectUser+" WHERE u.name = ? LIMIT 1", name).
		Scan(&u.ID, &u.Name, &u.PasswordHash, &u.RoleID, &u.RoleName, &u.CreatedAt)
	return u, notFound(err)
}

// GetByID fetches a user and its role name by id.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, selectUser+" WHERE u.id = ? LIMIT 1", id).
		Scan(&u.ID, &u.Name, &u.PasswordHash, &u.RoleID, &u.RoleName, &u.CreatedAt)
	return u, notFound(err)
}
