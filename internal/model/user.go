package model

import "time"

// Role ids are static reference data seeded into the `roles` table when
// the schema is applied. Master is 9 to stay compatible with existing
// databases and tokens.
const (
	RoleAdmin    int64 = 1
	RoleEmployee int64 = 2
	RoleMaster   int64 = 9
)

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column. Handlers never
// serialize this struct directly; they convert it to a UserDAO so the
// password hash cannot leak.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Name         – unique login name (at least 3 characters).
//	PasswordHash – bcrypt hashed password.
//	RoleID       – foreign key into the roles table.
//	RoleName     – joined roles.name; empty when the query does not join.
//	CreatedAt    – timestamp of creation.
type User struct {
	ID           int64     // users.id
	Name         string    // users.name
	PasswordHash string    // users.password_hash
	RoleID       int64     // users.role_id
	RoleName     string    // roles.name
	CreatedAt    time.Time // users.created_at
}

// Role represents a row in the `roles` table. It maps a small integer
// id to a role name such as "master" or "employee".
type Role struct {
	ID   int64  // roles.id
	Name string // roles.name
}

// UserDAO is the public shape of a user returned by the auth endpoints.
type UserDAO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	RoleName string `json:"role_name"`
}

// DAO converts the record into its public shape.
func (u User) DAO() UserDAO {
	return UserDAO{ID: u.ID, Name: u.Name, RoleName: u.RoleName}
}
