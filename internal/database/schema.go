package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Role seed rows. Ids must match the model.Role* constants.
const seedRolesMySQL = `INSERT INTO roles (id, name) VALUES (1, 'admin'), (2, 'employee'), (9, 'master')
	ON DUPLICATE KEY UPDATE name = VALUES(name)`

const seedRolesSQLite = `INSERT INTO roles (id, name) VALUES (1, 'admin'), (2, 'employee'), (9, 'master')
	ON CONFLICT (id) DO UPDATE SET name = excluded.name`

var schemas = map[string][]string{
	DriverMySQL: {
		`CREATE TABLE IF NOT EXISTS roles (
			id BIGINT PRIMARY KEY,
			name VARCHAR(32) NOT NULL UNIQUE
		)`,
		seedRolesMySQL,
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			role_id BIGINT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT fk_users_role FOREIGN KEY (role_id) REFERENCES roles (id)
		)`,
		`CREATE TABLE IF NOT EXISTS inventorys (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			barcode VARCHAR(128) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			price BIGINT NOT NULL,
			stock BIGINT NOT NULL DEFAULT 0
		)`,
	},
	DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS roles (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		seedRolesSQLite,
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role_id INTEGER NOT NULL REFERENCES roles (id),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS inventorys (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			barcode TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			price INTEGER NOT NULL,
			stock INTEGER NOT NULL DEFAULT 0
		)`,
	},
}

// Migrate creates the tables if they are missing and (re)seeds the roles
// reference data. It is safe to run on every startup.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	stmts, ok := schemas[driver]
	if !ok {
		return fmt.Errorf("no schema for driver %q", driver)
	}
	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i, err)
		}
	}
	return nil
}
