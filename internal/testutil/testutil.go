// Package testutil holds helpers shared by package tests that need a real
// database or signed tokens.
package testutil

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/inventory-service/internal/database"
	"github.com/iliyamo/inventory-service/internal/utils"
)

// TestSecret signs tokens produced by BearerToken.
const TestSecret = "test-secret"

// OpenSQLite opens a migrated in-memory SQLite database private to t.
// The database is closed via t.Cleanup.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()
	// shared cache so every pooled connection sees the same database
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(database.DriverSQLite, database.SQLiteDSN("file:"+name+"?mode=memory&cache=shared"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.Migrate(context.Background(), db, database.DriverSQLite); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// InsertUser stores a user with a bcrypt hash of password and returns its id.
func InsertUser(t *testing.T, db *sql.DB, name, password string, roleID int64) int64 {
	t.Helper()
	hash, err := utils.HashPassword(password, 4)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	res, err := db.Exec("INSERT INTO users (name, password_hash, role_id) VALUES (?,?,?)", name, hash, roleID)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// InsertInventory seeds one inventory row.
func InsertInventory(t *testing.T, db *sql.DB, barcode, name string, price, stock int64) {
	t.Helper()
	if _, err := db.Exec("INSERT INTO inventorys (barcode, name, price, stock) VALUES (?,?,?,?)",
		barcode, name, price, stock); err != nil {
		t.Fatalf("insert inventory: %v", err)
	}
}

// BearerToken returns an "Authorization" header value for a token signed
// with TestSecret.
func BearerToken(t *testing.T, userID, roleID int64) string {
	t.Helper()
	tok, err := utils.NewAccessToken(TestSecret, userID, roleID, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + tok.Token
}
