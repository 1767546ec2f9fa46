package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'student',
		is_active BOOLEAN NOT NULL DEFAULT 0,
		must_change_password BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createStudentProfileTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE student_profiles (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone TEXT,
		location TEXT
	);`)
}

func createPaymentProofTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payment_proofs (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		file_locator TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		rejection_reason TEXT,
		submitted_at DATETIME,
		reviewed_at DATETIME
	);`)
}
