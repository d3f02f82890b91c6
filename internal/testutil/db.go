// Package testutil provides a throwaway SQLite database and fixtures for
// package tests.
package testutil

import (
	"path/filepath"
	"sync"
	"testing"

	"office-records-backend/internal/database"
	"office-records-backend/internal/model"
	"office-records-backend/internal/notify"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens a migrated SQLite database in the test's temp dir.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openDB(t, filepath.Join(t.TempDir(), "test.db"))
}

// NewDBWithForeignKeys is NewDB with foreign key enforcement switched on, the
// way MySQL and Postgres behave.
func NewDBWithForeignKeys(t *testing.T) *gorm.DB {
	t.Helper()
	return openDB(t, filepath.Join(t.TempDir(), "test.db")+"?_foreign_keys=on")
}

func openDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// Password is the plain password of every admin created by CreateAdmin.
const Password = "secret123"

// CreateAdmin inserts an active admin with Password as its password.
func CreateAdmin(t *testing.T, db *gorm.DB, username string, role model.Role) *model.Admin {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	admin := &model.Admin{
		Name:     username,
		Email:    username + "@office.test",
		Username: username,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(admin).Error)
	return admin
}

func CreateFile(t *testing.T, db *gorm.DB, number string, owner *model.Admin) *model.File {
	t.Helper()

	file := &model.File{FileNumber: number, Name: "File " + number, Type: model.FileInternal, OwnerID: owner.ID}
	require.NoError(t, db.Create(file).Error)
	return file
}

// Mailbox is a notify.Mailer that keeps every message in memory.
type Mailbox struct {
	mu   sync.Mutex
	sent []notify.Message
	Err  error
}

func (m *Mailbox) Send(msg notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.Err
}

func (m *Mailbox) Sent() []notify.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notify.Message(nil), m.sent...)
}
