package bootstrap

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/m3rciful/anonrelay/core/config"
	coredatabase "github.com/m3rciful/anonrelay/core/database"
)

func noLogger(*coreconfig.Config) error { return nil }

func TestRunMigratesSQLite(t *testing.T) {
	res, err := Run(Options{
		Config:     &coreconfig.Config{},
		Database:   coredatabase.Config{Driver: coredatabase.DriverSQLite, Path: filepath.Join(t.TempDir(), "data", "relay.db")},
		Migrations: fstest.MapFS{"0001_t.up.sql": {Data: []byte("CREATE TABLE t (id INTEGER PRIMARY KEY);")}},
		LoggerInit: noLogger,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	defer res.DB.Close()
	if _, err := res.DB.Exec("INSERT INTO t (id) VALUES (1)"); err != nil {
		t.Fatalf("migrated table missing: %v", err)
	}
}

func TestRunClosesOnMigrationFailure(t *testing.T) {
	boom := errors.New("boom")
	var connected *sqlx.DB
	_, err := Run(Options{
		Config:     &coreconfig.Config{},
		Database:   coredatabase.Config{Driver: coredatabase.DriverSQLite, Path: filepath.Join(t.TempDir(), "x.db")},
		Migrations: fstest.MapFS{},
		LoggerInit: noLogger,
		Connect: func(cfg coredatabase.Config) (*sqlx.DB, error) {
			db, err := coredatabase.Connect(cfg)
			connected = db
			return db, err
		},
		Migrate: func(coredatabase.Config, fs.FS) error { return boom },
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if connected == nil {
		t.Fatal("connect not called")
	}
	if err := connected.Ping(); err == nil {
		t.Fatal("db must be closed after migration failure")
	}
}

func TestRunRequiresConfig(t *testing.T) {
	if _, err := Run(Options{}); err == nil {
		t.Fatal("expected error for nil config")
	}
}
