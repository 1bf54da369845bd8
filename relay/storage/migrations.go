package storage

import (
	"embed"
	"fmt"
	"io/fs"

	coredatabase "github.com/m3rciful/anonrelay/core/database"
)

//go:embed migrations
var migrations embed.FS

// Migrations returns the SQL files for driver, rooted so golang-migrate sees them at ".".
func Migrations(driver string) (fs.FS, error) {
	switch driver {
	case coredatabase.DriverPostgres, coredatabase.DriverSQLite:
		return fs.Sub(migrations, "migrations/"+driver)
	}
	return nil, fmt.Errorf("storage: no migrations for driver %q", driver)
}
