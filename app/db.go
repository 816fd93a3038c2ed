package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"alfredoramos.mx/outreach-tracker/models"
	"alfredoramos.mx/outreach-tracker/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	db     *gorm.DB
	onceDB sync.Once
)

func DB() *gorm.DB {
	onceDB.Do(func() {
		path := DatabasePath()

		logLevel := logger.Warn

		if utils.IsDebug() {
			logLevel = logger.Info
		}

		database, err := gorm.Open(sqlite.Open(path), &gorm.Config{
			SkipDefaultTransaction: true,
			PrepareStmt:            true,
			Logger:                 logger.Default.LogMode(logLevel),
		})
		if err != nil {
			slog.Error(fmt.Sprintf("Could not open SQLite database at '%s': %v", path, err))
			os.Exit(1)
		}

		// Conflicting writers wait instead of failing fast.
		if err := database.Exec("PRAGMA busy_timeout = 5000").Error; err != nil {
			slog.Error(fmt.Sprintf("Could not set busy timeout: %v", err))
		}

		if err := ensureCreatedByColumn(database, path); err != nil {
			slog.Error(fmt.Sprintf("Could not migrate websites schema: %v", err))
			os.Exit(1)
		}

		if err := database.AutoMigrate(
			&models.Website{},
			&models.ActivityLog{},
		); err != nil {
			slog.Error(fmt.Sprintf("Could not migrate models: %v", err))
			os.Exit(1)
		}

		db = database
	})

	return db
}

func DatabasePath() string {
	path := os.Getenv("DB_PATH")

	if len(path) < 1 {
		path = "websites.db"
	}

	return path
}

// ensureCreatedByColumn backfills the created_by column added after the first
// release. The database file is copied aside before the schema changes, and
// running the migration again is a no-op.
func ensureCreatedByColumn(database *gorm.DB, path string) error {
	var tables int64
	if err := database.Raw("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'websites'").Scan(&tables).Error; err != nil {
		return fmt.Errorf("could not inspect schema: %w", err)
	}

	if tables < 1 {
		return nil
	}

	type columnInfo struct {
		Name string
	}

	columns := []columnInfo{}
	if err := database.Raw("PRAGMA table_info(websites)").Scan(&columns).Error; err != nil {
		return fmt.Errorf("could not read websites columns: %w", err)
	}

	for _, c := range columns {
		if c.Name == "created_by" {
			return nil
		}
	}

	backup, err := backupDatabase(path)
	if err != nil {
		return fmt.Errorf("could not back up database: %w", err)
	}

	if len(backup) > 0 {
		slog.Info(fmt.Sprintf("Database backup created at '%s'.", backup))
	}

	if err := database.Exec("ALTER TABLE websites ADD COLUMN created_by TEXT").Error; err != nil {
		return fmt.Errorf("could not add created_by column: %w", err)
	}

	return nil
}

func backupDatabase(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}

		return "", err
	}
	defer src.Close()

	backup := fmt.Sprintf("%s.backup.%s", path, time.Now().UTC().Format("20060102150405"))

	dst, err := os.Create(backup)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return backup, nil
}
