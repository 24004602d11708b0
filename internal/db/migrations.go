package db

import (
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	embeddedmigrations "github.com/HarshitaThota/Flow-State/migrations"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	migrationNamePattern = regexp.MustCompile(`^(\d+)_[\w-]+\.sql$`)
	addColumnPattern     = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+"?(\w+)"?\s+ADD\s+COLUMN\s+"?(\w+)`)
)

// migration is one forward-only SQL file. Version is the numeric file prefix
// as written, so "0002" stays "0002" in schema_migrations.
type migration struct {
	Version string
	order   int
	Name    string
	SQL     string
}

func applyEmbeddedMigrations(database *gorm.DB, log *zap.Logger) error {
	return migrate(database, embeddedmigrations.Files, log)
}

// migrate applies every migration in files that schema_migrations does not
// list yet, in version order, one transaction per file.
func migrate(database *gorm.DB, files fs.FS, log *zap.Logger) error {
	if err := database.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	migrations, err := loadMigrations(files)
	if err != nil {
		return err
	}

	applied := make([]string, 0)
	if err := database.Table("schema_migrations").Pluck("version", &applied).Error; err != nil {
		return fmt.Errorf("load applied migration versions: %w", err)
	}
	done := make(map[string]bool, len(applied))
	for _, version := range applied {
		done[version] = true
	}

	for _, pending := range migrations {
		if done[pending.Version] {
			continue
		}
		if err := applyMigration(database, pending); err != nil {
			return err
		}
		log.Info("migration applied", zap.String("name", pending.Name))
	}
	return nil
}

func loadEmbeddedMigrations() ([]migration, error) {
	return loadMigrations(embeddedmigrations.Files)
}

func loadMigrations(files fs.FS) ([]migration, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	byVersion := make(map[string]string, len(names))
	migrations := make([]migration, 0, len(names))
	for _, name := range names {
		matches := migrationNamePattern.FindStringSubmatch(name)
		if matches == nil {
			continue
		}
		version := matches[1]
		if previous, duplicate := byVersion[version]; duplicate {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, previous, name)
		}
		byVersion[version] = name

		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", name, err)
		}
		body, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, migration{Version: version, order: order, Name: name, SQL: string(body)})
	}

	sort.SliceStable(migrations, func(i, j int) bool {
		return migrations[i].order < migrations[j].order
	})
	return migrations, nil
}

func applyMigration(database *gorm.DB, pending migration) error {
	statements := splitSQLStatements(pending.SQL)
	if len(statements) == 0 {
		return fmt.Errorf("migration %s has no SQL statements", pending.Name)
	}

	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			// ADD COLUMN has no IF NOT EXISTS in sqlite.
			if columnAlreadyAdded(tx, statement) {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", pending.Name, statement, err)
			}
		}
		if err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`, pending.Version, pending.Name).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", pending.Name, err)
		}
		return nil
	})
}

func splitSQLStatements(sqlText string) []string {
	statements := make([]string, 0)
	for _, part := range strings.Split(sqlText, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

func columnAlreadyAdded(database *gorm.DB, statement string) bool {
	matches := addColumnPattern.FindStringSubmatch(statement)
	if matches == nil {
		return false
	}
	return tableColumnExists(database, matches[1], matches[2])
}

func tableColumnExists(database *gorm.DB, table string, column string) bool {
	return database.Migrator().HasColumn(table, column)
}
