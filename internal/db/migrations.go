package db

import (
	"fmt"
	"io/fs"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"

	embeddedmigrations "github.com/terraincognita07/solaris/migrations"
	"gorm.io/gorm"
)

var migrationFilePattern = regexp.MustCompile(`^(\d+)_[a-z0-9_]+\.sql$`)

// schemaMigration is one numbered SQL file, already split into statements.
type schemaMigration struct {
	Version    string
	Order      int
	File       string
	Statements []string
}

func applyEmbeddedMigrations(database *gorm.DB) error {
	applied, err := migrateSchema(database, embeddedmigrations.Files)
	if err != nil {
		return err
	}
	for _, file := range applied {
		log.Printf("db: applied migration %s", file)
	}
	return nil
}

// migrateSchema runs every migration in files that schema_migrations does not
// list yet and returns the files it applied, in order.
func migrateSchema(database *gorm.DB, files fs.FS) ([]string, error) {
	const ledgerSQL = `CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`
	if err := database.Exec(ledgerSQL).Error; err != nil {
		return nil, fmt.Errorf("create schema_migrations table: %w", err)
	}

	migrations, err := readMigrations(files)
	if err != nil {
		return nil, err
	}

	var versions []string
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&versions).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}
	done := make(map[string]bool, len(versions))
	for _, version := range versions {
		done[version] = true
	}

	applied := make([]string, 0)
	for _, migration := range migrations {
		if done[migration.Version] {
			continue
		}
		if err := runMigration(database, migration); err != nil {
			return applied, err
		}
		applied = append(applied, migration.File)
	}
	return applied, nil
}

func loadEmbeddedMigrations() ([]schemaMigration, error) {
	return readMigrations(embeddedmigrations.Files)
}

func readMigrations(files fs.FS) ([]schemaMigration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	migrations := make([]schemaMigration, 0, len(entries))
	byVersion := make(map[string]string, len(entries))
	for _, entry := range entries {
		matches := migrationFilePattern.FindStringSubmatch(entry.Name())
		if entry.IsDir() || matches == nil {
			continue
		}

		version := matches[1]
		if previous, exists := byVersion[version]; exists {
			return nil, fmt.Errorf("migration version %s used by both %s and %s", version, previous, entry.Name())
		}
		byVersion[version] = entry.Name()

		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version of %s: %w", entry.Name(), err)
		}
		raw, err := fs.ReadFile(files, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		statements := splitStatements(string(raw))
		if len(statements) == 0 {
			return nil, fmt.Errorf("migration %s has no statements", entry.Name())
		}

		migrations = append(migrations, schemaMigration{
			Version:    version,
			Order:      order,
			File:       entry.Name(),
			Statements: statements,
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Order < migrations[j].Order
	})
	return migrations, nil
}

func runMigration(database *gorm.DB, migration schemaMigration) error {
	return database.Transaction(func(tx *gorm.DB) error {
		for index, statement := range migration.Statements {
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s statement %d: %w", migration.File, index+1, err)
			}
		}
		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			migration.Version,
			migration.File,
		).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", migration.File, err)
		}
		return nil
	})
}

// splitStatements drops "--" comment lines and splits on ";". Migrations never
// carry a literal semicolon.
func splitStatements(sqlText string) []string {
	lines := strings.Split(sqlText, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), "--") {
			kept = append(kept, line)
		}
	}

	statements := make([]string, 0)
	for _, part := range strings.Split(strings.Join(kept, "\n"), ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
