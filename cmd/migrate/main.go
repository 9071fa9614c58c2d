package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

const migrationsDir = "migrations"

type migration struct {
	version int
	name    string
	path    string
	down    bool
}

func main() {
	mode := flag.String("mode", "up", "migration mode: up or down")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	if err := ensureSchemaMigrations(db); err != nil {
		log.Fatalf("failed to ensure schema_migrations: %v", err)
	}

	migrations, err := loadMigrations(migrationsDir)
	if err != nil {
		log.Fatalf("failed to load migrations: %v", err)
	}

	switch strings.ToLower(*mode) {
	case "up":
		if err := applyUp(db, migrations); err != nil {
			log.Fatalf("migration up failed: %v", err)
		}
		log.Println("migration up completed")
	case "down":
		if err := applyDown(db, migrations); err != nil {
			log.Fatalf("migration down failed: %v", err)
		}
		log.Println("migration down completed")
	default:
		log.Fatalf("unknown mode: %s", *mode)
	}
}

func ensureSchemaMigrations(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	return err
}

func loadMigrations(dir string) ([]migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var migrations []migration
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		// Expected: 001_create_profiles.up.sql / 001_create_profiles.down.sql
		parts := strings.SplitN(name, "_", 2)
		if len(parts) < 2 {
			log.Printf("skipping migration without version prefix: %s", name)
			continue
		}
		version, err := strconv.Atoi(parts[0])
		if err != nil {
			log.Printf("skipping migration without numeric version: %s", name)
			continue
		}

		migrations = append(migrations, migration{
			version: version,
			name:    parts[1],
			path:    filepath.Join(dir, name),
			down:    strings.HasSuffix(name, ".down.sql"),
		})
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].version < migrations[j].version })
	return migrations, nil
}

func applyUp(db *sql.DB, migrations []migration) error {
	for _, m := range migrations {
		if m.down {
			continue
		}

		applied, err := alreadyApplied(db, m.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		log.Printf("applying %03d: %s", m.version, m.name)
		if err := execFile(db, m.path); err != nil {
			return fmt.Errorf("failed applying %s: %w", m.path, err)
		}
		if _, err := db.Exec(
			"INSERT INTO schema_migrations(version, name, applied_at) VALUES($1, $2, $3)",
			m.version, m.name, time.Now(),
		); err != nil {
			return err
		}
	}
	return nil
}

func applyDown(db *sql.DB, migrations []migration) error {
	var downs []migration
	for _, m := range migrations {
		if m.down {
			downs = append(downs, m)
		}
	}
	sort.Slice(downs, func(i, j int) bool { return downs[i].version > downs[j].version })

	for _, m := range downs {
		applied, err := alreadyApplied(db, m.version)
		if err != nil {
			return err
		}
		if !applied {
			continue
		}

		log.Printf("reverting %03d: %s", m.version, m.name)
		if err := execFile(db, m.path); err != nil {
			return fmt.Errorf("failed reverting %s: %w", m.path, err)
		}
		if _, err := db.Exec("DELETE FROM schema_migrations WHERE version = $1", m.version); err != nil {
			return err
		}
	}
	return nil
}

func alreadyApplied(db *sql.DB, version int) (bool, error) {
	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", version).Scan(&exists)
	return exists, err
}

func execFile(db *sql.DB, path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = db.Exec(string(contents))
	return err
}
