package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MigrationFile describes one side of a generated migration pair.
type MigrationFile struct {
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

const migrationUpTemplate = `-- Migration: %s
-- Created at: %s
-- Direction: UP

BEGIN;

-- Add your UP migration SQL here

COMMIT;
`

const migrationDownTemplate = `-- Migration: %s
-- Created at: %s
-- Direction: DOWN

BEGIN;

-- Add your DOWN migration SQL here

COMMIT;
`

// CreateMigration writes a timestamped up/down SQL pair under dir.
// Both files are created or neither is.
func CreateMigration(dir, name string) (*MigrationFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	version := time.Now().Format("20060102150405")
	safeName := sanitizeName(name)
	if safeName == "" {
		return nil, fmt.Errorf("migration name %q contains no usable characters", name)
	}

	mf := &MigrationFile{
		Version:  version,
		Name:     safeName,
		UpPath:   filepath.Join(dir, fmt.Sprintf("%s_%s.up.sql", version, safeName)),
		DownPath: filepath.Join(dir, fmt.Sprintf("%s_%s.down.sql", version, safeName)),
	}

	createdAt := time.Now().Format(time.RFC3339)

	if err := createMigrationFile(mf.UpPath, fmt.Sprintf(migrationUpTemplate, safeName, createdAt)); err != nil {
		return nil, err
	}

	if err := createMigrationFile(mf.DownPath, fmt.Sprintf(migrationDownTemplate, safeName, createdAt)); err != nil {
		os.Remove(mf.UpPath)
		return nil, err
	}

	return mf, nil
}

func createMigrationFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("migration file already exists: %s", path)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write migration file %s: %w", path, err)
	}

	return nil
}

// sanitizeName lowercases the name and replaces anything outside
// [a-z0-9_] with underscores, collapsing runs.
func sanitizeName(name string) string {
	var b strings.Builder
	lastUnderscore := false

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}

	return strings.TrimRight(b.String(), "_")
}

// ListMigrations returns the up-migration files in dir sorted by version.
func ListMigrations(dir string) ([]MigrationFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []MigrationFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		base := entry.Name()
		if !strings.HasSuffix(base, ".up.sql") {
			continue
		}

		trimmed := strings.TrimSuffix(base, ".up.sql")
		parts := strings.SplitN(trimmed, "_", 2)
		if len(parts) != 2 {
			continue
		}

		files = append(files, MigrationFile{
			Version:  parts[0],
			Name:     parts[1],
			UpPath:   filepath.Join(dir, base),
			DownPath: filepath.Join(dir, trimmed+".down.sql"),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Version < files[j].Version
	})

	return files, nil
}
