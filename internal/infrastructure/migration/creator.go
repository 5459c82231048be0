package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"text/template"
	"time"
)

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

var migrationFileTemplate = template.Must(template.New("migration").Parse(
	`-- {{.Name}}{{if .Rollback}} (rollback){{end}}
-- Created: {{.Created}}
{{- with .Description}}
-- {{.}}
{{- end}}

`))

var nonWord = regexp.MustCompile(`[^a-z0-9]+`)

// MigrationFile is a pair of up and down files sharing a sequence number
type MigrationFile struct {
	Version     int
	Name        string
	Description string
	UpPath      string
	DownPath    string
}

// CreateMigration writes the next numbered up/down pair into dir.
// Versions are six-digit sequence numbers, e.g. 000003_add_index.up.sql.
func CreateMigration(dir, name, description string) (*MigrationFile, error) {
	slug := sanitizeName(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	existing, err := ListMigrations(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	version := 1
	if len(existing) > 0 {
		version = existing[len(existing)-1].Version + 1
	}

	base := fmt.Sprintf("%06d_%s", version, slug)
	mf := &MigrationFile{
		Version:     version,
		Name:        slug,
		Description: description,
		UpPath:      filepath.Join(dir, base+upSuffix),
		DownPath:    filepath.Join(dir, base+downSuffix),
	}

	created := time.Now().Format(time.RFC3339)
	if err := writeMigrationFile(mf.UpPath, mf, created, false); err != nil {
		return nil, err
	}
	if err := writeMigrationFile(mf.DownPath, mf, created, true); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, err
	}
	return mf, nil
}

func writeMigrationFile(path string, mf *MigrationFile, created string, rollback bool) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	return migrationFileTemplate.Execute(f, map[string]any{
		"Name":        mf.Name,
		"Description": mf.Description,
		"Created":     created,
		"Rollback":    rollback,
	})
}

// sanitizeName lower-cases name and collapses everything else to underscores
func sanitizeName(name string) string {
	return strings.Trim(nonWord.ReplaceAllString(strings.ToLower(name), "_"), "_")
}

// ListMigrations returns the migrations of fsys ordered by version.
// Only files with an up half are listed.
func ListMigrations(fsys fs.FS) ([]MigrationFile, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var out []MigrationFile
	for _, entry := range entries {
		base, ok := strings.CutSuffix(entry.Name(), upSuffix)
		if entry.IsDir() || !ok {
			continue
		}
		num, name, ok := strings.Cut(base, "_")
		if !ok {
			continue
		}
		version, err := strconv.Atoi(num)
		if err != nil {
			continue
		}
		out = append(out, MigrationFile{
			Version:  version,
			Name:     name,
			UpPath:   entry.Name(),
			DownPath: base + downSuffix,
		})
	}
	slices.SortFunc(out, func(a, b MigrationFile) int { return a.Version - b.Version })
	return out, nil
}
