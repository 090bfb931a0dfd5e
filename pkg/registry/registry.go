// Package registry persists the barrels saved to the sidebar and user
// preferences in a SQLite database.
package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mattsolo1/grove-zeplin/pkg/models"
)

// DatabaseFile is the name of the database inside the data directory.
const DatabaseFile = "zeplin.db"

// DatabaseFiles lists the files SQLite may write for the database.
var DatabaseFiles = []string{DatabaseFile, DatabaseFile + "-journal", DatabaseFile + "-wal"}

const (
	preferredApplicationKey = "preferred_application_type"
	seededKey               = "seeded_at"
)

// ErrNotSaved is returned when a barrel is not in the registry.
var ErrNotSaved = errors.New("barrel not saved")

// Registry manages saved barrels and preferences
type Registry struct {
	db      *sql.DB
	dataDir string
}

// NewRegistry opens (and creates if needed) the registry in dataDir
func NewRegistry(dataDir string) (*Registry, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	r := &Registry{
		db:      db,
		dataDir: dataDir,
	}

	if err := r.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize registry: %w", err)
	}

	return r, nil
}

// DataDir returns the directory holding the database.
func (r *Registry) DataDir() string {
	return r.dataDir
}

// init creates the database schema
func (r *Registry) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS barrels (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		parent_id TEXT NOT NULL DEFAULT '',
		platform TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL,
		added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_barrels_position ON barrels(position);

	CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Add saves a barrel at the end of the list. Saving a barrel again updates
// its details and keeps its position.
func (r *Registry) Add(ctx context.Context, b models.Barrel) error {
	if b.ID == "" {
		return errors.New("barrel id is required")
	}
	if !b.Type.Valid() {
		return fmt.Errorf("invalid barrel type: %q", b.Type)
	}

	query := `
	INSERT INTO barrels (id, name, type, parent_id, platform, description, position, added_at)
	VALUES (?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM barrels), ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		type = excluded.type,
		parent_id = excluded.parent_id,
		platform = excluded.platform,
		description = excluded.description
	`

	_, err := r.db.ExecContext(ctx, query, b.ID, b.Name, b.Type, b.ParentID, b.Platform, b.Description, time.Now())
	if err != nil {
		return fmt.Errorf("save barrel %s: %w", b.ID, err)
	}
	return nil
}

// Get retrieves a saved barrel by id
func (r *Registry) Get(ctx context.Context, id string) (*models.Barrel, error) {
	query := `
	SELECT id, name, type, parent_id, platform, description
	FROM barrels WHERE id = ?
	`

	b := &models.Barrel{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.Type, &b.ParentID, &b.Platform, &b.Description,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotSaved, id)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Has reports whether a barrel is saved.
func (r *Registry) Has(ctx context.Context, id string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM barrels WHERE id = ?", id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// SavedBarrels returns the saved barrels in the order they were added
func (r *Registry) SavedBarrels(ctx context.Context) ([]models.Barrel, error) {
	query := `
	SELECT id, name, type, parent_id, platform, description
	FROM barrels ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var barrels []models.Barrel
	for rows.Next() {
		var b models.Barrel
		if err := rows.Scan(&b.ID, &b.Name, &b.Type, &b.ParentID, &b.Platform, &b.Description); err != nil {
			return nil, err
		}
		barrels = append(barrels, b)
	}
	return barrels, rows.Err()
}

// Remove deletes a saved barrel
func (r *Registry) Remove(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM barrels WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("remove barrel %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotSaved, id)
	}
	return nil
}

// PreferredApplicationType returns the application external links open in.
// selected is false until the user has made a choice.
func (r *Registry) PreferredApplicationType(ctx context.Context) (appType models.ApplicationType, selected bool, err error) {
	var value string
	err = r.db.QueryRowContext(ctx, "SELECT value FROM preferences WHERE key = ?", preferredApplicationKey).Scan(&value)
	if err == sql.ErrNoRows {
		return models.ApplicationTypeWeb, false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read preference: %w", err)
	}

	appType, err = models.ParseApplicationType(value)
	if err != nil {
		// A value written by a newer version; ask again.
		return models.ApplicationTypeWeb, false, nil
	}
	return appType, true, nil
}

// SetPreferredApplicationType records the user's choice
func (r *Registry) SetPreferredApplicationType(ctx context.Context, appType models.ApplicationType) error {
	if _, err := models.ParseApplicationType(string(appType)); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO preferences (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, preferredApplicationKey, string(appType))
	if err != nil {
		return fmt.Errorf("write preference: %w", err)
	}
	return nil
}

// Seed saves barrels unless a seed has been applied before, so barrels the
// user removes later do not come back. It reports whether the seed ran.
func (r *Registry) Seed(ctx context.Context, barrels []models.Barrel) (bool, error) {
	if len(barrels) == 0 {
		return false, nil
	}

	var seededAt string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM preferences WHERE key = ?", seededKey).Scan(&seededAt)
	if err == nil {
		return false, nil
	}
	if err != sql.ErrNoRows {
		return false, fmt.Errorf("read seed marker: %w", err)
	}

	for _, b := range barrels {
		if err := r.Add(ctx, b); err != nil {
			return false, err
		}
	}
	_, err = r.db.ExecContext(ctx, "INSERT OR REPLACE INTO preferences (key, value) VALUES (?, ?)",
		seededKey, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("write seed marker: %w", err)
	}
	return true, nil
}

// Close closes the registry database
func (r *Registry) Close() error {
	return r.db.Close()
}
