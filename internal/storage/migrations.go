package storage

import (
	"fmt"
)

// migrate brings the journal schema up to the latest version
func (j *Journal) migrate() error {
	for _, step := range []func() error{j.MigrateToV1, j.MigrateToV2} {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// schemaVersion returns the highest applied migration, 0 for a new database
func (j *Journal) schemaVersion() int {
	var version int
	err := j.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		// Table doesn't exist yet
		return 0
	}
	return version
}

// MigrateToV1 creates the changes table
func (j *Journal) MigrateToV1() error {
	if j.schemaVersion() >= 1 {
		return nil // Already migrated
	}

	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS changes (
			id TEXT PRIMARY KEY,
			version INTEGER NOT NULL,
			op TEXT NOT NULL,
			target_id TEXT NOT NULL,
			recorded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating changes table: %w", err)
	}

	_, err = tx.Exec(`CREATE INDEX IF NOT EXISTS idx_changes_version ON changes(version)`)
	if err != nil {
		return fmt.Errorf("creating changes version index: %w", err)
	}

	_, err = tx.Exec(`INSERT OR IGNORE INTO schema_migrations (version) VALUES (1)`)
	if err != nil {
		return fmt.Errorf("setting migration version: %w", err)
	}

	return tx.Commit()
}

// MigrateToV2 adds collection sizes after each change
func (j *Journal) MigrateToV2() error {
	if j.schemaVersion() >= 2 {
		return nil // Already migrated
	}

	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, column := range []string{"device_count", "label_count"} {
		var columnExists bool
		err = tx.QueryRow(`
			SELECT COUNT(*) > 0 FROM pragma_table_info('changes')
			WHERE name = ?
		`, column).Scan(&columnExists)
		if err != nil {
			return fmt.Errorf("checking %s column: %w", column, err)
		}
		if columnExists {
			continue
		}
		_, err = tx.Exec(`ALTER TABLE changes ADD COLUMN ` + column + ` INTEGER NOT NULL DEFAULT 0`)
		if err != nil {
			return fmt.Errorf("adding %s column: %w", column, err)
		}
	}

	_, err = tx.Exec(`INSERT OR IGNORE INTO schema_migrations (version) VALUES (2)`)
	if err != nil {
		return fmt.Errorf("setting migration version: %w", err)
	}

	return tx.Commit()
}
