// Package storage records the inventory change history in SQLite.
//
// The journal is an audit trail for the running process. The inventory
// never reads it back.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/martinsuchenak/labelinv/internal/inventory"
	"github.com/martinsuchenak/labelinv/internal/log"
	_ "modernc.org/sqlite"
)

// MemoryDSN keeps the journal in memory for the life of the process
const MemoryDSN = ":memory:"

// Entry is one recorded change
type Entry struct {
	ID          string       `json:"id"`
	Version     uint64       `json:"version"`
	Op          inventory.Op `json:"op"`
	TargetID    string       `json:"target_id"`
	DeviceCount int          `json:"device_count"`
	LabelCount  int          `json:"label_count"`
	RecordedAt  time.Time    `json:"recorded_at"`
}

// Journal appends store changes to an SQLite table
type Journal struct {
	db *sql.DB
}

// Open opens the journal database and applies migrations. An empty dsn
// means MemoryDSN.
func Open(dsn string) (*Journal, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", dsn, err)
	}
	// An in-memory database exists per connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging journal: %w", err)
	}

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return j, nil
}

// Close closes the database connection
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends a change
func (j *Journal) Record(c inventory.Change) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating entry id: %w", err)
	}
	_, err = j.db.Exec(`
		INSERT INTO changes (id, version, op, target_id, device_count, label_count, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id.String(), c.Snapshot.Version, string(c.Op), c.TargetID,
		len(c.Snapshot.Devices), len(c.Snapshot.Labels), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting change: %w", err)
	}
	return nil
}

// Observe records c and logs failures. It has the signature expected by
// inventory.Store.Subscribe.
func (j *Journal) Observe(c inventory.Change) {
	if err := j.Record(c); err != nil {
		log.Error("Failed to journal change", "error", err, "op", c.Op, "target_id", c.TargetID)
		return
	}
	log.Debug("Journaled change", "op", c.Op, "target_id", c.TargetID, "version", c.Snapshot.Version)
}

// List returns the most recent entries, newest first. A limit of 0 or less
// returns everything.
func (j *Journal) List(limit int) ([]Entry, error) {
	query := `
		SELECT id, version, op, target_id, device_count, label_count, recorded_at
		FROM changes
		ORDER BY version DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying changes: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var op string
		if err := rows.Scan(&e.ID, &e.Version, &op, &e.TargetID, &e.DeviceCount, &e.LabelCount, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning change: %w", err)
		}
		e.Op = inventory.Op(op)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
