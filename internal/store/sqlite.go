package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const DefaultSlot = "default"

// SQLite keeps saves in named slots of a single database file.
type SQLite struct {
	conn *sqlx.DB
	slot string
}

type slotRow struct {
	Slot    string `db:"slot"`
	SavedAt string `db:"saved_at"`
	Size    int    `db:"size"`
}

// SlotInfo describes one stored save.
type SlotInfo struct {
	Slot    string
	SavedAt time.Time
	Size    int
}

// OpenSQLite opens or creates the database at path and reads and writes slot.
func OpenSQLite(path, slot string) (*SQLite, error) {
	if slot == "" {
		slot = DefaultSlot
	}
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &SQLite{conn: conn, slot: slot}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func (db *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS save_slots (
		slot TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		saved_at TEXT NOT NULL
	);`
	_, err := db.conn.Exec(schema)
	return err
}

func (db *SQLite) Close() error {
	return db.conn.Close()
}

func (db *SQLite) ReadSave(ctx context.Context) ([]byte, error) {
	var data string
	err := db.conn.GetContext(ctx, &data, "SELECT data FROM save_slots WHERE slot = ?", db.slot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read save slot %s: %w", db.slot, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("read save slot %s: %w", db.slot, err)
	}
	return []byte(data), nil
}

func (db *SQLite) WriteSave(ctx context.Context, data []byte) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO save_slots (slot, data, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		db.slot, string(data), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write save slot %s: %w", db.slot, err)
	}
	return nil
}

// Slots lists every stored save, most recent first.
func (db *SQLite) Slots(ctx context.Context) ([]SlotInfo, error) {
	var rows []slotRow
	err := db.conn.SelectContext(ctx, &rows,
		"SELECT slot, saved_at, length(data) AS size FROM save_slots ORDER BY saved_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list save slots: %w", err)
	}
	out := make([]SlotInfo, 0, len(rows))
	for _, r := range rows {
		savedAt, _ := time.Parse(time.RFC3339Nano, r.SavedAt)
		out = append(out, SlotInfo{Slot: r.Slot, SavedAt: savedAt, Size: r.Size})
	}
	return out, nil
}

// DeleteSave removes the bound slot. Deleting a missing slot is not an error.
func (db *SQLite) DeleteSave(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, "DELETE FROM save_slots WHERE slot = ?", db.slot); err != nil {
		return fmt.Errorf("delete save slot %s: %w", db.slot, err)
	}
	return nil
}
