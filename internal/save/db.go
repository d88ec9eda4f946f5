package save

import (
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrSlotEmpty is returned when loading a slot that holds no save.
var ErrSlotEmpty = errors.New("save slot empty")

// SlotInfo is slot metadata for the load screen.
type SlotInfo struct {
	Slot         int       `db:"slot" json:"slot"`
	ProfileID    string    `db:"profile_id" json:"profile_id"`
	GameDate     string    `db:"game_date" json:"game_date"`
	MonthsPlayed int       `db:"months_played" json:"months_played"`
	SavedAt      time.Time `db:"saved_at" json:"saved_at"`
}

// DB wraps a SQLite connection holding save slots.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a save database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open save db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate save db: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		slot INTEGER PRIMARY KEY,
		profile_id TEXT NOT NULL,
		game_date TEXT NOT NULL,
		months_played INTEGER NOT NULL,
		snapshot_json TEXT NOT NULL,
		saved_at TIMESTAMP NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveSlot writes a snapshot into a slot, replacing any previous save.
func (db *DB) SaveSlot(slot int, snap *Snapshot) error {
	data, err := Marshal(snap)
	if err != nil {
		return err
	}
	_, err = db.conn.Exec(`INSERT OR REPLACE INTO saves
		(slot, profile_id, game_date, months_played, snapshot_json, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		slot, snap.Character.ProfileID, snap.Clock.Now().String(),
		snap.Clock.TotalMonthsElapsed, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("write slot %d: %w", slot, err)
	}
	slog.Info("game saved", "slot", slot, "date", snap.Clock.Now().String())
	return nil
}

// LoadSlot reads and verifies the snapshot in a slot.
func (db *DB) LoadSlot(slot int) (*Snapshot, error) {
	var data string
	err := db.conn.Get(&data, "SELECT snapshot_json FROM saves WHERE slot = ?", slot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %d: %w", slot, err)
	}
	return Unmarshal([]byte(data))
}

// DeleteSlot clears a slot. Deleting an empty slot is fine.
func (db *DB) DeleteSlot(slot int) error {
	_, err := db.conn.Exec("DELETE FROM saves WHERE slot = ?", slot)
	return err
}

// Slots lists metadata for every occupied slot.
func (db *DB) Slots() ([]SlotInfo, error) {
	var slots []SlotInfo
	err := db.conn.Select(&slots,
		"SELECT slot, profile_id, game_date, months_played, saved_at FROM saves ORDER BY slot")
	return slots, err
}

// Export serializes a snapshot to a portable base64 string.
func Export(snap *Snapshot) (string, error) {
	data, err := Marshal(snap)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Import parses an exported string back into a verified snapshot.
func Import(encoded string) (*Snapshot, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	return Unmarshal(data)
}
