package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"railboard.dev/schedule/model"
)

type SQLiteConfig struct {
	OnDisk    bool
	Directory string
}

// SQLite implementation of Storage. In memory by default; pass
// SQLiteConfig{OnDisk: true} to persist across restarts.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(cfg ...SQLiteConfig) (*SQLiteStorage, error) {
	sourceName := ":memory:"
	if len(cfg) > 0 && cfg[0].OnDisk {
		sourceName = cfg[0].Directory + "/refs.db"
	}

	db, err := sql.Open("sqlite3", sourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS saved_ref (
    trip_id TEXT NOT NULL,
    from_stop_id TEXT NOT NULL,
    to_stop_id TEXT NOT NULL,
    travel_date TEXT NOT NULL,
    saved_at TIMESTAMP NOT NULL,
PRIMARY KEY (trip_id, from_stop_id, to_stop_id, travel_date)
);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating saved_ref table: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) SavedRefs() ([]model.SavedTrainRef, error) {
	rows, err := s.db.Query(`
SELECT trip_id, from_stop_id, to_stop_id, travel_date, saved_at
FROM saved_ref
ORDER BY saved_at, trip_id`)
	if err != nil {
		return nil, fmt.Errorf("querying saved_ref: %w", err)
	}
	defer rows.Close()

	refs := []model.SavedTrainRef{}
	for rows.Next() {
		var ref model.SavedTrainRef
		var travelDate string
		err = rows.Scan(&ref.TripID, &ref.FromStopID, &ref.ToStopID, &travelDate, &ref.SavedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning saved_ref row: %w", err)
		}
		ref.TravelDate = parseTravelDateKey(travelDate)
		refs = append(refs, ref)
	}

	return refs, rows.Err()
}

func (s *SQLiteStorage) SaveRef(ref model.SavedTrainRef) error {
	_, err := s.db.Exec(`
INSERT OR IGNORE INTO saved_ref (trip_id, from_stop_id, to_stop_id, travel_date, saved_at)
VALUES (?, ?, ?, ?, ?)`,
		ref.TripID, ref.FromStopID, ref.ToStopID, travelDateKey(ref.TravelDate), ref.SavedAt)
	if err != nil {
		return fmt.Errorf("inserting saved_ref: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) DeleteRef(tripID, fromStopID, toStopID string) error {
	_, err := s.db.Exec(`
DELETE FROM saved_ref
WHERE trip_id = ? AND from_stop_id = ? AND to_stop_id = ?`,
		tripID, fromStopID, toStopID)
	if err != nil {
		return fmt.Errorf("deleting saved_ref: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) ClearRefs() error {
	_, err := s.db.Exec(`DELETE FROM saved_ref`)
	if err != nil {
		return fmt.Errorf("clearing saved_ref: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
