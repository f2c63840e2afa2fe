package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"railboard.dev/schedule/model"
)

// PostgreSQL implementation of Storage, for hosts sharing saved refs
// across instances.
type PSQLStorage struct {
	db *sql.DB
}

func NewPSQLStorage(connStr string, clearDB bool) (*PSQLStorage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if clearDB {
		_, err = db.Exec(`DROP TABLE IF EXISTS saved_ref`)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("dropping saved_ref table: %w", err)
		}
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS saved_ref (
    trip_id TEXT NOT NULL,
    from_stop_id TEXT NOT NULL,
    to_stop_id TEXT NOT NULL,
    travel_date TEXT NOT NULL,
    saved_at TIMESTAMPTZ NOT NULL,
PRIMARY KEY (trip_id, from_stop_id, to_stop_id, travel_date)
);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating saved_ref table: %w", err)
	}

	return &PSQLStorage{db: db}, nil
}

func (s *PSQLStorage) SavedRefs() ([]model.SavedTrainRef, error) {
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

func (s *PSQLStorage) SaveRef(ref model.SavedTrainRef) error {
	_, err := s.db.Exec(`
INSERT INTO saved_ref (trip_id, from_stop_id, to_stop_id, travel_date, saved_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT DO NOTHING`,
		ref.TripID, ref.FromStopID, ref.ToStopID, travelDateKey(ref.TravelDate), ref.SavedAt)
	if err != nil {
		return fmt.Errorf("inserting saved_ref: %w", err)
	}
	return nil
}

func (s *PSQLStorage) DeleteRef(tripID, fromStopID, toStopID string) error {
	_, err := s.db.Exec(`
DELETE FROM saved_ref
WHERE trip_id = $1 AND from_stop_id = $2 AND to_stop_id = $3`,
		tripID, fromStopID, toStopID)
	if err != nil {
		return fmt.Errorf("deleting saved_ref: %w", err)
	}
	return nil
}

func (s *PSQLStorage) ClearRefs() error {
	_, err := s.db.Exec(`DELETE FROM saved_ref`)
	if err != nil {
		return fmt.Errorf("clearing saved_ref: %w", err)
	}
	return nil
}

func (s *PSQLStorage) Close() error {
	return s.db.Close()
}
