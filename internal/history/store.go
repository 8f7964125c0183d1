package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"target-scorer/pkg/geometry"
)

// Store persists session records in a local sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Local single-writer workload; WAL keeps reads cheap during appends.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp      TEXT NOT NULL,
	session_type   TEXT NOT NULL DEFAULT '',
	shot_count     INTEGER NOT NULL,
	shots          TEXT NOT NULL,
	mpi_x          REAL NOT NULL,
	mpi_y          REAL NOT NULL,
	cluster_radius REAL NOT NULL,
	outlier_count  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_timestamp ON sessions(timestamp);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Append stores one session record and returns it with its assigned id.
func (s *Store) Append(ctx context.Context, rec Record) (Record, error) {
	shotsJSON, err := json.Marshal(rec.Shots)
	if err != nil {
		return Record{}, fmt.Errorf("encode shots: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
INSERT INTO sessions (timestamp, session_type, shot_count, shots, mpi_x, mpi_y, cluster_radius, outlier_count)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp.UTC().Format(time.RFC3339Nano),
		rec.SessionType,
		rec.ShotCount,
		string(shotsJSON),
		rec.ClusterMPI.X,
		rec.ClusterMPI.Y,
		rec.ClusterRadius,
		rec.OutlierCount,
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert session: %w", err)
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return Record{}, fmt.Errorf("session id: %w", err)
	}
	return rec, nil
}

// Query returns records matching the filter in chronological order.
func (s *Store) Query(ctx context.Context, f Filter) ([]Record, error) {
	var (
		where []string
		args  []any
	)
	if !f.From.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, f.From.UTC().Format(time.RFC3339Nano))
	}
	if !f.To.IsZero() {
		where = append(where, "timestamp < ?")
		args = append(args, f.To.UTC().Format(time.RFC3339Nano))
	}
	if len(f.SessionTypes) > 0 {
		marks := make([]string, len(f.SessionTypes))
		for i, st := range f.SessionTypes {
			marks[i] = "?"
			args = append(args, st)
		}
		where = append(where, "session_type IN ("+strings.Join(marks, ", ")+")")
	}

	query := "SELECT id, timestamp, session_type, shot_count, shots, mpi_x, mpi_y, cluster_radius, outlier_count FROM sessions"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY timestamp ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec       Record
			ts        string
			shotsJSON string
		)
		if err := rows.Scan(&rec.ID, &ts, &rec.SessionType, &rec.ShotCount, &shotsJSON,
			&rec.ClusterMPI.X, &rec.ClusterMPI.Y, &rec.ClusterRadius, &rec.OutlierCount); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", ts, err)
		}
		if err := json.Unmarshal([]byte(shotsJSON), &rec.Shots); err != nil {
			return nil, fmt.Errorf("decode shots: %w", err)
		}
		if rec.Shots == nil {
			rec.Shots = []geometry.Point2D{}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
