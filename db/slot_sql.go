package db

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// ReportSlot is the relational shape of a storage slot: one row per key.
// The version column is the compare-and-swap token; stored versions start
// at 1 so a version of 0 always means "no slot".
type ReportSlot struct {
	Key     string `gorm:"primaryKey;size:64"`
	Data    []byte `gorm:"not null"`
	Version int64  `gorm:"not null;default:0"`
}

type sqlSlot struct {
	db  *sql.DB
	key string
}

// NewSQLSlot returns a Slot stored as a single row in the report_slots
// table.
func NewSQLSlot(db *sql.DB, key string) Slot {
	return &sqlSlot{db: db, key: key}
}

func (s *sqlSlot) Read(ctx context.Context) ([]byte, int64, error) {
	var (
		data    []byte
		version int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT data, version FROM report_slots WHERE key = $1`, s.key).
		Scan(&data, &version)
	if err == sql.ErrNoRows {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, errors.Wrap(err, "reading slot row")
	}
	return data, version, nil
}

func (s *sqlSlot) Write(ctx context.Context, data []byte, expectedVersion int64) error {
	if expectedVersion == 0 {
		result, err := s.db.ExecContext(ctx,
			`INSERT INTO report_slots (key, data, version) VALUES ($1, $2, 1) ON CONFLICT (key) DO NOTHING`,
			s.key, data)
		if err != nil {
			return errors.Wrap(err, "inserting slot row")
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "inserting slot row")
		}
		if rows == 0 {
			return ErrVersionConflict
		}
		return nil
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE report_slots SET data = $1, version = version + 1 WHERE key = $2 AND version = $3`,
		data, s.key, expectedVersion)
	if err != nil {
		return errors.Wrap(err, "updating slot row")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "updating slot row")
	}
	if rows == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (s *sqlSlot) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM report_slots WHERE key = $1`, s.key)
	if err != nil {
		return errors.Wrap(err, "deleting slot row")
	}
	return nil
}
