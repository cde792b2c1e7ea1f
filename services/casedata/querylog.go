package casedata

import (
	"context"
	"database/sql"
	"time"

	"ecourts-backend/services/casedata/db"

	_ "modernc.org/sqlite"
)

// QueryLog records every pipeline invocation so failures can be
// diagnosed after the fact without re-running the search.
type QueryLog struct {
	db *sql.DB
}

func OpenQueryLog(path string) (*QueryLog, error) {
	sqlite, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = sqlite.Exec(db.Schema)
	if err != nil {
		sqlite.Close()
		return nil, err
	}
	return &QueryLog{db: sqlite}, nil
}

func NewQueryLog(database *sql.DB) (*QueryLog, error) {
	_, err := database.Exec(db.Schema)
	if err != nil {
		return nil, err
	}
	return &QueryLog{db: database}, nil
}

func (q *QueryLog) Close() error {
	return q.db.Close()
}

type QueryRecord struct {
	Kind       string
	Cnr        string
	CaseType   string
	CaseNumber string
	Year       string
	CourtCode  string
	ListDate   string
	Found      bool
	Error      string
	CreatedAt  time.Time
}

func (q *QueryLog) Record(ctx context.Context, rec QueryRecord) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO query_log
			(kind, cnr, case_type, case_number, year, court_code, list_date, found, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Kind, rec.Cnr, rec.CaseType, rec.CaseNumber, rec.Year,
		rec.CourtCode, rec.ListDate, rec.Found, rec.Error, rec.CreatedAt.Unix(),
	)
	return err
}

func (q *QueryLog) Recent(ctx context.Context, limit int) ([]QueryRecord, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT kind, cnr, case_type, case_number, year, court_code, list_date, found, error, created_at
		FROM query_log
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []QueryRecord
	for rows.Next() {
		var rec QueryRecord
		var createdAt int64
		err := rows.Scan(
			&rec.Kind, &rec.Cnr, &rec.CaseType, &rec.CaseNumber, &rec.Year,
			&rec.CourtCode, &rec.ListDate, &rec.Found, &rec.Error, &createdAt,
		)
		if err != nil {
			return nil, err
		}
		rec.CreatedAt = time.Unix(createdAt, 0)
		out = append(out, rec)
	}
	return out, rows.Err()
}
