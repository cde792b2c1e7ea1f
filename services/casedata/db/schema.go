package db

const Schema = `
CREATE TABLE IF NOT EXISTS query_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	cnr TEXT NOT NULL DEFAULT '',
	case_type TEXT NOT NULL DEFAULT '',
	case_number TEXT NOT NULL DEFAULT '',
	year TEXT NOT NULL DEFAULT '',
	court_code TEXT NOT NULL DEFAULT '',
	list_date TEXT NOT NULL DEFAULT '',
	found INTEGER NOT NULL,
	error TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_query_log_created_at ON query_log (created_at);
`
