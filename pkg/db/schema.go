package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Batches table: one row per batch run
CREATE TABLE IF NOT EXISTS batches (
    batch_id INTEGER PRIMARY KEY AUTOINCREMENT,
    input_dir TEXT NOT NULL,
    started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    title_count INTEGER DEFAULT 0,
    done_count INTEGER DEFAULT 0,
    quarantined_count INTEGER DEFAULT 0,
    failed_count INTEGER DEFAULT 0,
    duration_seconds REAL DEFAULT 0
);

-- Titles table: one row per processed title within a batch
CREATE TABLE IF NOT EXISTS titles (
    title_id INTEGER PRIMARY KEY AUTOINCREMENT,
    batch_id INTEGER NOT NULL,
    source_path TEXT NOT NULL,
    display_name TEXT DEFAULT '',
    outcome TEXT NOT NULL,            -- done, quarantined, failed
    error_kind TEXT DEFAULT '',       -- decode_error, transform_error, ...
    error_message TEXT DEFAULT '',
    output_path TEXT DEFAULT '',
    page_count INTEGER DEFAULT 0,
    cleanup_warning TEXT DEFAULT '',
    FOREIGN KEY (batch_id) REFERENCES batches(batch_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_titles_batch ON titles(batch_id);
CREATE INDEX IF NOT EXISTS idx_titles_outcome ON titles(outcome);
`
