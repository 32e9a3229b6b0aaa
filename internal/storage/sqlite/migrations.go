package sqlite

// schema contains the database schema DDL.
const schema = `
-- Brush preset library
CREATE TABLE IF NOT EXISTS presets (
    name TEXT PRIMARY KEY,
    family TEXT NOT NULL,
    position INTEGER NOT NULL DEFAULT 0,
    kind TEXT NOT NULL,
    size REAL NOT NULL DEFAULT 0,
    opacity REAL,
    strength REAL,
    color TEXT NOT NULL DEFAULT ''
);

-- AI suggestion log
CREATE TABLE IF NOT EXISTS suggestions (
    id TEXT PRIMARY KEY,
    description TEXT NOT NULL,
    has_artwork INTEGER NOT NULL DEFAULT 0,
    result TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_suggestions_created ON suggestions(created_at);

-- Configuration
CREATE TABLE IF NOT EXISTS config (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`
