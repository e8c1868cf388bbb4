package store

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
// Each migration should be idempotent (safe to run multiple times).
var migrationsSQL = map[int]string{
	1: migrationV1CorpusSchema,
}

// migrationV1CorpusSchema creates the text corpus schema.
//
// Key design decisions:
//
// 1. BOOKS MIRROR THE CANON
//   - One row per book, keyed by the canonical English name
//   - category matches the canon sections (torah, neviim, trei_asara, ketuvim)
//   - chapters holds the Masoretic chapter count for bounds checks
//
// 2. VERSES ARE THE UNIT OF TEXT
//   - One row per verse with Hebrew and English columns
//   - (book_id, chapter, verse) is unique; the importer upserts on it
//   - English may be empty where a translation is unavailable
const migrationV1CorpusSchema = `
-- Migration 001: Text corpus schema

-- ============================================================================
-- Table: books
-- ============================================================================
CREATE TABLE IF NOT EXISTS books (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Canonical English name, e.g. "Genesis", "I Kings"
    name TEXT NOT NULL UNIQUE,

    -- Hebrew name, e.g. "בראשית"
    hebrew_name TEXT NOT NULL DEFAULT '',

    -- Canon section
    category TEXT NOT NULL CHECK (category IN (
        'torah',
        'neviim',
        'trei_asara',
        'ketuvim'
    )),

    -- Masoretic chapter count
    chapters INTEGER NOT NULL CHECK (chapters > 0),

    -- Position within the canon, for stable ordering
    sort_order INTEGER NOT NULL DEFAULT 0,

    -- Timestamps for auditing
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_books_category
    ON books(category, sort_order);


-- ============================================================================
-- Table: verses
-- ============================================================================
CREATE TABLE IF NOT EXISTS verses (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    book_id INTEGER NOT NULL,
    chapter INTEGER NOT NULL CHECK (chapter > 0),
    verse INTEGER NOT NULL CHECK (verse > 0),

    hebrew TEXT NOT NULL DEFAULT '',
    english TEXT NOT NULL DEFAULT '',

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now')),

    FOREIGN KEY (book_id) REFERENCES books(id) ON DELETE CASCADE,

    UNIQUE (book_id, chapter, verse)
);

-- Primary lookup: all verses of a chapter in order
CREATE INDEX IF NOT EXISTS idx_verses_chapter
    ON verses(book_id, chapter, verse);
`
