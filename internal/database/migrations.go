package database

import "database/sql"

// Migration represents a single schema migration step.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// migrations is the ordered list of all schema migrations.
// Append new migrations to the end with incrementing Version numbers.
var migrations = []Migration{
	{
		Version:     1,
		Description: "initial schema",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS heroes (
    id TEXT PRIMARY KEY,
    hero_name TEXT NOT NULL,
    location TEXT NOT NULL DEFAULT '',
    country TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    summary TEXT NOT NULL DEFAULT '',
    impact TEXT NOT NULL DEFAULT '',
    full_story TEXT,
    contact_email TEXT,
    contact_phone TEXT,
    image_url TEXT,
    status TEXT NOT NULL DEFAULT 'review',
    ambassador_id TEXT NOT NULL DEFAULT '',
    ambassador_name TEXT NOT NULL DEFAULT '',
    journalist_id TEXT,
    journalist_name TEXT,
    claimed_at TEXT,
    story_submitted_at TEXT,
    approved_at TEXT,
    scheduled_for TEXT,
    published_at TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_heroes_status ON heroes(status);

CREATE TABLE IF NOT EXISTS stories (
    id TEXT PRIMARY KEY,
    hero_profile_id TEXT NOT NULL,
    hero_name TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    journalist_id TEXT NOT NULL DEFAULT '',
    journalist_name TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'draft',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stories_hero ON stories(hero_profile_id, created_at);

CREATE TABLE IF NOT EXISTS ai_content (
    id TEXT PRIMARY KEY,
    hero_profile_id TEXT NOT NULL,
    hero_name TEXT NOT NULL DEFAULT '',
    story_id TEXT NOT NULL DEFAULT '',
    platform TEXT NOT NULL,
    content_type TEXT NOT NULL,
    content TEXT NOT NULL DEFAULT '',
    hashtags TEXT NOT NULL DEFAULT '[]',
    status TEXT NOT NULL DEFAULT 'pending',
    created_at TEXT NOT NULL,
    approved_at TEXT,
    published_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_content_hero ON ai_content(hero_profile_id);
CREATE INDEX IF NOT EXISTS idx_content_status ON ai_content(status);
`)
			return err
		},
	},
}

// latestVersion returns the highest migration version.
func latestVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}
