package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

const contentColumns = `id, hero_profile_id, hero_name, story_id, platform,
	content_type, content, hashtags, status, created_at, approved_at, published_at`

// InsertContent inserts a generated content record and returns its id.
// Hashtags are stored as a JSON array; a nil slice is stored as [].
func (db *DB) InsertContent(c *AIContent) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt == "" {
		c.CreatedAt = Now()
	}
	if c.Status == "" {
		c.Status = ContentStatusPending
	}
	if c.Hashtags == nil {
		c.Hashtags = []string{}
	}

	tags, err := json.Marshal(c.Hashtags)
	if err != nil {
		return "", fmt.Errorf("encoding hashtags: %w", err)
	}

	_, err = db.conn.Exec(
		`INSERT INTO ai_content (`+contentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.HeroProfileID, c.HeroName, c.StoryID, c.Platform,
		c.ContentType, c.Content, string(tags), c.Status, c.CreatedAt,
		c.ApprovedAt, c.PublishedAt,
	)
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

// GetContent returns the content record with the given id, or nil if missing.
func (db *DB) GetContent(id string) (*AIContent, error) {
	row := db.conn.QueryRow(`SELECT `+contentColumns+` FROM ai_content WHERE id = ?`, id)

	c, err := scanContent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// GetAllContent returns content records ordered by created_at DESC,
// optionally filtered by status.
func (db *DB) GetAllContent(status string) ([]AIContent, error) {
	query := `SELECT ` + contentColumns + ` FROM ai_content`
	var args []any
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanContentRows(rows)
}

// GetContentForHero returns all content variants for a hero, newest first.
func (db *DB) GetContentForHero(heroProfileID string) ([]AIContent, error) {
	rows, err := db.conn.Query(
		`SELECT `+contentColumns+` FROM ai_content
		WHERE hero_profile_id = ? ORDER BY created_at DESC`,
		heroProfileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanContentRows(rows)
}

// CountContent returns the number of content records, optionally for one hero.
func (db *DB) CountContent(heroProfileID string) (int, error) {
	query := "SELECT COUNT(*) FROM ai_content"
	var args []any
	if heroProfileID != "" {
		query += " WHERE hero_profile_id = ?"
		args = append(args, heroProfileID)
	}

	var n int
	if err := db.conn.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ApproveContent marks a content record approved.
func (db *DB) ApproveContent(id string) error {
	_, err := db.conn.Exec(
		`UPDATE ai_content SET status = ?, approved_at = ? WHERE id = ?`,
		ContentStatusApproved, Now(), id,
	)
	return err
}

// RejectContent marks a content record rejected.
func (db *DB) RejectContent(id string) error {
	_, err := db.conn.Exec(
		`UPDATE ai_content SET status = ? WHERE id = ?`,
		ContentStatusRejected, id,
	)
	return err
}

// PublishContent marks a content record published.
func (db *DB) PublishContent(id string) error {
	_, err := db.conn.Exec(
		`UPDATE ai_content SET status = ?, published_at = ? WHERE id = ?`,
		ContentStatusPublished, Now(), id,
	)
	return err
}

// GetStats returns aggregate database statistics.
func (db *DB) GetStats() (*Stats, error) {
	s := &Stats{HeroesByStatus: make(map[string]int)}

	rows, err := db.conn.Query("SELECT status, COUNT(*) FROM heroes GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		s.HeroesByStatus[status] = count
		s.TotalHeroes += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	queries := []struct {
		sql  string
		dest *int
	}{
		{"SELECT COUNT(*) FROM stories", &s.TotalStories},
		{"SELECT COUNT(*) FROM ai_content", &s.TotalContent},
		{"SELECT COUNT(*) FROM ai_content WHERE status = 'pending'", &s.PendingContent},
	}
	for _, q := range queries {
		if err := db.conn.QueryRow(q.sql).Scan(q.dest); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func scanContent(row rowScanner) (*AIContent, error) {
	var c AIContent
	var tags string
	err := row.Scan(
		&c.ID, &c.HeroProfileID, &c.HeroName, &c.StoryID, &c.Platform,
		&c.ContentType, &c.Content, &tags, &c.Status, &c.CreatedAt,
		&c.ApprovedAt, &c.PublishedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Hashtags = []string{}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &c.Hashtags); err != nil {
			return nil, fmt.Errorf("decoding hashtags for %s: %w", c.ID, err)
		}
	}
	if c.Hashtags == nil {
		c.Hashtags = []string{}
	}
	return &c, nil
}

func scanContentRows(rows *sql.Rows) ([]AIContent, error) {
	var items []AIContent
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}
