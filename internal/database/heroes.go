package database

import (
	"database/sql"

	"github.com/google/uuid"
)

const heroColumns = `id, hero_name, location, country, category, summary, impact,
	full_story, contact_email, contact_phone, image_url, status,
	ambassador_id, ambassador_name, journalist_id, journalist_name,
	claimed_at, story_submitted_at, approved_at, scheduled_for, published_at,
	created_at, updated_at`

// InsertHero inserts a hero profile and returns its id. An empty ID gets a
// store-assigned one; empty timestamps default to now.
func (db *DB) InsertHero(h *HeroProfile) (string, error) {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	now := Now()
	if h.CreatedAt == "" {
		h.CreatedAt = now
	}
	if h.UpdatedAt == "" {
		h.UpdatedAt = now
	}
	if h.Status == "" {
		h.Status = HeroStatusReview
	}

	_, err := db.conn.Exec(
		`INSERT INTO heroes (`+heroColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.HeroName, h.Location, h.Country, h.Category, h.Summary, h.Impact,
		h.FullStory, h.ContactEmail, h.ContactPhone, h.ImageURL, h.Status,
		h.AmbassadorID, h.AmbassadorName, h.JournalistID, h.JournalistName,
		h.ClaimedAt, h.StorySubmittedAt, h.ApprovedAt, h.ScheduledFor, h.PublishedAt,
		h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return "", err
	}
	return h.ID, nil
}

// GetHero returns the hero with the given id, or nil if it does not exist.
func (db *DB) GetHero(id string) (*HeroProfile, error) {
	row := db.conn.QueryRow(`SELECT `+heroColumns+` FROM heroes WHERE id = ?`, id)

	h, err := scanHero(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return h, nil
}

// GetHeroes returns hero profiles ordered by created_at DESC, optionally
// filtered by status (empty status means all).
func (db *DB) GetHeroes(status string) ([]HeroProfile, error) {
	query := `SELECT ` + heroColumns + ` FROM heroes`
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

	var heroes []HeroProfile
	for rows.Next() {
		h, err := scanHero(rows)
		if err != nil {
			return nil, err
		}
		heroes = append(heroes, *h)
	}
	return heroes, rows.Err()
}

// ClaimHero records a journalist claim on a hero.
func (db *DB) ClaimHero(id, journalistID, journalistName string) error {
	now := Now()
	_, err := db.conn.Exec(
		`UPDATE heroes SET status = ?, journalist_id = ?, journalist_name = ?,
		claimed_at = ?, updated_at = ? WHERE id = ?`,
		HeroStatusClaimed, journalistID, journalistName, now, now, id,
	)
	return err
}

// MarkStorySubmitted moves a hero to story_submitted.
func (db *DB) MarkStorySubmitted(id string) error {
	now := Now()
	_, err := db.conn.Exec(
		`UPDATE heroes SET status = ?, story_submitted_at = ?, updated_at = ? WHERE id = ?`,
		HeroStatusStorySubmitted, now, now, id,
	)
	return err
}

// ApproveHero moves a hero to approved.
func (db *DB) ApproveHero(id string) error {
	now := Now()
	_, err := db.conn.Exec(
		`UPDATE heroes SET status = ?, approved_at = ?, updated_at = ? WHERE id = ?`,
		HeroStatusApproved, now, now, id,
	)
	return err
}

// ScheduleHero moves a hero to scheduled for the given time.
func (db *DB) ScheduleHero(id, scheduledFor string) error {
	now := Now()
	_, err := db.conn.Exec(
		`UPDATE heroes SET status = ?, scheduled_for = ?, updated_at = ? WHERE id = ?`,
		HeroStatusScheduled, scheduledFor, now, id,
	)
	return err
}

// PublishHero moves a hero to published.
func (db *DB) PublishHero(id string) error {
	now := Now()
	_, err := db.conn.Exec(
		`UPDATE heroes SET status = ?, published_at = ?, updated_at = ? WHERE id = ?`,
		HeroStatusPublished, now, now, id,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHero(row rowScanner) (*HeroProfile, error) {
	var h HeroProfile
	err := row.Scan(
		&h.ID, &h.HeroName, &h.Location, &h.Country, &h.Category, &h.Summary, &h.Impact,
		&h.FullStory, &h.ContactEmail, &h.ContactPhone, &h.ImageURL, &h.Status,
		&h.AmbassadorID, &h.AmbassadorName, &h.JournalistID, &h.JournalistName,
		&h.ClaimedAt, &h.StorySubmittedAt, &h.ApprovedAt, &h.ScheduledFor, &h.PublishedAt,
		&h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}
