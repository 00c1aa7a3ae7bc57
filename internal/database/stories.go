package database

import (
	"database/sql"

	"github.com/google/uuid"
)

const storyColumns = `id, hero_profile_id, hero_name, title, content,
	journalist_id, journalist_name, status, created_at, updated_at`

// InsertStory inserts a story and returns its id.
func (db *DB) InsertStory(s *Story) (string, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := Now()
	if s.CreatedAt == "" {
		s.CreatedAt = now
	}
	if s.UpdatedAt == "" {
		s.UpdatedAt = now
	}
	if s.Status == "" {
		s.Status = StoryStatusDraft
	}

	_, err := db.conn.Exec(
		`INSERT INTO stories (`+storyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.HeroProfileID, s.HeroName, s.Title, s.Content,
		s.JournalistID, s.JournalistName, s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return "", err
	}
	return s.ID, nil
}

// GetLatestStory returns the most recently created story for a hero,
// or nil if the hero has no stories.
func (db *DB) GetLatestStory(heroProfileID string) (*Story, error) {
	row := db.conn.QueryRow(
		`SELECT `+storyColumns+` FROM stories
		WHERE hero_profile_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		heroProfileID,
	)

	s, err := scanStory(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// GetStoriesForHero returns all stories for a hero ordered by created_at DESC.
func (db *DB) GetStoriesForHero(heroProfileID string) ([]Story, error) {
	rows, err := db.conn.Query(
		`SELECT `+storyColumns+` FROM stories
		WHERE hero_profile_id = ? ORDER BY created_at DESC, id DESC`,
		heroProfileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []Story
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, *s)
	}
	return stories, rows.Err()
}

// UpdateStoryStatus updates a story's review status.
func (db *DB) UpdateStoryStatus(id, status string) error {
	_, err := db.conn.Exec(
		`UPDATE stories SET status = ?, updated_at = ? WHERE id = ?`,
		status, Now(), id,
	)
	return err
}

func scanStory(row rowScanner) (*Story, error) {
	var s Story
	err := row.Scan(
		&s.ID, &s.HeroProfileID, &s.HeroName, &s.Title, &s.Content,
		&s.JournalistID, &s.JournalistName, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
