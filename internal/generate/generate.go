// Package generate implements the content generation service: it loads a
// hero and its latest story, prompts the generative-text provider, and
// persists the normalized result as a pending content record.
package generate

import (
	"context"
	"errors"
	"fmt"

	"github.com/habuhtat/habuhtat/internal/database"
	"github.com/habuhtat/habuhtat/internal/llm"
)

var (
	// ErrNotConfigured means the provider credential is missing.
	ErrNotConfigured = errors.New("provider API key not configured")
	// ErrInvalidRequest means a required request field is missing.
	ErrInvalidRequest = errors.New("heroProfileId, platform, and contentType are required")
	// ErrHeroNotFound means the referenced hero does not exist.
	ErrHeroNotFound = errors.New("hero profile not found")
)

// Request identifies what to generate.
type Request struct {
	HeroProfileID string `json:"heroProfileId"`
	Platform      string `json:"platform"`
	ContentType   string `json:"contentType"`
}

// Generator is the content generation service.
type Generator struct {
	db       *database.DB
	provider llm.Provider
}

// New creates a Generator with its store and provider.
func New(db *database.DB, provider llm.Provider) *Generator {
	return &Generator{db: db, provider: provider}
}

// Generate runs one generation cycle: hero read, latest-story read, provider
// call, normalization, and a single insert. No retries, no deduplication;
// repeated calls create new records. Provider failures surface without a
// partial write; unparsable provider output degrades to the raw text.
func (g *Generator) Generate(ctx context.Context, req Request) (*database.AIContent, error) {
	if !g.provider.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if req.HeroProfileID == "" || req.Platform == "" || req.ContentType == "" {
		return nil, ErrInvalidRequest
	}

	hero, err := g.db.GetHero(req.HeroProfileID)
	if err != nil {
		return nil, fmt.Errorf("loading hero: %w", err)
	}
	if hero == nil {
		return nil, ErrHeroNotFound
	}

	story, err := g.db.GetLatestStory(req.HeroProfileID)
	if err != nil {
		return nil, fmt.Errorf("loading latest story: %w", err)
	}

	prompt := BuildPrompt(hero, story, req.Platform, req.ContentType)

	raw, err := g.provider.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		raw = "{}"
	}

	parsed := llm.ParseGenerated(raw)

	record := &database.AIContent{
		HeroProfileID: req.HeroProfileID,
		HeroName:      heroName(hero),
		StoryID:       storyID(story),
		Platform:      req.Platform,
		ContentType:   req.ContentType,
		Content:       parsed.Content,
		Hashtags:      parsed.Hashtags,
		Status:        database.ContentStatusPending,
		CreatedAt:     database.Now(),
	}

	if _, err := g.db.InsertContent(record); err != nil {
		return nil, fmt.Errorf("saving content: %w", err)
	}
	return record, nil
}

func heroName(hero *database.HeroProfile) string {
	if hero.HeroName == "" {
		return "Unknown Hero"
	}
	return hero.HeroName
}

func storyID(story *database.Story) string {
	if story == nil {
		return ""
	}
	return story.ID
}
