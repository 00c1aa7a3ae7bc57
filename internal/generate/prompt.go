package generate

import (
	"fmt"
	"strings"

	"github.com/habuhtat/habuhtat/internal/database"
)

// systemPrompt restricts the model to JSON output; the response_format hint
// on the API call backs it up.
const systemPrompt = "Return only valid JSON."

const notProvided = "Not provided"

// BuildPrompt assembles the curator prompt for a hero, its latest story
// (nil when none exists), and the requested platform/content type. The
// shape is deterministic: missing optional fields render as explicit
// markers instead of being omitted.
func BuildPrompt(hero *database.HeroProfile, story *database.Story, platform, contentType string) string {
	storyContent := "Story draft: Not available."
	if story != nil && story.Content != "" {
		storyContent = "Story draft:\n" + story.Content
	}

	lines := []string{
		"You are Ama, the AI Curator for Habuhtat Media.",
		"Generate a platform-optimized content variant for an environmental hero.",
		"Return a JSON object with keys: content (string) and hashtags (array of strings).",
		"Tone: hopeful, human-centered, factual, and story-first.",
		"Avoid politics. Emphasize impact and the hero's personal journey.",
		"",
		fmt.Sprintf("Platform: %s", platform),
		fmt.Sprintf("Content type: %s", contentType),
		"",
		fmt.Sprintf("Hero name: %s", hero.HeroName),
		fmt.Sprintf("Location: %s, %s", hero.Location, hero.Country),
		fmt.Sprintf("Category: %s", hero.Category),
		fmt.Sprintf("Summary: %s", orNotProvided(hero.Summary)),
		fmt.Sprintf("Impact: %s", orNotProvided(hero.Impact)),
		storyContent,
	}
	return strings.Join(lines, "\n")
}

func orNotProvided(s string) string {
	if s == "" {
		return notProvided
	}
	return s
}
