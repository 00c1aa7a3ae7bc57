package database

import (
	"fmt"
	"time"
)

func daysAgo(days int) string {
	return time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)
}

func ptr(s string) *string { return &s }

// Seed loads the demo dataset: one hero per lifecycle stage plus the two
// submitted stories, so every dashboard view has something to show.
// Existing demo rows are replaced.
func (db *DB) Seed() error {
	heroes := demoHeroes()
	stories := demoStories()

	for i := range heroes {
		if _, err := db.conn.Exec("DELETE FROM heroes WHERE id = ?", heroes[i].ID); err != nil {
			return fmt.Errorf("clearing hero %s: %w", heroes[i].ID, err)
		}
		if _, err := db.InsertHero(&heroes[i]); err != nil {
			return fmt.Errorf("seeding hero %s: %w", heroes[i].ID, err)
		}
	}
	for i := range stories {
		if _, err := db.conn.Exec("DELETE FROM stories WHERE id = ?", stories[i].ID); err != nil {
			return fmt.Errorf("clearing story %s: %w", stories[i].ID, err)
		}
		if _, err := db.InsertStory(&stories[i]); err != nil {
			return fmt.Errorf("seeding story %s: %w", stories[i].ID, err)
		}
	}
	return nil
}

func demoHeroes() []HeroProfile {
	return []HeroProfile{
		{
			ID:             "demo-hero-1",
			HeroName:       "Amina Diallo",
			Location:       "Kayes",
			Country:        "Mali",
			Category:       "Clean Water",
			Summary:        "Built a community-led borehole network that cut water walks in half.",
			Impact:         "14 villages now have year-round access to clean water.",
			Status:         HeroStatusReview,
			AmbassadorID:   "demo-ambassador",
			AmbassadorName: "Ambassador",
			CreatedAt:      daysAgo(2),
			UpdatedAt:      daysAgo(2),
		},
		{
			ID:             "demo-hero-2",
			HeroName:       "Lucas Ortega",
			Location:       "Cali",
			Country:        "Colombia",
			Category:       "Reforestation",
			Summary:        "Organized urban forest corridors with local schools.",
			Impact:         "12,000 native trees planted and maintained by volunteers.",
			Status:         HeroStatusClaimed,
			AmbassadorID:   "demo-ambassador",
			AmbassadorName: "Ambassador",
			JournalistID:   ptr("demo-journalist"),
			JournalistName: ptr("Journalist"),
			ClaimedAt:      ptr(daysAgo(5)),
			CreatedAt:      daysAgo(7),
			UpdatedAt:      daysAgo(5),
		},
		{
			ID:               "demo-hero-3",
			HeroName:         "Mei Lin",
			Location:         "Taichung",
			Country:          "Taiwan",
			Category:         "Waste Reduction",
			Summary:          "Launched a market composting cooperative.",
			Impact:           "50 tons of organic waste diverted each month.",
			Status:           HeroStatusStorySubmitted,
			AmbassadorID:     "demo-ambassador",
			AmbassadorName:   "Ambassador",
			JournalistID:     ptr("demo-journalist"),
			JournalistName:   ptr("Journalist"),
			ClaimedAt:        ptr(daysAgo(10)),
			StorySubmittedAt: ptr(daysAgo(3)),
			CreatedAt:        daysAgo(15),
			UpdatedAt:        daysAgo(3),
		},
		{
			ID:             "demo-hero-4",
			HeroName:       "Samir Okoye",
			Location:       "Enugu",
			Country:        "Nigeria",
			Category:       "Solar Energy",
			Summary:        "Installed community solar micro-grids for clinics.",
			Impact:         "6 clinics now operate 24/7 with reliable power.",
			Status:         HeroStatusApproved,
			AmbassadorID:   "demo-ambassador",
			AmbassadorName: "Ambassador",
			JournalistID:   ptr("demo-journalist"),
			JournalistName: ptr("Journalist"),
			ApprovedAt:     ptr(daysAgo(4)),
			CreatedAt:      daysAgo(20),
			UpdatedAt:      daysAgo(4),
		},
		{
			ID:             "demo-hero-5",
			HeroName:       "Priya Sharma",
			Location:       "Pune",
			Country:        "India",
			Category:       "Air Quality",
			Summary:        "Built a low-cost sensor network for school districts.",
			Impact:         "Air alerts now protect 18 schools during peak smog.",
			Status:         HeroStatusScheduled,
			AmbassadorID:   "demo-ambassador",
			AmbassadorName: "Ambassador",
			JournalistID:   ptr("demo-journalist"),
			JournalistName: ptr("Journalist"),
			ApprovedAt:     ptr(daysAgo(8)),
			ScheduledFor:   ptr(daysAgo(-1)),
			CreatedAt:      daysAgo(30),
			UpdatedAt:      daysAgo(1),
		},
		{
			ID:             "demo-hero-6",
			HeroName:       "Elena Rodriguez",
			Location:       "San Jose",
			Country:        "Costa Rica",
			Category:       "Wildlife Conservation",
			Summary:        "Protected a coastal nesting ground with local rangers.",
			Impact:         "Sea turtle hatch rates increased by 40%.",
			Status:         HeroStatusPublished,
			AmbassadorID:   "demo-ambassador",
			AmbassadorName: "Ambassador",
			JournalistID:   ptr("demo-journalist"),
			JournalistName: ptr("Journalist"),
			PublishedAt:    ptr(daysAgo(1)),
			CreatedAt:      daysAgo(40),
			UpdatedAt:      daysAgo(1),
		},
	}
}

func demoStories() []Story {
	return []Story{
		{
			ID:             "demo-story-1",
			HeroProfileID:  "demo-hero-3",
			HeroName:       "Mei Lin",
			Title:          "Turning Market Waste Into Community Soil",
			Content:        "Mei Lin grew tired of seeing market waste dumped each week. She built a cooperative where vendors and households sort organics, turning scraps into compost for neighborhood gardens. The program now diverts 50 tons monthly and funds local school lunches.",
			JournalistID:   "demo-journalist",
			JournalistName: "Journalist",
			Status:         StoryStatusSubmitted,
			CreatedAt:      daysAgo(5),
			UpdatedAt:      daysAgo(3),
		},
		{
			ID:             "demo-story-2",
			HeroProfileID:  "demo-hero-6",
			HeroName:       "Elena Rodriguez",
			Title:          "Guardians of the Nesting Coast",
			Content:        "Elena Rodriguez rallied coastal fishers to protect sea turtle nests. By installing low-light patrols and training youth rangers, hatch rates jumped 40%, and eco-tourism now funds the patrols year-round.",
			JournalistID:   "demo-journalist",
			JournalistName: "Journalist",
			Status:         StoryStatusApproved,
			CreatedAt:      daysAgo(12),
			UpdatedAt:      daysAgo(9),
		},
	}
}
