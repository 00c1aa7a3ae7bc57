package database

import (
	"path/filepath"
	"reflect"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInsertHeroAssignsID(t *testing.T) {
	db := openTestDB(t)
	id, err := db.InsertHero(&HeroProfile{HeroName: "Amina Diallo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Error("expected assigned hero id")
	}

	hero, err := db.GetHero(id)
	if err != nil {
		t.Fatalf("GetHero: %v", err)
	}
	if hero == nil {
		t.Fatal("expected hero")
	}
	if hero.Status != HeroStatusReview {
		t.Errorf("expected default review status, got %q", hero.Status)
	}
	if hero.CreatedAt == "" || hero.UpdatedAt == "" {
		t.Error("expected timestamps set")
	}
}

func TestGetHeroMissing(t *testing.T) {
	db := openTestDB(t)
	hero, err := db.GetHero("missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hero != nil {
		t.Error("expected nil for missing hero")
	}
}

func TestGetHeroesByStatus(t *testing.T) {
	db := openTestDB(t)
	db.InsertHero(&HeroProfile{HeroName: "A", Status: HeroStatusReview})
	db.InsertHero(&HeroProfile{HeroName: "B", Status: HeroStatusReview})
	db.InsertHero(&HeroProfile{HeroName: "C", Status: HeroStatusPublished})

	review, err := db.GetHeroes(HeroStatusReview)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(review) != 2 {
		t.Errorf("expected 2 review heroes, got %d", len(review))
	}

	all, _ := db.GetHeroes("")
	if len(all) != 3 {
		t.Errorf("expected 3 heroes, got %d", len(all))
	}
}

func TestClaimHero(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.InsertHero(&HeroProfile{HeroName: "Lucas Ortega"})

	if err := db.ClaimHero(id, "jour-1", "Journalist"); err != nil {
		t.Fatalf("ClaimHero: %v", err)
	}

	hero, _ := db.GetHero(id)
	if hero.Status != HeroStatusClaimed {
		t.Errorf("expected claimed, got %q", hero.Status)
	}
	if hero.JournalistID == nil || *hero.JournalistID != "jour-1" {
		t.Error("expected journalist id set")
	}
	if hero.ClaimedAt == nil {
		t.Error("expected claimed_at set")
	}
}

func TestLatestStoryOrdering(t *testing.T) {
	db := openTestDB(t)
	db.InsertStory(&Story{HeroProfileID: "h1", Title: "Old", CreatedAt: "2026-01-01T00:00:00Z"})
	db.InsertStory(&Story{HeroProfileID: "h1", Title: "New", CreatedAt: "2026-02-01T00:00:00Z"})
	db.InsertStory(&Story{HeroProfileID: "h2", Title: "Other", CreatedAt: "2026-03-01T00:00:00Z"})

	latest, err := db.GetLatestStory("h1")
	if err != nil {
		t.Fatalf("GetLatestStory: %v", err)
	}
	if latest == nil || latest.Title != "New" {
		t.Errorf("expected newest story for h1, got %+v", latest)
	}
}

func TestLatestStoryNone(t *testing.T) {
	db := openTestDB(t)
	latest, err := db.GetLatestStory("nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latest != nil {
		t.Error("expected nil for hero without stories")
	}
}

func TestContentRoundTrip(t *testing.T) {
	db := openTestDB(t)
	id, err := db.InsertContent(&AIContent{
		HeroProfileID: "h1",
		HeroName:      "Mei Lin",
		StoryID:       "s1",
		Platform:      "linkedin",
		ContentType:   "summary",
		Content:       "A summary.",
		Hashtags:      []string{"WasteReduction", "Taiwan"},
	})
	if err != nil {
		t.Fatalf("InsertContent: %v", err)
	}

	c, err := db.GetContent(id)
	if err != nil {
		t.Fatalf("GetContent: %v", err)
	}
	if !reflect.DeepEqual(c.Hashtags, []string{"WasteReduction", "Taiwan"}) {
		t.Errorf("hashtags did not round-trip: %v", c.Hashtags)
	}
	if c.Status != ContentStatusPending {
		t.Errorf("expected default pending status, got %q", c.Status)
	}
}

func TestContentNilHashtags(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.InsertContent(&AIContent{
		HeroProfileID: "h1", Platform: "twitter", ContentType: "thread",
	})

	c, _ := db.GetContent(id)
	if c.Hashtags == nil || len(c.Hashtags) != 0 {
		t.Errorf("expected empty non-nil hashtags, got %v", c.Hashtags)
	}
}

func TestContentDuplicatesAllowed(t *testing.T) {
	db := openTestDB(t)
	record := AIContent{HeroProfileID: "h1", Platform: "twitter", ContentType: "thread"}

	first := record
	second := record
	db.InsertContent(&first)
	db.InsertContent(&second)

	n, err := db.CountContent("h1")
	if err != nil {
		t.Fatalf("CountContent: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 records (no dedup), got %d", n)
	}
}

func TestContentReviewActions(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.InsertContent(&AIContent{
		HeroProfileID: "h1", Platform: "twitter", ContentType: "thread",
	})

	if err := db.ApproveContent(id); err != nil {
		t.Fatalf("ApproveContent: %v", err)
	}
	c, _ := db.GetContent(id)
	if c.Status != ContentStatusApproved || c.ApprovedAt == nil {
		t.Errorf("expected approved with timestamp, got %+v", c)
	}

	if err := db.PublishContent(id); err != nil {
		t.Fatalf("PublishContent: %v", err)
	}
	c, _ = db.GetContent(id)
	if c.Status != ContentStatusPublished || c.PublishedAt == nil {
		t.Errorf("expected published with timestamp, got %+v", c)
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{HeroStatusReview, HeroStatusClaimed, true},
		{HeroStatusClaimed, HeroStatusStorySubmitted, true},
		{HeroStatusStorySubmitted, HeroStatusApproved, true},
		{HeroStatusApproved, HeroStatusScheduled, true},
		{HeroStatusScheduled, HeroStatusPublished, true},
		{HeroStatusPublished, HeroStatusClaimed, false},
		{HeroStatusReview, HeroStatusPublished, false},
		{HeroStatusClaimed, HeroStatusReview, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestSeed(t *testing.T) {
	db := openTestDB(t)
	if err := db.Seed(); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	// Idempotent: second run replaces, not duplicates.
	if err := db.Seed(); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalHeroes != 6 {
		t.Errorf("expected 6 demo heroes, got %d", stats.TotalHeroes)
	}
	if stats.TotalStories != 2 {
		t.Errorf("expected 2 demo stories, got %d", stats.TotalStories)
	}

	hero, _ := db.GetHero("demo-hero-3")
	if hero == nil || hero.Status != HeroStatusStorySubmitted {
		t.Errorf("expected demo-hero-3 in story_submitted, got %+v", hero)
	}
	story, _ := db.GetLatestStory("demo-hero-3")
	if story == nil || story.ID != "demo-story-1" {
		t.Errorf("expected demo-story-1 as latest, got %+v", story)
	}
}
