package generate

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/habuhtat/habuhtat/internal/database"
	"github.com/habuhtat/habuhtat/internal/llm"
)

type fakeProvider struct {
	response     string
	err          error
	unconfigured bool
	calls        int
	lastSystem   string
	lastUser     string
}

func (f *fakeProvider) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	return f.response, f.err
}

func (f *fakeProvider) IsConfigured() bool {
	return !f.unconfigured
}

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedHero(t *testing.T, db *database.DB) *database.HeroProfile {
	t.Helper()
	hero := &database.HeroProfile{
		ID:       "demo-hero-3",
		HeroName: "Mei Lin",
		Location: "Taichung",
		Country:  "Taiwan",
		Category: "Waste Reduction",
		Summary:  "Launched a market composting cooperative.",
		Impact:   "50 tons of organic waste diverted each month.",
		Status:   database.HeroStatusStorySubmitted,
	}
	if _, err := db.InsertHero(hero); err != nil {
		t.Fatalf("seeding hero: %v", err)
	}
	return hero
}

func seedStory(t *testing.T, db *database.DB, heroID string) *database.Story {
	t.Helper()
	story := &database.Story{
		HeroProfileID: heroID,
		HeroName:      "Mei Lin",
		Title:         "Turning Market Waste Into Community Soil",
		Content:       "Mei Lin built a cooperative where vendors sort organics into compost for neighborhood gardens.",
		Status:        database.StoryStatusSubmitted,
	}
	if _, err := db.InsertStory(story); err != nil {
		t.Fatalf("seeding story: %v", err)
	}
	return story
}

func TestGenerateHappyPath(t *testing.T) {
	db := openTestDB(t)
	seedHero(t, db)
	story := seedStory(t, db, "demo-hero-3")

	provider := &fakeProvider{response: `{"content": "Mei Lin turns market waste into soil.", "hashtags": ["WasteReduction", "Taiwan"]}`}
	gen := New(db, provider)

	record, err := gen.Generate(context.Background(), Request{
		HeroProfileID: "demo-hero-3",
		Platform:      "linkedin",
		ContentType:   "summary",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if record.ID == "" {
		t.Error("expected assigned id")
	}
	if record.HeroProfileID != "demo-hero-3" || record.Platform != "linkedin" || record.ContentType != "summary" {
		t.Errorf("request fields not echoed: %+v", record)
	}
	if record.HeroName != "Mei Lin" {
		t.Errorf("expected heroName 'Mei Lin', got %q", record.HeroName)
	}
	if record.StoryID != story.ID {
		t.Errorf("expected storyId %q, got %q", story.ID, record.StoryID)
	}
	if record.Status != database.ContentStatusPending {
		t.Errorf("expected pending status, got %q", record.Status)
	}
	if record.Content == "" {
		t.Error("expected non-empty content")
	}
	if !reflect.DeepEqual(record.Hashtags, []string{"WasteReduction", "Taiwan"}) {
		t.Errorf("unexpected hashtags: %v", record.Hashtags)
	}

	// Round-trips through the store with its assigned id.
	stored, err := db.GetContent(record.ID)
	if err != nil || stored == nil {
		t.Fatalf("stored record not found: %v", err)
	}
	if stored.Content != record.Content {
		t.Errorf("stored content mismatch: %q", stored.Content)
	}
}

func TestGenerateHeroNotFound(t *testing.T) {
	db := openTestDB(t)
	provider := &fakeProvider{response: "{}"}
	gen := New(db, provider)

	_, err := gen.Generate(context.Background(), Request{
		HeroProfileID: "missing", Platform: "twitter", ContentType: "thread",
	})
	if !errors.Is(err, ErrHeroNotFound) {
		t.Fatalf("expected ErrHeroNotFound, got %v", err)
	}
	if provider.calls != 0 {
		t.Errorf("expected no provider calls, got %d", provider.calls)
	}
	if n, _ := db.CountContent(""); n != 0 {
		t.Errorf("expected no content records, got %d", n)
	}
}

func TestGenerateWithoutStory(t *testing.T) {
	db := openTestDB(t)
	seedHero(t, db)

	provider := &fakeProvider{response: `{"content": "text", "hashtags": []}`}
	gen := New(db, provider)

	record, err := gen.Generate(context.Background(), Request{
		HeroProfileID: "demo-hero-3", Platform: "twitter", ContentType: "post",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if record.StoryID != "" {
		t.Errorf("expected empty storyId, got %q", record.StoryID)
	}
	if !strings.Contains(provider.lastUser, "Story draft: Not available.") {
		t.Error("expected not-available story marker in prompt")
	}
}

func TestGenerateNonJSONCompletion(t *testing.T) {
	db := openTestDB(t)
	seedHero(t, db)

	raw := "Sorry, here is plain text instead."
	provider := &fakeProvider{response: raw}
	gen := New(db, provider)

	record, err := gen.Generate(context.Background(), Request{
		HeroProfileID: "demo-hero-3", Platform: "blog", ContentType: "article",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if record.Content != raw {
		t.Errorf("expected raw text as content, got %q", record.Content)
	}
	if len(record.Hashtags) != 0 {
		t.Errorf("expected empty hashtags, got %v", record.Hashtags)
	}
}

func TestGenerateEmptyCompletion(t *testing.T) {
	db := openTestDB(t)
	seedHero(t, db)

	provider := &fakeProvider{response: ""}
	gen := New(db, provider)

	record, err := gen.Generate(context.Background(), Request{
		HeroProfileID: "demo-hero-3", Platform: "twitter", ContentType: "thread",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Empty completion degrades to {} and then to empty content.
	if record.Content != "" {
		t.Errorf("expected empty content, got %q", record.Content)
	}
	if record.Hashtags == nil {
		t.Error("expected non-nil hashtags")
	}
}

func TestGenerateProviderFailure(t *testing.T) {
	db := openTestDB(t)
	seedHero(t, db)

	provErr := &llm.ProviderError{StatusCode: 500, Body: "upstream down"}
	provider := &fakeProvider{err: provErr}
	gen := New(db, provider)

	_, err := gen.Generate(context.Background(), Request{
		HeroProfileID: "demo-hero-3", Platform: "twitter", ContentType: "thread",
	})
	var got *llm.ProviderError
	if !errors.As(err, &got) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if n, _ := db.CountContent(""); n != 0 {
		t.Errorf("expected no content records after provider failure, got %d", n)
	}
}

func TestGenerateValidation(t *testing.T) {
	db := openTestDB(t)
	seedHero(t, db)

	cases := []Request{
		{Platform: "twitter", ContentType: "thread"},
		{HeroProfileID: "demo-hero-3", ContentType: "thread"},
		{HeroProfileID: "demo-hero-3", Platform: "twitter"},
	}
	for _, req := range cases {
		provider := &fakeProvider{response: "{}"}
		gen := New(db, provider)
		_, err := gen.Generate(context.Background(), req)
		if !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("request %+v: expected ErrInvalidRequest, got %v", req, err)
		}
		if provider.calls != 0 {
			t.Errorf("request %+v: expected no provider calls, got %d", req, provider.calls)
		}
	}
	if n, _ := db.CountContent(""); n != 0 {
		t.Errorf("expected no content records, got %d", n)
	}
}

func TestGenerateNotConfigured(t *testing.T) {
	db := openTestDB(t)
	seedHero(t, db)

	provider := &fakeProvider{unconfigured: true}
	gen := New(db, provider)

	_, err := gen.Generate(context.Background(), Request{
		HeroProfileID: "demo-hero-3", Platform: "twitter", ContentType: "thread",
	})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if provider.calls != 0 {
		t.Errorf("expected no provider calls, got %d", provider.calls)
	}
}

func TestBuildPrompt(t *testing.T) {
	hero := &database.HeroProfile{
		HeroName: "Amina Diallo",
		Location: "Kayes",
		Country:  "Mali",
		Category: "Clean Water",
	}
	prompt := BuildPrompt(hero, nil, "instagram", "carousel")

	for _, want := range []string{
		"You are Ama, the AI Curator for Habuhtat Media.",
		"Platform: instagram",
		"Content type: carousel",
		"Hero name: Amina Diallo",
		"Location: Kayes, Mali",
		"Category: Clean Water",
		"Summary: Not provided",
		"Impact: Not provided",
		"Story draft: Not available.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptWithStory(t *testing.T) {
	hero := &database.HeroProfile{
		HeroName: "Mei Lin",
		Location: "Taichung",
		Country:  "Taiwan",
		Category: "Waste Reduction",
		Summary:  "Launched a market composting cooperative.",
		Impact:   "50 tons diverted monthly.",
	}
	story := &database.Story{Content: "Vendors sort organics into compost."}
	prompt := BuildPrompt(hero, story, "linkedin", "summary")

	if !strings.Contains(prompt, "Story draft:\nVendors sort organics into compost.") {
		t.Error("prompt missing story content")
	}
	if strings.Contains(prompt, "Not provided") {
		t.Error("prompt should not contain placeholders when fields are set")
	}
}
