package database

// Hero profile lifecycle statuses, in forward order.
const (
	HeroStatusDraft          = "draft"
	HeroStatusReview         = "review"
	HeroStatusClaimed        = "claimed"
	HeroStatusStorySubmitted = "story_submitted"
	HeroStatusAIGenerated    = "ai_generated"
	HeroStatusApproved       = "approved"
	HeroStatusScheduled      = "scheduled"
	HeroStatusPublished      = "published"
)

// Story statuses.
const (
	StoryStatusDraft             = "draft"
	StoryStatusSubmitted         = "submitted"
	StoryStatusRevisionRequested = "revision_requested"
	StoryStatusApproved          = "approved"
)

// AI content statuses.
const (
	ContentStatusPending   = "pending"
	ContentStatusApproved  = "approved"
	ContentStatusRejected  = "rejected"
	ContentStatusPublished = "published"
)

// heroTransitions maps each hero status to the statuses it may move to.
// The store itself never enforces these; callers (server handlers, CLI)
// check them before updating.
var heroTransitions = map[string][]string{
	HeroStatusDraft:          {HeroStatusReview},
	HeroStatusReview:         {HeroStatusClaimed},
	HeroStatusClaimed:        {HeroStatusStorySubmitted},
	HeroStatusStorySubmitted: {HeroStatusAIGenerated, HeroStatusApproved},
	HeroStatusAIGenerated:    {HeroStatusApproved},
	HeroStatusApproved:       {HeroStatusScheduled},
	HeroStatusScheduled:      {HeroStatusPublished},
}

// CanTransition reports whether a hero may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range heroTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// HeroProfile represents one nominated subject of a story.
type HeroProfile struct {
	ID             string  `json:"id"`
	HeroName       string  `json:"heroName"`
	Location       string  `json:"location"`
	Country        string  `json:"country"`
	Category       string  `json:"category"`
	Summary        string  `json:"summary"`
	Impact         string  `json:"impact"`
	FullStory      *string `json:"fullStory,omitempty"`
	ContactEmail   *string `json:"contactEmail,omitempty"`
	ContactPhone   *string `json:"contactPhone,omitempty"`
	ImageURL       *string `json:"imageUrl,omitempty"`
	Status         string  `json:"status"`
	AmbassadorID   string  `json:"ambassadorId"`
	AmbassadorName string  `json:"ambassadorName"`
	JournalistID   *string `json:"journalistId,omitempty"`
	JournalistName *string `json:"journalistName,omitempty"`

	ClaimedAt        *string `json:"claimedAt,omitempty"`
	StorySubmittedAt *string `json:"storySubmittedAt,omitempty"`
	ApprovedAt       *string `json:"approvedAt,omitempty"`
	ScheduledFor     *string `json:"scheduledFor,omitempty"`
	PublishedAt      *string `json:"publishedAt,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// Story is a long-form narrative authored by a journalist for one hero.
type Story struct {
	ID             string `json:"id"`
	HeroProfileID  string `json:"heroProfileId"`
	HeroName       string `json:"heroName"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	JournalistID   string `json:"journalistId"`
	JournalistName string `json:"journalistName"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// AIContent is one generated content variant for a hero/platform/type combination.
type AIContent struct {
	ID            string   `json:"id"`
	HeroProfileID string   `json:"heroProfileId"`
	HeroName      string   `json:"heroName"`
	StoryID       string   `json:"storyId"`
	Platform      string   `json:"platform"`
	ContentType   string   `json:"contentType"`
	Content       string   `json:"content"`
	Hashtags      []string `json:"hashtags"`
	Status        string   `json:"status"`
	CreatedAt     string   `json:"createdAt"`
	ApprovedAt    *string  `json:"approvedAt,omitempty"`
	PublishedAt   *string  `json:"publishedAt,omitempty"`
}

// Stats contains aggregate database statistics.
type Stats struct {
	HeroesByStatus map[string]int
	TotalHeroes    int
	TotalStories   int
	TotalContent   int
	PendingContent int
}
