package models

// StoryLength is the requested story length in minutes-of-reading.
// Only the enumerated values map to a fixed word count; anything else falls
// back to the caller-supplied override in the composer.
type StoryLength int

const (
	StoryLengthShort  StoryLength = 3
	StoryLengthMedium StoryLength = 5
	StoryLengthLong   StoryLength = 10
)

// AdventureLevel selects the tone template of the composed prompt.
type AdventureLevel string

const (
	AdventureGentle      AdventureLevel = "gentle"
	AdventureAdventurous AdventureLevel = "adventurous"
)

// StoryStyle selects the style template of the composed prompt.
type StoryStyle string

const (
	StyleDescriptive StoryStyle = "descriptive"
	StylePlayful     StoryStyle = "playful"
)

// WorldContext is an optional persistent setting the story takes place in.
// Worlds are a paid feature; presence of a non-empty context is what the
// policy check keys on.
type WorldContext struct {
	Name    string `json:"name"`
	Setting string `json:"setting"`
}

// EpisodeSummary is one line of saga recap fed back into the prompt.
type EpisodeSummary struct {
	Episode int    `json:"episode"`
	Summary string `json:"summary"`
}

// SagaContext carries multi-episode continuity for serialized stories.
type SagaContext struct {
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	EpisodeNumber    int              `json:"episodeNumber"`
	PreviousEpisodes []EpisodeSummary `json:"previousEpisodes"`
}

// Character is a user-supplied cast member. Name and role are free text and
// therefore subject to the pre-generation safety check.
type Character struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// StoryRequest is the full, immutable description of one generation request.
// It is bound once from the HTTP body and consumed by the prompt composer.
type StoryRequest struct {
	ChildName    string   `json:"childName"`
	ChildAge     int      `json:"childAge"`
	Interests    []string `json:"interests"`
	Theme        string   `json:"theme,omitempty"`

	World *WorldContext `json:"world,omitempty"`
	Saga  *SagaContext  `json:"saga,omitempty"`

	Characters   []Character `json:"characters,omitempty"`
	CustomPrompt string      `json:"customPrompt,omitempty"`

	Length            StoryLength    `json:"storyLength"`
	WordCountOverride int            `json:"wordCount,omitempty"`
	IncludeChild      bool           `json:"includeChild"`
	AdventureLevel    AdventureLevel `json:"adventureLevel"`
	Style             StoryStyle     `json:"storyStyle"`
}

// HasWorld reports whether the request actually uses the worlds feature.
func (r *StoryRequest) HasWorld() bool {
	return r.World != nil && r.World.Name != ""
}

// Normalize fills the documented defaults for fields the caller omitted.
// Matches the defaults of the public API: 3 minutes, gentle, descriptive,
// child included.
func (r *StoryRequest) Normalize() {
	if r.Length == 0 {
		r.Length = StoryLengthShort
	}
	if r.AdventureLevel == "" {
		r.AdventureLevel = AdventureGentle
	}
	if r.Style == "" {
		r.Style = StyleDescriptive
	}
}
