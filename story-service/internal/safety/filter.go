package safety

import (
	"strings"

	"storyteller-server/shared/models"
)

// Filter runs phrase-based content checks over request text and
// generated stories. Matching is case-insensitive substring search;
// matches are reported in phrase list order.
type Filter struct {
	ipPhrases      []string
	harmfulPhrases []string
}

// NewFilter builds a filter over the given phrase lists. Phrases are
// lowercased once at construction.
func NewFilter(ipPhrases, harmfulPhrases []string) *Filter {
	return &Filter{
		ipPhrases:      lowerAll(ipPhrases),
		harmfulPhrases: lowerAll(harmfulPhrases),
	}
}

// DefaultFilter returns a filter over the compiled-in phrase lists.
func DefaultFilter() *Filter {
	return NewFilter(defaultProtectedIPPhrases, defaultHarmfulPhrases)
}

func lowerAll(phrases []string) []string {
	out := make([]string, len(phrases))
	for i, p := range phrases {
		out[i] = strings.ToLower(p)
	}
	return out
}

func matchPhrases(text string, phrases []string) []string {
	lower := strings.ToLower(text)
	var matches []string
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			matches = append(matches, p)
		}
	}
	return matches
}

// CheckProtectedIP scans text for protected franchise phrases.
func (f *Filter) CheckProtectedIP(text string) models.SafetyVerdict {
	matches := matchPhrases(text, f.ipPhrases)
	if len(matches) == 0 {
		return models.CleanVerdict()
	}
	return models.SafetyVerdict{
		Violated:       true,
		Kind:           models.ViolationIP,
		MatchedPhrases: matches,
	}
}

// CheckHarmful scans text for phrases unsuitable for bedtime stories.
func (f *Filter) CheckHarmful(text string) models.SafetyVerdict {
	matches := matchPhrases(text, f.harmfulPhrases)
	if len(matches) == 0 {
		return models.CleanVerdict()
	}
	return models.SafetyVerdict{
		Violated:       true,
		Kind:           models.ViolationHarmful,
		MatchedPhrases: matches,
	}
}

// CheckRequest runs the pre-generation checks in their fixed order:
// the custom prompt is scanned for harmful content first, then for
// protected phrases; after that each character's name and role are
// scanned for protected phrases. The first violation wins.
func (f *Filter) CheckRequest(req *models.StoryRequest) models.SafetyVerdict {
	if req.CustomPrompt != "" {
		if v := f.CheckHarmful(req.CustomPrompt); v.Violated {
			return v
		}
		if v := f.CheckProtectedIP(req.CustomPrompt); v.Violated {
			return v
		}
	}

	for _, ch := range req.Characters {
		if v := f.CheckProtectedIP(ch.Name + " " + ch.Role); v.Violated {
			return v
		}
	}

	return models.CleanVerdict()
}

// CheckGenerated runs the post-generation checks over a finished story:
// protected phrases first, then harmful content. The first violation wins.
func (f *Filter) CheckGenerated(story string) models.SafetyVerdict {
	if v := f.CheckProtectedIP(story); v.Violated {
		return v
	}
	return f.CheckHarmful(story)
}

// SuggestAlternative proposes an original replacement for a blocked
// protected phrase. Curated suggestions match by substring; anything
// else gets the generic fallback.
func SuggestAlternative(match string) string {
	lower := strings.ToLower(match)
	for _, key := range alternativeKeys {
		if strings.Contains(lower, key) {
			return alternativeSuggestions[key]
		}
	}
	return FallbackSuggestion
}
