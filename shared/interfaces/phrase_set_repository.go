package interfaces

import "context"

// PhraseSet is one versioned safety phrase dataset. The lists are the actual
// compliance surface of the system, so they are stored and versioned outside
// the code and replaced without a deploy.
type PhraseSet struct {
	Kind    string   `json:"kind" db:"kind"`
	Version int      `json:"version" db:"version"`
	Phrases []string `json:"phrases" db:"phrases"`
}

// Dataset kinds known to the safety filter.
const (
	PhraseSetProtectedIP = "protected_ip"
	PhraseSetHarmful     = "harmful"
)

// PhraseSetRepository loads the latest version of a safety phrase dataset.
type PhraseSetRepository interface {
	// GetLatest returns the highest-version dataset of the given kind, or
	// models.ErrNotFound when none has been published yet.
	GetLatest(ctx context.Context, kind string) (*PhraseSet, error)
}
