package safety

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"storyteller-server/shared/interfaces"
	"storyteller-server/shared/models"
)

// Provider assembles a Filter from the latest published phrase sets.
// Missing or unreadable sets fall back to the compiled-in defaults so
// generation never stalls on the phrase store.
type Provider struct {
	repo   interfaces.PhraseSetRepository
	logger *zap.Logger
}

func NewProvider(repo interfaces.PhraseSetRepository, logger *zap.Logger) *Provider {
	return &Provider{repo: repo, logger: logger.Named("SafetyProvider")}
}

// CurrentFilter returns a filter over the latest phrase sets.
func (p *Provider) CurrentFilter(ctx context.Context) *Filter {
	ip := p.load(ctx, interfaces.PhraseSetProtectedIP, defaultProtectedIPPhrases)
	harmful := p.load(ctx, interfaces.PhraseSetHarmful, defaultHarmfulPhrases)
	return NewFilter(ip, harmful)
}

func (p *Provider) load(ctx context.Context, kind string, fallback []string) []string {
	set, err := p.repo.GetLatest(ctx, kind)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			p.logger.Warn("Failed to load phrase set, using defaults",
				zap.String("kind", kind), zap.Error(err))
		}
		return fallback
	}
	if len(set.Phrases) == 0 {
		return fallback
	}
	return set.Phrases
}
