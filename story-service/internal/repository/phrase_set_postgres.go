package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"storyteller-server/shared/interfaces"
	"storyteller-server/shared/models"
)

var _ interfaces.PhraseSetRepository = (*pgPhraseSetRepository)(nil)

type pgPhraseSetRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgPhraseSetRepository creates a PostgreSQL-backed PhraseSetRepository.
func NewPgPhraseSetRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.PhraseSetRepository {
	return &pgPhraseSetRepository{
		db:     db,
		logger: logger.Named("PgPhraseSetRepo"),
	}
}

// GetLatest returns the highest-version phrase set of the given kind.
func (r *pgPhraseSetRepository) GetLatest(ctx context.Context, kind string) (*interfaces.PhraseSet, error) {
	query := `SELECT kind, version, phrases FROM safety_phrase_sets WHERE kind = $1 ORDER BY version DESC LIMIT 1`
	set := &interfaces.PhraseSet{}
	err := r.db.QueryRow(ctx, query, kind).Scan(&set.Kind, &set.Version, &set.Phrases)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to load phrase set", zap.Error(err), zap.String("kind", kind))
		return nil, fmt.Errorf("failed to load phrase set: %w", err)
	}
	return set, nil
}
