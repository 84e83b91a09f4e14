package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ladder-tracker/internal/domain"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

var (
	ErrDuplicateEntry = errors.New("player is already on the roster")
	ErrInvalidEntry   = errors.New("roster entry needs a gameName and tagLine")
)

type RosterRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewRosterRepository(db *sql.DB, logger zerolog.Logger) *RosterRepository {
	return &RosterRepository{
		db:     db,
		logger: logger.With().Str("component", "roster_repository").Logger(),
	}
}

// ParseRosterEntry reads the gameName#tagLine[@platform] seed format.
func ParseRosterEntry(s string) (domain.PlayerRequest, error) {
	s = strings.TrimSpace(s)

	riotID, platform, _ := strings.Cut(s, "@")
	gameName, tagLine, ok := strings.Cut(riotID, "#")
	req := domain.PlayerRequest{
		GameName: strings.TrimSpace(gameName),
		TagLine:  strings.TrimSpace(tagLine),
		Platform: strings.ToLower(strings.TrimSpace(platform)),
	}
	if !ok || req.GameName == "" || req.TagLine == "" {
		return domain.PlayerRequest{}, fmt.Errorf("%w: %q", ErrInvalidEntry, s)
	}
	return req, nil
}

// Seed inserts every request not already on the roster and reports how
// many were added.
func (r *RosterRepository) Seed(ctx context.Context, reqs []domain.PlayerRequest) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO roster_entries (id, game_name, tag_line, platform, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare seed statement: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, req := range reqs {
		entry, err := newEntry(req)
		if err != nil {
			return 0, err
		}
		res, err := stmt.ExecContext(ctx, entry.ID, entry.GameName, entry.TagLine, entry.Platform, entry.CreatedAt)
		if err != nil {
			return 0, fmt.Errorf("failed to seed %s#%s: %w", entry.GameName, entry.TagLine, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}

	r.logger.Info().Int("requested", len(reqs)).Int("added", added).Msg("roster seeded")
	return added, nil
}

// List returns the roster in insertion order.
func (r *RosterRepository) List(ctx context.Context) ([]domain.RosterEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, game_name, tag_line, platform, created_at
		FROM roster_entries
		ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	defer rows.Close()

	entries := []domain.RosterEntry{}
	for rows.Next() {
		var e domain.RosterEntry
		if err := rows.Scan(&e.ID, &e.GameName, &e.TagLine, &e.Platform, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	return entries, nil
}

func (r *RosterRepository) Add(ctx context.Context, req domain.PlayerRequest) (*domain.RosterEntry, error) {
	entry, err := newEntry(req)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO roster_entries (id, game_name, tag_line, platform, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.GameName, entry.TagLine, entry.Platform, entry.CreatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, fmt.Errorf("%w: %s#%s", ErrDuplicateEntry, entry.GameName, entry.TagLine)
		}
		r.logger.Error().Err(err).Str("name", entry.GameName).Str("tag", entry.TagLine).Msg("failed to add roster entry")
		return nil, fmt.Errorf("failed to add roster entry: %w", err)
	}

	r.logger.Info().Str("id", entry.ID).Str("name", entry.GameName).Str("tag", entry.TagLine).Msg("roster entry added")
	return entry, nil
}

// Remove matches gameName and tagLine case-insensitively and reports
// whether an entry was deleted.
func (r *RosterRepository) Remove(ctx context.Context, gameName, tagLine string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM roster_entries
		WHERE lower(game_name) = lower(?) AND lower(tag_line) = lower(?)`,
		strings.TrimSpace(gameName), strings.TrimSpace(tagLine))
	if err != nil {
		return false, fmt.Errorf("failed to remove roster entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	r.logger.Info().Str("name", gameName).Str("tag", tagLine).Bool("removed", n > 0).Msg("roster entry removal")
	return n > 0, nil
}

func newEntry(req domain.PlayerRequest) (*domain.RosterEntry, error) {
	gameName := strings.TrimSpace(req.GameName)
	tagLine := strings.TrimPrefix(strings.TrimSpace(req.TagLine), "#")
	if gameName == "" || tagLine == "" {
		return nil, ErrInvalidEntry
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate nanoid: %w", err)
	}

	return &domain.RosterEntry{
		ID:        id,
		GameName:  gameName,
		TagLine:   tagLine,
		Platform:  strings.ToLower(strings.TrimSpace(req.Platform)),
		CreatedAt: time.Now().UTC(),
	}, nil
}
