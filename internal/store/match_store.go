package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AdamBeresnev/clubdesk/internal/bracket"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	insertMatchesQuery = `INSERT INTO matches (id, tournament_id, format, round, position, team_1_id, team_2_id, winner_id, status, group_label, next_match_id, score, court_id, scheduled_at)
		VALUES (:id, :tournament_id, :format, :round, :position, :team_1_id, :team_2_id, :winner_id, :status, :group_label, :next_match_id, :score, :court_id, :scheduled_at)`
	updateMatchQuery = `UPDATE matches SET
		team_1_id = :team_1_id,
		team_2_id = :team_2_id,
		winner_id = :winner_id,
		status = :status,
		score = :score,
		court_id = :court_id,
		scheduled_at = :scheduled_at
		WHERE id = :id`
	getMatchQuery  = "SELECT * FROM matches WHERE id = ?"
	findMatchQuery = "SELECT * FROM matches WHERE tournament_id = ? AND round = ? AND position = ?"
)

// InsertMatches writes the whole draw inside tx, in batches.
func (s *TournamentStore) InsertMatches(ctx context.Context, tx *sqlx.Tx, matches []bracket.Match) error {
	return insertBatched(ctx, tx, insertMatchesQuery, matches)
}

// UpdateMatch writes the mutable columns of a match; round, position and
// links are fixed at draw time.
func (s *TournamentStore) UpdateMatch(ctx context.Context, tx *sqlx.Tx, match *bracket.Match) error {
	res, err := tx.NamedExecContext(ctx, updateMatchQuery, match)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(sql.ErrNoRows, "match "+match.ID.String())
	}
	return nil
}

func (s *TournamentStore) GetMatch(ctx context.Context, id uuid.UUID) (*bracket.Match, error) {
	return s.GetMatchTx(ctx, s.db, id)
}

func (s *TournamentStore) GetMatchTx(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*bracket.Match, error) {
	var match bracket.Match
	if err := sqlx.GetContext(ctx, q, &match, getMatchQuery, id); err != nil {
		return nil, notFound(err, "match "+id.String())
	}
	return &match, nil
}

// FindMatchTx returns nil without an error when no match sits at round/position.
func (s *TournamentStore) FindMatchTx(ctx context.Context, q sqlx.QueryerContext, tournamentID uuid.UUID, round, position int) (*bracket.Match, error) {
	var match bracket.Match
	err := sqlx.GetContext(ctx, q, &match, findMatchQuery, tournamentID, round, position)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *TournamentStore) GetMatches(ctx context.Context, tournamentID uuid.UUID) ([]bracket.Match, error) {
	return s.GetMatchesTx(ctx, s.db, tournamentID)
}

func (s *TournamentStore) GetMatchesTx(ctx context.Context, q sqlx.QueryerContext, tournamentID uuid.UUID) ([]bracket.Match, error) {
	matches := []bracket.Match{}
	err := sqlx.SelectContext(ctx, q, &matches, "SELECT * FROM matches WHERE tournament_id = ? ORDER BY round ASC, position ASC", tournamentID)
	return matches, err
}

func (s *TournamentStore) CountMatchesTx(ctx context.Context, q sqlx.QueryerContext, tournamentID uuid.UUID) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, q, &n, "SELECT COUNT(*) FROM matches WHERE tournament_id = ?", tournamentID)
	return n, err
}

func (s *TournamentStore) CountMatchesByStatusTx(ctx context.Context, q sqlx.QueryerContext, tournamentID uuid.UUID, status bracket.MatchStatus) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, q, &n, "SELECT COUNT(*) FROM matches WHERE tournament_id = ? AND status = ?", tournamentID, status)
	return n, err
}
