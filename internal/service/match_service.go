package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AdamBeresnev/clubdesk/internal/bracket"
	"github.com/AdamBeresnev/clubdesk/internal/draw"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// MatchStore is the persistence the result flow needs. *store.TournamentStore implements it.
type MatchStore interface {
	GetTournamentTx(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*bracket.Tournament, error)
	UpdateTournamentStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status bracket.TournamentStatus) error
	GetMatch(ctx context.Context, id uuid.UUID) (*bracket.Match, error)
	GetMatchTx(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*bracket.Match, error)
	FindMatchTx(ctx context.Context, q sqlx.QueryerContext, tournamentID uuid.UUID, round, position int) (*bracket.Match, error)
	GetMatchesTx(ctx context.Context, q sqlx.QueryerContext, tournamentID uuid.UUID) ([]bracket.Match, error)
	CountMatchesByStatusTx(ctx context.Context, q sqlx.QueryerContext, tournamentID uuid.UUID, status bracket.MatchStatus) (int, error)
	UpdateMatch(ctx context.Context, tx *sqlx.Tx, match *bracket.Match) error
}

type CourtLookup interface {
	GetCourt(ctx context.Context, id uuid.UUID) (*bracket.Court, error)
}

type MatchService struct {
	db       *sqlx.DB
	store    MatchStore
	courts   CourtLookup
	notifier Notifier
}

func NewMatchService(db *sqlx.DB, store MatchStore, courts CourtLookup, notifier Notifier) *MatchService {
	return &MatchService{db: db, store: store, courts: courts, notifier: notifierOrNop(notifier)}
}

func (s *MatchService) GetMatch(ctx context.Context, id uuid.UUID) (*bracket.Match, error) {
	return s.store.GetMatch(ctx, id)
}

// RecordResult completes a match and, in single elimination, seats the
// winner in the next round.
func (s *MatchService) RecordResult(ctx context.Context, matchID, winnerID uuid.UUID) (*bracket.Match, error) {
	return s.complete(ctx, matchID, winnerID, nil)
}

// RecordScore stores the set scores together with the result.
func (s *MatchService) RecordScore(ctx context.Context, matchID, winnerID uuid.UUID, sets bracket.SetScores) (*bracket.Match, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: at least one set is required", ErrInvalidInput)
	}
	if err := sets.Validate(); err != nil {
		return nil, err
	}
	return s.complete(ctx, matchID, winnerID, sets)
}

func (s *MatchService) complete(ctx context.Context, matchID, winnerID uuid.UUID, sets bracket.SetScores) (*bracket.Match, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	match, err := s.store.GetMatchTx(ctx, tx, matchID)
	if err != nil {
		return nil, err
	}

	if match.Status == bracket.MatchCompleted {
		return nil, ErrMatchCompleted
	}
	if match.Team1ID == nil || match.Team2ID == nil {
		return nil, ErrMatchNotReady
	}
	if !match.HasTeam(winnerID) {
		return nil, ErrWinnerNotInMatch
	}

	if sets != nil {
		won1, won2 := sets.SetsWon()
		if won1 == won2 {
			return nil, fmt.Errorf("%w: sets are level %d-%d", bracket.ErrInvalidScore, won1, won2)
		}
		if (won1 > won2 && winnerID != *match.Team1ID) || (won2 > won1 && winnerID != *match.Team2ID) {
			return nil, fmt.Errorf("%w: score does not match the winner", bracket.ErrInvalidScore)
		}
		match.Score = sets
	}

	match.Status = bracket.MatchCompleted
	match.WinnerID = &winnerID

	if err := s.store.UpdateMatch(ctx, tx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}

	updated := []*bracket.Match{match}

	if match.Format == bracket.SingleElimination {
		next, err := s.advance(ctx, tx, match)
		if err != nil {
			return nil, err
		}
		if next != nil {
			updated = append(updated, next)
		}
	}

	pending, err := s.store.CountMatchesByStatusTx(ctx, tx, match.TournamentID, bracket.MatchPending)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending matches: %w", err)
	}
	if pending == 0 {
		if err := s.store.UpdateTournamentStatusTx(ctx, tx, match.TournamentID, bracket.TournamentCompleted); err != nil {
			return nil, fmt.Errorf("failed to update tournament status: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	slog.Info("match completed", "match_id", match.ID, "tournament_id", match.TournamentID, "winner_id", winnerID)
	for _, m := range updated {
		s.notifier.Publish(m.TournamentID, EventMatchUpdated, m)
	}
	return match, nil
}

// advance seats the winner in the match fed by this one. The final has no
// such match and is left as is.
func (s *MatchService) advance(ctx context.Context, tx *sqlx.Tx, match *bracket.Match) (*bracket.Match, error) {
	var next *bracket.Match
	var err error
	if match.NextMatchID != nil {
		next, err = s.store.GetMatchTx(ctx, tx, *match.NextMatchID)
	} else {
		next, err = s.store.FindMatchTx(ctx, tx, match.TournamentID, match.Round+1, match.NextPosition())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get next match: %w", err)
	}
	if next == nil {
		return nil, nil
	}

	next.Seat(match.NextSlot(), *match.WinnerID)
	if err := s.store.UpdateMatch(ctx, tx, next); err != nil {
		return nil, fmt.Errorf("failed to update next match: %w", err)
	}
	return next, nil
}

// ScheduleMatch attaches a court and a start time to a match.
func (s *MatchService) ScheduleMatch(ctx context.Context, matchID, courtID uuid.UUID, at time.Time) (*bracket.Match, error) {
	if at.IsZero() {
		return nil, fmt.Errorf("%w: scheduled_at is required", ErrInvalidInput)
	}
	if _, err := s.courts.GetCourt(ctx, courtID); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	match, err := s.store.GetMatchTx(ctx, tx, matchID)
	if err != nil {
		return nil, err
	}

	at = at.UTC()
	match.CourtID = &courtID
	match.ScheduledAt = &at

	if err := s.store.UpdateMatch(ctx, tx, match); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.notifier.Publish(match.TournamentID, EventMatchUpdated, match)
	return match, nil
}

// AdvanceKnockout seeds the group stage knockout. Once both groups are
// finished the semifinals become A1-B2 and B1-A2; once both semifinals are
// finished the final gets their winners. It is only ever run on request.
func (s *MatchService) AdvanceKnockout(ctx context.Context, tournamentID uuid.UUID) ([]bracket.Match, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	tournament, err := s.store.GetTournamentTx(ctx, tx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Format != bracket.GroupStage {
		return nil, fmt.Errorf("%w: knockout seeding only applies to group stage tournaments", ErrInvalidInput)
	}

	matches, err := s.store.GetMatchesTx(ctx, tx, tournamentID)
	if err != nil {
		return nil, err
	}

	labelled := make(map[string]*bracket.Match)
	for i := range matches {
		labelled[matches[i].GroupLabel()] = &matches[i]
	}
	sf1, sf2, final := labelled[bracket.GroupSemifinal1], labelled[bracket.GroupSemifinal2], labelled[bracket.GroupFinal]
	if sf1 == nil || sf2 == nil || final == nil {
		return nil, fmt.Errorf("%w: draw has no knockout matches", ErrKnockoutNotReady)
	}

	var changed []*bracket.Match
	switch {
	case sf1.Team1ID == nil && sf2.Team1ID == nil:
		a := draw.Standings(matches, bracket.GroupA)
		b := draw.Standings(matches, bracket.GroupB)
		if len(a) < 2 || len(b) < 2 {
			return nil, fmt.Errorf("%w: each group needs two teams", ErrKnockoutNotReady)
		}
		if !draw.GroupComplete(matches, bracket.GroupA) || !draw.GroupComplete(matches, bracket.GroupB) {
			return nil, fmt.Errorf("%w: group matches are still pending", ErrKnockoutNotReady)
		}
		sf1.Seat(1, a[0].TeamID)
		sf1.Seat(2, b[1].TeamID)
		sf2.Seat(1, b[0].TeamID)
		sf2.Seat(2, a[1].TeamID)
		changed = append(changed, sf1, sf2)
	case final.Team1ID == nil:
		if sf1.Status != bracket.MatchCompleted || sf2.Status != bracket.MatchCompleted {
			return nil, fmt.Errorf("%w: semifinals are still pending", ErrKnockoutNotReady)
		}
		final.Seat(1, *sf1.WinnerID)
		final.Seat(2, *sf2.WinnerID)
		changed = append(changed, final)
	default:
		return nil, fmt.Errorf("%w: knockout is already seeded", ErrKnockoutNotReady)
	}

	for _, m := range changed {
		if err := s.store.UpdateMatch(ctx, tx, m); err != nil {
			return nil, fmt.Errorf("failed to update match: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	seeded := make([]bracket.Match, 0, len(changed))
	for _, m := range changed {
		s.notifier.Publish(tournamentID, EventMatchUpdated, m)
		seeded = append(seeded, *m)
	}
	return seeded, nil
}
