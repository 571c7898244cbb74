package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Adilkhan05/cup-system/models"
	"github.com/Adilkhan05/cup-system/repositories"
	"github.com/Adilkhan05/cup-system/standings"
)

type CreateMatchInput struct {
	Team1ID         int                   `json:"team1_id"`
	Team2ID         int                   `json:"team2_id"`
	GroupLabel      *string               `json:"group"`
	Phase           models.MatchPhase     `json:"phase"`
	MatchTime       *time.Time            `json:"match_time"`
	IsToday         bool                  `json:"is_today"`
	KnockoutRound   *models.KnockoutRound `json:"knockout_round"`
	BracketPosition *int                  `json:"bracket_position"`
}

type ResultInput struct {
	Score1        int  `json:"score1"`
	Score2        int  `json:"score2"`
	RedCards1     int  `json:"red_cards1"`
	RedCards2     int  `json:"red_cards2"`
	HasPenalties  bool `json:"has_penalties"`
	PenaltyScore1 *int `json:"penalty_score1"`
	PenaltyScore2 *int `json:"penalty_score2"`
}

type MatchService interface {
	List(ctx context.Context, phase *models.MatchPhase) ([]*models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	Create(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	SubmitResult(ctx context.Context, id int, input ResultInput) (*models.Match, error)
	Delete(ctx context.Context, id int) error
}

type matchService struct {
	db        *sql.DB
	matchRepo repositories.MatchRepository
	teamRepo  repositories.TeamRepository
	logger    *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:        db,
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		logger:    logger,
	}
}

func (s *matchService) List(ctx context.Context, phase *models.MatchPhase) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx, phase, nil)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*models.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	for _, m := range matches {
		m.Team1 = byID[m.Team1ID]
		m.Team2 = byID[m.Team2ID]
	}
	return matches, nil
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapMatchRepoError(err)
	}
	return match, nil
}

func (s *matchService) Create(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if input.Phase == "" {
		input.Phase = models.PhaseGroups
	}
	if err := validateCreateMatch(input); err != nil {
		return nil, err
	}

	match := &models.Match{
		Team1ID:         input.Team1ID,
		Team2ID:         input.Team2ID,
		GroupLabel:      input.GroupLabel,
		Phase:           input.Phase,
		Status:          models.MatchStatusPending,
		MatchTime:       input.MatchTime,
		IsToday:         input.IsToday,
		KnockoutRound:   input.KnockoutRound,
		BracketPosition: input.BracketPosition,
	}
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		return nil, mapMatchRepoError(err)
	}
	return match, nil
}

// SubmitResult completes a match, or edits an already completed one. For a
// group match the aggregates of both teams move inside the same transaction
// as the match row: the previous result (if any) is reversed first, then the
// new one applied, so a re-submitted result never double-counts. Knockout
// results never touch team aggregates.
func (s *matchService) SubmitResult(ctx context.Context, id int, input ResultInput) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapMatchRepoError(err)
	}
	if err := validateResult(match, input); err != nil {
		return nil, err
	}

	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		if match.Phase == models.PhaseGroups {
			if match.Status == models.MatchStatusCompleted {
				if revErr := s.applyDeltas(ctx, tx, match, true); revErr != nil {
					return revErr
				}
			}
		}

		match.Status = models.MatchStatusCompleted
		match.Score1, match.Score2 = &input.Score1, &input.Score2
		match.RedCards1, match.RedCards2 = input.RedCards1, input.RedCards2
		match.HasPenalties = input.HasPenalties
		if input.HasPenalties {
			match.PenaltyScore1, match.PenaltyScore2 = input.PenaltyScore1, input.PenaltyScore2
		} else {
			match.PenaltyScore1, match.PenaltyScore2 = nil, nil
		}
		match.IsToday = false

		if match.Phase == models.PhaseGroups {
			if appErr := s.applyDeltas(ctx, tx, match, false); appErr != nil {
				return appErr
			}
		}
		return s.matchRepo.UpdateResult(ctx, tx, match)
	})
	if err != nil {
		return nil, mapMatchRepoError(err)
	}

	s.logger.InfoContext(ctx, "match result saved",
		slog.Int("match_id", match.ID),
		slog.String("phase", string(match.Phase)),
		slog.Int("score1", input.Score1),
		slog.Int("score2", input.Score2),
	)
	return match, nil
}

// Delete removes a match. A completed group match is reversed out of both
// teams' aggregates in the same transaction as the row deletion.
func (s *matchService) Delete(ctx context.Context, id int) error {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return mapMatchRepoError(err)
	}

	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		if match.Phase == models.PhaseGroups && match.Status == models.MatchStatusCompleted {
			if revErr := s.applyDeltas(ctx, tx, match, true); revErr != nil {
				return revErr
			}
		}
		return s.matchRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return mapMatchRepoError(err)
	}

	s.logger.InfoContext(ctx, "match deleted", slog.Int("match_id", id))
	return nil
}

// applyDeltas moves both teams' aggregates by the match's per-team
// contribution, negated for a reversal. The match must carry both scores.
func (s *matchService) applyDeltas(ctx context.Context, tx *sql.Tx, match *models.Match, reverse bool) error {
	if match.Score1 == nil || match.Score2 == nil {
		return fmt.Errorf("match %d is completed but has no scores", match.ID)
	}

	d1, d2 := standings.MatchDeltas(match)
	if reverse {
		d1, d2 = standings.Negate(d1), standings.Negate(d2)
	}
	if err := s.teamRepo.ApplyStatsDelta(ctx, tx, match.Team1ID, d1); err != nil {
		return err
	}
	return s.teamRepo.ApplyStatsDelta(ctx, tx, match.Team2ID, d2)
}

func validateCreateMatch(input CreateMatchInput) error {
	if input.Team1ID == input.Team2ID {
		return ErrMatchSameTeam
	}
	if !input.Phase.Valid() {
		return fmt.Errorf("%w: %q", ErrMatchInvalidPhase, input.Phase)
	}
	if input.Phase == models.PhaseKnockout {
		if input.KnockoutRound == nil || !input.KnockoutRound.Valid() {
			return ErrMatchKnockoutInfo
		}
		if input.BracketPosition == nil ||
			*input.BracketPosition < 1 || *input.BracketPosition > input.KnockoutRound.MaxBracketPosition() {
			return ErrMatchKnockoutInfo
		}
	}
	return nil
}

// validateResult checks a result submission before any mutation happens.
// Penalties are only accepted on a regular-time draw and must themselves be
// decisive; a knockout match cannot be left level without a shootout.
func validateResult(match *models.Match, input ResultInput) error {
	if input.Score1 < 0 || input.Score2 < 0 {
		return ErrScoreNegative
	}
	if input.RedCards1 < 0 || input.RedCards2 < 0 {
		return ErrRedCardsNegative
	}

	draw := input.Score1 == input.Score2
	if input.HasPenalties {
		if !draw {
			return ErrPenaltiesWithoutDraw
		}
		if input.PenaltyScore1 == nil || input.PenaltyScore2 == nil {
			return ErrPenaltyScoresRequired
		}
		if *input.PenaltyScore1 < 0 || *input.PenaltyScore2 < 0 {
			return ErrScoreNegative
		}
		if *input.PenaltyScore1 == *input.PenaltyScore2 {
			return ErrPenaltyShootoutLevel
		}
	}
	if match.Phase == models.PhaseKnockout && draw && !input.HasPenalties {
		return ErrKnockoutDrawUnresolved
	}
	return nil
}
