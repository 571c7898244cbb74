package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Adilkhan05/cup-system/models"
	"github.com/Adilkhan05/cup-system/repositories"
)

type SettingsService interface {
	Get(ctx context.Context) (*models.Settings, error)
	SetPhase(ctx context.Context, phase models.MatchPhase) error
	SetQualifiedTeams(ctx context.Context, teamIDs []int) error
	ResetGroupStage(ctx context.Context) error
	ResetKnockout(ctx context.Context) error
	ResetAll(ctx context.Context) error
}

type settingsService struct {
	db           *sql.DB
	settingsRepo repositories.SettingsRepository
	teamRepo     repositories.TeamRepository
	matchRepo    repositories.MatchRepository
	logger       *slog.Logger
}

func NewSettingsService(
	db *sql.DB,
	settingsRepo repositories.SettingsRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) SettingsService {
	return &settingsService{
		db:           db,
		settingsRepo: settingsRepo,
		teamRepo:     teamRepo,
		matchRepo:    matchRepo,
		logger:       logger,
	}
}

func (s *settingsService) Get(ctx context.Context) (*models.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx, nil)
	if err != nil {
		return nil, err
	}

	// Resolve slot teams for display.
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*models.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	for i := range settings.BracketSlots {
		if id := settings.BracketSlots[i].TeamID; id != nil {
			settings.BracketSlots[i].Team = byID[*id]
		}
	}
	return settings, nil
}

// SetPhase flips the workflow flag. It gates nothing on the data side;
// group results can still be edited while the flag says knockout.
func (s *settingsService) SetPhase(ctx context.Context, phase models.MatchPhase) error {
	if !phase.Valid() {
		return fmt.Errorf("%w: %q", ErrPhaseInvalid, phase)
	}
	return s.settingsRepo.UpdatePhase(ctx, nil, phase)
}

func (s *settingsService) SetQualifiedTeams(ctx context.Context, teamIDs []int) error {
	for _, id := range teamIDs {
		if _, err := s.teamRepo.GetByID(ctx, id); err != nil {
			return fmt.Errorf("qualified team %d: %w", id, mapTeamRepoError(err))
		}
	}
	return s.settingsRepo.UpdateQualifiedTeams(ctx, nil, teamIDs)
}

// ResetGroupStage drops every group match and zeroes all team aggregates,
// in one transaction so the accrual invariant holds throughout.
func (s *settingsService) ResetGroupStage(ctx context.Context) error {
	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		if txErr := s.matchRepo.DeleteByPhase(ctx, tx, models.PhaseGroups); txErr != nil {
			return txErr
		}
		return s.teamRepo.ResetAllStats(ctx, tx)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "group stage reset")
	return nil
}

// ResetKnockout drops the knockout matches and seeding state and returns
// the workflow flag to the group phase.
func (s *settingsService) ResetKnockout(ctx context.Context) error {
	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.resetKnockoutTx(ctx, tx)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "knockout stage reset")
	return nil
}

func (s *settingsService) ResetAll(ctx context.Context) error {
	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		if txErr := s.matchRepo.DeleteByPhase(ctx, tx, models.PhaseGroups); txErr != nil {
			return txErr
		}
		if txErr := s.teamRepo.ResetAllStats(ctx, tx); txErr != nil {
			return txErr
		}
		return s.resetKnockoutTx(ctx, tx)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "tournament fully reset")
	return nil
}

func (s *settingsService) resetKnockoutTx(ctx context.Context, tx *sql.Tx) error {
	if err := s.matchRepo.DeleteByPhase(ctx, tx, models.PhaseKnockout); err != nil {
		return err
	}
	if err := s.settingsRepo.ClearSlots(ctx, tx); err != nil {
		return err
	}
	if err := s.settingsRepo.UpdateQualifiedTeams(ctx, tx, nil); err != nil {
		return err
	}
	return s.settingsRepo.UpdatePhase(ctx, tx, models.PhaseGroups)
}
