package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Adilkhan05/cup-system/brackets"
	"github.com/Adilkhan05/cup-system/models"
	"github.com/Adilkhan05/cup-system/repositories"
	"github.com/Adilkhan05/cup-system/standings"
	"golang.org/x/sync/errgroup"
)

type BracketService interface {
	GetRankings(ctx context.Context) (map[string][]standings.RankedTeam, error)
	GenerateBracket(ctx context.Context) ([]brackets.Pairing, error)
	SaveSlots(ctx context.Context, updates []models.BracketSlot) ([]int, error)
	GetBracketView(ctx context.Context) (*brackets.View, error)
}

type bracketService struct {
	db           *sql.DB
	teamRepo     repositories.TeamRepository
	matchRepo    repositories.MatchRepository
	settingsRepo repositories.SettingsRepository
	logger       *slog.Logger
}

func NewBracketService(
	db *sql.DB,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	settingsRepo repositories.SettingsRepository,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		db:           db,
		teamRepo:     teamRepo,
		matchRepo:    matchRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// GetRankings ranks every configured group from the stored aggregates and
// the completed group matches (for the head-to-head tie-breaks).
func (s *bracketService) GetRankings(ctx context.Context) (map[string][]standings.RankedTeam, error) {
	settings, err := s.settingsRepo.Get(ctx, nil)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	groupsPhase := models.PhaseGroups
	completed := models.MatchStatusCompleted
	matches, err := s.matchRepo.List(ctx, &groupsPhase, &completed)
	if err != nil {
		return nil, err
	}

	return standings.RankAllGroups(settings.GroupLabels, teams, matches), nil
}

// GenerateBracket runs the automatic scissors seeding. It regenerates the
// whole knockout state from the current group rankings: any pre-existing
// knockout matches are dropped, the eight qualifiers and slots are written,
// the phase flips to knockout and the four quarterfinals are created
// Pending. The pairing step runs before the transaction, so an underfilled
// group fails the operation with nothing mutated.
func (s *bracketService) GenerateBracket(ctx context.Context) ([]brackets.Pairing, error) {
	settings, err := s.settingsRepo.Get(ctx, nil)
	if err != nil {
		return nil, err
	}
	ranked, err := s.GetRankings(ctx)
	if err != nil {
		return nil, err
	}

	pairings, err := brackets.ScissorsPairings(settings.GroupLabels, ranked)
	if err != nil {
		return nil, err
	}

	slots := brackets.SlotsForPairings(pairings)
	qualified := make([]int, 0, len(slots))
	for _, slot := range slots {
		qualified = append(qualified, *slot.TeamID)
	}

	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		if txErr := s.matchRepo.DeleteByPhase(ctx, tx, models.PhaseKnockout); txErr != nil {
			return txErr
		}
		if txErr := s.settingsRepo.ClearSlots(ctx, tx); txErr != nil {
			return txErr
		}
		if txErr := s.settingsRepo.UpsertSlots(ctx, tx, slots); txErr != nil {
			return txErr
		}
		if txErr := s.settingsRepo.UpdateQualifiedTeams(ctx, tx, qualified); txErr != nil {
			return txErr
		}
		if txErr := s.settingsRepo.UpdatePhase(ctx, tx, models.PhaseKnockout); txErr != nil {
			return txErr
		}
		for _, p := range pairings {
			if txErr := s.createQuarterfinal(ctx, tx, p.BracketPosition, p.Team1.ID, p.Team2.ID); txErr != nil {
				return txErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "knockout bracket generated", slog.Int("pairings", len(pairings)))
	return pairings, nil
}

// SaveSlots merges a sparse manual assignment into the seeding grid and
// creates a Pending quarterfinal for every adjacent pair that just became
// complete. The existence check on round and bracket position makes a
// re-save of the same grid a no-op.
func (s *bracketService) SaveSlots(ctx context.Context, updates []models.BracketSlot) ([]int, error) {
	for _, slot := range updates {
		if slot.Position < 1 || slot.Position > models.BracketSize {
			return nil, fmt.Errorf("%w: %d", ErrSlotPositionInvalid, slot.Position)
		}
	}

	var created []int
	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		settings, txErr := s.settingsRepo.Get(ctx, tx)
		if txErr != nil {
			return txErr
		}

		merged := brackets.MergeSlots(settings.BracketSlots, updates)
		if txErr := brackets.ValidatePairs(merged); txErr != nil {
			return txErr
		}
		if txErr := s.settingsRepo.UpsertSlots(ctx, tx, merged); txErr != nil {
			return txErr
		}

		existing := make(map[int]bool, models.BracketSize/2)
		for k := 1; k <= models.BracketSize/2; k++ {
			exists, exErr := s.matchRepo.ExistsByRoundPosition(ctx, tx, models.RoundQuarterfinal, k)
			if exErr != nil {
				return exErr
			}
			existing[k] = exists
		}

		slotTeam := func(position int) int { return *merged[position-1].TeamID }
		for _, k := range brackets.CompletedPairs(merged, existing) {
			if txErr := s.createQuarterfinal(ctx, tx, k, slotTeam(k*2-1), slotTeam(k*2)); txErr != nil {
				return txErr
			}
			created = append(created, k)
		}
		return nil
	})
	if err != nil {
		return nil, mapMatchRepoError(err)
	}

	if len(created) > 0 {
		s.logger.InfoContext(ctx, "quarterfinals auto-created from slots", slog.Any("positions", created))
	}
	return created, nil
}

// GetBracketView assembles the derived knockout tree. Teams, knockout
// matches and settings are independent reads, so they load concurrently.
func (s *bracketService) GetBracketView(ctx context.Context) (*brackets.View, error) {
	var (
		teams    []*models.Team
		matches  []*models.Match
		settings *models.Settings
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.List(gCtx)
		return err
	})
	g.Go(func() error {
		knockout := models.PhaseKnockout
		var err error
		matches, err = s.matchRepo.List(gCtx, &knockout, nil)
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = s.settingsRepo.Get(gCtx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load bracket data: %w", err)
	}

	byID := make(map[int]*models.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	return brackets.Resolve(settings, matches, byID), nil
}

func (s *bracketService) createQuarterfinal(ctx context.Context, tx *sql.Tx, position, team1ID, team2ID int) error {
	round := models.RoundQuarterfinal
	pos := position
	match := &models.Match{
		Team1ID:         team1ID,
		Team2ID:         team2ID,
		Phase:           models.PhaseKnockout,
		Status:          models.MatchStatusPending,
		KnockoutRound:   &round,
		BracketPosition: &pos,
	}
	if err := s.matchRepo.Create(ctx, tx, match); err != nil {
		return fmt.Errorf("failed to create quarterfinal at position %d: %w", position, err)
	}
	return nil
}
