package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Adilkhan05/cup-system/models"
	"github.com/Adilkhan05/cup-system/repositories"
	"github.com/Adilkhan05/cup-system/storage"
)

type CreateTeamInput struct {
	Name       string `json:"name"`
	GroupLabel string `json:"group"`
}

type UpdateTeamInput struct {
	Name       *string `json:"name"`
	GroupLabel *string `json:"group"`
}

type TeamService interface {
	List(ctx context.Context) ([]*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	Create(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	Update(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error)
	Delete(ctx context.Context, id int) error
	UploadCrest(ctx context.Context, id int, contentType string, file io.Reader) (*models.Team, error)
	DeleteCrest(ctx context.Context, id int) error
}

type teamService struct {
	teamRepo     repositories.TeamRepository
	matchRepo    repositories.MatchRepository
	settingsRepo repositories.SettingsRepository
	uploader     storage.FileUploader
	logger       *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	settingsRepo repositories.SettingsRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo:     teamRepo,
		matchRepo:    matchRepo,
		settingsRepo: settingsRepo,
		uploader:     uploader,
		logger:       logger,
	}
}

func (s *teamService) List(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range teams {
		populateTeamCrestURL(t, s.uploader)
	}
	return teams, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTeamRepoError(err)
	}
	populateTeamCrestURL(team, s.uploader)
	return team, nil
}

func (s *teamService) Create(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	if err := s.validateGroupLabel(ctx, input.GroupLabel); err != nil {
		return nil, err
	}

	team := &models.Team{Name: name, GroupLabel: input.GroupLabel}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, mapTeamRepoError(err)
	}
	return team, nil
}

// Update renames a team or moves it to another group. Aggregate stats are
// never touched here; only match completion, edit and deletion mutate them.
func (s *teamService) Update(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, ErrTeamNameRequired
	}
	if input.GroupLabel != nil {
		if err := s.validateGroupLabel(ctx, *input.GroupLabel); err != nil {
			return nil, err
		}
	}

	if err := s.teamRepo.UpdateDetails(ctx, id, input.Name, input.GroupLabel); err != nil {
		return nil, mapTeamRepoError(err)
	}
	return s.GetByID(ctx, id)
}

// Delete refuses while any match or the knockout seeding still references
// the team, so neither the match history nor the derived bracket can carry
// dangling team ids. Reset the knockout stage (or clear the slots) first.
func (s *teamService) Delete(ctx context.Context, id int) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return mapTeamRepoError(err)
	}

	count, err := s.matchRepo.CountByTeam(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d match(es)", ErrTeamHasMatches, count)
	}

	settings, err := s.settingsRepo.Get(ctx, nil)
	if err != nil {
		return err
	}
	if teamSeededInSettings(settings, id) {
		return fmt.Errorf("%w: team %d", ErrTeamSeeded, id)
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return mapTeamRepoError(err)
	}

	if team.CrestKey != nil && s.uploader != nil {
		if delErr := s.uploader.Delete(ctx, *team.CrestKey); delErr != nil {
			s.logger.WarnContext(ctx, "failed to delete crest of removed team",
				slog.Int("team_id", id), slog.Any("error", delErr))
		}
	}
	return nil
}

func (s *teamService) UploadCrest(ctx context.Context, id int, contentType string, file io.Reader) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTeamRepoError(err)
	}

	ext, err := extensionFromContentType(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("crests/team_%d_%s%s", id, randomHex(8), ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload crest for team %d: %w", id, err)
	}

	oldKey := team.CrestKey
	if err := s.teamRepo.UpdateCrestKey(ctx, id, &result.Key); err != nil {
		// The row update failed, drop the freshly uploaded object.
		if delErr := s.uploader.Delete(ctx, result.Key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to clean up orphaned crest upload",
				slog.String("key", result.Key), slog.Any("error", delErr))
		}
		return nil, mapTeamRepoError(err)
	}

	if oldKey != nil && *oldKey != result.Key {
		if delErr := s.uploader.Delete(ctx, *oldKey); delErr != nil {
			s.logger.WarnContext(ctx, "failed to delete previous crest",
				slog.String("key", *oldKey), slog.Any("error", delErr))
		}
	}

	team.CrestKey = &result.Key
	populateTeamCrestURL(team, s.uploader)
	return team, nil
}

func (s *teamService) DeleteCrest(ctx context.Context, id int) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return mapTeamRepoError(err)
	}
	if team.CrestKey == nil {
		return nil
	}

	if err := s.teamRepo.UpdateCrestKey(ctx, id, nil); err != nil {
		return mapTeamRepoError(err)
	}
	if delErr := s.uploader.Delete(ctx, *team.CrestKey); delErr != nil {
		s.logger.WarnContext(ctx, "failed to delete crest object",
			slog.String("key", *team.CrestKey), slog.Any("error", delErr))
	}
	return nil
}

func (s *teamService) validateGroupLabel(ctx context.Context, label string) error {
	settings, err := s.settingsRepo.Get(ctx, nil)
	if err != nil {
		return err
	}
	if !groupLabelKnown(label, settings) {
		return fmt.Errorf("%w: %q (configured: %s)", ErrGroupLabelUnknown, label, strings.Join(settings.GroupLabels, ", "))
	}
	return nil
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "00000000"
	}
	return hex.EncodeToString(b)
}
