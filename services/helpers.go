package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Adilkhan05/cup-system/models"
	"github.com/Adilkhan05/cup-system/repositories"
	"github.com/Adilkhan05/cup-system/storage"
)

// runInTx runs fn inside one transaction, rolling back on error or panic.
// Multi-step mutations (stats apply/reverse, seeding, resets) go through
// here so a partial failure never leaves half the steps committed.
func runInTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("transaction processing error: %w (rollback also failed: %v)", err, rbErr)
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	err = fn(tx)
	return err
}

func mapTeamRepoError(err error) error {
	if errors.Is(err, repositories.ErrTeamNotFound) {
		return ErrTeamNotFound
	}
	if errors.Is(err, repositories.ErrTeamNameConflict) {
		return ErrTeamNameConflict
	}
	return err
}

func mapMatchRepoError(err error) error {
	if errors.Is(err, repositories.ErrMatchNotFound) {
		return ErrMatchNotFound
	}
	if errors.Is(err, repositories.ErrMatchTeamInvalid) {
		return ErrTeamNotFound
	}
	return err
}

// teamSeededInSettings reports whether the knockout seeding still references
// the team, either through a bracket slot or the qualified list. Deleting
// such a team would leave the derived bracket with dangling inputs.
func teamSeededInSettings(settings *models.Settings, teamID int) bool {
	for _, slot := range settings.BracketSlots {
		if slot.TeamID != nil && *slot.TeamID == teamID {
			return true
		}
	}
	for _, id := range settings.QualifiedTeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}

func groupLabelKnown(label string, settings *models.Settings) bool {
	for _, l := range settings.GroupLabels {
		if l == label {
			return true
		}
	}
	return false
}

func populateTeamCrestURL(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.CrestKey != nil && *team.CrestKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*team.CrestKey)
		if url != "" {
			team.CrestURL = &url
		}
	}
}

func extensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/webp":
		return ".webp", nil
	case "image/svg+xml":
		return ".svg", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && parts[0] == "image" && parts[1] != "" {
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("could not determine file extension from content type: %q", contentType)
	}
}
