package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Adilkhan05/cup-system/models"
	"github.com/lib/pq"
)

// singletonID pins the settings table to one row.
const singletonID = 1

type SettingsRepository interface {
	Get(ctx context.Context, exec SQLExecutor) (*models.Settings, error)
	UpdatePhase(ctx context.Context, exec SQLExecutor, phase models.MatchPhase) error
	UpdateQualifiedTeams(ctx context.Context, exec SQLExecutor, teamIDs []int) error
	UpsertSlots(ctx context.Context, exec SQLExecutor, slots []models.BracketSlot) error
	ClearSlots(ctx context.Context, exec SQLExecutor) error
}

type postgresSettingsRepository struct {
	db *sql.DB
}

func NewPostgresSettingsRepository(db *sql.DB) SettingsRepository {
	return &postgresSettingsRepository{db: db}
}

func (r *postgresSettingsRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// Get reads the singleton, creating it with defaults on first access. The
// slot grid always comes back with exactly models.BracketSize entries.
func (r *postgresSettingsRepository) Get(ctx context.Context, exec SQLExecutor) (*models.Settings, error) {
	executor := r.getExecutor(exec)

	insert := `
		INSERT INTO settings (id, phase, group_labels, qualified_team_ids)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`
	if _, err := executor.ExecContext(ctx, insert,
		singletonID, models.PhaseGroups, pq.Array(models.DefaultGroupLabels), pq.Array([]int64{}),
	); err != nil {
		return nil, fmt.Errorf("failed to ensure settings row: %w", err)
	}

	settings := &models.Settings{}
	var labels pq.StringArray
	var qualified pq.Int64Array

	query := `SELECT phase, group_labels, qualified_team_ids FROM settings WHERE id = $1`
	if err := executor.QueryRowContext(ctx, query, singletonID).
		Scan(&settings.Phase, &labels, &qualified); err != nil {
		return nil, fmt.Errorf("failed to scan settings: %w", err)
	}

	settings.GroupLabels = labels
	settings.QualifiedTeamIDs = make([]int, len(qualified))
	for i, id := range qualified {
		settings.QualifiedTeamIDs[i] = int(id)
	}

	slots, err := r.listSlots(ctx, executor)
	if err != nil {
		return nil, err
	}
	settings.BracketSlots = slots

	return settings, nil
}

func (r *postgresSettingsRepository) listSlots(ctx context.Context, executor SQLExecutor) ([]models.BracketSlot, error) {
	rows, err := executor.QueryContext(ctx, `SELECT position, team_id FROM bracket_slots ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bracket slots: %w", err)
	}
	defer rows.Close()

	byPosition := make(map[int]*int, models.BracketSize)
	for rows.Next() {
		var slot models.BracketSlot
		if scanErr := rows.Scan(&slot.Position, &slot.TeamID); scanErr != nil {
			return nil, fmt.Errorf("failed to scan bracket slot row: %w", scanErr)
		}
		byPosition[slot.Position] = slot.TeamID
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during bracket slot rows iteration: %w", err)
	}

	// Pad missing positions so callers always see the full grid.
	slots := make([]models.BracketSlot, 0, models.BracketSize)
	for pos := 1; pos <= models.BracketSize; pos++ {
		slots = append(slots, models.BracketSlot{Position: pos, TeamID: byPosition[pos]})
	}
	return slots, nil
}

func (r *postgresSettingsRepository) UpdatePhase(ctx context.Context, exec SQLExecutor, phase models.MatchPhase) error {
	query := `UPDATE settings SET phase = $1 WHERE id = $2`
	if _, err := r.getExecutor(exec).ExecContext(ctx, query, phase, singletonID); err != nil {
		return fmt.Errorf("failed to update phase: %w", err)
	}
	return nil
}

func (r *postgresSettingsRepository) UpdateQualifiedTeams(ctx context.Context, exec SQLExecutor, teamIDs []int) error {
	ids := make([]int64, len(teamIDs))
	for i, id := range teamIDs {
		ids[i] = int64(id)
	}
	query := `UPDATE settings SET qualified_team_ids = $1 WHERE id = $2`
	if _, err := r.getExecutor(exec).ExecContext(ctx, query, pq.Array(ids), singletonID); err != nil {
		return fmt.Errorf("failed to update qualified teams: %w", err)
	}
	return nil
}

func (r *postgresSettingsRepository) UpsertSlots(ctx context.Context, exec SQLExecutor, slots []models.BracketSlot) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO bracket_slots (position, team_id)
		VALUES ($1, $2)
		ON CONFLICT (position) DO UPDATE SET team_id = EXCLUDED.team_id`

	for _, slot := range slots {
		if _, err := executor.ExecContext(ctx, query, slot.Position, slot.TeamID); err != nil {
			return fmt.Errorf("failed to upsert bracket slot %d: %w", slot.Position, err)
		}
	}
	return nil
}

func (r *postgresSettingsRepository) ClearSlots(ctx context.Context, exec SQLExecutor) error {
	if _, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM bracket_slots`); err != nil {
		return fmt.Errorf("failed to clear bracket slots: %w", err)
	}
	return nil
}
