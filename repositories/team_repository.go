package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Adilkhan05/cup-system/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name is already in use")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	ListByGroup(ctx context.Context, groupLabel string) ([]*models.Team, error)
	UpdateDetails(ctx context.Context, id int, name, groupLabel *string) error
	UpdateCrestKey(ctx context.Context, id int, crestKey *string) error
	ApplyStatsDelta(ctx context.Context, exec SQLExecutor, id int, delta models.TeamStats) error
	ResetAllStats(ctx context.Context, exec SQLExecutor) error
	Delete(ctx context.Context, id int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `id, name, group_label, played, won, drawn, lost,
       goals_for, goals_against, goal_diff, points, crest_key, created_at`

func (r *postgresTeamRepository) scanTeam(row interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var t models.Team
	err := row.Scan(
		&t.ID, &t.Name, &t.GroupLabel,
		&t.Played, &t.Won, &t.Drawn, &t.Lost,
		&t.GoalsFor, &t.GoalsAgainst, &t.GoalDiff, &t.Points,
		&t.CrestKey, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, group_label)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, team.Name, team.GroupLabel).
		Scan(&team.ID, &team.CreatedAt)
	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

	team, err := r.scanTeam(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan team by id %d: %w", id, err)
	}
	return team, nil
}

// List returns every team ordered the way standings tables are displayed:
// group first, then points, goal difference and goals scored descending.
func (r *postgresTeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams
		ORDER BY group_label ASC, points DESC, goal_diff DESC, goals_for DESC, id ASC`
	return r.queryTeams(ctx, query)
}

func (r *postgresTeamRepository) ListByGroup(ctx context.Context, groupLabel string) ([]*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams
		WHERE group_label = $1
		ORDER BY points DESC, goal_diff DESC, goals_for DESC, id ASC`
	return r.queryTeams(ctx, query, groupLabel)
}

func (r *postgresTeamRepository) queryTeams(ctx context.Context, query string, args ...interface{}) ([]*models.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team, scanErr := r.scanTeam(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", scanErr)
		}
		teams = append(teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during team rows iteration: %w", err)
	}
	return teams, nil
}

func (r *postgresTeamRepository) UpdateDetails(ctx context.Context, id int, name, groupLabel *string) error {
	query := `
		UPDATE teams
		SET name = COALESCE($1, name), group_label = COALESCE($2, group_label)
		WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, name, groupLabel, id)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateCrestKey(ctx context.Context, id int, crestKey *string) error {
	query := `UPDATE teams SET crest_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, crestKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

// ApplyStatsDelta adds the delta to the stored aggregates with per-field
// increments, so concurrent deltas for different matches touching the same
// team cannot lose updates. Reversal is the same call with a negated delta.
func (r *postgresTeamRepository) ApplyStatsDelta(ctx context.Context, exec SQLExecutor, id int, delta models.TeamStats) error {
	query := `
		UPDATE teams SET
			played        = played + $1,
			won           = won + $2,
			drawn         = drawn + $3,
			lost          = lost + $4,
			goals_for     = goals_for + $5,
			goals_against = goals_against + $6,
			goal_diff     = goal_diff + $7,
			points        = points + $8
		WHERE id = $9`

	result, err := exec.ExecContext(ctx, query,
		delta.Played, delta.Won, delta.Drawn, delta.Lost,
		delta.GoalsFor, delta.GoalsAgainst, delta.GoalDiff, delta.Points,
		id,
	)
	if err != nil {
		return fmt.Errorf("ApplyStatsDelta: failed to update team %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) ResetAllStats(ctx context.Context, exec SQLExecutor) error {
	query := `
		UPDATE teams SET
			played = 0, won = 0, drawn = 0, lost = 0,
			goals_for = 0, goals_against = 0, goal_diff = 0, points = 0`

	if _, err := exec.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to reset team stats: %w", err)
	}
	return nil
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		// "23505": unique_violation
		if pqErr.Constraint == "teams_name_key" {
			return ErrTeamNameConflict
		}
	}
	return err
}
