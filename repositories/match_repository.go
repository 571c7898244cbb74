package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Adilkhan05/cup-system/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchTeamInvalid = errors.New("match references a missing team")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, phase *models.MatchPhase, status *models.MatchStatus) ([]*models.Match, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, match *models.Match) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	DeleteByPhase(ctx context.Context, exec SQLExecutor, phase models.MatchPhase) error
	ExistsByRoundPosition(ctx context.Context, exec SQLExecutor, round models.KnockoutRound, position int) (bool, error)
	CountByTeam(ctx context.Context, teamID int) (int, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `id, team1_id, team2_id, group_label, phase, status,
       match_time, is_today, score1, score2, red_cards1, red_cards2,
       knockout_round, bracket_position, has_penalties, penalty_score1, penalty_score2,
       created_at`

func (r *postgresMatchRepository) scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := row.Scan(
		&m.ID, &m.Team1ID, &m.Team2ID, &m.GroupLabel, &m.Phase, &m.Status,
		&m.MatchTime, &m.IsToday, &m.Score1, &m.Score2, &m.RedCards1, &m.RedCards2,
		&m.KnockoutRound, &m.BracketPosition, &m.HasPenalties, &m.PenaltyScore1, &m.PenaltyScore2,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches
			(team1_id, team2_id, group_label, phase, status, match_time, is_today,
			 knockout_round, bracket_position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		match.Team1ID,
		match.Team2ID,
		match.GroupLabel,
		match.Phase,
		match.Status,
		match.MatchTime,
		match.IsToday,
		match.KnockoutRound,
		match.BracketPosition,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := r.scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, phaseFilter *models.MatchPhase, statusFilter *models.MatchStatus) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE 1=1`)

	args := make([]interface{}, 0, 2)
	placeholderIndex := 1

	if phaseFilter != nil {
		queryBuilder.WriteString(" AND phase = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *phaseFilter)
		placeholderIndex++
	}
	if statusFilter != nil {
		queryBuilder.WriteString(" AND status = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *statusFilter)
	}

	queryBuilder.WriteString(" ORDER BY match_time ASC NULLS LAST, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, scanErr := r.scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, match)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

// UpdateResult writes the outcome fields in one statement. The is_today
// flag is always cleared: a match with a result no longer needs the
// "scheduled for today" highlight.
func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		UPDATE matches SET
			status = $1, score1 = $2, score2 = $3,
			red_cards1 = $4, red_cards2 = $5,
			has_penalties = $6, penalty_score1 = $7, penalty_score2 = $8,
			is_today = FALSE
		WHERE id = $9`

	result, err := r.getExecutor(exec).ExecContext(ctx, query,
		match.Status, match.Score1, match.Score2,
		match.RedCards1, match.RedCards2,
		match.HasPenalties, match.PenaltyScore1, match.PenaltyScore2,
		match.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateResult: failed to execute query for match %d: %w", match.ID, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteByPhase(ctx context.Context, exec SQLExecutor, phase models.MatchPhase) error {
	if _, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM matches WHERE phase = $1`, phase); err != nil {
		return fmt.Errorf("failed to delete %s matches: %w", phase, err)
	}
	return nil
}

func (r *postgresMatchRepository) ExistsByRoundPosition(ctx context.Context, exec SQLExecutor, round models.KnockoutRound, position int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM matches
			WHERE phase = $1 AND knockout_round = $2 AND bracket_position = $3
		)`

	var exists bool
	err := r.getExecutor(exec).QueryRowContext(ctx, query, models.PhaseKnockout, round, position).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check match existence for %s position %d: %w", round, position, err)
	}
	return exists, nil
}

func (r *postgresMatchRepository) CountByTeam(ctx context.Context, teamID int) (int, error) {
	query := `SELECT COUNT(*) FROM matches WHERE team1_id = $1 OR team2_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, teamID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matches for team %d: %w", teamID, err)
	}
	return count, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		// "23503": foreign_key_violation
		switch pqErr.Constraint {
		case "matches_team1_id_fkey", "matches_team2_id_fkey":
			return ErrMatchTeamInvalid
		}
	}
	return err
}
