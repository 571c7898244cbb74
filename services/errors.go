package services

import "errors"

// Shared sentinels, mapped to HTTP statuses in handlers.
var (
	// Validation and business rules
	ErrTeamNameRequired       = errors.New("team name is required")
	ErrGroupLabelUnknown      = errors.New("group label is not part of the configured group set")
	ErrMatchSameTeam          = errors.New("a match requires two different teams")
	ErrMatchInvalidPhase      = errors.New("invalid match phase")
	ErrMatchKnockoutInfo      = errors.New("knockout matches require a valid round and bracket position")
	ErrScoreNegative          = errors.New("scores must be non-negative integers")
	ErrRedCardsNegative       = errors.New("red card counts must be non-negative")
	ErrPenaltiesWithoutDraw   = errors.New("penalty shootout is only valid when regular time ends level")
	ErrPenaltyScoresRequired  = errors.New("penalty shootout requires both penalty scores")
	ErrPenaltyShootoutLevel   = errors.New("a penalty shootout cannot itself end level")
	ErrKnockoutDrawUnresolved = errors.New("a knockout match cannot end level without a penalty shootout")
	ErrSlotPositionInvalid    = errors.New("bracket slot position is out of range")
	ErrPhaseInvalid           = errors.New("invalid tournament phase")

	// Conflicts
	ErrTeamHasMatches   = errors.New("team still has matches referencing it")
	ErrTeamSeeded       = errors.New("team is referenced by the knockout seeding")
	ErrTeamNameConflict = errors.New("team name is already in use")

	// Entity-specific not-found (more context than the generic one)
	ErrTeamNotFound  = errors.New("team not found")
	ErrMatchNotFound = errors.New("match not found")

	// Authentication
	ErrAuthInvalidCredentials = errors.New("invalid admin credentials")
)
