package models

// BracketSize is the number of seeding slots in the knockout grid:
// two qualifiers from each of the four groups.
const BracketSize = 8

// DefaultGroupLabels is the label set a fresh tournament starts with.
// The set is configurable through settings but its size drives the
// scissors seeding, which expects exactly four groups.
var DefaultGroupLabels = []string{"A", "B", "C", "D"}

// Settings is the tournament-wide singleton. It is lazily created with
// defaults on first read and mutated only by the seeding and reset
// operations, plus the explicit phase/qualified setters.
type Settings struct {
	Phase            MatchPhase `json:"phase" db:"phase"`
	GroupLabels      []string   `json:"group_labels" db:"group_labels"`
	QualifiedTeamIDs []int      `json:"qualified_team_ids" db:"qualified_team_ids"`

	// BracketSlots always carries exactly BracketSize entries ordered by
	// position; missing rows are padded with a nil team on read.
	BracketSlots []BracketSlot `json:"bracket_slots" db:"-"`
}

// BracketSlot is a pre-match seeding position. Positions 2k-1 and 2k feed
// quarterfinal bracket position k.
type BracketSlot struct {
	Position int   `json:"position" db:"position"`
	TeamID   *int  `json:"team_id" db:"team_id"`
	Team     *Team `json:"team,omitempty" db:"-"`
}
