package player

// Player is an NFL player as normalized from the upstream platform.
// Unknown upstream codes map to safe placeholders, never to an error.
type Player struct {
	ID           int64
	Name         string
	Position     string
	ProTeam      string
	OwnershipPct float64
	StartPct     float64
	InjuryStatus string
	Points       float64
	ProjPoints   float64
}

const (
	InjuryActive       = "ACTIVE"
	InjuryQuestionable = "QUESTIONABLE"
	InjuryDoubtful     = "DOUBTFUL"
	InjuryOut          = "OUT"
	InjuryIR           = "INJURY_RESERVE"
	InjuryUnknown      = "UNKNOWN"
)
