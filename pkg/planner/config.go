package planner

// Config holds the six scalar parameters read once at planner construction.
// SizeForward/SizeBackward/SizeWidth describe the vehicle footprint used
// only by the external, footprint-aware appendix search; the planner itself
// never reads them but carries them so a single config source can seed both
// the search and its collaborators.
type Config struct {
	SizeForward  float64
	SizeBackward float64
	SizeWidth    float64

	BackwardPenalty float64
	TurnPenalty     float64
	TurningStraight float64
}

// DefaultConfig returns the parameter defaults.
func DefaultConfig() Config {
	return Config{
		SizeForward:     0.4,
		SizeBackward:    -0.6,
		SizeWidth:       0.5,
		BackwardPenalty: 2.5,
		TurnPenalty:     5.0,
		TurningStraight: 0.7,
	}
}
