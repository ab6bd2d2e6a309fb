package chart

// State is a chart's lifecycle stage.
type State int

const (
	// Unmeasured charts have not observed their container yet.
	Unmeasured State = iota
	// Measured charts know their outer size.
	Measured
	// LaidOut charts have composed their edges.
	LaidOut
	// Rendering charts have produced a scene and follow every change.
	Rendering
	// Unmounted charts are disposed.
	Unmounted
)

var stateNames = [...]string{"unmeasured", "measured", "laid_out", "rendering", "unmounted"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
