package host

// State is the lifecycle state of a Host.
type State int

const (
	Uninitialized State = iota
	Bound
	FailedCapability
	Active
	Inactive
	Destroyed
)

var stateNames = [...]string{
	Uninitialized:    "uninitialized",
	Bound:            "bound",
	FailedCapability: "failed-capability",
	Active:           "active",
	Inactive:         "inactive",
	Destroyed:        "destroyed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// canResume reports whether OnResume has an effect in state s.
func (s State) canResume() bool { return s == Bound || s == Inactive }
