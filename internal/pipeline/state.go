package pipeline

// State is the lifecycle position of an Exchange.
type State int

// Exchange states in the order they are entered. Responded and Failed are
// terminal.
const (
	Received State = iota
	Authenticating
	Validating
	Handling
	Responded
	Failed
)

var stateNames = [...]string{
	Received:       "received",
	Authenticating: "authenticating",
	Validating:     "validating",
	Handling:       "handling",
	Responded:      "responded",
	Failed:         "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == Responded || s == Failed
}
