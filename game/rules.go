package game

// CaptureRule decides whether a player who can capture is obliged to
type CaptureRule int

const (
	// CapturesNotMandatory admits simple moves even when a capture is available
	CapturesNotMandatory CaptureRule = iota
	// CapturesMandatory makes every non-jump move illegal while any jump exists for the player
	CapturesMandatory
)

func (r CaptureRule) String() string {
	if r == CapturesMandatory {
		return "mandatory"
	}
	return "optional"
}

// Rules are the configurable parts of the rule set. They are consulted by move generation
// and by the adversarial searches alike.
type Rules struct {
	Capture CaptureRule
	// DecisiveCapture makes minimax and alpha-beta stop at the first available jump and score
	// it as a saturated win for the side taking it.
	DecisiveCapture bool
}

// DefaultRules keeps captures optional in play but decisive inside the searches
func DefaultRules() Rules {
	return Rules{
		Capture:         CapturesNotMandatory,
		DecisiveCapture: true,
	}
}
