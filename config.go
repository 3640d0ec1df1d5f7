package kombi

// --- Engine faults ------------------------------------------------------

// Fault is an engine fault: a violation of the engine's own invariants, as
// opposed to a semantic parse error, which is a first-class value on a
// state. Faults are signalled out-of-band (as panics at the violation site)
// and terminate the current run; the symbol drivers recover them and return
// them as ordinary errors.
type Fault struct {
	Reason string
}

func (f Fault) Error() string {
	return "kombi: " + f.Reason
}

// --- Global configuration -------------------------------------------------

// maxAmbiguityBreadth bounds the number of full-input-length results retained
// per memo entry. 0 means unlimited.
var maxAmbiguityBreadth int

// SetMaxAmbiguityBreadth configures the ambiguity breadth limit: the maximum
// number of distinct completed parses a single memo entry may accumulate
// before the engine signals a breadth-exceeded fault. This guards against
// draining infinitely ambiguous grammars. n = 0 removes the limit.
//
// The engine is single-threaded; set the limit before starting a run.
func SetMaxAmbiguityBreadth(n int) {
	if n < 0 {
		n = 0
	}
	maxAmbiguityBreadth = n
}

// MaxAmbiguityBreadth returns the configured breadth limit (0 = unlimited).
func MaxAmbiguityBreadth() int {
	return maxAmbiguityBreadth
}
