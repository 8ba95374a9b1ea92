package flow

// Kind identifies the capability variant of a node.
type Kind int

const (
	KindPass Kind = iota
	KindTransform
	KindFilter
	KindObserver
	KindClassifier
	KindCustom
)

var kindNames = [...]string{
	KindPass:       "pass",
	KindTransform:  "transform",
	KindFilter:     "filter",
	KindObserver:   "observer",
	KindClassifier: "classifier",
	KindCustom:     "custom",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Dispatch outcomes reported to logs, spans and metrics.
const (
	OutcomeForwarded = "forwarded"
	OutcomeHalted    = "halted"
	OutcomeRouted    = "routed"
	OutcomeFailed    = "failed"
)
