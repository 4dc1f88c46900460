package ui

// Phase is the picker's position in its fetch lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTyping
	PhaseFetchingSuggestions
	PhaseSuggestionsReady
	PhaseSuggestionsFailed
	PhaseAggregating
	PhaseAggregateReady
	PhaseAggregateEmpty
	PhaseAggregateFailed
)

var phaseNames = [...]string{
	PhaseIdle:                "idle",
	PhaseTyping:              "typing",
	PhaseFetchingSuggestions: "fetching-suggestions",
	PhaseSuggestionsReady:    "suggestions-ready",
	PhaseSuggestionsFailed:   "suggestions-failed",
	PhaseAggregating:         "aggregating",
	PhaseAggregateReady:      "aggregate-ready",
	PhaseAggregateEmpty:      "aggregate-empty",
	PhaseAggregateFailed:     "aggregate-failed",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Busy reports whether a request is outstanding.
func (p Phase) Busy() bool {
	return p == PhaseFetchingSuggestions || p == PhaseAggregating
}

// ResultKind says which of the three common-persons displays applies.
type ResultKind int

const (
	// ResultUnset means nothing has been queried since the last change.
	ResultUnset ResultKind = iota
	ResultEmpty
	ResultList
	ResultFailed
)

// CommonPersonsResult is what the picker shows under the selection.
type CommonPersonsResult struct {
	Kind  ResultKind
	Names []string
	Err   error
}
