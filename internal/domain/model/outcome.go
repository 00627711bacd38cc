package model

// OutcomeStatus tags the result of one sub-operation inside a sync run.
type OutcomeStatus string

const (
	StatusApplied OutcomeStatus = "applied"
	StatusSkipped OutcomeStatus = "skipped"
	StatusFailed  OutcomeStatus = "failed"
	StatusNoop    OutcomeStatus = "noop"
)

// Skip reasons.
const (
	SkipNoPriceList = "no_price_list"
	SkipUnchanged   = "unchanged"
)

// Outcome is the tagged result of a single sub-operation. One failed
// outcome never aborts its siblings; the orchestrator collects all of
// them into the aggregate response.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Reason string        `json:"reason,omitempty"`
	Detail string        `json:"detail,omitempty"`
}

func Applied() Outcome {
	return Outcome{Status: StatusApplied}
}

func Skipped(reason string) Outcome {
	return Outcome{Status: StatusSkipped, Reason: reason}
}

func Failed(detail string) Outcome {
	return Outcome{Status: StatusFailed, Detail: detail}
}

func Noop() Outcome {
	return Outcome{Status: StatusNoop}
}
