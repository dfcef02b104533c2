package crispulator

import "errors"

// Every error kind below is fatal to the run that raised it: each one
// means the experiment was configured in a way that cannot produce a
// valid result, not that something transient went wrong. Nothing is
// retried and nothing is silently defaulted.
var (
	// ErrInvalidConfiguration marks structurally invalid inputs: empty
	// libraries, negative cell counts, malformed bin gates, etc.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNoNegativeControls is returned when a count table has no
	// negative control guides. Both normalization and the gene-level
	// rank test are anchored on them.
	ErrNoNegativeControls = errors.New("no negative control guides")

	// ErrGrowthStalled is returned when a growth round fails to
	// increase the population size.
	ErrGrowthStalled = errors.New("population growth stalled")

	// ErrMissingBin is returned when a requested bin is absent from the
	// sequencing count tables.
	ErrMissingBin = errors.New("missing sequencing bin")
)
