package domain

import "errors"

var (
	// ErrFeedUnavailable indicates a transport-level failure (timeout,
	// connection error, server error) talking to a feed. The cycle aborts
	// and the previous snapshot stays published.
	ErrFeedUnavailable = errors.New("feed unavailable")

	// ErrFeedMalformed indicates the feed answered but the payload could not
	// be decoded. Treated like ErrFeedUnavailable for retry purposes.
	ErrFeedMalformed = errors.New("feed payload malformed")

	// ErrNoReconcilableStations indicates the two feeds produced zero paired
	// samples. Reportable but non-fatal; the cycle aborts.
	ErrNoReconcilableStations = errors.New("no reconcilable stations")

	// ErrInsufficientData indicates aggregation over zero stations. Should be
	// unreachable when ErrNoReconcilableStations is checked first; kept as a
	// defensive double-check so a NaN aggregate can never reach the
	// classifier.
	ErrInsufficientData = errors.New("insufficient data to aggregate")
)
