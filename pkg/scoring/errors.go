package scoring

import "errors"

// Sentinel errors forming the evaluation error taxonomy: analyzer-local
// failures propagate as one of these, and the transport boundary maps each
// to a status code. CoherenceSkipped is advisory and never reaches that
// mapping: no analyzer returns it, and a skipped coherence component reaches
// the aggregator as a nil result, not as an error.
var (
	ErrInputTooShort    = errors.New("text is too short for evaluation (minimum 20 words required)")
	ErrUpstreamTimeout  = errors.New("upstream grammar engine timed out")
	ErrUpstreamFailure  = errors.New("upstream service failure")
	ErrInternalFailure  = errors.New("internal evaluation failure")
	ErrCoherenceSkipped = errors.New("coherence analysis skipped: no credential configured")
	ErrInvalidAudience  = errors.New("invalid audience tag")
)
