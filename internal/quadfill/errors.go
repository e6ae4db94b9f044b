package quadfill

import "errors"

// Recoverable failures of the fill workflow. All are reported to the caller
// with enough context to adjust parameters and retry; none corrupt the
// session. Match with errors.Is.
var (
	// ErrInsufficientEdges means fewer than 4 boundary edges were given.
	ErrInsufficientEdges = errors.New("insufficient boundary edges")

	// ErrMalformedBoundary means the edge set is not a single simple cycle.
	ErrMalformedBoundary = errors.New("malformed boundary")

	// ErrInvalidSpan means the requested density leaves no room for the
	// derived span (Sy < 1); the caller must reduce Sx.
	ErrInvalidSpan = errors.New("invalid span")

	// ErrConstructionFailure means the underlying grid primitive could not
	// be created or positioned.
	ErrConstructionFailure = errors.New("patch construction failed")

	// ErrCommitFailure means the union or weld step failed after a valid
	// preview existed. The session stays in Previewing so the commit can be
	// retried.
	ErrCommitFailure = errors.New("commit failed")
)
