package quadfill

import (
	"fmt"

	"github.com/Faultbox/quadfill/internal/mesh"
	"github.com/Faultbox/quadfill/pkg/math"
)

// State is the lifecycle phase of a Session.
type State int

const (
	// StateIdle means no boundary is captured.
	StateIdle State = iota
	// StateCaptured means a boundary is captured but no preview exists yet.
	StateCaptured
	// StatePreviewing means a live preview patch exists.
	StatePreviewing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCaptured:
		return "captured"
	case StatePreviewing:
		return "previewing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Params are the live fill parameters: the boundary rotation offset (the
// pole position, for odd boundaries) and the grid density Sx.
type Params struct {
	Offset int
	Spans  int
}

// Options configure a Session. Zero values fall back to the defaults the
// tool ships with.
type Options struct {
	// WeldTolerance is the seam vertex merge distance. Default 1e-4.
	WeldTolerance float64
	// ClosureTolerance decides when the left boundary curve counts as
	// already closed. Default 1e-6.
	ClosureTolerance float64
}

// Session drives the interactive fill workflow: capture a hole boundary,
// rebuild a live preview patch on every parameter change, then commit the
// patch into the target mesh as one history entry. Preview rebuilds never
// touch the history; the rebuild runs inside a suppression scope that is
// released on every exit path.
//
// A session owns at most one preview mesh and references, never owns, the
// target mesh. Sessions are single-threaded, matching the editor.
type Session struct {
	ed   *mesh.Editor
	opts Options

	state      State
	target     mesh.MeshID
	loop       *Loop
	params     Params
	preview    mesh.MeshID
	hasPreview bool

	// reusable effective-boundary buffer, rebuilt every preview tick
	buf []math.Vec3
}

// NewSession creates a session over the given editor.
func NewSession(ed *mesh.Editor, opts Options) *Session {
	if opts.WeldTolerance <= 0 {
		opts.WeldTolerance = 1e-4
	}
	if opts.ClosureTolerance <= 0 {
		opts.ClosureTolerance = 1e-6
	}
	return &Session{ed: ed, opts: opts}
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	return s.state
}

// Loop returns the captured boundary, or nil when idle.
func (s *Session) Loop() *Loop {
	return s.loop
}

// Params returns the parameters of the current preview.
func (s *Session) Params() Params {
	return s.params
}

// Preview returns the live preview mesh ID, if one exists.
func (s *Session) Preview() (mesh.MeshID, bool) {
	return s.preview, s.hasPreview
}

// MaxOffset returns the largest meaningful rotation offset for the captured
// boundary.
func (s *Session) MaxOffset() int {
	if s.loop == nil {
		return 0
	}
	return s.loop.Len() - 1
}

// MaxSpans returns the largest Sx that still leaves a positive derived span.
func (s *Session) MaxSpans() int {
	if s.loop == nil {
		return 0
	}
	m := s.effectiveCount()/2 - 1
	if m < 1 {
		return 1
	}
	return m
}

func (s *Session) effectiveCount() int {
	n := s.loop.Len()
	if s.loop.IsOdd() {
		return n + 1
	}
	return n
}

// CaptureBoundary recovers the ordered, oriented boundary loop from an
// unordered set of boundary edges of the target mesh and moves the session
// to Captured. On failure the session returns to Idle.
func (s *Session) CaptureBoundary(target mesh.MeshID, edges []mesh.EdgeID) error {
	s.Cancel() // drop any live preview from a previous capture

	if len(edges) < 4 {
		return fmt.Errorf("%w: need at least 4, got %d", ErrInsufficientEdges, len(edges))
	}

	verts, positions, err := extractLoop(s.ed, target, edges)
	if err != nil {
		return err
	}

	holeNormal := detectHoleNormal(s.ed, target, edges)
	orientLoop(verts, positions, holeNormal)

	s.target = target
	s.loop = &Loop{Verts: verts, Positions: positions, HoleNormal: holeNormal}
	s.state = StateCaptured
	return nil
}

// SetParameters rebuilds the preview with the given rotation offset and
// span count. Any previous preview is replaced. The rebuild is invisible to
// the history. On a recoverable error (ErrInvalidSpan) the session and any
// existing preview are left as they were.
func (s *Session) SetParameters(offset, spans int) error {
	if s.state != StateCaptured && s.state != StatePreviewing {
		return fmt.Errorf("no boundary captured (state %s)", s.state)
	}

	n := s.loop.Len()
	offset = ((offset % n) + n) % n

	effective := s.effectiveCount()
	if spans < 1 {
		return fmt.Errorf("%w: spans must be positive, got %d", ErrInvalidSpan, spans)
	}
	sy := (effective - 2*spans) / 2
	if sy < 1 {
		return fmt.Errorf("%w: Sx=%d leaves Sy=%d for %d boundary points, reduce Sx",
			ErrInvalidSpan, spans, sy, effective)
	}

	s.buf = effectiveBoundary(s.buf, s.loop.Positions, offset, s.loop.IsOdd())

	// The whole rebuild is a visualization step: suppression is released on
	// every exit path, errors included.
	h := s.ed.History()
	h.BeginSuppression()
	defer h.EndSuppression()

	if s.hasPreview {
		if err := s.ed.DeleteMesh(s.preview); err != nil {
			return fmt.Errorf("%w: discarding stale preview: %v", ErrConstructionFailure, err)
		}
		s.hasPreview = false
	}
	id, _, err := buildPatch(s.ed, s.buf, spans, sy, s.loop.HoleNormal, s.opts.ClosureTolerance)
	if err != nil {
		return err
	}

	s.preview = id
	s.hasPreview = true
	s.params = Params{Offset: offset, Spans: spans}
	s.state = StatePreviewing
	return nil
}

// Commit finalizes the fill: discards the preview, rebuilds the patch at the
// current parameters, unions it into the target mesh and welds the seam
// vertex pairs only. The whole mutation is one named history transaction,
// closed on every exit path. On success the session returns to Idle and the
// combined mesh ID is returned; on failure the session stays Previewing so
// the commit can be retried or cancelled.
func (s *Session) Commit() (mesh.MeshID, error) {
	if s.state != StatePreviewing {
		return 0, fmt.Errorf("nothing to commit (state %s)", s.state)
	}

	effective := s.effectiveCount()
	sy := (effective - 2*s.params.Spans) / 2
	rotated := rotateVerts(s.loop.Verts, s.params.Offset)

	h := s.ed.History()
	h.OpenTransaction("quadFill")
	defer h.CloseTransaction()

	// The preview disappears without its own history entry.
	h.BeginSuppression()
	var discardErr error
	if s.hasPreview {
		discardErr = s.ed.DeleteMesh(s.preview)
	}
	h.EndSuppression()
	if discardErr != nil {
		return 0, fmt.Errorf("%w: discarding preview: %v", ErrCommitFailure, discardErr)
	}
	s.hasPreview = false

	targetCount, err := s.ed.VertexCount(s.target)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCommitFailure, err)
	}

	// Rebuild once more at the committed parameters so the final geometry
	// matches the last preview exactly.
	s.buf = effectiveBoundary(s.buf, s.loop.Positions, s.params.Offset, s.loop.IsOdd())
	patch, walk, err := buildPatch(s.ed, s.buf, s.params.Spans, sy, s.loop.HoleNormal, s.opts.ClosureTolerance)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCommitFailure, err)
	}

	combined, err := s.ed.UnionMeshes(s.target, patch)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCommitFailure, err)
	}

	// Weld only the seam: the patch perimeter and the original boundary
	// vertices. Patch vertices sit after the target's in the combined mesh.
	seam := make([]mesh.VertexID, 0, len(walk)+len(rotated))
	for _, idx := range walk {
		seam = append(seam, mesh.VertexID(targetCount+idx))
	}
	seam = append(seam, rotated...)
	if _, err := s.ed.MergeVerticesByDistance(combined, seam, s.opts.WeldTolerance); err != nil {
		return 0, fmt.Errorf("%w: seam weld: %v", ErrCommitFailure, err)
	}

	s.reset()
	return combined, nil
}

// Cancel discards any live preview without recording history and returns
// the session to Idle.
func (s *Session) Cancel() {
	if s.hasPreview {
		h := s.ed.History()
		h.BeginSuppression()
		_ = s.ed.DeleteMesh(s.preview)
		h.EndSuppression()
	}
	s.reset()
}

func (s *Session) reset() {
	s.state = StateIdle
	s.target = 0
	s.loop = nil
	s.params = Params{}
	s.preview = 0
	s.hasPreview = false
}
