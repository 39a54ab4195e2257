package grid

// Phase classifies a cell relative to "now" so page shells can pick a visual
// treatment. The editor itself never branches on it.
type Phase int

const (
	Past Phase = iota
	Current
	Future
)

// String returns the lowercase phase name, used as a CSS class hook.
func (p Phase) String() string {
	switch p {
	case Past:
		return "past"
	case Current:
		return "current"
	default:
		return "future"
	}
}

// Commit is a pending write produced by closing an edit session. The caller
// persists it and, on success, folds it back with Apply. Commits are
// unconditional: defocusing always produces one, even when the content did
// not change, because saves are idempotent.
type Commit[K comparable] struct {
	Key     K
	Content string
}

// Editor is the single-focus edit state machine for one grid instance.
// It owns the in-memory mapping from cell key to committed content and at
// most one open edit session with a draft buffer. It is not safe for
// concurrent use; each page request owns its own instance.
type Editor[K comparable] struct {
	cells   map[K]string
	editing *K
	draft   string
}

// NewEditor creates an editor over the loaded cell contents. A nil map is
// treated as an empty grid: every cell reads as empty content.
func NewEditor[K comparable](cells map[K]string) *Editor[K] {
	if cells == nil {
		cells = make(map[K]string)
	}
	return &Editor[K]{cells: cells}
}

// Content returns the committed content for a cell, empty string if the cell
// has never been edited.
// INVARIANT: absence is empty content, never an error
func (e *Editor[K]) Content(key K) string {
	return e.cells[key]
}

// Editing returns the key currently in edit mode, if any.
func (e *Editor[K]) Editing() (K, bool) {
	if e.editing == nil {
		var zero K
		return zero, false
	}
	return *e.editing, true
}

// Draft returns the current draft buffer. Meaningful only while editing.
func (e *Editor[K]) Draft() string {
	return e.draft
}

// Begin opens an edit session on key, loading its committed content into the
// draft buffer. If another cell is already open, its session is closed first
// and the resulting commit returned, so switching cells is a single atomic
// transition: at no instant are two cells in the editing state.
func (e *Editor[K]) Begin(key K) (Commit[K], bool) {
	var prev Commit[K]
	closed := false
	if e.editing != nil {
		if *e.editing == key {
			// Re-selecting the open cell keeps the session and draft.
			return prev, false
		}
		prev, closed = e.Defocus()
	}
	k := key
	e.editing = &k
	e.draft = e.cells[key]
	return prev, closed
}

// SetDraft replaces the draft buffer. Keystrokes update the draft only;
// nothing is persisted until Defocus.
func (e *Editor[K]) SetDraft(content string) {
	if e.editing == nil {
		return
	}
	e.draft = content
}

// Defocus closes the open edit session and returns the pending commit. The
// editor transitions to Viewing immediately, but the cell map is not updated
// until the caller persists the commit and calls Apply — a failed save must
// leave the in-memory state unchanged.
func (e *Editor[K]) Defocus() (Commit[K], bool) {
	if e.editing == nil {
		return Commit[K]{}, false
	}
	c := Commit[K]{Key: *e.editing, Content: e.draft}
	e.editing = nil
	e.draft = ""
	return c, true
}

// Apply folds a successfully persisted commit into the cell map, keeping the
// in-memory copy consistent with the last successful write.
func (e *Editor[K]) Apply(c Commit[K]) {
	e.cells[c.Key] = c.Content
}
