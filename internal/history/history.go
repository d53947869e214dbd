package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/focuskit/internal/command"
)

// DefaultLimit is the default maximum number of undo entries.
const DefaultLimit = 50

// Point is application data plus the focus position at one moment.
type Point struct {
	Data   any
	ZoneID string
	ItemID string
}

// Entry is one recorded command.
type Entry struct {
	Command   command.Command
	Timestamp time.Time

	// Snapshot is the application data before the command.
	Snapshot any

	// ZoneID and FocusedItemID locate the focus before the command.
	ZoneID        string
	FocusedItemID string

	// GroupID is set for entries recorded inside a transaction.
	GroupID string

	// redo is the state restored by redo. It is stamped when the entry
	// moves to the future stack.
	redo Point
}

// Before returns the state the entry's command started from.
func (e Entry) Before() Point {
	return Point{Data: e.Snapshot, ZoneID: e.ZoneID, ItemID: e.FocusedItemID}
}

// History manages undo/redo state for application data.
type History struct {
	mu sync.Mutex

	past   []Entry
	future []Entry

	// Transaction state
	depth   int
	groupID string

	// Configuration
	limit int
	newID func() string
}

// New creates a new history bounded to limit entries.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{
		limit: limit,
		newID: uuid.NewString,
	}
}

// Push records an entry and clears the redo stack.
// Inside a transaction the entry joins the open group.
func (h *History) Push(e Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.depth > 0 {
		e.GroupID = h.groupID
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	h.past = append(h.past, e)

	// Clear redo stack
	h.future = nil

	h.past = trim(h.past, h.limit)
}

// trim evicts the oldest steps until stack holds at most limit entries.
// A transaction is evicted whole, and the newest step is always kept.
func trim(stack []Entry, limit int) []Entry {
	start := 0
	for len(stack)-start > limit {
		end := start + 1
		if g := stack[start].GroupID; g != "" {
			for end < len(stack) && stack[end].GroupID == g {
				end++
			}
		}
		if end == len(stack) {
			break
		}
		start = end
	}
	if start == 0 {
		return stack
	}
	return append([]Entry(nil), stack[start:]...)
}

// Undo pops the latest step from the undo stack and returns the state to
// restore. current is the state being undone; redo returns to it.
// A step is one entry, or every trailing entry of one transaction.
func (h *History) Undo(current Point) (Point, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.past) == 0 {
		return Point{}, ErrNothingToUndo
	}

	step := popStep(&h.past)
	for i := range step {
		step[i].redo = current
	}
	h.future = append(h.future, step...)

	return step[0].Before(), nil
}

// Redo pops the latest step from the redo stack, moves it back onto the
// undo stack and returns the state to restore.
func (h *History) Redo() (Point, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.future) == 0 {
		return Point{}, ErrNothingToRedo
	}

	step := popStep(&h.future)
	h.past = append(h.past, step...)

	return step[len(step)-1].redo, nil
}

// popStep removes the trailing step from stack and returns it in stack order.
func popStep(stack *[]Entry) []Entry {
	s := *stack
	n := len(s)
	start := n - 1
	if g := s[start].GroupID; g != "" {
		for start > 0 && s[start-1].GroupID == g {
			start--
		}
	}
	step := append([]Entry(nil), s[start:]...)
	*stack = s[:start]
	return step
}

// BeginTransaction opens a transaction. Transactions nest; entries recorded
// until the outermost EndTransaction share one group id.
func (h *History) BeginTransaction() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.depth == 0 {
		h.groupID = h.newID()
	}
	h.depth++
}

// EndTransaction closes the innermost transaction.
func (h *History) EndTransaction() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth == 0 {
		h.groupID = ""
	}
}

// Transaction runs fn inside a transaction.
func (h *History) Transaction(fn func()) {
	h.BeginTransaction()
	defer h.EndTransaction()
	fn()
}

// InTransaction reports whether a transaction is open.
func (h *History) InTransaction() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.depth > 0
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.past) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.future) > 0
}

// Past returns a copy of the undo stack, oldest first.
func (h *History) Past() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Entry(nil), h.past...)
}

// Future returns a copy of the redo stack, oldest first.
func (h *History) Future() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Entry(nil), h.future...)
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.past = nil
	h.future = nil
	h.depth = 0
	h.groupID = ""
}

// SetLimit changes the maximum number of undo entries.
// If the current stack is larger, the oldest steps are removed.
func (h *History) SetLimit(limit int) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.limit = limit
	h.past = trim(h.past, limit)
}

// Limit returns the maximum number of undo entries.
func (h *History) Limit() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.limit
}
