package dispatcher

import (
	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	"github.com/dshills/focuskit/internal/state"
)

// Snapshot is the committed kernel state.
type Snapshot struct {
	Focus state.Focus
	Data  any
}

// Change describes one committed dispatch.
type Change struct {
	Prev    Snapshot
	Next    Snapshot
	Command command.Command
	Effects []handler.Effect
}

// FocusChanged reports whether the change moved focus or selection.
func (c Change) FocusChanged() bool {
	return !c.Prev.Focus.Equal(c.Next.Focus)
}

// DataChanged reports whether the change replaced application data.
func (c Change) DataChanged() bool {
	return !state.SameData(c.Prev.Data, c.Next.Data)
}

// Subscriber receives committed changes in dispatch order.
type Subscriber func(Change)

type subscription struct {
	id int
	fn Subscriber
}

// Transactor groups history entries recorded by nested dispatches.
// The history middleware implements it.
type Transactor interface {
	BeginTransaction()
	EndTransaction()
}
