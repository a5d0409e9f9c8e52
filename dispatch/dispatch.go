// Package dispatch routes typed commands to their registered handlers
// by numeric command id. Command ids are a small dense enum, so the
// table is an array indexed directly by id rather than a scanned list
// of (id, handler) pairs. Registration is one-shot at startup: the
// first handler registered for an id wins, and later registrations of
// the same id are ignored.
package dispatch

import (
	"github.com/Theo-Muyard/Seed-core/command"
	"github.com/Theo-Muyard/Seed-core/errcode"
)

// Handler executes one command kind against the manager. manager is
// typed as `any` to avoid an import cycle with the root package that
// composes the dispatcher; handlers downcast it back to their concrete
// manager type.
type Handler func(manager any, cmd *command.Command) error

// Dispatcher routes a Command to the Handler registered for its ID.
type Dispatcher struct {
	handlers []Handler
	capacity int
}

// Init allocates a dispatcher able to hold capacity distinct command
// ids.
func Init(capacity int) *Dispatcher {
	return &Dispatcher{
		handlers: make([]Handler, capacity),
		capacity: capacity,
	}
}

// Register places fn under id. It fails if the dispatcher is nil, fn is
// nil, or id falls outside the table's capacity. Registering an id that
// already has a handler is a no-op: the first registration wins.
func (d *Dispatcher) Register(id command.ID, fn Handler) error {
	if d == nil {
		return errcode.DispatcherNotInitialized
	}
	if fn == nil {
		return errcode.InvalidPayload
	}
	idx := int(id)
	if idx < 0 || idx >= d.capacity {
		return errcode.InvalidCommandID
	}
	if d.handlers[idx] != nil {
		return nil
	}
	d.handlers[idx] = fn
	return nil
}

// Exec looks up cmd.ID and invokes its handler with manager, returning
// the handler's result verbatim. It returns InvalidCommandID if no
// handler was registered for cmd.ID, and InvalidCommand/InvalidManager
// for nil inputs.
func (d *Dispatcher) Exec(manager any, cmd *command.Command) error {
	if d == nil {
		return errcode.DispatcherNotInitialized
	}
	if manager == nil {
		return errcode.InvalidManager
	}
	if cmd == nil {
		return errcode.InvalidCommand
	}
	idx := int(cmd.ID)
	if idx < 0 || idx >= d.capacity {
		return errcode.InvalidCommandID
	}
	fn := d.handlers[idx]
	if fn == nil {
		return errcode.InvalidCommandID
	}
	return fn(manager, cmd)
}

// Clean releases the dispatcher's table. Kept as an explicit lifecycle
// step so the manager's teardown mirrors its construction order.
func (d *Dispatcher) Clean() {
	if d == nil {
		return
	}
	d.handlers = nil
	d.capacity = 0
}
