package events

import (
	"sync"

	"go.uber.org/zap"
)

// Handler consumes one event. Handlers run synchronously on the emitting
// goroutine, in subscription order.
type Handler func(Event)

// Subscription identifies one registered handler so it can be removed.
type Subscription struct {
	event Type
	id    uint64
}

type entry struct {
	id uint64
	fn Handler
}

// Bus is a plain callback registry. Emission is depth-first: every handler
// registered at emission start runs to completion before Emit returns. A
// panicking handler is recovered and logged without aborting the round.
type Bus struct {
	mu       sync.Mutex
	nextID   uint64
	handlers map[Type][]entry
	log      *zap.Logger
}

func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		handlers: make(map[Type][]entry),
		log:      logger,
	}
}

// On registers the handler for the event and returns the subscription used
// to remove it.
func (b *Bus) On(event Type, fn Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.handlers[event] = append(b.handlers[event], entry{id: b.nextID, fn: fn})
	return Subscription{event: event, id: b.nextID}
}

// Off removes a previously registered handler. Unknown subscriptions are
// ignored.
func (b *Bus) Off(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.handlers[sub.event]
	for i, e := range list {
		if e.id == sub.id {
			b.handlers[sub.event] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Emit invokes the handlers currently registered for the event, in
// subscription order. Handlers may re-enter On/Off/Emit; changes take effect
// for the next emission round.
func (b *Bus) Emit(e Event) {
	b.mu.Lock()
	list := b.handlers[e.Type]
	snapshot := make([]entry, len(list))
	copy(snapshot, list)
	b.mu.Unlock()

	for _, h := range snapshot {
		b.dispatch(h.fn, e)
	}
}

func (b *Bus) dispatch(fn Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panicked",
				zap.String("event", string(e.Type)),
				zap.Any("error", r),
			)
		}
	}()
	fn(e)
}

// Reset drops every subscription. Used on teardown.
func (b *Bus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[Type][]entry)
}
