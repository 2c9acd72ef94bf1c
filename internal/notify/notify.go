// Package notify delivers field change events to subscribed observers.
//
// Observers subscribe to every event or to a single Kind and are called
// synchronously, in subscription order, after the field operation that
// produced the event has settled.
package notify

import (
	"sync"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

// Kind identifies what changed.
type Kind int

const (
	// ValueChanged indicates a new stored value was published.
	ValueChanged Kind = iota

	// EditingChanged indicates the text started or stopped differing from
	// the rendering of the committed value.
	EditingChanged

	// Reconfigured indicates the field options were replaced.
	Reconfigured
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case ValueChanged:
		return "value"
	case EditingChanged:
		return "editing"
	case Reconfigured:
		return "reconfigured"
	default:
		return "unknown"
	}
}

// Event describes a change of one field.
type Event struct {
	// Field identifies the field instance.
	Field uuid.UUID

	// Kind is the type of change.
	Kind Kind

	// Value is the stored value after the change.
	Value decimal.Decimal

	// Previous is the stored value before the change.
	Previous decimal.Decimal

	// Editing is the editing state after the change.
	Editing bool

	// Text is the display text after the change.
	Text string
}

// Observer is called for each delivered event.
type Observer func(Event)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription. It is safe to call more than
// once.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

type entry struct {
	id       uint64
	kind     Kind
	all      bool
	observer Observer
}

// Notifier manages subscriptions.
type Notifier struct {
	mu      sync.RWMutex
	entries []entry
	nextID  uint64
}

// New creates a Notifier.
func New() *Notifier {
	return &Notifier{}
}

// Subscribe registers an observer for all events.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.add(entry{all: true, observer: observer})
}

// SubscribeKind registers an observer for events of one kind.
func (n *Notifier) SubscribeKind(kind Kind, observer Observer) *Subscription {
	return n.add(entry{kind: kind, observer: observer})
}

func (n *Notifier) add(e entry) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	e.id = n.nextID
	n.nextID++
	n.entries = append(n.entries, e)
	return &Subscription{id: e.id, notifier: n}
}

// Notify delivers ev to every matching observer.
func (n *Notifier) Notify(ev Event) {
	n.mu.RLock()
	var observers []Observer
	for _, e := range n.entries {
		if e.all || e.kind == ev.Kind {
			observers = append(observers, e.observer)
		}
	}
	n.mu.RUnlock()

	// Call observers outside the lock so they may subscribe or unsubscribe.
	for _, obs := range observers {
		obs(ev)
	}
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.entries)
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, e := range n.entries {
		if e.id == id {
			n.entries = append(n.entries[:i:i], n.entries[i+1:]...)
			return
		}
	}
}
