// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Scene and driver event types
const (
	SystemComposed     Type = "system_composed"
	NodeDesynchronized Type = "node_desynchronized"
	DriverStarted      Type = "driver_started"
	DriverStopped      Type = "driver_stopped"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// SubscriptionID identifies a registered handler for Unsubscribe.
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine, in subscription order.
type Bus struct {
	handlers map[Type][]subscription
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscription),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})
	return id
}

// Unsubscribe removes a handler. It reports whether the handler was found.
func (b *Bus) Unsubscribe(eventType Type, id SubscriptionID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, sub := range subs {
		if sub.id == id {
			b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
			return true
		}
	}
	return false
}

// Publish sends an event to all subscribed handlers. A nil bus drops the event.
func (b *Bus) Publish(event Event) {
	if b == nil {
		return
	}

	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	handlers := make([]Handler, len(subs))
	for i, sub := range subs {
		handlers[i] = sub.handler
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// SystemEvent reports a freshly composed scene.
type SystemEvent struct {
	BaseEvent
	Name   string
	Bodies int
	Nodes  int
}

// NewSystemEvent creates a SystemComposed event
func NewSystemEvent(source interface{}, name string, bodies, nodes int) *SystemEvent {
	return &SystemEvent{
		BaseEvent: BaseEvent{
			EventType: SystemComposed,
			Source:    source,
		},
		Name:   name,
		Bodies: bodies,
		Nodes:  nodes,
	}
}

// NodeEvent reports a node skipped during an update.
type NodeEvent struct {
	BaseEvent
	Path   string
	Frame  uint64
	Reason string
}

// NewNodeEvent creates a NodeDesynchronized event
func NewNodeEvent(source interface{}, path string, frame uint64, reason string) *NodeEvent {
	return &NodeEvent{
		BaseEvent: BaseEvent{
			EventType: NodeDesynchronized,
			Source:    source,
		},
		Path:   path,
		Frame:  frame,
		Reason: reason,
	}
}

// DriverEvent reports the frame driver starting or stopping.
type DriverEvent struct {
	BaseEvent
	Frames  uint64
	Elapsed float64
}

// NewDriverEvent creates a DriverStarted or DriverStopped event
func NewDriverEvent(eventType Type, source interface{}, frames uint64, elapsed float64) *DriverEvent {
	return &DriverEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Frames:  frames,
		Elapsed: elapsed,
	}
}
