// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"
)

// TestNewEventBus tests the creation of a new event bus
func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	if bus == nil {
		t.Fatal("NewEventBus() returned nil")
	}

	if bus.handlers == nil {
		t.Error("handlers map not initialized")
	}

	if bus.nextID != 1 {
		t.Errorf("expected nextID to be 1, got %d", bus.nextID)
	}
}

func TestBaseEvent_Accessors(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		source    interface{}
	}{
		{"SystemComposed event", SystemComposed, "test_source"},
		{"NodeDesynchronized event", NodeDesynchronized, 123},
		{"Empty source", DriverStarted, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &BaseEvent{EventType: tt.eventType, Source: tt.source}
			if e.GetType() != tt.eventType {
				t.Errorf("expected type %s, got %s", tt.eventType, e.GetType())
			}
			if e.GetSource() != tt.source {
				t.Errorf("expected source %v, got %v", tt.source, e.GetSource())
			}
		})
	}
}

func TestBus_PublishReachesSubscribersInOrder(t *testing.T) {
	bus := NewEventBus()
	var order []int

	bus.Subscribe(SystemComposed, func(Event) { order = append(order, 1) })
	bus.Subscribe(SystemComposed, func(Event) { order = append(order, 2) })
	bus.Subscribe(DriverStarted, func(Event) { order = append(order, 99) })

	bus.Publish(NewSystemEvent("test", "Sol", 12, 15))

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("expected handlers [1 2], got %v", order)
	}
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewEventBus()
	bus.Publish(NewDriverEvent(DriverStopped, "test", 10, 1.5))
}

func TestBus_PublishOnNilBus(t *testing.T) {
	var bus *Bus
	bus.Publish(NewDriverEvent(DriverStarted, "test", 0, 0))
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()
	calls := 0

	first := bus.Subscribe(NodeDesynchronized, func(Event) { calls++ })
	second := bus.Subscribe(NodeDesynchronized, func(Event) { calls += 10 })

	if first == second {
		t.Fatalf("expected distinct subscription IDs, got %d twice", first)
	}

	if !bus.Unsubscribe(NodeDesynchronized, first) {
		t.Fatal("Unsubscribe() did not find the first handler")
	}
	if bus.Unsubscribe(NodeDesynchronized, first) {
		t.Error("Unsubscribe() removed the same handler twice")
	}
	if bus.Unsubscribe(SystemComposed, second) {
		t.Error("Unsubscribe() matched a handler under the wrong type")
	}

	bus.Publish(NewNodeEvent("test", "Earth/Moon", 4, "missing descriptor"))
	if calls != 10 {
		t.Errorf("expected only the second handler to run, calls = %d", calls)
	}
}

func TestBus_TypedEventPayloads(t *testing.T) {
	bus := NewEventBus()
	var got *NodeEvent

	bus.Subscribe(NodeDesynchronized, func(e Event) {
		if ne, ok := e.(*NodeEvent); ok {
			got = ne
		}
	})
	bus.Publish(NewNodeEvent("scene", "Mars/Phobos", 7, "descriptor mismatch"))

	if got == nil {
		t.Fatal("handler did not receive a *NodeEvent")
	}
	if got.Path != "Mars/Phobos" || got.Frame != 7 || got.Reason != "descriptor mismatch" {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestBus_ConcurrentSubscribeAndPublish(t *testing.T) {
	bus := NewEventBus()
	var wg sync.WaitGroup
	var mu sync.Mutex
	count := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Subscribe(DriverStarted, func(Event) {
				mu.Lock()
				count++
				mu.Unlock()
			})
			bus.Publish(NewDriverEvent(DriverStarted, "test", 0, 0))
		}()
	}
	wg.Wait()

	if count == 0 {
		t.Error("expected at least one handler invocation")
	}
}
