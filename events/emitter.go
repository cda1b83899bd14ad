/*
Package events delivers the notifications the extensions publish: mints,
transfers, burns, the sale lifecycle and the typed failure reports.

Notifications are observability only. They are fire-and-forget and must
never be used for control flow; a handler outcome is communicated through
its returned error, not through the bus.
*/
package events

import (
	evbus "github.com/asaskevich/EventBus"
)

// Emitter publishes a notification under a topic. Implementations must
// not block and must not return delivery information; the publisher never
// learns whether anyone listened.
type Emitter interface {
	Emit(topic string, event interface{})
}

// BusEmitter fans notifications out to an in-process event bus.
type BusEmitter struct {
	bus evbus.Bus
}

var _ Emitter = (*BusEmitter)(nil)

// NewBusEmitter creates an emitter with a fresh bus behind it.
func NewBusEmitter() *BusEmitter {
	return &BusEmitter{bus: evbus.New()}
}

// Emit publishes the event to all subscribers of the topic.
func (e *BusEmitter) Emit(topic string, event interface{}) {
	e.bus.Publish(topic, event)
}

// Subscribe registers a callback for a topic. The callback signature must
// accept the event type published under that topic.
func (e *BusEmitter) Subscribe(topic string, fn interface{}) error {
	return e.bus.Subscribe(topic, fn)
}

// Unsubscribe removes a previously registered callback.
func (e *BusEmitter) Unsubscribe(topic string, fn interface{}) error {
	return e.bus.Unsubscribe(topic, fn)
}

// NopEmitter drops all notifications. The zero value is usable.
type NopEmitter struct{}

var _ Emitter = NopEmitter{}

// Emit does nothing.
func (NopEmitter) Emit(string, interface{}) {}

// Recorded is one captured notification.
type Recorded struct {
	Topic string
	Event interface{}
}

// Recorder is an Emitter that keeps everything published to it. Useful in
// tests to assert on the notification stream.
type Recorder struct {
	Events []Recorded
}

var _ Emitter = (*Recorder)(nil)

// Emit stores the notification.
func (r *Recorder) Emit(topic string, event interface{}) {
	r.Events = append(r.Events, Recorded{Topic: topic, Event: event})
}

// Topics returns the topics of all recorded notifications in order.
func (r *Recorder) Topics() []string {
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Topic
	}
	return out
}
