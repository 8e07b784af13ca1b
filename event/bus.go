package event

import "log"

// Handler receives a dispatched event.
type Handler[E any] func(evt E)

type subscription[E any] struct {
	id int
	h  Handler[E]
}

// Bus is a single-goroutine publish/subscribe queue. Publish only enqueues;
// Dispatch delivers queued events in FIFO order to every subscriber.
// Publishers never see subscribers.
type Bus[E any] struct {
	subs   []subscription[E]
	queue  []E
	nextID int
}

func NewBus[E any]() *Bus[E] {
	return &Bus[E]{}
}

// Subscribe registers h and returns a function that removes it.
func (b *Bus[E]) Subscribe(h Handler[E]) func() {
	if b == nil || h == nil {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription[E]{id: id, h: h})
	return func() { b.unsubscribe(id) }
}

func (b *Bus[E]) unsubscribe(id int) {
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish enqueues evt for the next Dispatch.
func (b *Bus[E]) Publish(evt E) {
	if b == nil {
		return
	}
	b.queue = append(b.queue, evt)
}

// Dispatch drains the queue and returns how many events were delivered.
// Events published by handlers are held for the following Dispatch.
func (b *Bus[E]) Dispatch() int {
	if b == nil || len(b.queue) == 0 {
		return 0
	}
	events := b.queue
	b.queue = nil
	subs := append([]subscription[E](nil), b.subs...)
	for _, evt := range events {
		for _, s := range subs {
			deliver(s.h, evt)
		}
	}
	return len(events)
}

// Pending reports queued, undelivered events.
func (b *Bus[E]) Pending() int {
	if b == nil {
		return 0
	}
	return len(b.queue)
}

// Clear drops queued events without delivering them.
func (b *Bus[E]) Clear() {
	if b == nil {
		return
	}
	b.queue = nil
}

func deliver[E any](h Handler[E], evt E) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("event: handler panicked: %v", r)
		}
	}()
	h(evt)
}
