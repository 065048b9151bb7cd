/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package reactor

import (
	"sync"
)

// Reactor owns the shared event channel and the set of live watcher
// goroutines feeding it. The server's main loop is the single consumer
// of Wait; any number of producers may call Add concurrently.
type Reactor struct {
	mu     sync.Mutex
	stop   map[Handle]chan struct{}
	events chan Event
	closed bool
}

// New builds a Reactor whose event channel buffers up to queueDepth
// pending events before a producer goroutine blocks trying to publish
// one - this is the equivalent of the readiness facility's max events
// per wait() call.
func New(queueDepth int) *Reactor {
	if queueDepth <= 0 {
		queueDepth = 32
	}
	return &Reactor{
		stop:   make(map[Handle]chan struct{}),
		events: make(chan Event, queueDepth),
	}
}

// Add registers w under handle and starts the goroutine that feeds the
// shared event channel until w errors or Remove/Close is called.
func (r *Reactor) Add(handle Handle, w Watcher) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	r.stop[handle] = stop
	r.mu.Unlock()

	go r.pump(handle, w, stop)
}

func (r *Reactor) pump(handle Handle, w Watcher, stop chan struct{}) {
	for {
		err := w.WaitReadable()

		select {
		case <-stop:
			return
		default:
		}

		mask := In
		if err != nil {
			mask = Disconnect
		}

		if !r.publish(Event{Handle: handle, Mask: mask}, stop) {
			return
		}
		if mask == Disconnect {
			return
		}
	}
}

func (r *Reactor) publish(ev Event, stop chan struct{}) bool {
	select {
	case r.events <- ev:
		return true
	case <-stop:
		return false
	}
}

// Remove stops the watcher goroutine registered for handle, if any.
func (r *Reactor) Remove(handle Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stop, ok := r.stop[handle]; ok {
		close(stop)
		delete(r.stop, handle)
	}
}

// Wait blocks for the next event. ok is false once the Reactor has been
// closed and no further events will arrive.
func (r *Reactor) Wait() (Event, bool) {
	ev, ok := <-r.events
	return ev, ok
}

// Close stops every watcher goroutine and the event channel. Safe to
// call once.
func (r *Reactor) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	for h, stop := range r.stop {
		close(stop)
		delete(r.stop, h)
	}
	r.mu.Unlock()

	close(r.events)
}
