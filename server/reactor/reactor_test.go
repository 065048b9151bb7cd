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

package reactor_test

import (
	"errors"
	"sync"
	"time"

	"github.com/nabbar/rpclink/server/reactor"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// onceWatcher fires In exactly once, then blocks until told to disconnect.
type onceWatcher struct {
	mu       sync.Mutex
	fired    bool
	disc     chan struct{}
}

func newOnceWatcher() *onceWatcher {
	return &onceWatcher{disc: make(chan struct{})}
}

func (w *onceWatcher) WaitReadable() error {
	w.mu.Lock()
	if !w.fired {
		w.fired = true
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	<-w.disc
	return errors.New("disconnected")
}

var _ = Describe("Reactor", func() {
	It("delivers an In event for a registered watcher", func() {
		r := reactor.New(8)
		defer r.Close()

		w := newOnceWatcher()
		r.Add(1, w)

		ev, ok := r.Wait()
		Expect(ok).To(BeTrue())
		Expect(ev.Handle).To(Equal(reactor.Handle(1)))
		Expect(ev.Mask).To(Equal(reactor.In))

		close(w.disc)
	})

	It("delivers a Disconnect event once the watcher errors", func() {
		r := reactor.New(8)
		defer r.Close()

		w := newOnceWatcher()
		r.Add(2, w)

		first, _ := r.Wait()
		Expect(first.Mask).To(Equal(reactor.In))

		close(w.disc)

		second, ok := r.Wait()
		Expect(ok).To(BeTrue())
		Expect(second.Mask).To(Equal(reactor.Disconnect))
	})

	It("stops delivering events once Remove is called", func() {
		r := reactor.New(8)
		defer r.Close()

		w := newOnceWatcher()
		r.Add(3, w)
		_, _ = r.Wait()
		r.Remove(3)
		close(w.disc)

		select {
		case ev, ok := <-waitChan(r):
			Expect(ok && ev.Handle == 3).To(BeFalse())
		case <-time.After(50 * time.Millisecond):
		}
	})

	It("closes its event channel on Close", func() {
		r := reactor.New(4)
		r.Close()

		_, ok := r.Wait()
		Expect(ok).To(BeFalse())
	})
})

func waitChan(r *reactor.Reactor) <-chan reactor.Event {
	ch := make(chan reactor.Event, 1)
	go func() {
		if ev, ok := r.Wait(); ok {
			ch <- ev
		}
	}()
	return ch
}
