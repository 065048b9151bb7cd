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

package worker

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nabbar/rpclink/errors"
)

// defaultQueueDepth bounds the shared FIFO queue; a full queue means dispatch
// drops the message per the resource-exhaustion policy rather than
// blocking the event loop.
const defaultQueueDepth = 256

type pool struct {
	queue  chan Job
	group  *errgroup.Group
	cancel context.CancelFunc
}

// New starts count worker goroutines (at least 2; a smaller count is
// raised to 2), each with its own scratchpad
// buffer of scratchpadSize bytes, draining a single shared queue in FIFO
// order and invoking handle for every job.
func New(count int, scratchpadSize int, handle Handler) Pool {
	if count < 2 {
		count = 2
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)

	p := &pool{
		queue:  make(chan Job, defaultQueueDepth),
		group:  g,
		cancel: cancel,
	}

	for i := 0; i < count; i++ {
		scratch := make([]byte, scratchpadSize)
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return drain(p.queue, handle, scratch)
				case job, ok := <-p.queue:
					if !ok {
						return nil
					}
					handle(job, scratch)
				}
			}
		})
	}

	return p
}

// drain runs out any jobs left in queue once shutdown has been
// signalled, so a job accepted just before Close is never silently lost.
func drain(queue chan Job, handle Handler, scratch []byte) error {
	for {
		select {
		case job, ok := <-queue:
			if !ok {
				return nil
			}
			handle(job, scratch)
		default:
			return nil
		}
	}
}

func (p *pool) Dispatch(job Job) errors.Error {
	select {
	case p.queue <- job:
		return nil
	default:
		return errors.OutOfMemory.Error()
	}
}

func (p *pool) Close() {
	p.cancel()
	close(p.queue)
	_ = p.group.Wait()
}
