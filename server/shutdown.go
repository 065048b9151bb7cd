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

package server

import (
	"context"

	"github.com/nabbar/rpclink/errors"
)

// Shutdown tears the server down in spec.md §4.5's order: every client
// destroyed first (firing clientDisconnected for each), then the
// reactor, the worker pool, the buffer provider, and finally both links.
// Safe to call more than
// once; only the first call does any work.
func (s *srv) Shutdown(_ context.Context) errors.Error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	var handles []uint64
	s.clients.Range(func(handle uint64, _ *clientRecord) bool {
		handles = append(handles, handle)
		return true
	})
	for _, h := range handles {
		_ = s.destroyClient(h)
	}

	s.react.Close()

	if s.pool != nil {
		s.pool.Close()
	}

	s.buffers.Close()

	if s.cfg.StreamLink != nil {
		_ = s.cfg.StreamLink.Destroy()
	}
	if s.cfg.DatagramLink != nil {
		_ = s.cfg.DatagramLink.Destroy()
	}

	return nil
}
