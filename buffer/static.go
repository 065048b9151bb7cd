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

package buffer

import "github.com/nabbar/rpclink/errors"

// staticPair is the single-threaded provider: one receive buffer handed
// back on every Get, never reclaimed by Put. It is only safe when the
// server core guarantees a message is fully handled before the next
// receive, which single-threaded mode does by construction.
type staticPair struct {
	size int
	recv []byte
}

// NewStaticPair builds a Provider for single-threaded mode
// (server_workers <= 1): one receive buffer sized maxMessageSize +
// ContextOverhead, returned as-is on every Get, with no locking.
func NewStaticPair(maxMessageSize int) Provider {
	size := maxMessageSize + ContextOverhead
	return &staticPair{
		size: size,
		recv: make([]byte, size),
	}
}

func (s *staticPair) Get() ([]byte, errors.Error) {
	return s.recv, nil
}

func (s *staticPair) Put([]byte) {}

func (s *staticPair) AllocationSize() int {
	return s.size
}

// InUse is always 0: the static pair never tracks occupancy, since
// single-threaded mode guarantees at most one buffer outstanding.
func (s *staticPair) InUse() int {
	return 0
}

func (s *staticPair) Close() {}
