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

// Package buffer supplies receive buffers to the server core under one
// of two ownership regimes, selected once at startup from the configured
// worker count: a single static receive buffer, handed out again on
// every Get, for single-threaded mode, or a mutex-protected bump-allocated arena for multi-threaded
// mode. Both satisfy Provider so the server core never branches on mode.
package buffer

import "github.com/nabbar/rpclink/errors"

// ContextOverhead is the extra space reserved in every allocation beyond
// max_message_size, for per-message context: peer address, link handle,
// parse cursor.
const ContextOverhead = 512

// Provider hands out receive buffers and reclaims them once a worker (or
// the single-threaded loop) is done with a message.
type Provider interface {
	// Get returns one buffer sized for at most one message
	// (max_message_size + ContextOverhead).
	Get() ([]byte, errors.Error)

	// Put returns a buffer obtained from Get back to the provider. The
	// static pair ignores this; the arena frees the block.
	Put(buf []byte)

	// AllocationSize is the fixed size of every buffer this provider hands out.
	AllocationSize() int

	// InUse reports how many blocks are currently on loan. The static
	// pair always reports 0; the arena reports its free-list deficit.
	InUse() int

	// Close releases any resources the provider owns.
	Close()
}
