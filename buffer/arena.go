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

import (
	"sync"
	"unsafe"

	"github.com/nabbar/rpclink/errors"
)

// blocksPerWorker is the "32" in the arena sizing formula: workers *
// per-message-allocation * 32.
const blocksPerWorker = 32

// arena is the multi-threaded provider: a single backing byte slice cut
// into fixed-size blocks, handed out and reclaimed under one mutex. It
// is a bump allocator in the sense that it never compacts: Put only ever
// returns a block to the free list, it does not shrink or move storage.
type arena struct {
	mu      sync.Mutex
	size    int
	base    uintptr
	backing []byte
	free    []int
}

// NewArena builds a Provider for multi-threaded mode (server_workers >
// 1). Its total capacity is workers * (maxMessageSize + ContextOverhead)
// * blocksPerWorker bytes, cut into blocksPerWorker * workers fixed-size
// blocks.
func NewArena(workers int, maxMessageSize int) Provider {
	size := maxMessageSize + ContextOverhead
	count := workers * blocksPerWorker
	backing := make([]byte, size*count)

	a := &arena{
		size:    size,
		base:    uintptr(unsafe.Pointer(&backing[0])),
		backing: backing,
		free:    make([]int, count),
	}
	for i := 0; i < count; i++ {
		a.free[i] = count - 1 - i
	}
	return a
}

func (a *arena) Get() ([]byte, errors.Error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.free) == 0 {
		return nil, errors.OutOfMemory.Error()
	}

	idx := a.free[len(a.free)-1]
	a.free = a.free[:len(a.free)-1]

	return a.backing[idx*a.size : (idx+1)*a.size], nil
}

// blockIndex recovers which block buf was carved from, from its backing
// pointer offset - the arena hands out sub-slices of one allocation, so
// pointer arithmetic is the cheapest way back to a free-list slot.
func (a *arena) blockIndex(buf []byte) (int, bool) {
	if len(buf) == 0 {
		return 0, false
	}
	off := uintptr(unsafe.Pointer(&buf[0])) - a.base
	idx := int(off) / a.size
	if idx < 0 || idx*a.size != int(off) || idx >= len(a.backing)/a.size {
		return 0, false
	}
	return idx, true
}

func (a *arena) Put(buf []byte) {
	if buf == nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	idx, ok := a.blockIndex(buf)
	if !ok {
		return
	}
	a.free = append(a.free, idx)
}

func (a *arena) AllocationSize() int {
	return a.size
}

// InUse is the count of blocks not currently on the free list.
func (a *arena) InUse() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.backing)/a.size - len(a.free)
}

func (a *arena) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.backing = nil
	a.free = nil
}
