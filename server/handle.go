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

import "github.com/nabbar/rpclink/link"

// linkKind tags which of the server's two links a handle belongs to.
// Each concrete link.Link numbers its own handles independently starting
// at 1, so the stream listener and the datagram listener would otherwise
// collide on handle 1 the moment both are active. The server keeps one
// flat handle space (for the reactor and the client registry) by
// stealing the top byte of the uint64 as a kind tag.
type linkKind uint64

const (
	kindStream   linkKind = 1
	kindDatagram linkKind = 2
)

const kindShift = 56

func makeHandle(kind linkKind, local link.Handle) uint64 {
	return uint64(kind)<<kindShift | (uint64(local) &^ (uint64(0xff) << kindShift))
}

func splitHandle(handle uint64) (linkKind, link.Handle) {
	kind := linkKind(handle >> kindShift)
	local := handle &^ (uint64(0xff) << kindShift)
	return kind, link.Handle(local)
}
