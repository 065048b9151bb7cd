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

// Package message implements the runtime's on-wire framing: a fixed
// 12-byte header, a vector of 16-byte parameter descriptors, and the
// concatenated buffer-parameter payloads that follow it. Every link
// implementation encodes and decodes through this package, so the wire
// layout itself never leaks into socket-specific code.
package message

import "github.com/nabbar/rpclink/errors"

// HeaderSize is the fixed byte size of the message header.
const HeaderSize = 12

// ParamSize is the fixed byte size of one parameter descriptor.
const ParamSize = 16

// ParamKind selects how a parameter descriptor's value field is
// interpreted.
type ParamKind uint8

const (
	KindScalar8 ParamKind = iota
	KindScalar16
	KindScalar32
	KindScalar64
	KindBuffer
	// KindShared names a shared-memory parameter. The original runtime
	// never implemented it; encoding or decoding one is a programmer
	// error and panics rather than returning an error.
	KindShared
)

// Param is one entry of a message's parameter vector.
type Param struct {
	Kind ParamKind
	// Length is the payload length for KindBuffer, 0 for scalars.
	Length uint32
	// Value carries an inline scalar for the scalar kinds.
	Value uint64
	// Buffer carries the payload bytes for KindBuffer, nil otherwise.
	Buffer []byte
}

// Header is the fixed leading part of every message.
type Header struct {
	ID       uint32
	Length   uint32
	Protocol uint8
	Action   uint8
	ParamIn  uint8
	ParamOut uint8
}

// Message is a full, self-describing wire record.
type Message struct {
	Header
	Params []Param
}

// descriptorVectorSize returns the byte size of the parameter descriptor
// vector for a message declaring in in-parameters and out out-parameters.
func descriptorVectorSize(in, out uint8) uint32 {
	return uint32(in+out) * ParamSize
}

// assertNoShared panics if any parameter in params names the reserved
// shared-memory kind, per the hard-assertion requirement on both the
// encode and decode paths.
func assertNoShared(params []Param) {
	for _, p := range params {
		if p.Kind == KindShared {
			panic("message: shared-memory parameter is not supported")
		}
	}
}

// ErrShortHeader signals a buffer too small to hold a fixed header.
var ErrShortHeader = errors.Pipe.Error()
