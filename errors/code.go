/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors

import (
	"fmt"
	"strconv"
)

// CodeError is a small numeric classification, the Go equivalent of the
// boundary error codes spec.md §6 lists.
type CodeError uint16

const (
	// UnknownError is the zero value, used when no code applies.
	UnknownError CodeError = iota

	// InvalidArgument: initialize called with a nil config.
	InvalidArgument
	// AlreadyInitialized: initialize called on a server already running.
	AlreadyInitialized
	// NotSupported: a link kind (stream or datagram) is not offered by the
	// underlying transport, or a capability (e.g. shared-memory params)
	// the implementation refuses to honor.
	NotSupported
	// TooLarge: a message's length exceeds max_message_size.
	TooLarge
	// NoData: a non-blocking receive found nothing to read; expected, not
	// fatal.
	NoData
	// Pipe: a stream read/write failed short, or a datagram was shorter
	// than the fixed header.
	Pipe
	// NotFound: unknown protocol/action id, or a client handle not in the
	// registry.
	NotFound
	// OutOfMemory: the arena has no free block for an incoming message.
	OutOfMemory
	// Assertion: a programmer error was detected (the reserved
	// shared-memory parameter kind on send or receive). spec.md §9 allows
	// either a hard assertion failure or NotSupported; this runtime always
	// panics and never returns this code to a caller.
	Assertion
)

var codeMessage = map[CodeError]string{
	UnknownError:       "unknown error",
	InvalidArgument:    "invalid argument",
	AlreadyInitialized: "server already initialized",
	NotSupported:       "operation not supported",
	TooLarge:           "message exceeds maximum size",
	NoData:             "no data available",
	Pipe:               "broken pipe",
	NotFound:           "not found",
	OutOfMemory:        "out of memory",
	Assertion:          "assertion failure",
}

// Uint16 returns the code as a plain uint16.
func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

// String returns the decimal representation of the code.
func (c CodeError) String() string {
	return strconv.Itoa(int(c))
}

// Message returns the human-readable message registered for this code.
func (c CodeError) Message() string {
	if m, ok := codeMessage[c]; ok {
		return m
	}
	return codeMessage[UnknownError]
}

// Error builds a new Error carrying this code, with the given parents.
func (c CodeError) Error(parent ...error) Error {
	return newError(c, c.Message(), parent...)
}

// Errorf builds a new Error carrying this code, with a formatted message
// appended to the registered one.
func (c CodeError) Errorf(format string, args ...interface{}) Error {
	return newError(c, c.Message()+": "+fmt.Sprintf(format, args...), nil)
}
