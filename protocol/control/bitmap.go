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

// Package control implements the built-in protocol id 0: per-protocol
// subscription (targeted unicast and broadcast gating), unsubscription,
// and server-originated error notifications.
package control

// ProtocolID is the reserved id of the built-in control protocol.
const ProtocolID uint8 = 0

// Action indices within the control protocol's table.
const (
	ActionSubscribe uint8 = iota
	ActionUnsubscribe
	ActionError
)

// AllProtocols is the subscription sentinel meaning "every protocol id".
// It is never a usable ordinary protocol id.
const AllProtocols uint8 = 0xFF

// Bitmap is the 256-bit (8 x u32 words) per-client subscription set.
type Bitmap [8]uint32

// Set marks protocolID as subscribed. AllProtocols sets every bit.
func (b *Bitmap) Set(protocolID uint8) {
	if protocolID == AllProtocols {
		b.SetAll()
		return
	}
	b[protocolID/32] |= 1 << (protocolID % 32)
}

// Clear marks protocolID as unsubscribed. AllProtocols clears every bit.
func (b *Bitmap) Clear(protocolID uint8) {
	if protocolID == AllProtocols {
		b.ClearAll()
		return
	}
	b[protocolID/32] &^= 1 << (protocolID % 32)
}

// IsSet reports whether protocolID's bit is set.
func (b Bitmap) IsSet(protocolID uint8) bool {
	return b[protocolID/32]&(1<<(protocolID%32)) != 0
}

// SetAll sets every bit.
func (b *Bitmap) SetAll() {
	for i := range b {
		b[i] = 0xffffffff
	}
}

// ClearAll clears every bit.
func (b *Bitmap) ClearAll() {
	for i := range b {
		b[i] = 0
	}
}
