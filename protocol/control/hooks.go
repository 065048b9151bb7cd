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

package control

import (
	"github.com/nabbar/rpclink/errors"
	"github.com/nabbar/rpclink/protocol"
)

// Hooks is the server-provided bridge the control protocol's actions call
// into. The server core implements it; control never imports the server
// package, avoiding an import cycle between the two.
type Hooks interface {
	// EnsureClient returns the client record's subscription bitmap for
	// ctx.Handle, registering one via the link's create_client facility
	// (using ctx.Addr) if it has no record yet - this is how datagram
	// peers, which never go through Accept, first become known clients.
	EnsureClient(ctx protocol.Context) (*Bitmap, errors.Error)

	// LookupClient returns handle's subscription bitmap without
	// registering one: unlike EnsureClient, a miss is reported rather
	// than manufacturing a client record.
	LookupClient(handle uint64) (*Bitmap, bool)

	// DestroyClient tears down the client record and its link-level
	// resources for handle.
	DestroyClient(handle uint64) errors.Error
}
