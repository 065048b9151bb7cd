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

package message_test

import (
	"bytes"
	"io"

	"github.com/nabbar/rpclink/message"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func flatten(bufs [][]byte) []byte {
	var out []byte
	for _, b := range bufs {
		out = append(out, b...)
	}
	return out
}

var _ = Describe("Encode/Decode", func() {
	It("round-trips a message with no parameters", func() {
		msg := &message.Message{
			Header: message.Header{ID: 7, Protocol: 5, Action: 1},
		}

		bufs, err := message.Encode(msg)
		Expect(err).To(BeNil())

		raw := flatten(bufs)
		got, derr := message.Decode(raw)
		Expect(derr).To(BeNil())
		Expect(got.ID).To(Equal(uint32(7)))
		Expect(got.Protocol).To(Equal(uint8(5)))
		Expect(got.Action).To(Equal(uint8(1)))
		Expect(got.Length).To(Equal(uint32(len(raw))))
	})

	It("round-trips a scalar in-parameter", func() {
		msg := &message.Message{
			Header: message.Header{ID: 1, Protocol: 0, Action: 0, ParamIn: 1},
			Params: []message.Param{
				{Kind: message.KindScalar32, Value: 42},
			},
		}

		bufs, err := message.Encode(msg)
		Expect(err).To(BeNil())

		got, derr := message.Decode(flatten(bufs))
		Expect(derr).To(BeNil())
		Expect(got.Params).To(HaveLen(1))
		Expect(got.Params[0].Value).To(Equal(uint64(42)))
	})

	It("round-trips a buffer parameter's payload", func() {
		payload := []byte("hello world")
		msg := &message.Message{
			Header: message.Header{ID: 2, Protocol: 1, Action: 3, ParamIn: 1},
			Params: []message.Param{
				{Kind: message.KindBuffer, Length: uint32(len(payload)), Buffer: payload},
			},
		}

		bufs, err := message.Encode(msg)
		Expect(err).To(BeNil())

		got, derr := message.Decode(flatten(bufs))
		Expect(derr).To(BeNil())
		Expect(got.Params[0].Buffer).To(Equal(payload))
	})

	It("rejects a mismatched parameter count", func() {
		msg := &message.Message{
			Header: message.Header{ParamIn: 2},
			Params: []message.Param{{Kind: message.KindScalar8}},
		}
		_, err := message.Encode(msg)
		Expect(err).NotTo(BeNil())
	})

	It("panics on a shared-memory parameter during encode", func() {
		msg := &message.Message{
			Header: message.Header{ParamIn: 1},
			Params: []message.Param{{Kind: message.KindShared}},
		}
		Expect(func() { _, _ = message.Encode(msg) }).To(Panic())
	})

	It("fails to decode a buffer shorter than the fixed header", func() {
		_, err := message.Decode([]byte{1, 2, 3})
		Expect(err).NotTo(BeNil())
	})

	It("reports a short read on a truncated buffer payload", func() {
		payload := []byte("hello world")
		msg := &message.Message{
			Header: message.Header{ID: 2, ParamIn: 1},
			Params: []message.Param{
				{Kind: message.KindBuffer, Length: uint32(len(payload)), Buffer: payload},
			},
		}
		bufs, _ := message.Encode(msg)
		raw := flatten(bufs)

		_, err := message.Decode(raw[:len(raw)-5])
		Expect(err).NotTo(BeNil())
	})

	It("writes the scatter-gather vector through net.Buffers like a real connection would", func() {
		msg := &message.Message{Header: message.Header{ID: 3}}
		bufs, err := message.Encode(msg)
		Expect(err).To(BeNil())

		var w bytes.Buffer
		n, werr := bufs.WriteTo(&w)
		Expect(werr).To(Or(BeNil(), Equal(io.EOF)))
		Expect(n).To(Equal(int64(message.HeaderSize)))
	})
})
