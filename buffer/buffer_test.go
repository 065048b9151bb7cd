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

package buffer_test

import (
	"github.com/nabbar/rpclink/buffer"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("StaticPair", func() {
	It("sizes its buffer to maxMessageSize + ContextOverhead", func() {
		p := buffer.NewStaticPair(1024)
		Expect(p.AllocationSize()).To(Equal(1024 + buffer.ContextOverhead))

		b, err := p.Get()
		Expect(err).To(BeNil())
		Expect(b).To(HaveLen(1024 + buffer.ContextOverhead))
	})

	It("returns the same buffer on every Get", func() {
		p := buffer.NewStaticPair(64)
		a, _ := p.Get()
		b, _ := p.Get()
		Expect(&a[0]).To(Equal(&b[0]))
	})

	It("ignores Put", func() {
		p := buffer.NewStaticPair(64)
		b, _ := p.Get()
		Expect(func() { p.Put(b) }).NotTo(Panic())
	})
})

var _ = Describe("Arena", func() {
	It("hands out blocks sized maxMessageSize + ContextOverhead", func() {
		a := buffer.NewArena(2, 256)
		b, err := a.Get()
		Expect(err).To(BeNil())
		Expect(b).To(HaveLen(256 + buffer.ContextOverhead))
	})

	It("reclaims a freed block for reuse", func() {
		a := buffer.NewArena(1, 64)
		first, _ := a.Get()
		a.Put(first)
		second, err := a.Get()
		Expect(err).To(BeNil())
		Expect(&second[0]).To(Equal(&first[0]))
	})

	It("exhausts its free list and returns OutOfMemory", func() {
		a := buffer.NewArena(1, 32)

		var got [][]byte
		var lastErr error
		for {
			b, err := a.Get()
			if err != nil {
				lastErr = err
				break
			}
			got = append(got, b)
		}
		Expect(len(got)).To(BeNumerically(">", 0))
		Expect(lastErr).NotTo(BeNil())
	})

	It("allows out-of-order frees", func() {
		a := buffer.NewArena(1, 32)
		b1, _ := a.Get()
		b2, _ := a.Get()
		a.Put(b2)
		a.Put(b1)

		r1, err1 := a.Get()
		r2, err2 := a.Get()
		Expect(err1).To(BeNil())
		Expect(err2).To(BeNil())
		Expect(r1).NotTo(BeNil())
		Expect(r2).NotTo(BeNil())
	})
})
