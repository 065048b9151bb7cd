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

package control_test

import (
	"github.com/nabbar/rpclink/protocol/control"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Bitmap", func() {
	It("sets and clears individual bits", func() {
		var b control.Bitmap
		b.Set(3)
		b.Set(200)
		Expect(b.IsSet(3)).To(BeTrue())
		Expect(b.IsSet(200)).To(BeTrue())
		Expect(b.IsSet(4)).To(BeFalse())

		b.Clear(3)
		Expect(b.IsSet(3)).To(BeFalse())
		Expect(b.IsSet(200)).To(BeTrue())
	})

	It("sets every bit on the 0xFF sentinel", func() {
		var b control.Bitmap
		b.Set(control.AllProtocols)
		for i := 0; i < 256; i++ {
			Expect(b.IsSet(uint8(i))).To(BeTrue())
		}
	})

	It("clears every bit on the 0xFF sentinel", func() {
		var b control.Bitmap
		b.SetAll()
		b.Clear(control.AllProtocols)
		for i := 0; i < 256; i++ {
			Expect(b.IsSet(uint8(i))).To(BeFalse())
		}
	})
})
