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

package atomic_test

import (
	lbatm "github.com/nabbar/rpclink/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Map", func() {
	It("stores and loads a value by key", func() {
		m := lbatm.NewMap[uint32]()
		m.Store(1, "client-a")

		v, ok := m.Load(1)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("client-a"))
	})

	It("reports a miss for an absent key", func() {
		m := lbatm.NewMap[uint32]()
		_, ok := m.Load(42)
		Expect(ok).To(BeFalse())
	})

	It("deletes an entry", func() {
		m := lbatm.NewMap[uint32]()
		m.Store(1, "client-a")
		m.Delete(1)

		_, ok := m.Load(1)
		Expect(ok).To(BeFalse())
	})

	It("ranges over every stored entry", func() {
		m := lbatm.NewMap[uint32]()
		m.Store(1, "a")
		m.Store(2, "b")

		seen := map[uint32]any{}
		m.Range(func(key uint32, value any) bool {
			seen[key] = value
			return true
		})

		Expect(seen).To(HaveLen(2))
		Expect(seen[1]).To(Equal("a"))
		Expect(seen[2]).To(Equal("b"))
	})

	It("loads or stores atomically", func() {
		m := lbatm.NewMap[uint32]()
		actual, loaded := m.LoadOrStore(1, "first")
		Expect(loaded).To(BeFalse())
		Expect(actual).To(Equal("first"))

		actual, loaded = m.LoadOrStore(1, "second")
		Expect(loaded).To(BeTrue())
		Expect(actual).To(Equal("first"))
	})
})

type protocolRecord struct {
	ID   uint8
	Name string
}

var _ = Describe("MapTyped", func() {
	It("narrows values to the declared type", func() {
		m := lbatm.NewMapTyped[uint8, protocolRecord]()
		m.Store(0, protocolRecord{ID: 0, Name: "control"})

		v, ok := m.Load(0)
		Expect(ok).To(BeTrue())
		Expect(v.Name).To(Equal("control"))
	})

	It("reports the zero value on a miss", func() {
		m := lbatm.NewMapTyped[uint8, protocolRecord]()
		v, ok := m.Load(3)
		Expect(ok).To(BeFalse())
		Expect(v).To(Equal(protocolRecord{}))
	})

	It("ranges over typed entries", func() {
		m := lbatm.NewMapTyped[uint8, protocolRecord]()
		m.Store(0, protocolRecord{ID: 0, Name: "control"})
		m.Store(1, protocolRecord{ID: 1, Name: "echo"})

		count := 0
		m.Range(func(key uint8, value protocolRecord) bool {
			count++
			return true
		})
		Expect(count).To(Equal(2))
	})
})

var _ = Describe("Cast", func() {
	It("succeeds when the underlying value matches", func() {
		v, ok := lbatm.Cast[int](42)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(42))
	})

	It("fails when the underlying value does not match", func() {
		_, ok := lbatm.Cast[int]("not-an-int")
		Expect(ok).To(BeFalse())
	})
})
