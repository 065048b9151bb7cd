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

package logger_test

import (
	lblog "github.com/nabbar/rpclink/logger"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Logger", func() {
	It("defaults to info level", func() {
		l := lblog.New()
		Expect(l.GetLevel()).To(Equal(lblog.InfoLevel))
	})

	It("accepts a level change", func() {
		l := lblog.New()
		l.SetLevel(lblog.DebugLevel)
		Expect(l.GetLevel()).To(Equal(lblog.DebugLevel))
	})

	It("returns a derived logger carrying protocol/action/client/worker fields", func() {
		l := lblog.New().WithProtocol(1).WithAction(7).WithClient(99).WithWorker(2)
		Expect(l).NotTo(BeNil())
	})

	It("chains WithError without panicking", func() {
		l := lblog.New().WithError(context_canceled{})
		Expect(l).NotTo(BeNil())
	})
})

type context_canceled struct{}

func (context_canceled) Error() string { return "canceled" }
