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

package unix_test

import (
	"net"
	"os"
	"path/filepath"

	"github.com/nabbar/rpclink/link/unix"
	"github.com/nabbar/rpclink/message"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("unix.Link", func() {
	var sockPath string

	BeforeEach(func() {
		sockPath = filepath.Join(os.TempDir(), "rpclink-test.sock")
		_ = os.Remove(sockPath)
	})

	AfterEach(func() {
		_ = os.Remove(sockPath)
	})

	It("listens, accepts, and round-trips a message", func() {
		l := unix.New(sockPath, 0o600, 4096)
		h, err := l.Listen()
		Expect(err).To(BeNil())
		Expect(h).To(Equal(unix.ListenerHandle))

		w, werr := l.Watcher(unix.ListenerHandle)
		Expect(werr).To(BeNil())

		accepted := make(chan struct{})
		go func() {
			defer close(accepted)
			Expect(w.WaitReadable()).To(BeNil())
		}()

		dialer, derr := net.Dial("unix", sockPath)
		Expect(derr).To(BeNil())
		defer dialer.Close()

		Eventually(accepted).Should(BeClosed())

		clientHandle, aerr := l.Accept()
		Expect(aerr).To(BeNil())

		cw, cwerr := l.Watcher(clientHandle)
		Expect(cwerr).To(BeNil())

		msg := &message.Message{Header: message.Header{ID: 55, Protocol: 1, Action: 2}}
		bufs, eerr := message.Encode(msg)
		Expect(eerr).To(BeNil())
		_, werr2 := bufs.WriteTo(dialer)
		Expect(werr2).To(BeNil())

		Expect(cw.WaitReadable()).To(BeNil())

		buf := make([]byte, 4096+512)
		got, rerr := l.RecvClient(clientHandle, buf)
		Expect(rerr).To(BeNil())
		Expect(got.ID).To(Equal(uint32(55)))
	})

	It("fails Listen on an invalid path", func() {
		l := unix.New("/nonexistent-dir/does-not-exist/socket.sock", 0o600, 1024)
		_, err := l.Listen()
		Expect(err).NotTo(BeNil())
	})

	It("rejects RecvPacket as unsupported", func() {
		l := unix.New(sockPath, 0o600, 1024)
		_, _, err := l.RecvPacket(make([]byte, 16))
		Expect(err).NotTo(BeNil())
	})

	It("reports NotFound for an unregistered client handle", func() {
		l := unix.New(sockPath, 0o600, 1024)
		_, err := l.Watcher(99)
		Expect(err).NotTo(BeNil())
	})
})
