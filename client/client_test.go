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

package client_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nabbar/rpclink/client"
	"github.com/nabbar/rpclink/errors"
	"github.com/nabbar/rpclink/link/unix"
	"github.com/nabbar/rpclink/link/unixgram"
	"github.com/nabbar/rpclink/message"
	"github.com/nabbar/rpclink/protocol"
	"github.com/nabbar/rpclink/server"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const maxMessageSize = 4096

func tempSocket(name string) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s-%d.sock", name, time.Now().UnixNano()))
}

var _ = Describe("Stream client", func() {
	var (
		socketPath string
		srv        server.Server
		ctx        context.Context
		cancel     context.CancelFunc
		loopDone   chan errors.Error
	)

	BeforeEach(func() {
		socketPath = tempSocket("rpclink-client")
		var err errors.Error
		srv, err = server.New(server.Config{
			StreamLink:     unix.New(socketPath, 0600, maxMessageSize),
			MaxMessageSize: maxMessageSize,
		})
		Expect(err).To(BeNil())

		Expect(srv.RegisterProtocol(protocol.Table{
			ID: 9,
			Actions: []protocol.Action{
				func(c protocol.Context) {
					_ = srv.Respond(c, &message.Message{Header: message.Header{Protocol: 9, Action: 0}})
				},
			},
		})).To(BeNil())

		ctx, cancel = context.WithCancel(context.Background())
		loopDone = make(chan errors.Error, 1)
		go func() { loopDone <- srv.MainLoop(ctx) }()
	})

	AfterEach(func() {
		cancel()
		Eventually(loopDone, 2*time.Second).Should(Receive())
		_ = os.Remove(socketPath)
	})

	It("round-trips a Call and gets back the same correlation id it assigned", func() {
		var (
			c   client.Client
			err errors.Error
		)
		Eventually(func() errors.Error {
			c, err = client.Dial(socketPath, maxMessageSize)
			return err
		}, 2*time.Second, 10*time.Millisecond).Should(BeNil())
		defer func() { _ = c.Close() }()

		callCtx, callCancel := context.WithTimeout(context.Background(), time.Second)
		defer callCancel()

		req := &message.Message{Header: message.Header{Protocol: 9, Action: 0}}
		resp, cerr := c.Call(callCtx, req)
		Expect(cerr).To(BeNil())
		Expect(resp.Protocol).To(Equal(uint8(9)))
		Expect(resp.ID).To(Equal(req.ID))
	})

	It("times out a Call that never gets a matching response", func() {
		// An unknown protocol is answered with a control error carrying the
		// request id, so the silent action here is what leaves a Call unanswered.
		Expect(srv.RegisterProtocol(protocol.Table{
			ID:      10,
			Actions: []protocol.Action{func(protocol.Context) {}},
		})).To(BeNil())

		c, err := client.Dial(socketPath, maxMessageSize)
		Expect(err).To(BeNil())
		defer func() { _ = c.Close() }()

		callCtx, callCancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer callCancel()

		_, cerr := c.Call(callCtx, &message.Message{Header: message.Header{Protocol: 10, Action: 0}})
		Expect(cerr).ToNot(BeNil())
	})
})

var _ = Describe("Datagram client", func() {
	var (
		socketPath string
		localPath  string
		srv        server.Server
		ctx        context.Context
		cancel     context.CancelFunc
		loopDone   chan errors.Error
	)

	BeforeEach(func() {
		socketPath = tempSocket("rpclink-dgram-server")
		localPath = tempSocket("rpclink-dgram-client")
		var err errors.Error
		srv, err = server.New(server.Config{
			DatagramLink:   unixgram.New(socketPath, 0600, maxMessageSize),
			MaxMessageSize: maxMessageSize,
		})
		Expect(err).To(BeNil())

		ctx, cancel = context.WithCancel(context.Background())
		loopDone = make(chan errors.Error, 1)
		go func() { loopDone <- srv.MainLoop(ctx) }()
	})

	AfterEach(func() {
		cancel()
		Eventually(loopDone, 2*time.Second).Should(Receive())
		_ = os.Remove(socketPath)
		_ = os.Remove(localPath)
	})

	It("subscribes and receives a broadcast as an event", func() {
		c, err := client.DialDatagram(socketPath, localPath, maxMessageSize)
		Expect(err).To(BeNil())
		defer func() { _ = c.Close() }()

		Expect(c.Subscribe(4)).To(BeNil())
		time.Sleep(50 * time.Millisecond)

		Expect(srv.BroadcastEvent(&message.Message{Header: message.Header{Protocol: 4, Action: 1}})).To(BeNil())

		Eventually(c.Events(), time.Second).Should(Receive(WithTransform(
			func(m *message.Message) uint8 { return m.Protocol },
			Equal(uint8(4)),
		)))
	})
})
