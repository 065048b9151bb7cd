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

package config_test

import (
	"os"
	"path/filepath"

	"github.com/nabbar/rpclink/config"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	Describe("Validate", func() {
		It("rejects a config with no socket path at all", func() {
			c := &config.Config{}
			Expect(c.Validate()).ToNot(BeNil())
		})

		It("rejects a negative max message size", func() {
			c := &config.Config{StreamSocketPath: "/tmp/a.sock", MaxMessageSize: -1}
			Expect(c.Validate()).ToNot(BeNil())
		})

		It("fills in the default max message size when unset", func() {
			c := &config.Config{StreamSocketPath: "/tmp/a.sock"}
			Expect(c.Validate()).To(BeNil())
			Expect(c.MaxMessageSize).To(Equal(config.DefaultMaxMessageSize))
		})

		It("accepts a datagram-only config", func() {
			c := &config.Config{DatagramSocketPath: "/tmp/a.sock"}
			Expect(c.Validate()).To(BeNil())
		})
	})

	Describe("Permissions", func() {
		It("defaults to 0600 when SocketPermissions is empty", func() {
			c := &config.Config{}
			mode, err := c.Permissions()
			Expect(err).To(BeNil())
			Expect(mode).To(Equal(os.FileMode(0600)))
		})

		It("parses an explicit octal string", func() {
			c := &config.Config{SocketPermissions: "0640"}
			mode, err := c.Permissions()
			Expect(err).To(BeNil())
			Expect(mode).To(Equal(os.FileMode(0640)))
		})

		It("rejects a malformed permission string", func() {
			c := &config.Config{SocketPermissions: "not-an-octal"}
			_, err := c.Permissions()
			Expect(err).ToNot(BeNil())
		})
	})

	Describe("Load", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "rpclink-config-*")
			Expect(err).ToNot(HaveOccurred())
		})

		AfterEach(func() {
			_ = os.RemoveAll(dir)
		})

		It("loads and validates a YAML file", func() {
			path := filepath.Join(dir, "rpclink.yaml")
			Expect(os.WriteFile(path, []byte(
				"stream_socket_path: /tmp/rpclink.sock\nworkers: 4\n",
			), 0644)).To(Succeed())

			cfg, err := config.Load(path)
			Expect(err).To(BeNil())
			Expect(cfg.StreamSocketPath).To(Equal("/tmp/rpclink.sock"))
			Expect(cfg.Workers).To(Equal(4))
			Expect(cfg.MaxMessageSize).To(Equal(config.DefaultMaxMessageSize))
		})

		It("rejects a file it cannot find", func() {
			_, err := config.Load(filepath.Join(dir, "missing.yaml"))
			Expect(err).ToNot(BeNil())
		})

		It("rejects a config with no socket path once defaults are applied", func() {
			path := filepath.Join(dir, "empty.yaml")
			Expect(os.WriteFile(path, []byte("workers: 2\n"), 0644)).To(Succeed())

			_, err := config.Load(path)
			Expect(err).ToNot(BeNil())
		})
	})
})
