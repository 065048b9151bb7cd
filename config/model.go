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

// Package config holds the runtime's startup configuration and its
// loader, in the style of the teacher's socket/config package: a plain
// struct with a Validate method, loadable from YAML or environment
// variables through github.com/spf13/viper.
package config

import (
	"github.com/nabbar/rpclink/errors"
)

// Config is the equivalent of spec.md §6's gracht_server_configuration,
// flattened to the fields this runtime actually needs to build its two
// links and pick an execution mode.
type Config struct {
	// StreamSocketPath is the bind path for the SOCK_STREAM listener.
	// Empty disables the stream link; at least one of StreamSocketPath
	// and DatagramSocketPath must be set.
	StreamSocketPath string `mapstructure:"stream_socket_path" yaml:"stream_socket_path"`

	// DatagramSocketPath is the bind path for the SOCK_DGRAM socket.
	DatagramSocketPath string `mapstructure:"datagram_socket_path" yaml:"datagram_socket_path"`

	// SocketPermissions is an octal string (e.g. "0600") applied to each
	// bound socket file, parsed by the Permissions method.
	SocketPermissions string `mapstructure:"socket_permissions" yaml:"socket_permissions"`

	// MaxMessageSize upper-bounds a single message; the buffer
	// provider's allocation size is this plus buffer.ContextOverhead.
	MaxMessageSize int `mapstructure:"max_message_size" yaml:"max_message_size"`

	// Workers selects the execution mode: 0 or 1 is single-threaded
	// cooperative, >=2 is the multi-threaded worker pool.
	Workers int `mapstructure:"workers" yaml:"workers"`

	// ReadinessQueueDepth sizes the reactor's event channel; 0 uses its
	// own default.
	ReadinessQueueDepth int `mapstructure:"readiness_queue_depth" yaml:"readiness_queue_depth"`
}

// DefaultMaxMessageSize is used when a loaded Config leaves
// MaxMessageSize unset.
const DefaultMaxMessageSize = 64 * 1024

// Validate checks the invariants spec.md §4.5's initialize step 5
// enforces: at least one socket path must be set, and the message size
// bound must be positive.
func (c *Config) Validate() errors.Error {
	if c.StreamSocketPath == "" && c.DatagramSocketPath == "" {
		return errors.InvalidArgument.Errorf("config: at least one of stream_socket_path or datagram_socket_path is required")
	}
	if c.MaxMessageSize < 0 {
		return errors.InvalidArgument.Errorf("config: max_message_size must not be negative")
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = DefaultMaxMessageSize
	}
	return nil
}
