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

package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/nabbar/rpclink/errors"
)

const envPrefix = "RPCLINK"

// Load reads a Config from the given file path, if any, layering
// environment variables (RPCLINK_STREAM_SOCKET_PATH and so on) on top,
// and validates the result. An empty path skips SetConfigFile and
// relies solely on the environment and the defaults Validate applies.
func Load(path string) (*Config, errors.Error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"stream_socket_path", "datagram_socket_path", "socket_permissions", "max_message_size", "workers", "readiness_queue_depth"} {
		_ = v.BindEnv(key)
	}

	v.SetDefault("max_message_size", DefaultMaxMessageSize)
	v.SetDefault("socket_permissions", defaultSocketPermissions)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NotFound.Errorf("config: reading %q: %s", path, err.Error())
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.InvalidArgument.Errorf("config: unmarshal: %s", err.Error())
	}

	if verr := cfg.Validate(); verr != nil {
		return nil, verr
	}
	return cfg, nil
}
