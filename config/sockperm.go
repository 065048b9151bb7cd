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
	"os"

	"github.com/nabbar/rpclink/errors"
	"github.com/nabbar/rpclink/file/perm"
)

// defaultSocketPermissions is applied when SocketPermissions is empty.
const defaultSocketPermissions = "0600"

// Permissions parses SocketPermissions (an octal string like "0600")
// into an os.FileMode, the form link/unix and link/unixgram's New
// constructors take. An empty string falls back to 0600.
func (c *Config) Permissions() (os.FileMode, errors.Error) {
	s := c.SocketPermissions
	if s == "" {
		s = defaultSocketPermissions
	}

	p, err := perm.Parse(s)
	if err != nil {
		return 0, errors.InvalidArgument.Errorf("config: invalid socket_permissions %q: %s", s, err.Error())
	}
	return p.FileMode(), nil
}
