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

package errors

import (
	"fmt"
)

type ers struct {
	c uint16
	e string
	p []Error
	f string
	l int
}

func newError(code CodeError, msg string, parent ...error) Error {
	fr := getFrame()

	e := &ers{
		c: code.Uint16(),
		e: msg,
		f: fr.File,
		l: fr.Line,
	}
	e.Add(parent...)
	return e
}

// New builds a new Error with an explicit numeric code and message.
func New(code uint16, msg string, parent ...error) Error {
	return newError(CodeError(code), msg, parent...)
}

func (e *ers) IsCode(code CodeError) bool {
	return e.c == code.Uint16()
}

func (e *ers) HasCode(code CodeError) bool {
	if e.IsCode(code) {
		return true
	}
	for _, p := range e.p {
		if p.HasCode(code) {
			return true
		}
	}
	return false
}

func (e *ers) GetCode() CodeError {
	return CodeError(e.c)
}

func (e *ers) Is(target error) bool {
	o, ok := target.(*ers)
	if !ok {
		return false
	}
	return e.c == o.c && e.e == o.e
}

func (e *ers) HasParent() bool {
	return len(e.p) > 0
}

func (e *ers) GetParent(withMainError bool) []error {
	res := make([]error, 0, len(e.p)+1)
	if withMainError {
		res = append(res, &ers{c: e.c, e: e.e, f: e.f, l: e.l})
	}
	for _, p := range e.p {
		res = append(res, p.GetParent(true)...)
	}
	return res
}

func (e *ers) Map(fct FuncMap) bool {
	if !fct(e) {
		return false
	}
	for _, p := range e.p {
		if !p.Map(fct) {
			return false
		}
	}
	return true
}

func (e *ers) Add(parent ...error) {
	for _, p := range parent {
		if p == nil {
			continue
		}
		if ce, ok := p.(Error); ok {
			e.p = append(e.p, ce)
		} else {
			e.p = append(e.p, New(UnknownError.Uint16(), p.Error()))
		}
	}
}

func (e *ers) Code() uint16 {
	return e.c
}

func (e *ers) StringError() string {
	return e.e
}

func (e *ers) Error() string {
	if len(e.p) == 0 {
		return fmt.Sprintf("[%d] %s", e.c, e.e)
	}
	return fmt.Sprintf("[%d] %s: %s", e.c, e.e, e.p[0].Error())
}

func (e *ers) GetTrace() string {
	if e.f == "" {
		return ""
	}
	return fmt.Sprintf("%s#%d", filterPath(e.f), e.l)
}

func (e *ers) Unwrap() []error {
	if len(e.p) == 0 {
		return nil
	}
	res := make([]error, 0, len(e.p))
	for _, p := range e.p {
		res = append(res, p)
	}
	return res
}
