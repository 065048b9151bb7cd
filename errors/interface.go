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

// Package errors provides the boundary error type for the runtime: a small
// set of numeric codes (the ones spec.md §6 names at the client/server
// boundary) wrapped in an Error interface that carries a parent chain and a
// capture site, and is compatible with errors.Is/errors.As.
package errors

// FuncMap is called for each error in a hierarchy by Map; returning false
// stops the walk.
type FuncMap func(e error) bool

// Error extends the standard error with a numeric code, a parent chain and
// capture-site information.
type Error interface {
	error

	// IsCode reports whether this error's own code equals code.
	IsCode(code CodeError) bool
	// HasCode reports whether this error or any parent has code.
	HasCode(code CodeError) bool
	// GetCode returns this error's own code.
	GetCode() CodeError

	// Is implements compatibility with the standard errors.Is.
	Is(e error) bool

	// HasParent reports whether this error has at least one parent.
	HasParent() bool
	// GetParent returns the flattened parent chain; withMainError also
	// includes this error as the first element.
	GetParent(withMainError bool) []error
	// Map walks this error and its parents depth-first, stopping early if
	// fct returns false.
	Map(fct FuncMap) bool

	// Add appends non-nil errors to the parent chain.
	Add(parent ...error)

	// Code returns the numeric code as a plain uint16.
	Code() uint16
	// StringError returns the message for this error alone, no parents.
	StringError() string

	// GetTrace returns the "file#line" capture site of this error.
	GetTrace() string

	// Unwrap exposes the parent chain for errors.Is/errors.As.
	Unwrap() []error
}
