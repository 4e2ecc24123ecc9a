/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package startStop implements a reusable start/stop/restart lifecycle around
// a pair of caller-provided functions, tracking uptime and the errors each
// run produces.
package startStop

import (
	"context"
	"time"
)

// Func is the signature shared by the start and stop callbacks given to New.
type Func func(ctx context.Context) error

// StartStop manages the asynchronous lifecycle of a long-running function.
type StartStop interface {
	// Start launches the configured start function in its own goroutine and
	// returns immediately; errors from the function are available afterward
	// via ErrorsLast/ErrorsList. Calling Start while already running stops
	// the previous instance first.
	Start(ctx context.Context) error

	// Stop cancels the running instance and invokes the configured stop
	// function, blocking until it returns or ctx is done.
	Stop(ctx context.Context) error

	// IsRunning reports whether the start function is currently executing.
	IsRunning() bool

	// Uptime returns the duration since the current run started, or zero
	// when not running.
	Uptime() time.Duration

	// ErrorsLast returns the most recent error recorded by the runner.
	ErrorsLast() error

	// ErrorsList returns every error recorded by the runner since creation.
	ErrorsList() []error
}

// New creates a StartStop runner around the given start/stop functions. Either
// may be nil; invoking a nil function at runtime records an error instead of
// panicking.
func New(start, stop Func) StartStop {
	return &runner{
		fctStart: start,
		fctStop:  stop,
	}
}
