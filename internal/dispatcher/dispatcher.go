/*
 * MIT License
 *
 * Copyright (c) 2026 Nicolas JUHEL
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

// Package dispatcher implements the readiness-based multiplexer the network
// thread drives (spec §4.1): register/unregister a descriptor, then wait up
// to a bounded timeout for readable events, invoking a callback per ready
// descriptor. The component is not safe for concurrent use; every method is
// called only from the network thread.
package dispatcher

import "time"

// Callback is invoked once per ready descriptor returned by Wait.
type Callback func(fd int, readable bool)

// Dispatcher is the capability set common to every readiness backend. It is
// a tagged choice resolved at startup from GOOS, not an inheritance
// hierarchy (spec §9): New picks epoll on Linux and falls back to a
// unix.Poll-based scan elsewhere.
type Dispatcher interface {
	// Register adds fd to the readable-interest set.
	Register(fd int) error

	// Unregister removes fd. Safe to call even if fd was never registered.
	Unregister(fd int) error

	// Wait blocks up to timeout for readable descriptors, invoking cb once
	// per ready fd. Returns after the timeout even with no events, so the
	// network thread can run its periodic maintenance pass (send-queue
	// drain, pending-close sweep).
	Wait(timeout time.Duration, cb Callback) error

	// Close releases the underlying OS resource.
	Close() error
}
