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

// Package atomicflag wraps sync/atomic.Bool in a named type with a
// Load/Store API, matching the habit this module's atomic package follows
// for every other primitive it exposes. The server core's stop/restart
// flags (spec §5, §9) are the sole piece of process-wide mutable state and
// are confined to this type.
package atomicflag

import "sync/atomic"

// Flag is a process-wide boolean observed with acquire/release ordering by
// every thread at each loop head.
type Flag struct {
	v atomic.Bool
}

// Load reads the flag with acquire semantics.
func (f *Flag) Load() bool {
	return f.v.Load()
}

// Store writes the flag with release semantics.
func (f *Flag) Store(val bool) {
	f.v.Store(val)
}

// Set is shorthand for Store(true).
func (f *Flag) Set() {
	f.v.Store(true)
}
