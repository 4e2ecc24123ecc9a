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

package ringqueue

import "errors"

var (
	// ErrWouldExceedCapacity is returned when header_size+payload_len
	// exceeds the ring's total capacity: the record could never fit.
	ErrWouldExceedCapacity = errors.New("ringqueue: record would exceed capacity")

	// ErrNoSpace is returned when the ring is currently too full for the
	// record, though it would fit once drained.
	ErrNoSpace = errors.New("ringqueue: insufficient free space")

	// ErrBufferTooSmall is returned by WaitAndPop when the caller-provided
	// buffer cannot hold the next record's payload; the record is left
	// unconsumed.
	ErrBufferTooSmall = errors.New("ringqueue: destination buffer too small")

	// ErrTimeout is returned by WaitAndPop when no record became available
	// before the deadline.
	ErrTimeout = errors.New("ringqueue: wait timed out")

	// ErrClosed is returned by WaitAndPop once the queue has been closed.
	ErrClosed = errors.New("ringqueue: queue closed")
)
