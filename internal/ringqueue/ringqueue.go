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

// Package ringqueue implements the bounded MPSC framed ring buffer that
// carries QueueRecord headers and payloads between the network thread and
// the worker pool (spec §4.2). A single contiguous byte region of fixed
// capacity holds [header‖payload] records; unbounded write/read indices are
// compared modulo capacity so wrap handling stays branch-light.
//
// push never blocks: a full ring is a fail-fast error surfaced to the
// caller. WaitAndPop is the sole blocking point and always honors its
// timeout.
package ringqueue

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sabouaram/golib/internal/model"
)

// Queue is a bounded ring of capacity Cap bytes carrying header-prefixed
// records. The zero value is not usable; construct with New.
type Queue struct {
	capacity int
	buf      []byte

	mu       sync.Mutex
	writeIdx uint64
	readIdx  uint64
	blockID  uint64

	// notify is a capacity-1 signal channel: push sends a non-blocking
	// notification after each successful write, waking one waiter in
	// WaitAndPop. This is the channel-as-condition-variable idiom used
	// elsewhere in this module's producer/consumer plumbing, rather than a
	// sync.Cond (which has no native timeout).
	notify chan struct{}

	closed atomic.Bool
}

// New allocates a ring queue with the given total byte capacity.
func New(capacity int) *Queue {
	return &Queue{
		capacity: capacity,
		buf:      make([]byte, capacity),
		notify:   make(chan struct{}, 1),
	}
}

// Capacity returns the ring's total byte capacity.
func (q *Queue) Capacity() int {
	return q.capacity
}

// Depth returns the number of bytes currently queued, for the health
// snapshot (spec §4.9).
func (q *Queue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.usedSpace(q.writeIdx, q.readIdx)
}

func (q *Queue) freeSpace(write, read uint64) int {
	used := q.usedSpace(write, read)
	return q.capacity - used
}

func (q *Queue) usedSpace(write, read uint64) int {
	return int(write - read)
}

// Close marks the queue closed: pending and future WaitAndPop calls
// unblock with ErrClosed once woken. Used during shutdown to stop workers
// promptly without waiting for their full timeout.
func (q *Queue) Close() {
	if q.closed.CompareAndSwap(false, true) {
		q.wake()
	}
}

func (q *Queue) wake() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Push writes one record (header + payload) into the ring. It never blocks:
// ErrWouldExceedCapacity is returned if the record could never fit the ring
// regardless of its current occupancy; ErrNoSpace if the ring is currently
// too full. On success the write/read indices advance and one waiter (if
// any) is woken.
func (q *Queue) Push(header model.RecordHeader, payload []byte) error {
	total := model.HeaderSize + len(payload)
	if total > q.capacity {
		return ErrWouldExceedCapacity
	}

	q.mu.Lock()

	if q.freeSpace(q.writeIdx, q.readIdx) < total {
		q.mu.Unlock()
		return ErrNoSpace
	}

	q.blockID++
	header.BlockID = q.blockID
	header.TotalLength = uint32(total)

	var hdr [model.HeaderSize]byte
	header.Encode(hdr[:])

	writePos := int(q.writeIdx % uint64(q.capacity))
	q.writeAt(writePos, hdr[:])
	if len(payload) > 0 {
		q.writeAt((writePos+model.HeaderSize)%q.capacity, payload)
	}

	q.writeIdx += uint64(total)
	q.mu.Unlock()

	q.wake()
	return nil
}

// writeAt copies data into the ring starting at pos, splitting across the
// wrap boundary when it does not fit in one contiguous run. Caller holds mu.
func (q *Queue) writeAt(pos int, data []byte) {
	tail := q.capacity - pos
	if tail >= len(data) {
		copy(q.buf[pos:], data)
		return
	}
	copy(q.buf[pos:], data[:tail])
	copy(q.buf, data[tail:])
}

// readAt copies n bytes out of the ring starting at pos into dst, handling
// the same wrap split as writeAt. Caller holds mu.
func (q *Queue) readAt(pos int, dst []byte) {
	n := len(dst)
	tail := q.capacity - pos
	if tail >= n {
		copy(dst, q.buf[pos:pos+n])
		return
	}
	copy(dst, q.buf[pos:])
	copy(dst[tail:], q.buf[:n-tail])
}

// WaitAndPop blocks until a record is available, the queue is closed, or
// timeout elapses. On success it copies the record's payload into buf (which
// must be at least as large as the payload) and returns its header and
// payload length. If the stored payload is larger than len(buf), the record
// is left unconsumed and ErrBufferTooSmall is returned.
func (q *Queue) WaitAndPop(buf []byte, timeout time.Duration) (model.RecordHeader, int, error) {
	deadline := time.Now().Add(timeout)

	for {
		q.mu.Lock()
		if q.writeIdx != q.readIdx {
			readPos := int(q.readIdx % uint64(q.capacity))

			var hdr [model.HeaderSize]byte
			q.readAt(readPos, hdr[:])
			header := model.DecodeHeader(hdr[:])

			payloadLen := int(header.TotalLength) - model.HeaderSize
			if payloadLen > len(buf) {
				q.mu.Unlock()
				return model.RecordHeader{}, 0, ErrBufferTooSmall
			}

			if payloadLen > 0 {
				q.readAt((readPos+model.HeaderSize)%q.capacity, buf[:payloadLen])
			}

			q.readIdx += uint64(header.TotalLength)
			q.mu.Unlock()

			return header, payloadLen, nil
		}
		q.mu.Unlock()

		if q.closed.Load() {
			return model.RecordHeader{}, 0, ErrClosed
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return model.RecordHeader{}, 0, ErrTimeout
		}

		select {
		case <-q.notify:
			continue
		case <-time.After(remaining):
			return model.RecordHeader{}, 0, ErrTimeout
		}
	}
}
