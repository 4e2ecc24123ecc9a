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

// Package health is a lightweight status-snapshot surface (spec §4.9),
// grounded on this module's monitor package convention of a named status
// struct with a String() summary: the runtime shell's timer tick logs one
// Snapshot per interval at log_level=debug, restoring the periodic stats
// line the original server.cpp logged from inside its timer path.
package health

import (
	"fmt"
	"sync/atomic"
)

// Snapshot is a point-in-time read of the server core's load.
type Snapshot struct {
	RecvQueueDepth int
	SendQueueDepth int
	Connections    int
	WorkersBusy    int
	WorkersTotal   int
}

// String renders a single-line summary suitable for a debug log entry.
func (s Snapshot) String() string {
	return fmt.Sprintf("recv_depth=%d send_depth=%d connections=%d workers_busy=%d/%d",
		s.RecvQueueDepth, s.SendQueueDepth, s.Connections, s.WorkersBusy, s.WorkersTotal)
}

// depther is the subset of ringqueue.Queue's surface health needs; defined
// locally to avoid a direct dependency cycle concern and to keep this
// package trivially testable with a fake.
type depther interface {
	Depth() int
}

// lenner is the subset of clienttable.Table's surface health needs.
type lenner interface {
	Len() int
}

// Monitor aggregates the counters the timer tick reads. WorkersBusy is
// maintained by the worker pool itself via MarkBusy/MarkIdle, since only
// the pool knows when a worker is between wait_and_pop calls and inside
// process().
type Monitor struct {
	RecvQueue    depther
	SendQueue    depther
	Table        lenner
	WorkersTotal int

	busy atomic.Int64
}

// MarkBusy records one worker entering process(); MarkIdle records it
// returning to wait_and_pop.
func (m *Monitor) MarkBusy() { m.busy.Add(1) }
func (m *Monitor) MarkIdle() { m.busy.Add(-1) }

// Snapshot reads every counter into a single Snapshot value.
func (m *Monitor) Snapshot() Snapshot {
	return Snapshot{
		RecvQueueDepth: m.RecvQueue.Depth(),
		SendQueueDepth: m.SendQueue.Depth(),
		Connections:    m.Table.Len(),
		WorkersBusy:    int(m.busy.Load()),
		WorkersTotal:   m.WorkersTotal,
	}
}
