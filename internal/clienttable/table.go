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

// Package clienttable is the single source of truth for every live
// descriptor the network thread owns (spec §4.3): one map keyed by file
// descriptor, guarded by one mutex, matching the original's
// unordered_map<int, ClientInfo> plus clients_mutex_.
package clienttable

import (
	"sync"

	"github.com/sabouaram/golib/internal/dispatcher"
	"github.com/sabouaram/golib/internal/model"
)

// Table is safe for concurrent use: the network thread mutates it on accept
// and close, workers read snapshots of its entries when they need to send a
// reply.
type Table struct {
	mu      sync.Mutex
	entries map[int]*model.ClientEntry
}

// New returns an empty table.
func New() *Table {
	return &Table{entries: make(map[int]*model.ClientEntry)}
}

// Add registers a new entry under its descriptor, overwriting any stale
// entry left under the same fd (the OS never hands out a live fd twice).
func (t *Table) Add(fd int, entry *model.ClientEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[fd] = entry
}

// Lookup returns the entry for fd, or nil if it is not (or no longer)
// present.
func (t *Table) Lookup(fd int) *model.ClientEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.entries[fd]
}

// Remove deletes the entry for fd and unregisters it from disp, mirroring
// remove_client's dispatcher->remove_fd call. A miss is a no-op: a
// connection may be removed from both the network thread's close path and
// a worker's failure path in the same sweep.
func (t *Table) Remove(fd int, disp dispatcher.Dispatcher) {
	t.mu.Lock()
	_, ok := t.entries[fd]
	if ok {
		delete(t.entries, fd)
	}
	t.mu.Unlock()

	if ok && disp != nil {
		_ = disp.Unregister(fd)
	}
}

// Len reports the number of live entries, used by the health snapshot
// (spec §4.9).
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// SendDirect queues data onto fd's send buffer and reports whether it was
// accepted. It refuses when the entry already carries unsent data, matching
// send_to_client's "if there's still unsent data, cannot send new data yet"
// rule: the network thread is the only writer of socket buffers, so a
// worker's reply always queues through this buffer rather than calling
// write(2) itself.
func (t *Table) SendDirect(fd int, data []byte) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[fd]
	if !ok || !entry.Flag.IsValid() {
		return false
	}
	if entry.SendLen > 0 {
		return false
	}
	return entry.AppendSend(data)
}

// Each invokes fn once per live entry in an unspecified order, holding the
// table lock for the whole walk. fn must not call back into the table: it
// is meant for the network thread's periodic pending-close sweep and the
// health snapshot, both read-only passes.
func (t *Table) Each(fn func(fd int, entry *model.ClientEntry)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for fd, entry := range t.entries {
		fn(fd, entry)
	}
}
