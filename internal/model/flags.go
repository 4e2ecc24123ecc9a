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

// Package model declares the value types shared by the network thread, the
// worker pool and the client table: socket identity, per-connection state
// and the record header carried through the two ring queues.
package model

// ClientFlag is a bitset over the connection states a ClientEntry can carry.
type ClientFlag uint32

const (
	// FlagValid marks an entry as live in the client table.
	FlagValid ClientFlag = 1 << iota
	// FlagListener marks an entry as a listening (bound) socket rather than
	// an accepted connection.
	FlagListener
	// FlagPipe is reserved for non-socket descriptors routed through the
	// same table (unused by the TCP/UDP adapters, kept for parity with the
	// original connection-flag bitset).
	FlagPipe
	// FlagUDP marks an entry as datagram-oriented.
	FlagUDP
	// FlagFinalize marks an entry that has received a FINAL record and is
	// draining its send buffer before close.
	FlagFinalize
)

// Has reports whether every bit in mask is set.
func (f ClientFlag) Has(mask ClientFlag) bool {
	return f&mask == mask
}

// IsValid reports whether FlagValid is set.
func (f ClientFlag) IsValid() bool {
	return f.Has(FlagValid)
}

// IsListener reports whether FlagListener is set.
func (f ClientFlag) IsListener() bool {
	return f.Has(FlagListener)
}

// IsUDP reports whether the entry is datagram-oriented.
func (f ClientFlag) IsUDP() bool {
	return f.Has(FlagUDP)
}

// IsTCP reports whether the entry is stream-oriented, i.e. FlagUDP is not
// set. Listener entries are not excluded.
func (f ClientFlag) IsTCP() bool {
	return !f.IsUDP()
}

// IsFinalizing reports whether a FINAL record has been observed for this
// entry.
func (f ClientFlag) IsFinalizing() bool {
	return f.Has(FlagFinalize)
}
