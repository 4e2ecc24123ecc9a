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

package model

// ClientEntry is the per-connection record owned by the client table. It is
// never shared outside the table's lock except as a queued copy in a
// QueueRecord: workers only ever see a snapshot, never the live buffers.
type ClientEntry struct {
	Info SocketInfo
	Flag ClientFlag

	// AcceptFD is the descriptor of the listener that produced this entry:
	// the accepting listener for a TCP connection, or the bound socket's own
	// fd for the UDP pseudo-connection. Carried into every queued record's
	// header (spec §3/§4.7).
	AcceptFD int

	// RecvBuf is the exclusively-owned receive buffer; RecvLen is the valid
	// prefix length.
	RecvBuf []byte
	RecvLen int

	// SendBuf is the exclusively-owned pending-output buffer; SendLen is
	// the valid prefix length awaiting transmission.
	SendBuf []byte
	SendLen int

	// PendingClose is set once a FINAL record has been observed for this
	// connection; the entry is closed once SendLen reaches zero.
	PendingClose bool
}

// NewClientEntry allocates a ClientEntry with fixed-capacity receive/send
// buffers, matching the original's per-client malloc at accept time.
func NewClientEntry(info SocketInfo, flag ClientFlag, recvCap, sendCap int) *ClientEntry {
	return &ClientEntry{
		Info:    info,
		Flag:    flag | FlagValid,
		RecvBuf: make([]byte, recvCap),
		SendBuf: make([]byte, sendCap),
	}
}

// RecvCap returns the fixed capacity of the receive buffer.
func (c *ClientEntry) RecvCap() int {
	return len(c.RecvBuf)
}

// SendCap returns the fixed capacity of the send buffer.
func (c *ClientEntry) SendCap() int {
	return len(c.SendBuf)
}

// ConsumeRecv shifts the first n bytes off the head of the receive buffer,
// as happens once a complete frame has been pushed to the receive queue.
// Panics if n exceeds RecvLen: callers must only consume what framing
// reported as consumed.
func (c *ClientEntry) ConsumeRecv(n int) {
	if n > c.RecvLen {
		panic("model: ConsumeRecv exceeds recv_len")
	}
	copy(c.RecvBuf, c.RecvBuf[n:c.RecvLen])
	c.RecvLen -= n
}

// AppendSend appends data to the tail of the pending send buffer. Returns
// false if the capacity would be exceeded, leaving the buffer unchanged.
func (c *ClientEntry) AppendSend(data []byte) bool {
	if c.SendLen+len(data) > c.SendCap() {
		return false
	}
	copy(c.SendBuf[c.SendLen:], data)
	c.SendLen += len(data)
	return true
}

// ConsumeSend shifts n transmitted bytes off the head of the send buffer.
func (c *ClientEntry) ConsumeSend(n int) {
	if n > c.SendLen {
		panic("model: ConsumeSend exceeds send_len")
	}
	copy(c.SendBuf, c.SendBuf[n:c.SendLen])
	c.SendLen -= n
}
