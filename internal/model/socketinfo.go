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

import (
	"fmt"
	"net"
	"time"

	logent "github.com/sabouaram/golib/logger/entry"
)

// SocketKind distinguishes the two transport kinds the core dispatches on.
type SocketKind uint8

const (
	// KindStream is a TCP connection.
	KindStream SocketKind = iota
	// KindDatagram is a UDP listener or a datagram pseudo-connection.
	KindDatagram
)

func (k SocketKind) String() string {
	if k == KindDatagram {
		return "udp"
	}
	return "tcp"
}

// SocketInfo is a value type carrying the identity and addressing of one
// descriptor. It is copied freely; FD is its stable identity within a single
// process lifetime.
type SocketInfo struct {
	FD       int
	Kind     SocketKind
	LocalIP  net.IP
	LocalPort uint16
	PeerIP   net.IP
	PeerPort uint16
	RecvAt   time.Time
	SendAt   time.Time
}

// String implements fmt.Stringer with a compact single-line representation
// suitable for log messages.
func (s SocketInfo) String() string {
	return fmt.Sprintf("fd=%d kind=%s local=%s:%d peer=%s:%d", s.FD, s.Kind, s.LocalIP, s.LocalPort, s.PeerIP, s.PeerPort)
}

// LogFields attaches the socket identity to a log entry as discrete fields,
// so the network thread and workers can log structured data without
// building message strings on the hot path.
func (s SocketInfo) LogFields(e logent.Entry) logent.Entry {
	return e.FieldAdd("socket.fd", s.FD).
		FieldAdd("socket.kind", s.Kind.String()).
		FieldAdd("socket.local_ip", s.LocalIP.String()).
		FieldAdd("socket.local_port", s.LocalPort).
		FieldAdd("socket.peer_ip", s.PeerIP.String()).
		FieldAdd("socket.peer_port", s.PeerPort)
}

// MarkReceived stamps RecvAt with t.
func (s *SocketInfo) MarkReceived(t time.Time) {
	s.RecvAt = t
}

// MarkSent stamps SendAt with t.
func (s *SocketInfo) MarkSent(t time.Time) {
	s.SendAt = t
}
