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

package protocol

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/sabouaram/golib/internal/model"
	"github.com/sabouaram/golib/internal/srverr"
	loglvl "github.com/sabouaram/golib/logger/level"
)

// UDP is the datagram variant of the protocol adapter, grounded on
// udp_handler.cpp's UdpHandler. There is one ClientEntry per bound
// listener; every peer's datagrams flow through that single entry's
// buffers, with the peer address carried per-record instead of per-entry.
type UDP struct {
	Deps
}

// NewUDP builds a UDP adapter over deps.
func NewUDP(deps Deps) *UDP {
	return &UDP{Deps: deps}
}

// Accept is a logged no-op: UDP has no connection-establishment handshake,
// matching UdpHandler::accept_client's warning-and-return behavior.
func (a *UDP) Accept(listenerFD int, _ model.SocketInfo) error {
	if a.Log != nil {
		if l := a.Log(); l != nil {
			l.Entry(loglvl.WarnLevel, "udp adapter ignores accept on listener fd").FieldAdd("fd", listenerFD).Log()
		}
	}
	return nil
}

// Receive reads one datagram, stamps the sender's address onto a copy of
// entry's SocketInfo, and feeds it through the same buffering/framing loop
// TCP uses: the framing callback decides whether one datagram is one
// message.
func (a *UDP) Receive(entry *model.ClientEntry) error {
	var stack [65536]byte
	n, from, err := unix.Recvfrom(entry.Info.FD, stack[:], 0)
	if err != nil {
		if err == unix.EAGAIN {
			return nil
		}
		return srverr.ErrorFatal.Error(err)
	}

	peerIP, peerPort := sockaddrToIPPort(from)
	info := entry.Info
	info.PeerIP = peerIP
	info.PeerPort = peerPort
	info.MarkReceived(time.Now())

	if entry.RecvLen+n > entry.RecvCap() {
		return srverr.ErrorOverflow.Error()
	}
	copy(entry.RecvBuf[entry.RecvLen:], stack[:n])
	entry.RecvLen += n
	entry.Info = info

	for {
		k := a.Handler.CallInput(entry.RecvBuf[:entry.RecvLen], entry.Info)
		if k == 0 {
			return nil
		}
		if k < 0 {
			return srverr.ErrorProtocolFraming.Error()
		}
		if k > entry.RecvLen {
			k = entry.RecvLen
		}

		header := model.RecordHeader{Type: model.RecordData, Info: entry.Info, AcceptFD: entry.AcceptFD}
		payload := make([]byte, k)
		copy(payload, entry.RecvBuf[:k])
		if err = a.RecvQueue.Push(header, payload); err != nil {
			return srverr.ErrorQueueFull.Error(err)
		}
		entry.ConsumeRecv(k)
	}
}

// Send transmits data to the peer address carried in info in one sendto
// call. UDP retains and buffers nothing: a short send is reported as
// Fatal rather than queued for retry.
func (a *UDP) Send(entry *model.ClientEntry, info model.SocketInfo, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	sa := ipPortToSockaddr(info.PeerIP, info.PeerPort)
	if err := unix.Sendto(entry.Info.FD, data, 0, sa); err != nil {
		return srverr.ErrorFatal.Error(err)
	}
	entry.Info.MarkSent(time.Now())
	return nil
}
