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
	"io"
	"time"

	"golang.org/x/sys/unix"

	"github.com/sabouaram/golib/internal/model"
	"github.com/sabouaram/golib/internal/srverr"
)

// TCP is the stream variant of the protocol adapter, grounded on
// tcp_handler.cpp's TcpHandler (accept_client/receive_data/send_data).
type TCP struct {
	Deps
}

// NewTCP builds a TCP adapter over deps.
func NewTCP(deps Deps) *TCP {
	return &TCP{Deps: deps}
}

// Accept performs a non-blocking OS accept on listenerFD, inserts a new
// client entry with the VALID flag, invokes the handler's open callback, and
// registers the connection with the dispatcher — removing the entry and
// closing if the open callback reports failure.
func (a *TCP) Accept(listenerFD int, listenerInfo model.SocketInfo) error {
	fd, sa, err := unix.Accept4(listenerFD, unix.SOCK_NONBLOCK)
	if err != nil {
		if err == unix.EAGAIN {
			return nil
		}
		return srverr.ErrorFatal.Error(err)
	}

	peerIP, peerPort := sockaddrToIPPort(sa)
	info := model.SocketInfo{
		FD:        fd,
		Kind:      model.KindStream,
		LocalIP:   listenerInfo.LocalIP,
		LocalPort: listenerInfo.LocalPort,
		PeerIP:    peerIP,
		PeerPort:  peerPort,
	}

	entry := model.NewClientEntry(info, model.FlagValid, a.RecvBufCap, a.SendBufCap)
	entry.AcceptFD = listenerFD
	a.Table.Add(fd, entry)
	if err = a.Disp.Register(fd); err != nil {
		a.Table.Remove(fd, a.Disp)
		_ = unix.Close(fd)
		return srverr.ErrorFatal.Error(err)
	}

	reply, result, ok := a.Handler.CallOpen(info)
	if ok && result < 0 {
		a.Table.Remove(fd, a.Disp)
		_ = unix.Close(fd)
		return nil
	}
	if ok && len(reply) > 0 {
		a.Table.SendDirect(fd, reply)
	}
	return nil
}

// Receive reads one readiness event's worth of bytes, appends them to
// entry's receive buffer, then repeatedly asks the handler's framing
// callback for complete frames, pushing one DATA record per frame onto the
// receive queue. Each positive frame length strictly reduces the buffered
// length, guaranteeing forward progress.
func (a *TCP) Receive(entry *model.ClientEntry) error {
	var stack [65536]byte
	n, err := unix.Read(entry.Info.FD, stack[:])
	if err != nil {
		if err == unix.EAGAIN {
			return nil
		}
		return srverr.ErrorFatal.Error(err)
	}
	if n == 0 {
		return srverr.ErrorFatal.Error(io.EOF)
	}

	entry.Info.MarkReceived(time.Now())
	if entry.RecvLen+n > entry.RecvCap() {
		return srverr.ErrorOverflow.Error()
	}
	copy(entry.RecvBuf[entry.RecvLen:], stack[:n])
	entry.RecvLen += n

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

// Send implements spec §4.4's two branches. When nothing is already
// buffered, data is written straight to the socket and only the unsent tail
// (if any) is retained in send_buffer — the fast path for a reply that fits
// in one write. Once send_buffer already holds unsent bytes, data is
// appended to its tail instead, since the socket is only ever written from
// the front of that buffer, in order. A short or EAGAIN write leaves the
// remainder in place for the next tick. The addressing info is accepted for
// interface symmetry with UDP but unused: a TCP connection always targets
// its own peer.
func (a *TCP) Send(entry *model.ClientEntry, _ model.SocketInfo, data []byte) error {
	if len(data) > 0 {
		if entry.SendLen == 0 {
			return a.sendDirect(entry, data)
		}
		if !entry.AppendSend(data) {
			return srverr.ErrorOverflow.Error()
		}
	}
	if entry.SendLen == 0 {
		return nil
	}

	n, err := unix.Write(entry.Info.FD, entry.SendBuf[:entry.SendLen])
	if err != nil {
		if err == unix.EAGAIN {
			return nil
		}
		return srverr.ErrorFatal.Error(err)
	}
	entry.Info.MarkSent(time.Now())
	entry.ConsumeSend(n)
	return nil
}

// sendDirect attempts to write data straight to the socket with nothing
// else queued ahead of it, buffering only whatever the socket did not
// accept.
func (a *TCP) sendDirect(entry *model.ClientEntry, data []byte) error {
	n, err := unix.Write(entry.Info.FD, data)
	if err != nil {
		if err != unix.EAGAIN {
			return srverr.ErrorFatal.Error(err)
		}
		n = 0
	} else {
		entry.Info.MarkSent(time.Now())
	}

	if n < len(data) {
		if !entry.AppendSend(data[n:]) {
			return srverr.ErrorOverflow.Error()
		}
	}
	return nil
}
