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

// Package protocol holds the TCP and UDP variants of the protocol adapter
// (spec §4.4): the capability set the network thread drives for accept,
// receive and send, grounded on tcp_handler.cpp/udp_handler.cpp's
// TcpHandler/UdpHandler pair.
package protocol

import (
	"github.com/sabouaram/golib/internal/clienttable"
	"github.com/sabouaram/golib/internal/dispatcher"
	"github.com/sabouaram/golib/internal/handler"
	"github.com/sabouaram/golib/internal/model"
	"github.com/sabouaram/golib/internal/ringqueue"
	liblog "github.com/sabouaram/golib/logger"
)

// Adapter is implemented once for TCP and once for UDP; the network thread
// holds one of each, selected by the descriptor's SocketKind.
type Adapter interface {
	// Accept services a readable listener descriptor. The TCP variant
	// performs an OS accept and registers the new connection; the UDP
	// variant is a logged no-op (datagrams arrive through Receive).
	Accept(listenerFD int, listenerInfo model.SocketInfo) error

	// Receive drains one readiness event for entry, appends to its
	// receive buffer, and pushes every complete frame the handler's
	// framing callback recognizes onto the receive queue.
	Receive(entry *model.ClientEntry) error

	// Send transmits data addressed using info (the UDP variant reads the
	// peer address from info rather than from entry, since one UDP
	// listener entry serves every peer). A nil/empty data flushes
	// whatever is already pending in entry's send buffer.
	Send(entry *model.ClientEntry, info model.SocketInfo, data []byte) error
}

// Deps is the shared dependency set both adapters close over.
type Deps struct {
	Table      *clienttable.Table
	Disp       dispatcher.Dispatcher
	Handler    *handler.VTable
	RecvQueue  *ringqueue.Queue
	RecvBufCap int
	SendBufCap int
	Log        liblog.FuncLog
}
