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

// Package netsrv is the runtime shell (spec §4.6-§4.8): the single network
// thread, the worker pool, and the Shell that wires config, handler,
// dispatcher, client table, ring queues and listeners together and drives
// their lifecycle through runner/startStop, grounded on this module's
// runner.Start/Stop contract.
package netsrv

import (
	"context"
	"time"

	"golang.org/x/sys/unix"

	"github.com/sabouaram/golib/internal/clienttable"
	"github.com/sabouaram/golib/internal/dispatcher"
	"github.com/sabouaram/golib/internal/handler"
	"github.com/sabouaram/golib/internal/model"
	"github.com/sabouaram/golib/internal/protocol"
	"github.com/sabouaram/golib/internal/ringqueue"
	liblog "github.com/sabouaram/golib/logger"
	loglvl "github.com/sabouaram/golib/logger/level"
)

// listenerSet maps a listening descriptor to the adapter that services it
// and the listener's own addressing info, so the ready-callback can tell a
// listener event from a connection event in O(1).
type listenerSet struct {
	adapters map[int]protocol.Adapter
	infos    map[int]model.SocketInfo
}

func newListenerSet() *listenerSet {
	return &listenerSet{
		adapters: make(map[int]protocol.Adapter),
		infos:    make(map[int]model.SocketInfo),
	}
}

func (s *listenerSet) add(fd int, a protocol.Adapter, info model.SocketInfo) {
	s.adapters[fd] = a
	s.infos[fd] = info
}

func (s *listenerSet) get(fd int) (protocol.Adapter, model.SocketInfo, bool) {
	a, ok := s.adapters[fd]
	return a, s.infos[fd], ok
}

// NetworkThread is the single thread that owns every descriptor: it is the
// only goroutine that ever calls accept/read/write, matching spec §3's
// single-writer-per-socket invariant. Workers never touch a socket
// directly; they only read/write through the client table and the two
// ring queues.
type NetworkThread struct {
	Dispatcher dispatcher.Dispatcher
	Table      *clienttable.Table
	SendQueue  *ringqueue.Queue
	Listeners  *listenerSet
	TCP        *protocol.TCP
	UDP        *protocol.UDP
	Handler    *handler.VTable
	Log        liblog.FuncLog

	sendBuf []byte
}

// NewNetworkThread wires a NetworkThread over already-bound listeners.
func NewNetworkThread(disp dispatcher.Dispatcher, table *clienttable.Table, sendQueue *ringqueue.Queue, listeners *listenerSet, tcp *protocol.TCP, udp *protocol.UDP, vt *handler.VTable, log liblog.FuncLog, sendQueueBufCap int) *NetworkThread {
	return &NetworkThread{
		Dispatcher: disp,
		Table:      table,
		SendQueue:  sendQueue,
		Listeners:  listeners,
		TCP:        tcp,
		UDP:        udp,
		Handler:    vt,
		Log:        log,
		sendBuf:    make([]byte, sendQueueBufCap),
	}
}

// Run is the thread's main cycle (spec §4.6): wait for readiness, drain one
// send-queue record, then sweep the table for flush/close work. It exits
// once ctx is cancelled, which the Shell does via the owning startStop
// runner's Stop.
func (n *NetworkThread) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := n.Dispatcher.Wait(100*time.Millisecond, n.onReady); err != nil {
			n.logWarn("dispatcher wait failed", err)
		}

		n.drainSendQueue()
		n.sweepTable()
	}
}

// onReady is the dispatcher callback: it routes a ready descriptor to
// either the listener accept path or the client receive path, running the
// close sequence on any fatal error the adapter reports.
func (n *NetworkThread) onReady(fd int, readable bool) {
	if !readable {
		return
	}

	if adapter, info, ok := n.Listeners.get(fd); ok {
		if err := adapter.Accept(fd, info); err != nil {
			n.logWarn("accept failed", err)
		}
		return
	}

	entry := n.Table.Lookup(fd)
	if entry == nil {
		return
	}

	adapter := n.adapterFor(entry)
	if err := adapter.Receive(entry); err != nil {
		n.closeConn(fd, entry)
	}
}

// drainSendQueue pops at most one record per cycle (spec §4.6 step 2),
// keeping the network thread's loop bounded and fair between receive and
// send work.
func (n *NetworkThread) drainSendQueue() {
	header, length, err := n.SendQueue.WaitAndPop(n.sendBuf, 100*time.Millisecond)
	if err != nil {
		return
	}

	fd := header.Info.FD
	entry := n.Table.Lookup(fd)
	if entry == nil {
		return
	}

	switch header.Type {
	case model.RecordFinal:
		if entry.SendLen == 0 {
			n.closeConn(fd, entry)
			return
		}
		entry.PendingClose = true
		entry.Flag |= model.FlagFinalize
	default:
		adapter := n.adapterFor(entry)
		if err = adapter.Send(entry, header.Info, n.sendBuf[:length]); err != nil {
			n.closeConn(fd, entry)
		}
	}
}

// sweepTable flushes every entry with pending output and closes every
// entry that has drained while finalizing. Targets are collected during
// one locked Each pass and acted on afterward, since Table's mutex is not
// reentrant: Remove (invoked from closeConn) would deadlock if called from
// inside Each's callback.
func (n *NetworkThread) sweepTable() {
	type target struct {
		fd    int
		entry *model.ClientEntry
	}
	var toFlush, toClose []target

	n.Table.Each(func(fd int, entry *model.ClientEntry) {
		if entry.SendLen > 0 {
			toFlush = append(toFlush, target{fd, entry})
		}
		if entry.PendingClose && entry.SendLen == 0 {
			toClose = append(toClose, target{fd, entry})
		}
	})

	for _, t := range toFlush {
		adapter := n.adapterFor(t.entry)
		if err := adapter.Send(t.entry, t.entry.Info, nil); err != nil {
			n.closeConn(t.fd, t.entry)
		}
	}
	for _, t := range toClose {
		n.closeConn(t.fd, t.entry)
	}
}

// closeConn runs the close sequence in the exact order spec §4.6/§5
// require: handler close callback, table removal (which unregisters from
// the dispatcher), then the OS descriptor close. A UDP listener's
// pseudo-connection entry is refused here instead: a single bad datagram
// can produce a handler-fatal FINAL addressed at that entry, and closing it
// would tear down the only socket the whole UDP service listens on.
func (n *NetworkThread) closeConn(fd int, entry *model.ClientEntry) {
	if entry.Flag.IsUDP() && entry.Flag.IsListener() {
		if n.Log != nil {
			if l := n.Log(); l != nil {
				l.Entry(loglvl.WarnLevel, "refusing to close udp listener pseudo-entry").FieldAdd("fd", fd).Log()
			}
		}
		return
	}
	if n.Handler != nil {
		n.Handler.CallClose(entry.Info)
	}
	n.Table.Remove(fd, n.Dispatcher)
	_ = unix.Close(fd)
}

func (n *NetworkThread) adapterFor(entry *model.ClientEntry) protocol.Adapter {
	if entry.Flag.IsUDP() {
		return n.UDP
	}
	return n.TCP
}

func (n *NetworkThread) logWarn(msg string, err error) {
	if n.Log == nil {
		return
	}
	if l := n.Log(); l != nil {
		l.Entry(loglvl.WarnLevel, msg).FieldAdd("error", err.Error()).Log()
	}
}
