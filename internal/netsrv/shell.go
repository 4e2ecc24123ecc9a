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

package netsrv

import (
	"context"
	"time"

	"golang.org/x/sys/unix"

	"github.com/sabouaram/golib/handlerabi"
	"github.com/sabouaram/golib/internal/atomicflag"
	"github.com/sabouaram/golib/internal/bindfile"
	"github.com/sabouaram/golib/internal/clienttable"
	"github.com/sabouaram/golib/internal/config"
	"github.com/sabouaram/golib/internal/dispatcher"
	"github.com/sabouaram/golib/internal/handler"
	"github.com/sabouaram/golib/internal/health"
	"github.com/sabouaram/golib/internal/model"
	"github.com/sabouaram/golib/internal/protocol"
	"github.com/sabouaram/golib/ioutils/fileDescriptor"
	"github.com/sabouaram/golib/internal/ringqueue"
	"github.com/sabouaram/golib/internal/srverr"
	liblog "github.com/sabouaram/golib/logger"
	loglvl "github.com/sabouaram/golib/logger/level"
	"github.com/sabouaram/golib/runner/startStop"
)

// Shell is the runtime composition root (spec §4.8): it owns every
// long-lived component and drives their startup/shutdown order through two
// runner/startStop.StartStop instances, the same lifecycle primitive this
// module's runner package offers its own long-running services.
type Shell struct {
	Config  *config.Config
	Handler *handler.VTable
	Log     liblog.FuncLog
	Args    []string

	disp      dispatcher.Dispatcher
	table     *clienttable.Table
	recvQueue *ringqueue.Queue
	sendQueue *ringqueue.Queue
	listeners *listenerSet
	monitor   *health.Monitor

	network *NetworkThread
	pool    *WorkerPool

	netRunner  startStop.StartStop
	poolRunner startStop.StartStop

	listenerFDs []int
	bound       []model.SocketInfo
	stopping    atomicflag.Flag
}

// Bound returns the resolved address of every listener this shell opened,
// in bind-file order. Tests bind to an ephemeral port (0) and read the
// kernel-assigned port back through this accessor.
func (s *Shell) Bound() []model.SocketInfo {
	return s.bound
}

// Stopping reports whether shutdown has begun. It is the process-wide
// mutable flag spec §5/§9 calls for, observed independently of ctx
// cancellation by anything polling the shell's state (e.g. a health
// endpoint) rather than holding a reference to ctx itself.
func (s *Shell) Stopping() bool {
	return s.stopping.Load()
}

// NewShell builds every component from cfg/vt and binds every entry in the
// parsed bind file, but starts nothing: call Run to bring the server up.
func NewShell(cfg *config.Config, vt *handler.VTable, log liblog.FuncLog, args []string) (*Shell, error) {
	s := &Shell{Config: cfg, Handler: vt, Log: log, Args: args}

	raiseFileDescriptorLimit(log)

	var err error
	s.disp, err = dispatcher.New()
	if err != nil {
		return nil, srverr.ErrorStartupFatal.Error(err)
	}

	s.table = clienttable.New()
	s.recvQueue = ringqueue.New(cfg.RingQueueLength)
	s.sendQueue = ringqueue.New(cfg.RingQueueLength)
	s.listeners = newListenerSet()
	s.monitor = &health.Monitor{
		RecvQueue:    s.recvQueue,
		SendQueue:    s.sendQueue,
		Table:        s.table,
		WorkersTotal: cfg.WorkerNum,
	}

	deps := protocol.Deps{
		Table:      s.table,
		Disp:       s.disp,
		Handler:    vt,
		RecvQueue:  s.recvQueue,
		RecvBufCap: cfg.RecvBuffer,
		SendBufCap: cfg.SendBuffer,
		Log:        log,
	}
	tcp := protocol.NewTCP(deps)
	udp := protocol.NewUDP(deps)

	entries, err := bindfile.Load(cfg.BindFile, log)
	if err != nil {
		_ = s.disp.Close()
		return nil, srverr.ErrorStartupFatal.Error(err)
	}
	if err = s.bindAll(entries, tcp); err != nil {
		_ = s.disp.Close()
		return nil, err
	}

	s.network = NewNetworkThread(s.disp, s.table, s.sendQueue, s.listeners, tcp, udp, vt, log, cfg.MaxPacketSize)
	s.pool = &WorkerPool{
		Count:      cfg.WorkerNum,
		RecvQueue:  s.recvQueue,
		SendQueue:  s.sendQueue,
		Handler:    vt,
		Monitor:    s.monitor,
		Log:        log,
		RecvBufCap: cfg.RecvBuffer,
		Args:       args,
	}

	s.netRunner = startStop.New(s.network.Run, noopStop)
	s.poolRunner = startStop.New(s.pool.Run, noopStop)
	return s, nil
}

// bindAll opens every configured listener. TCP listeners are registered in
// the listener set so the network thread's ready-callback routes their
// events through Accept; a UDP-bound socket has no separate accept phase
// (spec §4.4), so it is inserted straight into the client table as its own
// pseudo-connection entry and routed through Receive like any other ready
// descriptor.
func (s *Shell) bindAll(entries []model.BindEntry, tcp *protocol.TCP) error {
	for _, be := range entries {
		fd, info, err := bindListener(be)
		if err != nil {
			return err
		}
		s.listenerFDs = append(s.listenerFDs, fd)
		s.bound = append(s.bound, info)

		if err = s.disp.Register(fd); err != nil {
			return srverr.ErrorStartupFatal.Error(err)
		}

		if be.Proto == model.ProtoUDP {
			entry := model.NewClientEntry(info, be.Flag(), s.Config.RecvBuffer, s.Config.SendBuffer)
			entry.AcceptFD = fd
			s.table.Add(fd, entry)
			continue
		}
		s.listeners.add(fd, tcp, info)
	}
	return nil
}

// Run brings the server up: the main-role init callback, both runners, and
// a timer loop that invokes the handler's timer callback and logs a health
// snapshot at debug level until ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	if s.Handler != nil {
		s.Handler.CallInit(s.Args, handlerabi.RoleMain)
		defer s.Handler.CallFini(handlerabi.RoleMain)
	}

	if err := s.netRunner.Start(ctx); err != nil {
		return srverr.ErrorStartupFatal.Error(err)
	}
	if err := s.poolRunner.Start(ctx); err != nil {
		return srverr.ErrorStartupFatal.Error(err)
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return s.shutdown()
		case <-ticker.C:
			s.tick()
		}
	}
}

// tick runs the handler's optional timer callback and logs one health
// snapshot line, the periodic work the original ran from its own timer
// thread.
func (s *Shell) tick() {
	if s.Handler != nil {
		s.Handler.CallTimer()
	}
	if s.Log == nil {
		return
	}
	if l := s.Log(); l != nil {
		l.Entry(loglvl.DebugLevel, s.monitor.Snapshot().String()).Log()
	}
}

// shutdown stops both runners, closes every listener and ring queue, and
// lets the deferred main-role fini callback in Run complete the sequence.
func (s *Shell) shutdown() error {
	s.stopping.Set()

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_ = s.netRunner.Stop(stopCtx)
	_ = s.poolRunner.Stop(stopCtx)

	s.recvQueue.Close()
	s.sendQueue.Close()

	for _, fd := range s.listenerFDs {
		_ = s.disp.Unregister(fd)
		_ = unix.Close(fd)
	}
	_ = s.disp.Close()
	return nil
}

func noopStop(context.Context) error { return nil }

// raiseFileDescriptorLimit best-effort raises the process's open-file
// rlimit before any listener is bound: a connection-heavy server that
// never touches this ceiling will start failing accepts under load long
// before any other component notices. Failure is logged, not fatal — a
// restricted environment (container without CAP_SYS_RESOURCE) still runs,
// just at a lower connection ceiling.
func raiseFileDescriptorLimit(log liblog.FuncLog) {
	const wanted = 65536

	current, max, err := fileDescriptor.SystemFileDescriptor(wanted)
	if log == nil {
		return
	}
	l := log()
	if l == nil {
		return
	}
	if err != nil {
		l.Entry(loglvl.WarnLevel, "could not raise file descriptor limit").FieldAdd("error", err.Error()).Log()
		return
	}
	l.Entry(loglvl.DebugLevel, "file descriptor limit").FieldAdd("current", current).FieldAdd("max", max).Log()
}
