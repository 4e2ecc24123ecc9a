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
	"sync"
	"time"

	"github.com/sabouaram/golib/handlerabi"
	"github.com/sabouaram/golib/internal/health"
	"github.com/sabouaram/golib/internal/handler"
	"github.com/sabouaram/golib/internal/model"
	"github.com/sabouaram/golib/internal/ringqueue"
	"github.com/sabouaram/golib/internal/srverr"
	liblog "github.com/sabouaram/golib/logger"
	loglvl "github.com/sabouaram/golib/logger/level"
)

// WorkerPool is the fixed-size pool of goroutines that pull frames off the
// receive queue and run the handler's process callback (spec §4.7). Unlike
// the network thread, workers never touch a socket: a reply is pushed back
// onto the send queue for the network thread to write.
type WorkerPool struct {
	Count      int
	RecvQueue  *ringqueue.Queue
	SendQueue  *ringqueue.Queue
	Handler    *handler.VTable
	Monitor    *health.Monitor
	Log        liblog.FuncLog
	RecvBufCap int

	// Args is forwarded to the handler's init/fini callbacks for
	// RoleWorker, mirroring the argv the original passed every thread.
	Args []string
}

// Run spawns Count worker goroutines and blocks until every one returns,
// which happens once RecvQueue is closed or ctx is cancelled.
func (p *WorkerPool) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	wg.Add(p.Count)
	for i := 0; i < p.Count; i++ {
		go func(id int) {
			defer wg.Done()
			p.workerLoop(ctx, id)
		}(i)
	}
	wg.Wait()
	return nil
}

// workerLoop is one worker thread's lifetime: an optional init callback,
// the wait/process/reply cycle, and an optional fini callback on the way
// out — called once per role-carrying thread, per spec §4.5.
func (p *WorkerPool) workerLoop(ctx context.Context, id int) {
	if p.Handler != nil {
		p.Handler.CallInit(p.Args, handlerabi.RoleWorker)
		defer p.Handler.CallFini(handlerabi.RoleWorker)
	}

	buf := make([]byte, p.RecvBufCap)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		header, n, err := p.RecvQueue.WaitAndPop(buf, 100*time.Millisecond)
		if err != nil {
			if err == ringqueue.ErrClosed {
				return
			}
			continue
		}

		if p.Monitor != nil {
			p.Monitor.MarkBusy()
		}
		p.process(header, buf[:n])
		if p.Monitor != nil {
			p.Monitor.MarkIdle()
		}
	}
}

// process runs one frame through the handler and enqueues the resulting
// DATA or FINAL record, following the result<0/reply!=nil rule spec §4.7
// sets: a negative result always produces a FINAL record regardless of
// any reply bytes, so the connection drains and closes rather than
// leaving a half-written response in flight.
func (p *WorkerPool) process(header model.RecordHeader, frame []byte) {
	reply, result := p.Handler.CallProcess(frame, header.Info)

	if result < 0 {
		p.enqueue(model.RecordHeader{Type: model.RecordFinal, Info: header.Info, AcceptFD: header.AcceptFD}, nil)
		p.logWarn("handler reported a failure result", srverr.ErrorHandlerFailure.Error())
		return
	}
	if len(reply) > 0 {
		p.enqueue(model.RecordHeader{Type: model.RecordData, Info: header.Info, AcceptFD: header.AcceptFD}, reply)
	}
}

func (p *WorkerPool) enqueue(header model.RecordHeader, payload []byte) {
	if err := p.SendQueue.Push(header, payload); err != nil {
		p.logWarn("send queue push failed", srverr.ErrorQueueFull.Error(err))
		if header.Type != model.RecordFinal {
			header.Type = model.RecordFinal
			_ = p.SendQueue.Push(header, nil)
		}
	}
}

func (p *WorkerPool) logWarn(msg string, err error) {
	if p.Log == nil {
		return
	}
	if l := p.Log(); l != nil {
		l.Entry(loglvl.WarnLevel, msg).FieldAdd("error", err.Error()).Log()
	}
}
