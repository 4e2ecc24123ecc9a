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

// Package handler binds a loaded handlerabi implementation (real plugin or
// in-process test double) to a VTable the network thread and worker pool
// call through, translating between internal/model's socket types and the
// plugin-facing handlerabi ones at the boundary (spec §4.5).
package handler

import (
	"github.com/sabouaram/golib/handlerabi"
	"github.com/sabouaram/golib/internal/model"
)

// VTable is the Go rendering of the original's dll_func_t: one field per
// callback, the optional ones nilable. Every call site must check an
// optional field for nil before invoking it; only Input and Process are
// guaranteed present once Load succeeds.
type VTable struct {
	Init    handlerabi.InitFunc    // optional
	Input   handlerabi.InputFunc   // mandatory
	Process handlerabi.ProcessFunc // mandatory
	Open    handlerabi.OpenFunc    // optional
	Close   handlerabi.CloseFunc   // optional
	Timer   handlerabi.TimerFunc   // optional
	Fini    handlerabi.FiniFunc    // optional
}

// toABI projects a model.SocketInfo to the plugin-visible handlerabi.SocketInfo.
func toABI(info model.SocketInfo) handlerabi.SocketInfo {
	kind := handlerabi.KindStream
	if info.Kind == model.KindDatagram {
		kind = handlerabi.KindDatagram
	}
	return handlerabi.SocketInfo{
		FD:        info.FD,
		Kind:      kind,
		LocalIP:   info.LocalIP.String(),
		LocalPort: info.LocalPort,
		PeerIP:    info.PeerIP.String(),
		PeerPort:  info.PeerPort,
	}
}

// CallInput invokes the mandatory framing callback, translating info to
// the plugin-visible representation.
func (v *VTable) CallInput(buffered []byte, info model.SocketInfo) int {
	return v.Input(buffered, toABI(info))
}

// CallProcess invokes the mandatory frame-processing callback.
func (v *VTable) CallProcess(frame []byte, info model.SocketInfo) ([]byte, int) {
	return v.Process(frame, toABI(info))
}

// CallOpen invokes the optional connection-open callback. ok reports
// whether the plugin provided one at all.
func (v *VTable) CallOpen(info model.SocketInfo) (reply []byte, result int, ok bool) {
	if v.Open == nil {
		return nil, 0, false
	}
	reply, result = v.Open(toABI(info))
	return reply, result, true
}

// CallClose invokes the optional connection-close callback.
func (v *VTable) CallClose(info model.SocketInfo) (result int, ok bool) {
	if v.Close == nil {
		return 0, false
	}
	return v.Close(toABI(info)), true
}

// CallTimer invokes the optional timer callback.
func (v *VTable) CallTimer() (intervalMS int, active bool) {
	if v.Timer == nil {
		return 0, false
	}
	return v.Timer()
}

// CallInit invokes the optional init callback for role with args.
func (v *VTable) CallInit(args []string, role handlerabi.Role) int {
	if v.Init == nil {
		return 0
	}
	return v.Init(args, role)
}

// CallFini invokes the optional fini callback for role.
func (v *VTable) CallFini(role handlerabi.Role) {
	if v.Fini != nil {
		v.Fini(role)
	}
}
