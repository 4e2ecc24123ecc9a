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

// Package handlerabi is the public contract between this server core and an
// out-of-tree handler plugin (spec §4.5). It is the Go rendering of the
// original's dll_functions.h vtable: a fixed set of exported package-level
// functions, one per callback, looked up by name through plugin.Lookup
// rather than passed as a C struct of function pointers. A plugin author
// depends only on this package, never on anything under internal/.
package handlerabi

// Role identifies which thread role is invoking handle_init/handle_fini,
// mirroring the original's thread_type argument.
type Role int

const (
	// RoleMain is the startup/shutdown thread.
	RoleMain Role = iota
	// RoleNetwork is the single network thread.
	RoleNetwork
	// RoleWorker is a worker-pool thread.
	RoleWorker
)

func (r Role) String() string {
	switch r {
	case RoleMain:
		return "main"
	case RoleNetwork:
		return "network"
	case RoleWorker:
		return "worker"
	default:
		return "unknown"
	}
}

// SocketKind mirrors model.SocketKind without importing it, keeping this
// package free of any internal/ dependency.
type SocketKind uint8

const (
	KindStream SocketKind = iota
	KindDatagram
)

// SocketInfo is the plugin-visible projection of a connection's identity,
// equivalent to the original's SocketInfo struct.
type SocketInfo struct {
	FD        int
	Kind      SocketKind
	LocalIP   string
	LocalPort uint16
	PeerIP    string
	PeerPort  uint16
}

// Exported symbol names a plugin must provide. handle_input and
// handle_process are mandatory; the rest, handle_init included, are
// optional and looked up best-effort.
const (
	SymInit    = "HandleInit"
	SymInput   = "HandleInput"
	SymProcess = "HandleProcess"
	SymOpen    = "HandleOpen"
	SymClose   = "HandleClose"
	SymTimer   = "HandleTimer"
	SymFini    = "HandleFini"
)

// InitFunc is handle_init: one-time setup per role, args is argv (argc is
// implicit in len(args)). The server does not check the return value: a
// nonzero result does not stop startup.
type InitFunc func(args []string, role Role) int

// InputFunc is handle_input (framing): given the bytes currently buffered
// for a connection, returns the length of one complete frame, 0 if more
// bytes are needed, or a negative value to report a fatal framing error.
type InputFunc func(buffered []byte, info SocketInfo) int

// ProcessFunc is handle_process: consumes one complete frame and produces a
// reply. A negative return marks the result as a handler failure, and the
// connection is closed once its pending output drains.
type ProcessFunc func(frame []byte, info SocketInfo) (reply []byte, result int)

// OpenFunc is handle_open, called once per accepted connection before any
// data is read; it may produce an immediate greeting.
type OpenFunc func(info SocketInfo) (reply []byte, result int)

// CloseFunc is handle_close, called once a connection is torn down.
type CloseFunc func(info SocketInfo) int

// TimerFunc is handle_timer: returns the requested interval in milliseconds
// and whether the timer callback is active at all.
type TimerFunc func() (intervalMS int, active bool)

// FiniFunc is handle_fini, called once per role at shutdown.
type FiniFunc func(role Role)
