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

// Package srverr gives every failure taxon of the server core (spec §7) a
// stable liberr.CodeError, following the same iota-from-a-reserved-range
// pattern the errors package's own sub-packages use (errors/modules.go).
package srverr

import (
	liberr "github.com/sabouaram/golib/errors"
)

const (
	// ErrorTransient covers EAGAIN on a non-blocking send and short writes:
	// recovered by retaining the unsent tail in the client's send buffer.
	ErrorTransient liberr.CodeError = iota + liberr.MinAvailable

	// ErrorProtocolFraming covers a negative framing result: terminal for
	// the connection, triggers the close sequence.
	ErrorProtocolFraming

	// ErrorOverflow covers a receive or send buffer that would exceed its
	// fixed capacity: terminal for the connection.
	ErrorOverflow

	// ErrorQueueFull surfaces a failed Push to the producer. On the
	// receive side this closes the connection; on the send side the worker
	// logs it and makes one attempt to enqueue a FINAL record instead, which
	// makes the network thread close the client.
	ErrorQueueFull

	// ErrorHandlerFailure covers a negative process() result: produces a
	// FINAL record rather than an immediate close, preserving send-queue
	// ordering.
	ErrorHandlerFailure

	// ErrorFatal covers a descriptor error or accept failure: the affected
	// descriptor is closed and its table entry removed; the process stays
	// up.
	ErrorFatal

	// ErrorStartupFatal covers a bind/listen failure or a handler missing
	// a mandatory symbol: the process exits with a nonzero status.
	ErrorStartupFatal

	// ErrorConfigInvalid covers a configuration value that fails struct
	// validation, such as max_packet_size exceeding the system maximum:
	// the process exits before any listener is bound.
	ErrorConfigInvalid
)

func init() {
	liberr.RegisterIdFctMessage(ErrorTransient, message)
}

func message(code liberr.CodeError) string {
	switch code {
	case ErrorTransient:
		return "transient I/O condition, unsent bytes retained"
	case ErrorProtocolFraming:
		return "framing callback reported a fatal condition"
	case ErrorOverflow:
		return "buffer would exceed its fixed capacity"
	case ErrorQueueFull:
		return "ring queue has no free space for this record"
	case ErrorHandlerFailure:
		return "handler process callback returned an error"
	case ErrorFatal:
		return "descriptor error, connection closed"
	case ErrorStartupFatal:
		return "startup failed, process must exit"
	case ErrorConfigInvalid:
		return "configuration value failed validation"
	default:
		return liberr.NullMessage
	}
}
