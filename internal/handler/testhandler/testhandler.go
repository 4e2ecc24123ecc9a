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

// Package testhandler is an in-process stand-in for a compiled handler
// plugin, grounded on original_source/TestHandler/dll_interface.cpp: a
// 4-byte big-endian length-prefixed echo handler. It implements the exact
// functional surface of handlerabi so integration tests can exercise the
// network thread and worker pool without building a real .so.
package testhandler

import (
	"encoding/binary"

	"github.com/sabouaram/golib/handlerabi"
	"github.com/sabouaram/golib/internal/handler"
)

// New builds a handler.VTable backed by the reference echo implementation:
// frames are a 4-byte big-endian length prefix followed by that many
// payload bytes, and process() echoes the frame back unchanged, matching
// dll_interface.cpp's handle_input/handle_process pair.
func New() *handler.VTable {
	return &handler.VTable{
		Input:   input,
		Process: process,
		Open:    open,
		Close:   closeFn,
		Timer:   timer,
	}
}

func input(buffered []byte, _ handlerabi.SocketInfo) int {
	if len(buffered) <= 4 {
		return 0
	}
	length := int(binary.BigEndian.Uint32(buffered[:4]))
	total := length + 4
	if len(buffered) >= total {
		return total
	}
	return 0
}

func process(frame []byte, _ handlerabi.SocketInfo) ([]byte, int) {
	reply := make([]byte, len(frame))
	copy(reply, frame)
	return reply, 0
}

func open(_ handlerabi.SocketInfo) ([]byte, int) {
	return nil, 0
}

func closeFn(_ handlerabi.SocketInfo) int {
	return 0
}

func timer() (int, bool) {
	return 0, false
}
