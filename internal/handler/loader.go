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

package handler

import (
	"fmt"
	"plugin"

	"github.com/sabouaram/golib/handlerabi"
	"github.com/sabouaram/golib/internal/srverr"
)

// Load dlopen-equivalents path and resolves every handlerabi symbol by
// name, matching load_dll_functions's dlsym pass over dll_func_t's field
// list. Input and Process are mandatory: a plugin missing either is a
// startup-fatal condition (spec §7), same as the original's refusal to run
// with a partially-resolved vtable.
func Load(path string) (*VTable, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, srverr.ErrorStartupFatal.Error(err)
	}

	v := &VTable{}

	if sym, lookErr := p.Lookup(handlerabi.SymInput); lookErr == nil {
		fn, ok := sym.(func([]byte, handlerabi.SocketInfo) int)
		if !ok {
			return nil, missingSymbol(handlerabi.SymInput)
		}
		v.Input = fn
	} else {
		return nil, missingSymbol(handlerabi.SymInput)
	}

	if sym, lookErr := p.Lookup(handlerabi.SymProcess); lookErr == nil {
		fn, ok := sym.(func([]byte, handlerabi.SocketInfo) ([]byte, int))
		if !ok {
			return nil, missingSymbol(handlerabi.SymProcess)
		}
		v.Process = fn
	} else {
		return nil, missingSymbol(handlerabi.SymProcess)
	}

	if sym, lookErr := p.Lookup(handlerabi.SymInit); lookErr == nil {
		if fn, ok := sym.(func([]string, handlerabi.Role) int); ok {
			v.Init = fn
		}
	}
	if sym, lookErr := p.Lookup(handlerabi.SymOpen); lookErr == nil {
		if fn, ok := sym.(func(handlerabi.SocketInfo) ([]byte, int)); ok {
			v.Open = fn
		}
	}
	if sym, lookErr := p.Lookup(handlerabi.SymClose); lookErr == nil {
		if fn, ok := sym.(func(handlerabi.SocketInfo) int); ok {
			v.Close = fn
		}
	}
	if sym, lookErr := p.Lookup(handlerabi.SymTimer); lookErr == nil {
		if fn, ok := sym.(func() (int, bool)); ok {
			v.Timer = fn
		}
	}
	if sym, lookErr := p.Lookup(handlerabi.SymFini); lookErr == nil {
		if fn, ok := sym.(func(handlerabi.Role)); ok {
			v.Fini = fn
		}
	}

	return v, nil
}

func missingSymbol(name string) error {
	return srverr.ErrorStartupFatal.Error(fmt.Errorf("handler plugin is missing mandatory symbol %q", name))
}
