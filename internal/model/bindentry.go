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

package model

import "fmt"

// Proto is the transport token read from the bind file ("tcp" or "udp").
type Proto string

const (
	ProtoTCP Proto = "tcp"
	ProtoUDP Proto = "udp"
)

// BindEntry is one parsed line of the bind file: `IP PORT TYPE IDLE_TIMEOUT`.
type BindEntry struct {
	IP          string
	Port        int
	Proto       Proto
	IdleTimeout int
}

// Flag returns the derived connection-flag bits for a listener created from
// this bind entry, mirroring the original's CN_LISTEN_MASK/CN_UDP_MASK.
func (b BindEntry) Flag() ClientFlag {
	f := FlagListener
	if b.Proto == ProtoUDP {
		f |= FlagUDP
	}
	return f
}

// Addr renders "ip:port" for net.Listen/net.ListenUDP.
func (b BindEntry) Addr() string {
	return fmt.Sprintf("%s:%d", b.IP, b.Port)
}

func (b BindEntry) String() string {
	return fmt.Sprintf("%s/%s idle=%ds", b.Addr(), b.Proto, b.IdleTimeout)
}
