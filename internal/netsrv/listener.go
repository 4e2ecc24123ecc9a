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
	"net"

	"golang.org/x/sys/unix"

	"github.com/sabouaram/golib/internal/model"
	"github.com/sabouaram/golib/internal/srverr"
)

// bindListener opens a non-blocking raw socket for be and binds/listens it,
// the Go equivalent of the original server.cpp's per-entry socket/bind/
// listen sequence. The dispatcher registers the returned fd directly;
// there is no net.Listener/net.Conn wrapping anywhere in the accept path,
// since readiness-based multiplexing needs the raw descriptor.
func bindListener(be model.BindEntry) (int, model.SocketInfo, error) {
	sockType := unix.SOCK_STREAM
	kind := model.KindStream
	if be.Proto == model.ProtoUDP {
		sockType = unix.SOCK_DGRAM
		kind = model.KindDatagram
	}

	fd, err := unix.Socket(unix.AF_INET, sockType|unix.SOCK_NONBLOCK, 0)
	if err != nil {
		return -1, model.SocketInfo{}, srverr.ErrorStartupFatal.Error(err)
	}

	if err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = unix.Close(fd)
		return -1, model.SocketInfo{}, srverr.ErrorStartupFatal.Error(err)
	}

	sa := &unix.SockaddrInet4{Port: be.Port}
	ip := net.ParseIP(be.IP)
	if v4 := ip.To4(); v4 != nil {
		copy(sa.Addr[:], v4)
	}

	if err = unix.Bind(fd, sa); err != nil {
		_ = unix.Close(fd)
		return -1, model.SocketInfo{}, srverr.ErrorStartupFatal.Error(err)
	}

	if sockType == unix.SOCK_STREAM {
		if err = unix.Listen(fd, 128); err != nil {
			_ = unix.Close(fd)
			return -1, model.SocketInfo{}, srverr.ErrorStartupFatal.Error(err)
		}
	}

	localPort := uint16(be.Port)
	if be.Port == 0 {
		// bind_file may request the ephemeral port (tests do, to avoid a
		// fixed port clashing across runs); ask the kernel what it chose.
		if sa4, ok := getsockname(fd); ok {
			localPort = uint16(sa4.Port)
		}
	}

	info := model.SocketInfo{
		FD:        fd,
		Kind:      kind,
		LocalIP:   ip.To4(),
		LocalPort: localPort,
	}
	return fd, info, nil
}

func getsockname(fd int) (*unix.SockaddrInet4, bool) {
	sa, err := unix.Getsockname(fd)
	if err != nil {
		return nil, false
	}
	sa4, ok := sa.(*unix.SockaddrInet4)
	return sa4, ok
}
