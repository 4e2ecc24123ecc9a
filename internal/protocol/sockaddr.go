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

package protocol

import (
	"net"

	"golang.org/x/sys/unix"
)

// sockaddrToIPPort renders a unix.Sockaddr from accept4/recvfrom into an
// IPv4 address and port pair, the Go equivalent of the original's
// ntohl(sin_addr)/ntohs(sin_port) pair.
func sockaddrToIPPort(sa unix.Sockaddr) (net.IP, uint16) {
	switch addr := sa.(type) {
	case *unix.SockaddrInet4:
		ip := make(net.IP, 4)
		copy(ip, addr.Addr[:])
		return ip, uint16(addr.Port)
	default:
		return net.IPv4zero, 0
	}
}

// ipPortToSockaddr is the inverse conversion, used when addressing an
// outbound UDP datagram.
func ipPortToSockaddr(ip net.IP, port uint16) *unix.SockaddrInet4 {
	sa := &unix.SockaddrInet4{Port: int(port)}
	if v4 := ip.To4(); v4 != nil {
		copy(sa.Addr[:], v4)
	}
	return sa
}
