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

import (
	"encoding/binary"
	"net"
)

// RecordType discriminates the three kinds of record a ring queue carries.
type RecordType uint8

const (
	// RecordData carries an application payload.
	RecordData RecordType = iota
	// RecordPadding is a header-only entry a producer may emit to avoid
	// splitting a payload across the ring's wrap boundary. Defined per the
	// wire contract but never emitted by this implementation: split-copy is
	// always performed instead (spec §4.2, §9).
	RecordPadding
	// RecordFinal is a zero-payload record signalling that the connection
	// should be closed once the send buffer drains.
	RecordFinal
)

// HeaderSize is the fixed, binary-encoded size of RecordHeader on the wire,
// in bytes: 4 (TotalLength) + 8 (BlockID) + 1 (Type) + 4 (FD) + 1 (Kind) +
// 4+2 (LocalIP+Port) + 4+2 (PeerIP+Port) + 2 (AcceptFD).
const HeaderSize = 4 + 8 + 1 + 4 + 1 + 4 + 2 + 4 + 2 + 2

// RecordHeader is the fixed-size metadata carried with every queued payload.
type RecordHeader struct {
	TotalLength uint32
	BlockID     uint64
	Type        RecordType
	Info        SocketInfo
	AcceptFD    int
}

// Encode serializes the header into the fixed-size wire form used by the
// ring queue. IP addresses are encoded as 4-byte big-endian (IPv4 only, per
// spec §1 Non-goals).
func (h RecordHeader) Encode(buf []byte) {
	_ = buf[HeaderSize-1]
	binary.BigEndian.PutUint32(buf[0:4], h.TotalLength)
	binary.BigEndian.PutUint64(buf[4:12], h.BlockID)
	buf[12] = byte(h.Type)
	binary.BigEndian.PutUint32(buf[13:17], uint32(h.Info.FD))
	buf[17] = byte(h.Info.Kind)
	putIP(buf[18:22], h.Info.LocalIP)
	binary.BigEndian.PutUint16(buf[22:24], h.Info.LocalPort)
	putIP(buf[24:28], h.Info.PeerIP)
	binary.BigEndian.PutUint16(buf[28:30], h.Info.PeerPort)
	binary.BigEndian.PutUint16(buf[30:32], uint16(h.AcceptFD))
}

// DecodeHeader parses a fixed-size header out of buf.
func DecodeHeader(buf []byte) RecordHeader {
	_ = buf[HeaderSize-1]
	return RecordHeader{
		TotalLength: binary.BigEndian.Uint32(buf[0:4]),
		BlockID:     binary.BigEndian.Uint64(buf[4:12]),
		Type:        RecordType(buf[12]),
		Info: SocketInfo{
			FD:        int(binary.BigEndian.Uint32(buf[13:17])),
			Kind:      SocketKind(buf[17]),
			LocalIP:   getIP(buf[18:22]),
			LocalPort: binary.BigEndian.Uint16(buf[22:24]),
			PeerIP:    getIP(buf[24:28]),
			PeerPort:  binary.BigEndian.Uint16(buf[28:30]),
		},
		AcceptFD: int(binary.BigEndian.Uint16(buf[30:32])),
	}
}

func putIP(dst []byte, ip net.IP) {
	if v4 := ip.To4(); v4 != nil {
		copy(dst, v4)
	}
}

func getIP(src []byte) net.IP {
	out := make(net.IP, 4)
	copy(out, src)
	return out
}
