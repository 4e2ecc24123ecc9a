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

package config

import "github.com/spf13/viper"

// Recognized configuration keys (spec §6).
const (
	KeyRingQueueLength = "ringqueue_length"
	KeyWorkerNum       = "worker_num"
	KeyBindFile        = "bind_file"
	KeyRecvBuffer      = "recv_buffer"
	KeySendBuffer      = "send_buffer"
	KeyMaxPacketSize   = "max_packet_size"
	KeyRunMode         = "run_mode"
	KeyLogDir          = "log_dir"
	KeyLogLevel        = "log_level"
	KeyLogMaxFiles     = "log_maxfiles"
	KeyLogSize         = "log_size"
	KeyLogDest         = "log_dest"
)

// RunMode values for KeyRunMode.
const (
	RunModeForeground = "foreground"
	RunModeBackground = "background"
)

// MaxSystemPacketSize bounds max_packet_size (spec §6): the largest payload
// an IPv4 UDP datagram can carry, 65535 minus the 20-byte IP header and the
// 8-byte UDP header.
const MaxSystemPacketSize = 65507

func applyDefaults(v *viper.Viper) {
	v.SetDefault(KeyRingQueueLength, 8192000)
	v.SetDefault(KeyWorkerNum, 4)
	v.SetDefault(KeyBindFile, "./conf/bind.txt")
	v.SetDefault(KeyRecvBuffer, 8196)
	v.SetDefault(KeySendBuffer, 8196)
	v.SetDefault(KeyMaxPacketSize, 8196)
	v.SetDefault(KeyRunMode, RunModeForeground)
	v.SetDefault(KeyLogDir, "./log")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogMaxFiles, 10)
	v.SetDefault(KeyLogSize, int64(10*1024*1024))
	v.SetDefault(KeyLogDest, "terminal")
}
