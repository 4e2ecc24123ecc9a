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

//go:build !linux

package dispatcher

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// pollDispatcher is the "bitset-scan primitive elsewhere" spec §4.1 names: a
// flat unix.Poll over a pollfd slice, rebuilt from the registered set on
// every Wait call.
type pollDispatcher struct {
	mu  sync.Mutex
	fds map[int]struct{}
}

// New constructs the poll(2)-based fallback dispatcher for non-Linux unix
// platforms.
func New() (Dispatcher, error) {
	return &pollDispatcher{fds: make(map[int]struct{})}, nil
}

func (d *pollDispatcher) Register(fd int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fds[fd] = struct{}{}
	return nil
}

func (d *pollDispatcher) Unregister(fd int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.fds, fd)
	return nil
}

func (d *pollDispatcher) Wait(timeout time.Duration, cb Callback) error {
	d.mu.Lock()
	fds := make([]unix.PollFd, 0, len(d.fds))
	for fd := range d.fds {
		fds = append(fds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
	}
	d.mu.Unlock()

	if len(fds) == 0 {
		time.Sleep(timeout)
		return nil
	}

	ms := int(timeout / time.Millisecond)
	n, err := unix.Poll(fds, ms)
	if err != nil {
		if err == unix.EINTR {
			return nil
		}
		return err
	}

	if n == 0 {
		return nil
	}

	for _, pfd := range fds {
		if pfd.Revents == 0 {
			continue
		}
		readable := pfd.Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0
		cb(int(pfd.Fd), readable)
	}

	return nil
}

func (d *pollDispatcher) Close() error {
	return nil
}
