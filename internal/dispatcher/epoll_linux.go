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

//go:build linux

package dispatcher

import (
	"time"

	"golang.org/x/sys/unix"
)

// epollDispatcher is the O(1) level-triggered reactor on Linux, grounded on
// the raw epoll sample in this module's reference corpus (EpollCreate1 /
// EpollCtl / EpollWait), rewritten against golang.org/x/sys/unix instead of
// the syscall package since unix is already a transitive dependency here.
type epollDispatcher struct {
	epfd int
}

// New constructs the level-triggered epoll dispatcher on Linux.
func New() (Dispatcher, error) {
	fd, err := unix.EpollCreate1(0)
	if err != nil {
		return nil, err
	}
	return &epollDispatcher{epfd: fd}, nil
}

func (d *epollDispatcher) Register(fd int) error {
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}
	return unix.EpollCtl(d.epfd, unix.EPOLL_CTL_ADD, fd, &ev)
}

func (d *epollDispatcher) Unregister(fd int) error {
	err := unix.EpollCtl(d.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	if err == unix.ENOENT || err == unix.EBADF {
		return nil
	}
	return err
}

func (d *epollDispatcher) Wait(timeout time.Duration, cb Callback) error {
	events := make([]unix.EpollEvent, 128)

	ms := int(timeout / time.Millisecond)
	n, err := unix.EpollWait(d.epfd, events, ms)
	if err != nil {
		if err == unix.EINTR {
			return nil
		}
		return err
	}

	for i := 0; i < n; i++ {
		readable := events[i].Events&(unix.EPOLLIN|unix.EPOLLHUP|unix.EPOLLERR|unix.EPOLLRDHUP) != 0
		cb(int(events[i].Fd), readable)
	}

	return nil
}

func (d *epollDispatcher) Close() error {
	return unix.Close(d.epfd)
}
