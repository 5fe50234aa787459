/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

package reactor

import (
	"time"

	"golang.org/x/sys/unix"
)

// epollBackend drives Linux epoll. It is the default backend: epoll
// scales to large descriptor counts without the O(n) rescan a plain
// poll(2) call needs on every Wait.
type epollBackend struct {
	epfd int
}

func newBackend() (backend, error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &epollBackend{epfd: fd}, nil
}

func toEpollEvents(i Interest) uint32 {
	var e uint32
	if i&InterestReadable != 0 {
		e |= unix.EPOLLIN
	}
	if i&InterestWritable != 0 {
		e |= unix.EPOLLOUT
	}
	return e
}

func (b *epollBackend) add(fd int, interest Interest) error {
	ev := unix.EpollEvent{Events: toEpollEvents(interest), Fd: int32(fd)}
	return unix.EpollCtl(b.epfd, unix.EPOLL_CTL_ADD, fd, &ev)
}

func (b *epollBackend) modify(fd int, interest Interest) error {
	ev := unix.EpollEvent{Events: toEpollEvents(interest), Fd: int32(fd)}
	return unix.EpollCtl(b.epfd, unix.EPOLL_CTL_MOD, fd, &ev)
}

func (b *epollBackend) remove(fd int) error {
	return unix.EpollCtl(b.epfd, unix.EPOLL_CTL_DEL, fd, nil)
}

func (b *epollBackend) wait(deadline time.Time, out []Event) (int, error) {
	timeoutMs := -1
	if !deadline.IsZero() {
		if d := time.Until(deadline); d > 0 {
			timeoutMs = int(d.Milliseconds())
		} else {
			timeoutMs = 0
		}
	}

	raw := make([]unix.EpollEvent, len(out))
	n, err := unix.EpollWait(b.epfd, raw, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, err
	}

	for i := 0; i < n; i++ {
		var ready Interest
		if raw[i].Events&(unix.EPOLLIN|unix.EPOLLHUP|unix.EPOLLERR) != 0 {
			ready |= InterestReadable
		}
		if raw[i].Events&unix.EPOLLOUT != 0 {
			ready |= InterestWritable
		}
		out[i] = Event{Fd: int(raw[i].Fd), Ready: ready}
	}
	return n, nil
}

func (b *epollBackend) close() error {
	return unix.Close(b.epfd)
}
