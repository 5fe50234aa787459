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

//go:build !linux

package reactor

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// pollBackend drives the portable POSIX poll(2) syscall for platforms
// without epoll (darwin, bsd). O(n) per Wait call in the descriptor
// count; acceptable here since the epoll backend is what production
// Linux deployments use.
type pollBackend struct {
	mu      sync.Mutex
	fds     map[int]Interest
	closed  bool
}

func newBackend() (backend, error) {
	return &pollBackend{fds: make(map[int]Interest)}, nil
}

func (b *pollBackend) add(fd int, interest Interest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fds[fd] = interest
	return nil
}

func (b *pollBackend) modify(fd int, interest Interest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fds[fd] = interest
	return nil
}

func (b *pollBackend) remove(fd int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.fds, fd)
	return nil
}

func toPollEvents(i Interest) int16 {
	var e int16
	if i&InterestReadable != 0 {
		e |= unix.POLLIN
	}
	if i&InterestWritable != 0 {
		e |= unix.POLLOUT
	}
	return e
}

func (b *pollBackend) wait(deadline time.Time, out []Event) (int, error) {
	b.mu.Lock()
	fds := make([]unix.PollFd, 0, len(b.fds))
	for fd, interest := range b.fds {
		fds = append(fds, unix.PollFd{Fd: int32(fd), Events: toPollEvents(interest)})
	}
	b.mu.Unlock()

	timeoutMs := -1
	if !deadline.IsZero() {
		if d := time.Until(deadline); d > 0 {
			timeoutMs = int(d.Milliseconds())
		} else {
			timeoutMs = 0
		}
	}

	n, err := unix.Poll(fds, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}

	count := 0
	for _, pfd := range fds {
		if pfd.Revents == 0 {
			continue
		}
		var ready Interest
		if pfd.Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0 {
			ready |= InterestReadable
		}
		if pfd.Revents&unix.POLLOUT != 0 {
			ready |= InterestWritable
		}
		if count >= len(out) {
			break
		}
		out[count] = Event{Fd: int(pfd.Fd), Ready: ready}
		count++
	}
	return count, nil
}

func (b *pollBackend) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.fds = nil
	return nil
}
