/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2021 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

// Package ratelimit implements the dual leaky-bucket limiter attached to a
// socket's receive and send paths. Unlike golang.org/x/time/rate, which
// models a single token bucket with no reservation-cancel protocol, this
// package supports reserve/cancelReserved/submitReserved accounting: a peak
// bucket bounds bursts and a sustained bucket bounds the long-run average
// rate, and both must clear before a submission is authorized.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// leakyBucket holds units that decay at rate per second, bounded above by
// capacity.
type leakyBucket struct {
	rate       float64
	capacity   float64
	units      float64
	lastUpdate time.Time
}

// decay drains the bucket by rate*elapsed since lastUpdate, floored at zero.
func (b *leakyBucket) decay(now time.Time) {
	if b.lastUpdate.IsZero() {
		b.lastUpdate = now
		return
	}
	elapsed := now.Sub(b.lastUpdate).Seconds()
	if elapsed <= 0 {
		return
	}
	b.units -= b.rate * elapsed
	if b.units < 0 {
		b.units = 0
	}
	b.lastUpdate = now
}

// wouldExceed reports whether the bucket is at or over capacity.
func (b *leakyBucket) wouldExceed() bool { return b.units >= b.capacity }

// timeToSubmit returns how long to wait, rounded up to the next nanosecond,
// before the bucket has room for one more unit.
func (b *leakyBucket) timeToSubmit() time.Duration {
	if b.rate <= 0 {
		return 0
	}
	over := b.units - b.capacity + 1
	if over <= 0 {
		return 0
	}
	seconds := over / b.rate
	return time.Duration(math.Ceil(seconds * float64(time.Second)))
}

// Limiter is a pair of independent leaky buckets — a peak bucket and a
// sustained bucket — gating a socket's receive or send path. A submission
// is authorized only when neither bucket would exceed its capacity.
type Limiter struct {
	mu        sync.Mutex
	peak      leakyBucket
	sustained leakyBucket
	reserved  float64
}

// Config describes the two buckets backing a Limiter.
type Config struct {
	PeakRate          float64
	PeakCapacity      float64
	SustainedRate     float64
	SustainedCapacity float64
}

// New returns a Limiter configured with the given peak and sustained
// bucket parameters.
func New(cfg Config) *Limiter {
	return &Limiter{
		peak:      leakyBucket{rate: cfg.PeakRate, capacity: cfg.PeakCapacity},
		sustained: leakyBucket{rate: cfg.SustainedRate, capacity: cfg.SustainedCapacity},
	}
}

// WouldExceed reports whether submitting now would push either bucket
// at/over capacity, after applying time-based decay.
func (l *Limiter) WouldExceed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.peak.decay(now)
	l.sustained.decay(now)
	return l.peak.wouldExceed() || l.sustained.wouldExceed()
}

// TimeToSubmit returns the longer of the two buckets' wait times before a
// submission would be authorized.
func (l *Limiter) TimeToSubmit() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.peak.decay(now)
	l.sustained.decay(now)

	pt := l.peak.timeToSubmit()
	st := l.sustained.timeToSubmit()
	if pt > st {
		return pt
	}
	return st
}

// Submit adds n units to both buckets after applying time-based decay.
func (l *Limiter) Submit(n float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.peak.decay(now)
	l.sustained.decay(now)
	l.peak.units += n
	l.sustained.units += n
}

// Reserve consumes n units of capacity immediately, before the actual I/O
// that will use them has completed. The reservation must later be resolved
// with SubmitReserved or CancelReserved.
func (l *Limiter) Reserve(n float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.peak.decay(now)
	l.sustained.decay(now)
	l.peak.units += n
	l.sustained.units += n
	l.reserved += n
}

// SubmitReserved converts a prior reservation into a confirmed submission.
// The units are already accounted for in both buckets by Reserve, so this
// only clears the reservation bookkeeping.
func (l *Limiter) SubmitReserved(n float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.reserved -= n
	if l.reserved < 0 {
		l.reserved = 0
	}
}

// CancelReserved refunds n previously reserved units back to both buckets,
// for I/O that did not end up happening (e.g. a cancelled send).
func (l *Limiter) CancelReserved(n float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.peak.decay(now)
	l.sustained.decay(now)

	l.peak.units -= n
	if l.peak.units < 0 {
		l.peak.units = 0
	}
	l.sustained.units -= n
	if l.sustained.units < 0 {
		l.sustained.units = 0
	}

	l.reserved -= n
	if l.reserved < 0 {
		l.reserved = 0
	}
}
