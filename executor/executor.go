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

package executor

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// Executor runs a fixed number of reactor poll-loop workers, joining them
// on Stop and reporting every worker's error rather than just the first.
type Executor struct {
	group  *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc

	errs *multierror.Error
}

// NewExecutor returns an Executor bound to ctx: Stop (or ctx's own
// cancellation) signals every running worker to return.
func NewExecutor(ctx context.Context) *Executor {
	c, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(c)
	return &Executor{group: g, ctx: gctx, cancel: cancel}
}

// Go starts a worker. fn must return promptly once e's context is done.
func (e *Executor) Go(fn func(ctx context.Context) error) {
	e.group.Go(func() error {
		return fn(e.ctx)
	})
}

// Stop cancels every worker's context and waits for them all to return,
// aggregating every non-nil error instead of only the first (errgroup's
// Wait stops at the first error; multierror.Append keeps the rest visible
// to the caller for diagnostics).
func (e *Executor) Stop() error {
	e.cancel()
	if err := e.group.Wait(); err != nil {
		e.errs = multierror.Append(e.errs, err)
	}
	if e.errs == nil {
		return nil
	}
	return e.errs.ErrorOrNil()
}
