/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

// Package semaphore provides a weighted worker-limiting semaphore built on
// golang.org/x/sync/semaphore, with a no-op main-slot release used by callers
// that track one "main" goroutine plus a pool of worker goroutines.
package semaphore

import (
	"context"

	xsem "golang.org/x/sync/semaphore"
)

// Semaphore bounds the number of concurrently running worker goroutines.
type Semaphore interface {
	// NewWorkerTry attempts to acquire a worker slot without blocking. It
	// returns false when the pool is already at capacity.
	NewWorkerTry() bool

	// NewWorker acquires a worker slot, blocking until one is available or
	// ctx is done.
	NewWorker(ctx context.Context) error

	// DeferWorker releases a worker slot acquired via NewWorker/NewWorkerTry.
	DeferWorker()

	// DeferMain releases resources held by the semaphore's owning goroutine.
	// It is safe to call even when no worker slot is held.
	DeferMain()
}

type sem struct {
	ctx context.Context
	w   *xsem.Weighted
}

// New creates a Semaphore allowing up to max concurrent workers. bar is
// accepted for signature compatibility with progress-bar-aware callers and is
// otherwise unused.
func New(ctx context.Context, max int64, bar bool) Semaphore {
	if ctx == nil {
		ctx = context.Background()
	}

	if max < 1 {
		max = 1
	}

	return &sem{
		ctx: ctx,
		w:   xsem.NewWeighted(max),
	}
}

func (s *sem) NewWorkerTry() bool {
	return s.w.TryAcquire(1)
}

func (s *sem) NewWorker(ctx context.Context) error {
	return s.w.Acquire(ctx, 1)
}

func (s *sem) DeferWorker() {
	s.w.Release(1)
}

func (s *sem) DeferMain() {}
