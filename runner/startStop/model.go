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

package startStop

import (
	"context"
	"errors"
	"sync"
	"time"
)

const maxErrorHistory = 32

type runner struct {
	mu sync.Mutex

	fctStart Func
	fctStop  Func

	cancel context.CancelFunc
	done   chan struct{}

	running bool
	started time.Time

	errs []error
}

func (r *runner) Start(ctx context.Context) error {
	r.mu.Lock()

	if r.running {
		cancel := r.cancel
		done := r.done
		r.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		if done != nil {
			<-done
		}

		r.mu.Lock()
	}

	cctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	r.cancel = cancel
	r.done = done
	r.running = true
	r.started = time.Now()

	fct := r.fctStart
	r.mu.Unlock()

	go r.run(cctx, fct, done)

	return nil
}

func (r *runner) run(ctx context.Context, fct Func, done chan struct{}) {
	defer close(done)
	defer r.finish()

	if fct == nil {
		r.recordError(errors.New("startStop: invalid start function"))
		return
	}

	if err := fct(ctx); err != nil {
		r.recordError(err)
	}
}

func (r *runner) finish() {
	r.mu.Lock()
	r.running = false
	r.mu.Unlock()
}

func (r *runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	cancel := r.cancel
	done := r.done
	fct := r.fctStop
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if fct == nil {
		r.recordError(errors.New("startStop: invalid stop function"))
		return nil
	}

	if err := fct(ctx); err != nil {
		r.recordError(err)
		return err
	}

	return nil
}

func (r *runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *runner) Uptime() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return 0
	}

	return time.Since(r.started)
}

func (r *runner) recordError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errs = append(r.errs, err)
	if len(r.errs) > maxErrorHistory {
		r.errs = r.errs[len(r.errs)-maxErrorHistory:]
	}
}

func (r *runner) ErrorsLast() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.errs) == 0 {
		return nil
	}

	return r.errs[len(r.errs)-1]
}

func (r *runner) ErrorsList() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]error, len(r.errs))
	copy(out, r.errs)
	return out
}
