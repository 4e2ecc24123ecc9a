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

// Package runner collects the small set of goroutine-lifecycle helpers shared
// by long-running workers across the repository.
package runner

import (
	"fmt"
	"log"
	"strings"
)

// RecoveryCaller logs a recovered panic with the caller name that installed
// the deferred recover, plus any extra contextual fields. It is a no-op when
// rec is nil (the common case, checked by callers via `defer func(){ ... }()`).
func RecoveryCaller(caller string, rec interface{}, extra ...string) {
	if rec == nil {
		return
	}

	msg := fmt.Sprintf("panic recovered in %s: %v", caller, rec)

	if len(extra) > 0 {
		msg = msg + " (" + strings.Join(extra, ", ") + ")"
	}

	log.Println(msg)
}
