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

// Package bindfile parses the line-oriented bind file (spec §6): one
// BindEntry per non-comment, non-blank line, `IP PORT TYPE IDLE_TIMEOUT`
// whitespace-separated. There is no properties-like grammar in viper for
// this row shape, so this reader stays a dedicated bufio.Scanner loop
// rather than a config-library feature (documented in DESIGN.md).
package bindfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sabouaram/golib/internal/model"
	liblog "github.com/sabouaram/golib/logger"
	loglvl "github.com/sabouaram/golib/logger/level"
)

// Load opens path and parses every well-formed line into a BindEntry,
// logging and skipping unknown protocol tokens or malformed rows via log
// (which may be nil, e.g. in tests).
func Load(path string, log liblog.FuncLog) ([]model.BindEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return Parse(f, log)
}

// Parse reads bind-file rows from r. Split out from Load so tests can feed
// an in-memory reader instead of a file.
func Parse(r io.Reader, log liblog.FuncLog) ([]model.BindEntry, error) {
	var entries []model.BindEntry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 4 {
			warnf(log, "bind file: line %d: expected 4 fields, got %d, skipping", lineNo, len(fields))
			continue
		}

		proto := model.Proto(strings.ToLower(fields[2]))
		if proto != model.ProtoTCP && proto != model.ProtoUDP {
			warnf(log, "bind file: line %d: unknown protocol %q, skipping", lineNo, fields[2])
			continue
		}

		port, err := strconv.Atoi(fields[1])
		if err != nil {
			warnf(log, "bind file: line %d: invalid port %q, skipping", lineNo, fields[1])
			continue
		}

		idle, err := strconv.Atoi(fields[3])
		if err != nil {
			warnf(log, "bind file: line %d: invalid idle timeout %q, skipping", lineNo, fields[3])
			continue
		}

		entries = append(entries, model.BindEntry{
			IP:          fields[0],
			Port:        port,
			Proto:       proto,
			IdleTimeout: idle,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("bind file: %w", err)
	}
	return entries, nil
}

func warnf(log liblog.FuncLog, format string, args ...interface{}) {
	if log == nil {
		return
	}
	l := log()
	if l == nil {
		return
	}
	l.Entry(loglvl.WarnLevel, fmt.Sprintf(format, args...)).Log()
}
