/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

/*
Package logger provides a structured logging facade built on top of logrus,
with configurable destinations and level-based filtering.

# Overview

The logger package offers a unified logging interface that extends io.WriteCloser,
making it compatible with any Go code expecting a standard writer. It supports:

  - Multiple simultaneous output destinations (stdout/stderr, files)
  - Level-based filtering with six standard levels (Debug, Info, Warn, Error, Fatal, Panic)
  - Structured logging with custom fields
  - Automatic caller tracking (file, line, function name, goroutine ID)
  - Thread-safe concurrent logging
  - Integration with the standard library log package
  - Integration with spf13/jwalterweatherman for cobra/viper-driven CLIs

# Architecture

Package Structure:

	github.com/sabouaram/golib/logger
	├─ Logger Interface (interface.go)
	│  ├─ Main logging methods (Debug, Info, Warning, Error...)
	│  ├─ Configuration (SetOptions, SetLevel, SetFields)
	│  └─ Advanced (Clone, Entry, CheckError)
	├─ Implementation (log.go, manage.go, model.go)
	│  ├─ Entry creation with automatic context
	│  ├─ Hook lifecycle management
	│  └─ Formatter configuration
	├─ I/O Integration (iowritecloser.go, golog.go)
	│  ├─ io.WriteCloser implementation
	│  └─ Standard log.Logger bridge
	└─ Framework Integration (spf13.go)
	   └─ jwalterweatherman (cobra/viper) integration

	Sub-packages:
	  config     Options, OptionsFile, OptionsStd, OptionsSyslog
	  entry      Entry builder and lifecycle
	  fields     Structured field management
	  level      Level constants and conversions
	  types      Hook interface and field name constants
	  hookwriter Generic io.Writer hook
	  hookstdout Stdout hook (color-aware, built on hookwriter)
	  hookstderr Stderr hook (color-aware)
	  hookfile   File hook with rotation detection

Data Flow:

	Logger.Debug/Info/Warning/Error(...)
	     │
	     ▼
	Entry creation (newEntry) — caller info, goroutine id, default fields
	     │
	     ▼
	Entry.Log() → logrus.Logger
	     │
	     ├─ Level filtering, formatter application
	     └─ Registered hooks (Fire synchronous, Run async per hook)

# Use

	log := logger.New(context.Background())
	log.SetLevel(level.InfoLevel)

	err := log.SetOptions(&config.Options{
	    Stdout: &config.OptionsStd{EnableTrace: true},
	    LogFile: []config.OptionsFile{
	        {Filepath: "/var/log/app/app.log", Create: true, CreatePath: true},
	    },
	})
	if err != nil {
	    panic(err)
	}
	defer log.Close()

	log.Info("started", nil)

# Limitations

Hooks start asynchronously when SetOptions is called; SetOptions waits up to
500ms for them to report running before returning. Fatal calls os.Exit(1)
after logging; Panic triggers panic(). Hook buffers are bounded; sustained
high log volume can drop entries once a buffer fills.
*/
package logger
