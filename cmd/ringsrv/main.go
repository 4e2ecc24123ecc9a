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

// Command ringsrv is the CLI entry point (spec §6): `server [config_path]
// [handler_path]`, exiting 0 on a normal stop and 1 on startup failure.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sabouaram/golib/internal/config"
	"github.com/sabouaram/golib/internal/handler"
	"github.com/sabouaram/golib/internal/netsrv"
	liblog "github.com/sabouaram/golib/logger"
	logcfg "github.com/sabouaram/golib/logger/config"
	loglvl "github.com/sabouaram/golib/logger/level"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ringsrv",
		Short: "Multithreaded TCP/UDP application-server core",
	}
	cmd.AddCommand(newServerCmd())
	return cmd
}

func newServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server [config_path] [handler_path]",
		Short: "Run the server core against a config file and a handler plugin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(args[0], args[1])
		},
	}
}

func runServer(configPath, handlerPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	vt, err := handler.Load(handlerPath)
	if err != nil {
		return fmt.Errorf("loading handler: %w", err)
	}

	logFn := newLogFunc(cfg)

	shell, err := netsrv.NewShell(cfg, vt, logFn, os.Args)
	if err != nil {
		return fmt.Errorf("starting shell: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return shell.Run(ctx)
}

// newLogFunc builds the liblog.FuncLog the shell, network thread and worker
// pool all log through: run_mode=background routes to the configured log
// file via hookfile the same way this module's own components wire a
// logger.Options; run_mode=foreground keeps the terminal destination.
func newLogFunc(cfg *config.Config) liblog.FuncLog {
	l := liblog.New(context.Background())
	l.SetLevel(loglvl.Parse(cfg.LogLevel))

	opt := &logcfg.Options{
		InheritDefault: true,
	}
	if cfg.RunMode == config.RunModeBackground || cfg.LogDest == "file" {
		opt.LogFile = logcfg.OptionsFiles{
			{
				LogLevel:   []string{cfg.LogLevel},
				Filepath:   cfg.LogDir + "/ringsrv.log",
				Create:     true,
				CreatePath: true,
			},
		}
	}
	_ = l.SetOptions(opt)

	return func() liblog.Logger { return l }
}
