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

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/nabbar/rpclink/config"
	"github.com/nabbar/rpclink/link/unix"
	"github.com/nabbar/rpclink/link/unixgram"
	"github.com/nabbar/rpclink/logger"
	"github.com/nabbar/rpclink/metrics"
	"github.com/nabbar/rpclink/server"
)

var (
	flagConfig  string
	flagVerbose bool
	flagMetrics string
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "rpclinkd",
		Short: "rpclinkd serves the message runtime over one or both UNIX sockets",
		RunE:  runServe,
	}

	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to a YAML configuration file")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&flagMetrics, "metrics-addr", "", "address to serve /metrics on, e.g. :9090 (disabled if empty)")

	return root
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	log := logger.New()
	if flagVerbose {
		log.SetLevel(logger.DebugLevel)
	}

	mode, err := cfg.Permissions()
	if err != nil {
		return err
	}

	col := metrics.New()

	srvCfg := server.Config{
		Logger:         log,
		MaxMessageSize: cfg.MaxMessageSize,
		Workers:        cfg.Workers,
		Metrics:        col,

		ReadinessQueueDepth: cfg.ReadinessQueueDepth,
	}
	if cfg.StreamSocketPath != "" {
		srvCfg.StreamLink = unix.New(cfg.StreamSocketPath, mode, cfg.MaxMessageSize)
		color.Green("stream socket: %s", cfg.StreamSocketPath)
	}
	if cfg.DatagramSocketPath != "" {
		srvCfg.DatagramLink = unixgram.New(cfg.DatagramSocketPath, mode, cfg.MaxMessageSize)
		color.Green("datagram socket: %s", cfg.DatagramSocketPath)
	}

	srv, serr := server.New(srvCfg)
	if serr != nil {
		return serr
	}

	if flagMetrics != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(col.Registry(), promhttp.HandlerOpts{}))
		go func() {
			if herr := http.ListenAndServe(flagMetrics, mux); herr != nil {
				log.WithError(herr).Warn("metrics listener stopped")
			}
		}()
		color.Green("metrics: http://%s/metrics", flagMetrics)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	color.Cyan("rpclinkd running, workers=%d", cfg.Workers)
	loopErr := srv.MainLoop(ctx)
	color.Yellow("rpclinkd stopped")

	if loopErr != nil {
		return loopErr
	}
	return nil
}
