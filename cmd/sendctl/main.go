// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command sendctl sends a single HTTP request through a sender.Channel
// against a real net/http-backed transport, printing the lifecycle
// events it observes. It exists to exercise the sender library end to
// end and to demonstrate the config/log ambient stack, not as a
// general-purpose HTTP client.
package main

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/brisknet/sender/config"
	"github.com/brisknet/sender/content"
	"github.com/brisknet/sender/event"
	"github.com/brisknet/sender/exchange"
	"github.com/brisknet/sender/internal/httptransport"
	"github.com/brisknet/sender/log"
	"github.com/brisknet/sender/sender"
	"github.com/brisknet/sender/watchdog"
)

// notifyFunc adapts a plain function to event.Notifier.
type notifyFunc func(event.Event, *exchange.Exchange)

func (f notifyFunc) Notify(evt event.Event, e *exchange.Exchange) { f(evt, e) }

func main() {
	var (
		method    string
		body      string
		headers   []string
		expect100 bool
		cfgPath   string
		verbose   bool
	)

	root := &cobra.Command{
		Use:     "sendctl URL",
		Short:   "Send a single HTTP request through the sender state machine",
		Example: "sendctl --method POST --body hello http://localhost:8080/echo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			var logger log.Logger = log.NewNoopLogger()
			if verbose {
				logger = log.NewZerologAdapter()
			}

			u, err := url.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parse URL: %w", err)
			}

			var provider content.Provider
			if body != "" {
				provider = content.NewBytesProvider([]byte(body))
			}

			req := httptransport.NewRequest(strings.ToUpper(method), u, provider)
			for _, h := range headers {
				k, v, ok := strings.Cut(h, ":")
				if !ok {
					return fmt.Errorf("invalid --header %q, expected Name: value", h)
				}
				req.Headers.Add(strings.TrimSpace(k), strings.TrimSpace(v))
			}
			if expect100 {
				req.Headers.Set("Expect", "100-continue")
			}

			done := make(chan struct{})
			c := &sender.Channel{
				Transport: &httptransport.Transport{Logger: logger},
				Logger:    logger,
				Config:    cfg,
				Policy:    watchdog.Fixed(cfg.AttemptDeadline),
			}
			c.Notifier = notifyFunc(func(evt event.Event, e *exchange.Exchange) {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", evt, describe(evt, e))
				if evt == event.Complete {
					close(done)
				}
			})

			if cfgPath != "" {
				watchConfig(cfgPath, c, logger)
			}

			e := exchange.New(req, nil)
			c.Send(e)
			<-done

			if e.Result != nil && !e.Result.Succeeded() {
				return e.Result.Failure
			}
			return nil
		},
	}

	root.Flags().StringVarP(&method, "method", "X", "GET", "HTTP method")
	root.Flags().StringVarP(&body, "body", "d", "", "request body")
	root.Flags().StringArrayVarP(&headers, "header", "H", nil, "extra request header, \"Name: value\"")
	root.Flags().BoolVar(&expect100, "expect-continue", false, "send Expect: 100-continue")
	root.Flags().StringVar(&cfgPath, "config", "", "path to a sender config TOML file")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every state transition")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "sendctl:", err)
		os.Exit(1)
	}
}

func describe(evt event.Event, e *exchange.Exchange) string {
	switch evt {
	case event.Content:
		return fmt.Sprintf("%d bytes: %q", len(e.LastContent), truncate(e.LastContent, 40))
	case event.Failure:
		return e.FailureCause.Error()
	case event.Complete:
		if e.Result.Succeeded() {
			return "succeeded"
		}
		return fmt.Sprintf("failed: %s (category=%v)", e.Result.Failure, e.Result.Category)
	default:
		return ""
	}
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return append(bytes.TrimSpace(b[:n]), '.', '.', '.')
}

// watchConfig reloads cfgPath into c with SetConfig whenever the file
// changes on disk. Only StrictEventOrdering takes effect: c.Policy, and
// with it the attempt deadline, is fixed when c is built. An exchange
// already in flight uses the StrictEventOrdering value current when it
// completes.
func watchConfig(cfgPath string, c *sender.Channel, logger log.Logger) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("config watch disabled", log.String("error", err.Error()))
		return
	}
	if err := watcher.Add(cfgPath); err != nil {
		logger.Warn("config watch disabled", log.String("error", err.Error()))
		return
	}
	go func() {
		debounce := time.NewTimer(time.Hour)
		debounce.Stop()
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				debounce.Reset(100 * time.Millisecond)
			case <-debounce.C:
				cfg, err := config.Load(cfgPath)
				if err != nil {
					logger.Warn("config reload failed", log.String("error", err.Error()))
					continue
				}
				c.SetConfig(cfg)
				logger.Info("config reloaded",
					log.String("strict_event_ordering", fmt.Sprint(cfg.StrictEventOrdering)))
			}
		}
	}()
}
