package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/pnlreport"
	"github.com/etnz/pnlreport/server"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type serveCmd struct {
	inputFlags
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve a live preview of the report" }
func (*serveCmd) Usage() string {
	return `pnlr serve [-addr <host:port>] [-p <positions>] [-scenarios <file>] [-s <shock>]...

  Serves the report over HTTP. The inputs are read again on every request,
  so that edits of the positions or scenarios show up on reload.

  Routes: / (HTML report), /context.json, /summary.md, /health
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	c.inputFlags.SetFlags(f)
	f.StringVar(&c.addr, "addr", "", "Listen address. Defaults to the configured serve.addr.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	c.merge(cfg)
	cfg.Serve.Addr = pick(c.addr, cfg.Serve.Addr)

	srv := server.New(server.Config{
		Addr: cfg.Serve.Addr,
		Log:  log.Logger,
		Load: func(context.Context) (*pnlreport.ReportContext, error) {
			rc, _, err := c.build(cfg)
			return rc, err
		},
		Options: c.options(cfg),
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()
	fmt.Printf("Serving the report on http://%s/\n", cfg.Serve.Addr)

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
