// serve.go implements the "bookrab serve" command for the REST API.
//
// Separated from extension.go because serve has unique lifecycle requirements.
// Unlike other commands that run and exit, serve blocks until interrupted.
//
// Design: serve is a storeless command - it configures operational logging
// first, then opens the shared service, so backend failures during startup
// reach the log. Ctrl+C cancels the command context and triggers a graceful
// shutdown with a bounded wait.

package core

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpl-au/bookrab/cmd"
	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/api"
	"github.com/jpl-au/bookrab/internal/log"
	"github.com/jpl-au/bookrab/internal/logging"
)

// shutdownTimeout bounds how long in-flight requests may take after Ctrl+C.
const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API",
		Long: `Serve the book collection over HTTP.

  GET  /list                 books with tags
  GET  /tags                 all tags
  GET  /search/{title}       search one book (?pattern=&before=&after=&ignore_case=&smart_case=)
  GET  /search               search by tags (&include=a,b&include_mode=all&exclude=&exclude_mode=)
  POST /upload               multipart: book (text/plain file), title, tags
  GET  /history              recorded searches
  GET  /health               liveness

  bookrab serve --addr 127.0.0.1:9000`,
		RunE: runServe,
	}
	c.Flags().String(extension.FlagAddr, "", "Listen address (default from server.addr, :8080)")
	return c
}

func runServe(c *cobra.Command, _ []string) error {
	ctx := c.Context()

	svc, err := cmd.Service(ctx)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	cfg := svc.Config()

	lc := logging.FromConfig(cfg)
	lc.Stderr = lc.Dir == ""
	logging.Init(lc)
	defer logging.Shutdown()

	addr, _ := c.Flags().GetString(extension.FlagAddr)
	if addr == "" {
		addr = cfg.Addr()
	}

	srv := api.New(svc, api.Config{
		Addr:      addr,
		MaxUpload: cfg.MaxUpload(),
		RateLimit: cfg.RateLimit(),
		RateBurst: cfg.RateBurst(),
	})

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	fmt.Fprintf(c.ErrOrStderr(), "bookrab serving %s on %s\n", svc.Root(), addr)

	select {
	case err = <-errc:
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err = srv.Shutdown(shutCtx)
	}

	log.Event("core:serve", "serve").Path(svc.Root()).Detail("addr", addr).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("serve: %w", err))
	}
	return nil
}
