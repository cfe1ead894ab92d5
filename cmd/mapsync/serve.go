package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	maphttp "github.com/fwojciec/mapsync/http"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	handler := &maphttp.Handler{
		ImportService: deps.Importer,
		TableStatus:   deps.TableStatus,
		Logger:        deps.Logger,
		MaxUploadSize: c.MaxUploadMiB << 20,
	}
	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           maphttp.NewServer(handler, deps.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(deps.Ctx)

	g.Go(func() error {
		deps.Logger.Info("server started", "addr", c.Addr, "backend", deps.TableStatus.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(c.ShutdownGrace)*time.Second)
		defer cancel()
		deps.Logger.Info("server stopping")
		return srv.Shutdown(ctx)
	})

	return g.Wait()
}
