package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"unitconv/httpapi"
	unitconvrpc "unitconv/rpc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve conversions over msgpack RPC and HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := loadCatalog(ctx)
	if err != nil {
		return err
	}

	rpcLn, err := net.Listen("tcp", cfg.RPC.Addr)
	if err != nil {
		return err
	}
	httpLn, err := net.Listen("tcp", cfg.HTTP.Addr)
	if err != nil {
		rpcLn.Close()
		return err
	}

	if cfg.Log.Mode == "production" || cfg.Log.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Handler: httpapi.NewRouter(httpapi.RouterConfig{
			Catalog:      cat,
			Log:          logger,
			AllowOrigins: cfg.HTTP.AllowOrigins,
			Decimals:     cfg.Display.Decimals,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return unitconvrpc.NewServer(cat, logger).Serve(gctx, rpcLn)
	})
	g.Go(func() error {
		logger.Info("http listening", "addr", httpLn.Addr().String())
		if err := srv.Serve(httpLn); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logger.Info("shutdown complete")
	return err
}
