package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/appcanvas-dev/appcanvas/internal/catalog"
	"github.com/appcanvas-dev/appcanvas/internal/config"
	"github.com/appcanvas-dev/appcanvas/internal/liveconfig"
	"github.com/appcanvas-dev/appcanvas/internal/registry/kinds"
	"github.com/appcanvas-dev/appcanvas/internal/server"
	"github.com/appcanvas-dev/appcanvas/internal/storage"
	"github.com/appcanvas-dev/appcanvas/internal/storage/memory"
	"github.com/appcanvas-dev/appcanvas/internal/storage/postgres"
)

func serveCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the builder server",
		Long: `Start the builder server.

Serves the live configuration endpoint polled by preview devices,
the template save/load surface used by the visual editor, and the
builder notification WebSocket.

Examples:
  appcanvas serve
  appcanvas serve --port=9090
  appcanvas serve --host=127.0.0.1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from appcanvas.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from appcanvas.json)")

	return cmd
}

func runServe(port int, host string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	reg := kinds.Default()

	var store storage.PageStore
	if cfg.Database.URL != "" {
		pg, err := postgres.Open(cfg.Database.URL)
		if err != nil {
			return err
		}
		store = pg
		log.Info("using postgres page store")
	} else {
		store = memory.New()
		warn("no database configured, pages are lost on restart")
	}
	gateway := storage.NewGateway(store, reg)

	var cache catalog.Cache
	if cfg.Redis.Addr != "" {
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cache = catalog.NewRedisCache(rdb, 24*time.Hour)
		log.WithField("addr", cfg.Redis.Addr).Info("using redis catalog cache")
	} else {
		cache = catalog.NewMemoryCache()
	}

	source := catalog.NewStorefrontSource(cfg.Storefront.BaseURL, cfg.Storefront.Token, cfg.StorefrontTimeout())
	resolver := catalog.NewResolver(cache, source, cfg.CatalogTTL(), log)

	if cfg.Catalog.SyncSchedule != "" {
		syncer := catalog.NewSyncer(resolver, log)
		if err := syncer.Start(cfg.Catalog.SyncSchedule); err != nil {
			return err
		}
		defer syncer.Stop()
		log.WithField("schedule", cfg.Catalog.SyncSchedule).Info("catalog sync scheduled")
	}

	assembler := liveconfig.NewAssembler(gateway, resolver, reg)
	srv := server.New(cfg, assembler, gateway, reg, log)

	printBanner()
	fmt.Println("  serve")
	fmt.Println()
	success("builder server on http://%s", cfg.Addr())
	info("live config:  GET  /api/config/{appKey}")
	info("templates:    POST /api/templates")
	info("preview sync: appcanvas preview <appKey>")
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
