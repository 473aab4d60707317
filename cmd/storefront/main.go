// Package main boots the Siba Beauty storefront HTTP server.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/sibabeauty/storefront/internal/catalog"
	"github.com/sibabeauty/storefront/internal/checkout"
	"github.com/sibabeauty/storefront/internal/config"
	httpapi "github.com/sibabeauty/storefront/internal/http"
	"github.com/sibabeauty/storefront/internal/mail"
	"github.com/sibabeauty/storefront/internal/obs"
	"github.com/sibabeauty/storefront/internal/promo"
	"github.com/sibabeauty/storefront/internal/queue"
)

func main() {
	app := &cli.App{
		Name:  "storefront",
		Usage: "skincare storefront API server",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP server",
				Action: func(*cli.Context) error {
					return serve()
				},
			},
			{
				Name:  "seed",
				Usage: "print the launch catalog as JSON",
				Action: func(c *cli.Context) error {
					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					return enc.Encode(catalog.SeedProducts)
				},
			},
		},
		DefaultCommand: "serve",
	}
	if err := app.Run(os.Args); err != nil {
		obs.Logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	obs.InitLogger()
	obs.Logger.Info("service_starting")

	cat := catalog.New()
	cat.Seed()
	promos := promo.New()
	orders := checkout.NewOrders()

	var sender mail.Sender
	if cfg.SendGridAPIKey != "" {
		sender = mail.NewSendGridSender(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName)
	} else {
		obs.Logger.Warn("no_sendgrid_key", "mode", "log_only")
		sender = mail.LogSender{}
	}

	q := queue.New(cfg.MailQueueBuffer)
	mgr := queue.NewManager(cfg, q, sender)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mgr.Start(ctx)

	svc := &checkout.Service{
		Catalog:                    cat,
		Orders:                     orders,
		Receipts:                   mgr,
		DeliveryFeeCents:           cfg.DeliveryFeeCents,
		FreeDeliveryThresholdCents: cfg.FreeDeliveryThresholdCents,
	}

	app := httpapi.NewApp(cfg, cat, promos, orders, svc, mgr)
	handler := httpapi.NewRouter(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	app.StartShutdown()
	obs.Logger.Info("shutdown_drain_begin", "backlog_size", mgr.BacklogSize(), "worker_count", mgr.WorkerCount())

	ctxDrain, cancelDrain := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelDrain()
	if drained := mgr.DrainUntil(ctxDrain); !drained {
		obs.Logger.Warn("shutdown_drain_timeout")
	} else {
		obs.Logger.Info("shutdown_drain_complete")
	}

	ctxSrv, cancelSrv := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelSrv()
	if err := srv.Shutdown(ctxSrv); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	mgr.Stop()
	obs.Logger.Info("service_stopped")
	return nil
}
