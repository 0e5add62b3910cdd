package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clientportal/internal/auth"
	"clientportal/internal/clock"
	"clientportal/internal/company"
	"clientportal/internal/config"
	"clientportal/internal/directory"
	"clientportal/internal/httpserver"
	"clientportal/internal/httpserver/handlers"
	"clientportal/internal/logger"
	"clientportal/internal/metrics"
	"clientportal/internal/session"
	"clientportal/internal/storage"
	"clientportal/internal/tickets"
	"clientportal/internal/view"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var portFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&portFlag, "port", "", "Listen port (overrides HTTP_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	cfg := config.Load()
	if portFlag != "" {
		cfg.HTTPPort = portFlag
	}
	lg := logger.New(cfg.LogLevel)
	defer lg.Sync()

	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is empty")
	}
	store, err := storage.Open(cfg)
	if err != nil {
		lg.Errorw("storage open failed", "driver", cfg.StorageDriver, "error", err)
		return err
	}

	clk := clock.Real()
	m := metrics.New()
	sessions := session.NewManager(store, lg, cfg.LoginDelay)
	companies := company.NewProvider(lg, clk, company.Options{
		FetchDelay:  cfg.CompanyFetchDelay,
		UpdateDelay: cfg.CompanyUpdateDelay,
	})
	defer companies.Close()
	sessions.Subscribe(companies.SessionChanged)
	sessions.Subscribe(m.SessionChanged)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := sessions.Restore(ctx); err != nil {
		lg.Errorw("session restore failed", "error", err)
		return err
	}

	ticketStore := tickets.NewStore(clk, tickets.Fixtures(clk.Now())...)
	m.TrackTickets(ticketStore.Count)

	d := &handlers.Deps{
		AppName:       cfg.AppName,
		SessionCookie: cfg.SessionCookie,
		Sessions:      sessions,
		Company:       companies,
		Tickets:       ticketStore,
		Directory:     directory.Default(clk.Now()),
		Signer:        auth.NewSigner(cfg.JWTSecret, cfg.JWTExpiresIn),
		Render:        view.NewRenderer(),
		Metrics:       m,
		Clock:         clk,
		Log:           lg,
	}
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           httpserver.NewRouter(d),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Infow("listening", "port", cfg.HTTPPort, "storage", cfg.StorageDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		lg.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			lg.Errorw("shutdown failed", "error", err)
		}
	}
	if c, ok := store.(interface{ Close() error }); ok {
		_ = c.Close()
	}
	return nil
}
