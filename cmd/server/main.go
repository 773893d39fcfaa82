package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adsrikanth11/crud-testing/internal/config"
	"github.com/adsrikanth11/crud-testing/internal/dbx"
	"github.com/adsrikanth11/crud-testing/internal/httpapi"
	"github.com/adsrikanth11/crud-testing/internal/product"
	"github.com/adsrikanth11/crud-testing/internal/token"
	"github.com/adsrikanth11/crud-testing/internal/user"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func run(log *logrus.Logger) error {
	cfg := config.Load()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	db, err := dbx.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	users := user.NewStore(db, cfg.BcryptCost)
	if err := users.Migrate(ctx); err != nil {
		return err
	}
	products := product.NewStore(db)
	if err := products.Migrate(ctx); err != nil {
		return err
	}

	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpapi.New(cfg, log, users, products, codec),
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("shutdown signal received, closing server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	log.Info("server and database connections closed")
	return nil
}
