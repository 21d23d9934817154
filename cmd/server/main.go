package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sheikh-saqib/transactions-ledger-api/internal/auth"
	"github.com/sheikh-saqib/transactions-ledger-api/internal/config"
	"github.com/sheikh-saqib/transactions-ledger-api/internal/events/kafka"
	"github.com/sheikh-saqib/transactions-ledger-api/internal/interfaces"
	"github.com/sheikh-saqib/transactions-ledger-api/internal/ledger"
	"github.com/sheikh-saqib/transactions-ledger-api/internal/models"
	"github.com/sheikh-saqib/transactions-ledger-api/internal/server"
	"github.com/sheikh-saqib/transactions-ledger-api/internal/storage/memory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config", zap.Error(err))
	}

	log := newLogger(cfg.LogLevel)
	defer log.Sync() //nolint:errcheck

	accounts, err := seedAccounts(cfg)
	if err != nil {
		log.Fatal("seed accounts", zap.Error(err))
	}
	store := memory.NewAccountStore(accounts...)

	var publisher interfaces.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		p := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer p.Close() //nolint:errcheck
		publisher = p
		log.Info("kafka publisher enabled",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic),
		)
	}

	ledgerService := ledger.NewLedger(store, publisher, log)
	verifier := auth.NewVerifier([]byte(cfg.JWTSecret))
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.NewServer(ledgerService, store, verifier, log).Router(),
	}

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	log.Info("starting server", zap.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server", zap.Error(err))
	}
}

// seedAccounts loads the configured seed file, or falls back to a small
// demo set so the API is usable out of the box.
func seedAccounts(cfg *config.Config) ([]*models.Account, error) {
	if cfg.AccountsFile != "" {
		return memory.LoadAccounts(cfg.AccountsFile)
	}
	return []*models.Account{
		{ID: "alice", Name: "Alice", Balance: decimal.NewFromInt(1000)},
		{ID: "bob", Name: "Bob", Balance: decimal.NewFromInt(500)},
		{ID: "admin", Name: "Admin", Balance: decimal.NewFromInt(0)},
	}, nil
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(lvl)
	log, err := c.Build()
	if err != nil {
		panic(err)
	}
	return log
}
