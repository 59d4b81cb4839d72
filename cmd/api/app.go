package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	dbadapter "housetasks/internal/adapter/db"
	"housetasks/internal/adapter/events"
	"housetasks/internal/app/service"
	"housetasks/internal/config"
	"housetasks/internal/core/ports"
)

// app holds the dependencies shared by every command.
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	db         *sqlx.DB
	reconciler *service.Reconciler
	service    *service.TaskService
	closers    []func() error
}

func newLogger() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func bootstrap(ctx context.Context, logger *zap.Logger, migrate bool) (*app, error) {
	cfg := config.LoadConfig()

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.DbDriver, err)
	}
	a := &app{cfg: cfg, logger: logger, db: db}
	a.closers = append(a.closers, db.Close)

	if migrate {
		applied, err := dbadapter.Migrate(ctx, db)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		logger.Info("schema up to date", zap.Strings("applied", applied))
	}

	publisher, err := a.publishers(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	store := dbadapter.NewStore(db)
	a.reconciler = service.NewReconciler(store, publisher, service.WithSweepWorkers(cfg.SweepWorkers))
	a.service = service.NewTaskService(store, a.reconciler)
	return a, nil
}

// publishers always logs transitions and also forwards them to Redis and
// NATS when those are configured.
func (a *app) publishers(ctx context.Context) (ports.EventPublisher, error) {
	multi := events.Multi{events.NewLogPublisher(a.logger)}

	if a.cfg.RedisAddr != "" {
		client, err := events.DialRedis(ctx, a.cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		redisPublisher := events.NewRedisPublisher(client, a.cfg.RedisChannel)
		a.closers = append([]func() error{redisPublisher.Close}, a.closers...)
		multi = append(multi, redisPublisher)
		a.logger.Info("publishing transitions to redis", zap.String("channel", a.cfg.RedisChannel))
	}

	if a.cfg.NatsURL != "" {
		nc, err := events.DialNATS(a.cfg.NatsURL)
		if err != nil {
			return nil, err
		}
		natsPublisher := events.NewNATSPublisher(nc, a.cfg.NatsSubject)
		a.closers = append([]func() error{natsPublisher.Close}, a.closers...)
		multi = append(multi, natsPublisher)
		a.logger.Info("publishing transitions to nats", zap.String("subject", a.cfg.NatsSubject))
	}

	return multi, nil
}

// Close releases publishers first and the database last.
func (a *app) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
