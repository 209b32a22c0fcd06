package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/api/handler"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/ports"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/service"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/infrastructure/config"
	mongostore "github.com/Yasmeen645/Bug-Tracking-System/internal/infrastructure/db/mongo"
	redisstore "github.com/Yasmeen645/Bug-Tracking-System/internal/infrastructure/db/redis"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/infrastructure/db/snapshot"
	sqlitestore "github.com/Yasmeen645/Bug-Tracking-System/internal/infrastructure/db/sqlite"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/infrastructure/notify"
	"github.com/Yasmeen645/Bug-Tracking-System/internal/infrastructure/queue"
	"github.com/Yasmeen645/Bug-Tracking-System/pkg/logger"
)

// application holds the wired core services and everything that has to be
// released on exit. The caller must defer Close.
type application struct {
	cfg        *config.Config
	log        zerolog.Logger
	directory  *service.Directory
	tracker    *service.Tracker
	dispatcher *queue.Dispatcher
	inbox      ports.Inbox
	health     map[string]handler.Pinger
	closers    []func(context.Context) error
}

// newApplication loads configuration, opens storage and builds the core.
// Notifications are only wired when withNotifier is set.
func newApplication(ctx context.Context, withNotifier bool) (*application, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.Log.Level,
		Pretty:  cfg.Log.Pretty,
		Service: "bugtracker",
	})

	a := &application{cfg: cfg, log: log, health: map[string]handler.Pinger{}}

	accounts, bugs, err := a.openStorage(ctx)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	var notifier ports.Notifier
	if withNotifier {
		n, err := a.openNotifier(ctx)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		a.dispatcher = queue.NewDispatcher(cfg.Notify.Workers, n, logger.Component("dispatcher"))
		a.dispatcher.Start(context.Background())
		notifier = a.dispatcher
	}

	a.directory = service.NewDirectory(ctx, accounts, logger.Component("directory"))
	if err := a.directory.Bootstrap(ctx, cfg.BootstrapAdminPassword); err != nil {
		a.Close(ctx)
		return nil, fmt.Errorf("bootstrap administrator: %w", err)
	}
	a.tracker = service.NewTracker(ctx, bugs, a.directory, notifier, logger.Component("tracker"))
	return a, nil
}

func (a *application) openStorage(ctx context.Context) (ports.AccountRepository, ports.BugRepository, error) {
	st := a.cfg.Storage
	a.log.Info().Str("driver", st.Driver).Msg("opening storage")

	switch st.Driver {
	case config.DriverSQLite:
		db, err := sqlitestore.Open(st.SQLitePath, a.cfg.Log.Level == "trace")
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		a.health["sqlite"] = handler.PingFunc(sqlDB.PingContext)
		a.closers = append(a.closers, func(context.Context) error { return sqlDB.Close() })
		return sqlitestore.NewAccountRepository(db), sqlitestore.NewBugRepository(db), nil

	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: st.MongoURI, Database: st.MongoDB})
		if err != nil {
			return nil, nil, err
		}
		a.health["mongodb"] = mongostore.Pinger{Client: client}
		a.closers = append(a.closers, client.Disconnect)

		accounts := mongostore.NewAccountRepository(db)
		bugs := mongostore.NewBugRepository(db)
		if err := accounts.EnsureIndexes(ctx); err != nil {
			return nil, nil, fmt.Errorf("account indexes: %w", err)
		}
		if err := bugs.EnsureIndexes(ctx); err != nil {
			return nil, nil, fmt.Errorf("bug indexes: %w", err)
		}
		return accounts, bugs, nil

	default:
		dir := st.DataDir
		a.health["storage"] = handler.PingFunc(func(context.Context) error { return snapshot.Ping(dir) })
		return snapshot.NewAccountRepository(dir), snapshot.NewBugRepository(dir), nil
	}
}

func (a *application) openNotifier(ctx context.Context) (ports.Notifier, error) {
	nc := a.cfg.Notify
	if nc.Driver != config.NotifierRedis {
		return notify.NewLogNotifier(a.log), nil
	}

	client, err := redisstore.Connect(ctx, redisstore.Config{Addr: nc.RedisAddr, DB: nc.RedisDB})
	if err != nil {
		return nil, err
	}
	a.health["redis"] = redisstore.Pinger{Client: client}
	a.closers = append(a.closers, func(context.Context) error { return client.Close() })
	n := redisstore.NewNotifier(client)
	a.inbox = n
	return n, nil
}

// Close drains pending notifications, then releases storage and clients in
// reverse order of opening.
func (a *application) Close(ctx context.Context) {
	if a.dispatcher != nil {
		a.dispatcher.Close()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.log.Warn().Err(err).Msg("shutdown: release failed")
		}
	}
}
