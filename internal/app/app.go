// Package app wires configuration, storage, messaging and transport into
// the running service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/omer-demir/CeviriDukkaniTS/internal/adapter/postgres"
	commentrepo "github.com/omer-demir/CeviriDukkaniTS/internal/adapter/postgres/comment"
	operationrepo "github.com/omer-demir/CeviriDukkaniTS/internal/adapter/postgres/operation"
	orderrepo "github.com/omer-demir/CeviriDukkaniTS/internal/adapter/postgres/order"
	userscorerepo "github.com/omer-demir/CeviriDukkaniTS/internal/adapter/postgres/userscore"
	"github.com/omer-demir/CeviriDukkaniTS/internal/adapter/rabbitmq"
	"github.com/omer-demir/CeviriDukkaniTS/internal/adapter/userservice"
	"github.com/omer-demir/CeviriDukkaniTS/internal/config"
	"github.com/omer-demir/CeviriDukkaniTS/internal/domain"
	"github.com/omer-demir/CeviriDukkaniTS/internal/service/rating"
	"github.com/omer-demir/CeviriDukkaniTS/internal/service/workflow"
	"github.com/omer-demir/CeviriDukkaniTS/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, runs
// migrations, connects to the database and the broker, builds the
// services, and serves HTTP and the event subscription until the context
// is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, cfg.Database, logger); err != nil {
			return err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	conn, err := rabbitmq.Connect(cfg.Rabbit)
	if err != nil {
		return err
	}
	defer conn.Close()

	publisher, err := rabbitmq.NewPublisher(conn, cfg.Rabbit, logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	operations := operationrepo.New(pool)
	comments := commentrepo.New(pool)
	orders := orderrepo.New(pool)
	scores := userscorerepo.New(pool)
	tx := postgres.NewTxManager(pool)

	workflowSvc := workflow.NewService(logger, operations, comments, orders, publisher, tx, cfg.Workflow)
	ratingSvc := rating.NewService(logger, userservice.New(cfg.UserService), scores)

	subscriber, err := rabbitmq.NewSubscriber(conn, cfg.Rabbit, logger)
	if err != nil {
		return err
	}
	subscriber.On(domain.EventTypeCreateOrderDetail, workflowSvc.HandleOrderDetailEvent)

	mux := http.NewServeMux()
	rest.NewTranslationHandler(workflowSvc, ratingSvc, logger).Register(mux)
	rest.NewHealthHandler(pool, BuildVersion()).Register(mux)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return subscriber.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
