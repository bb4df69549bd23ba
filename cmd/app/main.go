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

	"foodfast/cmd"
	httpin "foodfast/internal/adapters/in/http"
	"foodfast/internal/adapters/in/fleetseed"
	kafkaout "foodfast/internal/adapters/out/kafka"
	"foodfast/internal/core/application/usecases/commands"
	"foodfast/internal/core/ports"

	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "foodfast").Logger()

	configs, err := cmd.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}
	logger = logger.Level(configs.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs, logger); err != nil {
		logger.Fatal().Err(err).Msg("Service stopped")
	}
}

func run(ctx context.Context, configs cmd.Config, logger zerolog.Logger) error {
	db, err := cmd.OpenDatabase(configs)
	if err != nil {
		return err
	}
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	var publisher ports.OrderEventPublisher
	if configs.KafkaEnabled() {
		orderChanged := kafkaout.NewOrderChangedPublisher(configs.KafkaBrokers(), configs.KafkaOrderChangedTopic)
		defer func() { _ = orderChanged.Close() }()
		publisher = orderChanged
	}

	app := cmd.NewCompositionRoot(configs, db, publisher, logger)

	report, err := app.CreateReconcileReservationsCommandHandler().
		Handle(ctx, commands.NewReconcileReservationsCommand())
	if err != nil {
		return fmt.Errorf("failed to rebuild drone reservations: %w", err)
	}
	logger.Info().
		Int("reservations", report.Reservations).
		Int("reassigned", len(report.Reassigned)).
		Msg("Drone reservations rebuilt")

	if configs.FleetSeedPath != "" {
		file, seedErr := fleetseed.Load(configs.FleetSeedPath)
		if seedErr != nil {
			return seedErr
		}
		if _, seedErr = app.CreateFleetSeeder().Seed(ctx, file); seedErr != nil {
			return fmt.Errorf("failed to seed fleet: %w", seedErr)
		}
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	if configs.KafkaEnabled() {
		consumer := app.CreateDroneChangedConsumer()
		defer func() { _ = consumer.Close() }()
		go func() {
			if consumeErr := consumer.Consume(ctx); consumeErr != nil {
				logger.Error().Err(consumeErr).Msg("Drone changed consumer stopped")
			}
		}()
	}

	e, err := httpin.NewEcho(app.CreateHTTPServer(), logger)
	if err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("port", configs.HTTPPort).Msg("HTTP server started")
		serverErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err = <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}
