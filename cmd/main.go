package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"van-binh/internal/config"
	"van-binh/internal/database"
	"van-binh/internal/logger"
	"van-binh/internal/messaging"
	"van-binh/internal/models"
	"van-binh/internal/services/kitchen"
	"van-binh/internal/services/order"
)

const (
	serviceName   = "van-binh"
	shutdownGrace = 5 * time.Second
)

func main() {
	app := &cli.App{
		Name:  serviceName,
		Usage: "take orders at the Van Binh counter",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to an optional YAML config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override log level (debug, info, warn, error)",
			},
		},
		Action: run,
		Commands: []*cli.Command{
			{
				Name:   "kitchen",
				Usage:  "print a ticket for every receipt published by the desk",
				Action: runKitchen,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "prefetch",
						Value: 1,
						Usage: "RabbitMQ prefetch count",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
	}

	log := logger.New(serviceName, cfg.Log.Level)
	requestID := logger.GenerateRequestID()

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	journals, closeJournals, err := openJournals(ctx, cfg, log)
	if err != nil {
		log.Error("service_failed", "Failed to open receipt journals", requestID, err, nil)
		return err
	}
	defer closeJournals()

	service := order.NewService(models.NewCustomerDirectory(), log, journals...)
	handler := order.NewHandler(service, os.Stdin, os.Stdout, log)

	log.Info("service_started", "Starting order desk", requestID, map[string]interface{}{
		"session_id":       service.SessionID().String(),
		"database_journal": cfg.Database.Enabled,
		"rabbitmq_journal": cfg.RabbitMQ.Enabled,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	done := make(chan error, 1)
	go func() {
		done <- handler.Run(ctx)
	}()

	// A blocked stdin read cannot be interrupted, so after a signal the
	// handler only gets shutdownGrace to finish an order in flight.
	select {
	case <-sigChan:
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
		if !awaitHandler(done, shutdownGrace) {
			log.Info("graceful_shutdown", "Order desk still waiting for input, closing journals", requestID, nil)
		}
		return nil
	case err := <-done:
		if err != nil {
			log.Error("service_failed", "Order desk failed", requestID, err, nil)
			return err
		}
	}

	log.Info("service_stopped", "Order desk closed", requestID, nil)
	return nil
}

// awaitHandler waits up to grace for the handler to return and reports
// whether it did
func awaitHandler(done <-chan error, grace time.Duration) bool {
	select {
	case <-done:
		return true
	case <-time.After(grace):
		return false
	}
}

// openJournals connects every enabled receipt journal. The returned
// closer releases whatever was opened.
func openJournals(ctx context.Context, cfg *config.Config, log *logger.Logger) ([]order.Journal, func(), error) {
	var (
		journals []order.Journal
		closers  []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Database.Enabled {
		db, err := database.New(ctx, cfg, log)
		if err != nil {
			return nil, func() {}, fmt.Errorf("failed to initialize database: %w", err)
		}
		closers = append(closers, db.Close)

		if err := db.RunMigrations(); err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("failed to run migrations: %w", err)
		}
		journals = append(journals, database.NewReceiptStore(db))
	}

	if cfg.RabbitMQ.Enabled {
		conn, err := messaging.New(cfg, log)
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("failed to initialize messaging: %w", err)
		}
		publisher := messaging.NewPublisher(conn, log)
		closers = append(closers, func() { publisher.Close() })
		journals = append(journals, publisher)
	}

	return journals, closeAll, nil
}

func runKitchen(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if !cfg.RabbitMQ.Enabled {
		return fmt.Errorf("kitchen display needs rabbitmq.enabled")
	}

	log := logger.New(serviceName+"-kitchen", cfg.Log.Level)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}

	consumer := messaging.NewConsumer(conn, log, messaging.ReceiptsQueue, "kitchen-"+logger.GenerateRequestID(), c.Int("prefetch"))
	return kitchen.NewDisplay(consumer, os.Stdout, log).Start(ctx)
}
