package config

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/orderflow/delivery-system/delivery-service/application"
	"github.com/orderflow/delivery-system/delivery-service/handlers"
	"github.com/orderflow/delivery-system/delivery-service/infrastructure"
	sharedinfra "github.com/orderflow/delivery-system/shared/infrastructure"
	"github.com/orderflow/delivery-system/shared/saga"
	"github.com/orderflow/delivery-system/shared/telemetry"
)

type Dependencies struct {
	// Logging
	Logger *logrus.Logger

	// Database
	DB *sqlx.DB

	// Store
	DeliveryStore *infrastructure.PostgresDeliveryStore

	// Use Cases
	ReserveInventory *application.ReserveInventory
	RollbackDelivery *application.RollbackDelivery
	RequestDelivery  *application.RequestDelivery
	GetDelivery      *application.GetDelivery

	// HTTP Handlers
	DeliveryHandlers *handlers.DeliveryHandlers

	// Event Handlers
	DeliveryEventHandlers *handlers.DeliveryEventHandlers
	RollbackEventHandlers *handlers.RollbackEventHandlers

	// Infrastructure
	EventPublisher     *sharedinfra.SNSPublisherAdapter
	DeliverySubscriber *sharedinfra.SQSSubscriberAdapter
	RollbackSubscriber *sharedinfra.SQSSubscriberAdapter

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()
}

func BuildDependencies(ctx context.Context, config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	// Logger is constructed first and injected everywhere; no component
	// reaches for ambient global state.
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if config.Env == "local" {
		logger.SetFormatter(&logrus.TextFormatter{})
	}
	deps.Logger = logger

	if config.Telemetry.Enabled {
		telConfig := telemetry.DeliveryServiceConfig.WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
		tel, telemetryShutdown, err := telemetry.InitTelemetry(ctx, telConfig)
		if err != nil {
			logger.WithError(err).Warn("failed to initialize telemetry, continuing without")
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = telemetryShutdown
		}
	}

	// Initialize database
	db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	deps.DB = db

	deps.DeliveryStore = infrastructure.NewPostgresDeliveryStore(db)
	if err := deps.DeliveryStore.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize AWS infrastructure
	eventPublisher, err := sharedinfra.NewSNSPublisherAdapter(config.AWS.SNSTopicArn, logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create SNS publisher")
	}
	deps.EventPublisher = eventPublisher

	prefetch := sharedinfra.WithPrefetchLimit(int32(config.Saga.PrefetchLimit))

	deliverySubscriber, err := sharedinfra.NewSQSSubscriberAdapter(config.AWS.DeliveryQueueURL, logger, prefetch)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create delivery subscriber")
	}
	deps.DeliverySubscriber = deliverySubscriber

	rollbackSubscriber, err := sharedinfra.NewSQSSubscriberAdapter(config.AWS.RollbackQueueURL, logger, prefetch)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create rollback subscriber")
	}
	deps.RollbackSubscriber = rollbackSubscriber

	// Initialize use cases
	governor := saga.NewGovernor(time.Duration(config.Saga.ProcessingBudgetMS) * time.Millisecond)
	compensator := application.NewCompensationPublisher(eventPublisher, logger)

	deps.ReserveInventory = application.NewReserveInventory(deps.DeliveryStore, eventPublisher, compensator, governor, logger)
	deps.RollbackDelivery = application.NewRollbackDelivery(deps.DeliveryStore, logger)
	deps.RequestDelivery = application.NewRequestDelivery(eventPublisher, logger)
	deps.GetDelivery = application.NewGetDelivery(deps.DeliveryStore)

	// Initialize handlers
	deps.DeliveryHandlers = handlers.NewDeliveryHandlers(deps.RequestDelivery, deps.GetDelivery)
	deps.DeliveryEventHandlers = handlers.NewDeliveryEventHandlers(deps.ReserveInventory, logger)
	deps.RollbackEventHandlers = handlers.NewRollbackEventHandlers(deps.RollbackDelivery, logger)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close database"))
		}
	}

	if d.EventPublisher != nil {
		if err := d.EventPublisher.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close event publisher"))
		}
	}

	if d.DeliverySubscriber != nil {
		if err := d.DeliverySubscriber.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close delivery subscriber"))
		}
	}

	if d.RollbackSubscriber != nil {
		if err := d.RollbackSubscriber.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close rollback subscriber"))
		}
	}

	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	if len(errs) > 0 {
		return errors.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
