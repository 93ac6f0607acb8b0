// Package container provides dependency injection for the daily-dollar
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/daily-dollar/internal/budget"
	"fjacquet/daily-dollar/internal/config"
	"fjacquet/daily-dollar/internal/dateutils"
	"fjacquet/daily-dollar/internal/events"
	"fjacquet/daily-dollar/internal/logging"
	"fjacquet/daily-dollar/internal/models"
	"fjacquet/daily-dollar/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation; the service it hands out is closed
// and must be opened by the caller.
type Container struct {
	logger  logging.Logger
	config  *config.Config
	store   store.SnapshotStore
	seeds   []models.CategorySeed
	bus     *events.Bus
	service *budget.Service
}

// Option customizes a container, mostly for tests.
type Option func(*options)

type options struct {
	logger logging.Logger
	clock  dateutils.Clock
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClock replaces the system clock.
func WithClock(clock dateutils.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := options{clock: dateutils.SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
	}

	snapshotStore, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	seeds, err := store.NewCategorySeedLoader(cfg.Budget.CategoriesFile, logger).LoadSeeds()
	if err != nil {
		logger.WithError(err).Warn("Ignoring invalid category seed file, using defaults",
			logging.F(logging.FieldFile, cfg.Budget.CategoriesFile))
		seeds = nil
	}

	paycheck := cfg.PaycheckAmount()
	bus := events.NewBus(logger)
	service := budget.NewService(budget.Options{
		Store:                snapshotStore,
		Bus:                  bus,
		Logger:               logger,
		Clock:                o.clock,
		Seeds:                seeds,
		PaycheckAmount:       &paycheck,
		PaycheckDay:          cfg.Budget.DefaultPaycheckDay,
		CatchUpMissedPeriods: cfg.Rollover.CatchUpMissedPeriods,
	})

	logger.Debug("Container initialized",
		logging.F(logging.FieldBackend, cfg.Data.Backend),
		logging.F(logging.FieldCount, len(seeds)))

	return &Container{
		logger:  logger,
		config:  cfg,
		store:   snapshotStore,
		seeds:   seeds,
		bus:     bus,
		service: service,
	}, nil
}

func openStore(cfg *config.Config) (store.SnapshotStore, error) {
	switch cfg.Data.Backend {
	case config.BackendFile:
		return store.NewFileStore(cfg.DataPath(), cfg.Data.BackupEnabled), nil
	case config.BackendSQLite:
		s, err := store.OpenSQLite(cfg.DataPath())
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return s, nil
	case config.BackendMemory:
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown data backend: %s", cfg.Data.Backend)
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the snapshot store the service persists to.
func (c *Container) GetStore() store.SnapshotStore {
	return c.store
}

// GetSeeds returns the category seeds used for a new budget; nil means the
// built-in defaults.
func (c *Container) GetSeeds() []models.CategorySeed {
	return append([]models.CategorySeed(nil), c.seeds...)
}

// GetBus returns the event bus.
func (c *Container) GetBus() *events.Bus {
	return c.bus
}

// GetService returns the budget service.
func (c *Container) GetService() *budget.Service {
	return c.service
}
