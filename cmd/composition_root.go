package cmd

import (
	"strings"

	httpin "foodfast/internal/adapters/in/http"
	"foodfast/internal/adapters/in/fleetseed"
	kafkain "foodfast/internal/adapters/in/kafka"
	"foodfast/internal/adapters/out/postgres"
	"foodfast/internal/core/application/lifecycle"
	"foodfast/internal/core/application/usecases/commands"
	"foodfast/internal/core/application/usecases/queries"
	"foodfast/internal/core/ports"
	"foodfast/internal/jobs"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	retry      commands.RetryPolicy
	logger     zerolog.Logger
}

// NewCompositionRoot wires the engine onto gormDB. publisher may be nil when
// no broker is configured.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	publisher ports.OrderEventPublisher,
	logger zerolog.Logger,
) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		retry: commands.RetryPolicy{
			MaxAttempts:     cfg.ReservationMaxAttempts,
			InitialInterval: cfg.ReservationRetryInterval,
		},
		logger: logger,
	}
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) droneUoW() commands.DroneUoWFactory {
	return FuncDroneUoWFactory(func() commands.DroneUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uow(), c.retry)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.uow(), c.retry)
}

func (c *CompositionRoot) CreateAssignDroneCommandHandler() commands.AssignDroneCommandHandler {
	return commands.NewAssignDroneCommandHandler(c.uow(), c.retry)
}

func (c *CompositionRoot) CreateAddOrderNoteCommandHandler() commands.AddOrderNoteCommandHandler {
	return commands.NewAddOrderNoteCommandHandler(c.uow(), c.retry)
}

func (c *CompositionRoot) CreateRegisterDroneCommandHandler() commands.RegisterDroneCommandHandler {
	return commands.NewRegisterDroneCommandHandler(c.droneUoW())
}

func (c *CompositionRoot) CreateUpdateDroneCommandHandler() commands.UpdateDroneCommandHandler {
	return commands.NewUpdateDroneCommandHandler(c.uow(), c.retry)
}

func (c *CompositionRoot) CreateDeleteDroneCommandHandler() commands.DeleteDroneCommandHandler {
	return commands.NewDeleteDroneCommandHandler(c.uow(), c.retry)
}

func (c *CompositionRoot) CreateReconcileDroneCommandHandler() commands.ReconcileDroneCommandHandler {
	return commands.NewReconcileDroneCommandHandler(c.uow(), c.retry)
}

func (c *CompositionRoot) CreateReconcileReservationsCommandHandler() commands.ReconcileReservationsCommandHandler {
	return commands.NewReconcileReservationsCommandHandler(c.uow(), c.retry)
}

func (c *CompositionRoot) CreateResetDailyDeliveriesCommandHandler() commands.ResetDailyDeliveriesCommandHandler {
	return commands.NewResetDailyDeliveriesCommandHandler(c.droneUoW())
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetFleetQueryHandler() queries.GetFleetQueryHandler {
	return queries.NewGetFleetQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateLifecycleService() *lifecycle.Service {
	return lifecycle.NewService(lifecycle.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		UpdateOrderStatus: c.CreateUpdateOrderStatusCommandHandler(),
		AssignDrone:       c.CreateAssignDroneCommandHandler(),
		AddOrderNote:      c.CreateAddOrderNoteCommandHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateLifecycleService(),
		c.CreateRegisterDroneCommandHandler(),
		c.CreateUpdateDroneCommandHandler(),
		c.CreateDeleteDroneCommandHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetFleetQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateResetDailyDeliveriesCommandHandler(), c.cfg.DailyResetSchedule, c.logger)
}

func (c *CompositionRoot) CreateFleetSeeder() *fleetseed.Seeder {
	return fleetseed.NewSeeder(c.CreateGetFleetQueryHandler(), c.CreateRegisterDroneCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateDroneChangedConsumer() *kafkain.DroneChangedConsumer {
	return kafkain.NewDroneChangedConsumer(
		c.cfg.KafkaBrokers(),
		c.cfg.KafkaConsumerGroup,
		c.cfg.KafkaDroneChangedTopic,
		c.CreateReconcileDroneCommandHandler(),
		c.CreateUpdateDroneCommandHandler(),
		c.logger,
	)
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, host := range strings.Split(c.KafkaHost, ",") {
		if host = strings.TrimSpace(host); host != "" {
			brokers = append(brokers, host)
		}
	}
	return brokers
}

type FuncDroneUoWFactory func() commands.DroneUoW

func (f FuncDroneUoWFactory) Create() commands.DroneUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
