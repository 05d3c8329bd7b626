package cmd

import (
	"log/slog"
	"time"

	"takeout/internal/adapters/in/http"
	"takeout/internal/adapters/out/postgres"
	"takeout/internal/adapters/out/postgres/promorepo"
	"takeout/internal/adapters/out/routing"
	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/application/usecases/queries"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/services"
	"takeout/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services and use case handlers
// together. All construction decisions live here.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	router     *routing.Client
	mode       commands.AssignmentMode
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	mode, err := commands.AssignmentModeFromString(config.AssignmentMode)
	if err != nil {
		return CompositionRoot{}, err
	}

	router := routing.NewClient(routing.Config{
		BaseURL: config.RoutingBaseURL,
		APIKey:  config.RoutingAPIKey,
		Timeout: time.Duration(config.RoutingTimeoutMS) * time.Millisecond,
	}, logger)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		router:     router,
		mode:       mode,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) defaultCommissionRate() (kernel.Rate, error) {
	return kernel.NewRate(c.config.DefaultCommissionRateBP)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(),
		promorepo.NewGormPromotionRepository(c.gormDB),
		services.NewDiscountCalculator(),
	)
}

func (c *CompositionRoot) CreatePayOrderCommandHandler() (commands.PayOrderCommandHandler, error) {
	defaultRate, err := c.defaultCommissionRate()
	if err != nil {
		return commands.PayOrderCommandHandler{}, err
	}

	assigner := c.CreateAutoAssignCourierCommandHandler()
	return commands.NewPayOrderCommandHandler(
		c.fullUoWFactory(),
		promorepo.NewGormCommissionRateSource(c.gormDB, defaultRate),
		&assigner,
		c.mode,
		c.logger,
	), nil
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateAutoAssignCourierCommandHandler() commands.AutoAssignCourierCommandHandler {
	return commands.NewAutoAssignCourierCommandHandler(
		c.fullUoWFactory(),
		services.NewCourierDispatcher(c.router),
	)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateCourierPickupCommandHandler() commands.CourierPickupCommandHandler {
	return commands.NewCourierPickupCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateCourierAdvanceCommandHandler() commands.CourierAdvanceCommandHandler {
	return commands.NewCourierAdvanceCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateAdminSetStatusCommandHandler() commands.AdminSetStatusCommandHandler {
	return commands.NewAdminSetStatusCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	return commands.NewUpdateCourierLocationCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateReconcileOrdersCommandHandler() commands.ReconcileOrdersCommandHandler {
	assigner := c.CreateAutoAssignCourierCommandHandler()
	cfg := commands.ReconcileConfig{
		Mode:                  c.mode,
		UnpaidTimeout:         time.Duration(c.config.UnpaidTimeoutMinutes) * time.Minute,
		AutoAssignDelay:       time.Duration(c.config.PaidUnassignedAutoAssignMinutes) * time.Minute,
		PaidUnassignedTimeout: time.Duration(c.config.PaidUnassignedTimeoutMinutes) * time.Minute,
	}
	return commands.NewReconcileOrdersCommandHandler(c.fullUoWFactory(), &assigner, cfg, c.logger)
}

func (c *CompositionRoot) CreateGetHallOrdersQueryHandler() queries.GetHallOrdersQueryHandler {
	return queries.NewGetHallOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateEstimateRouteQueryHandler() queries.EstimateRouteQueryHandler {
	return queries.NewEstimateRouteQueryHandler(c.router)
}

// CreateHTTPServer assembles the echo server with all use case handlers.
func (c *CompositionRoot) CreateHTTPServer() (*http.Server, error) {
	payHandler, err := c.CreatePayOrderCommandHandler()
	if err != nil {
		return nil, err
	}

	return http.NewServer(
		c.CreateCreateOrderCommandHandler(),
		payHandler,
		c.CreateCancelOrderCommandHandler(),
		c.CreateAutoAssignCourierCommandHandler(),
		c.CreateAssignCourierCommandHandler(),
		c.CreateCourierPickupCommandHandler(),
		c.CreateCourierAdvanceCommandHandler(),
		c.CreateAdminSetStatusCommandHandler(),
		c.CreateCreateCourierCommandHandler(),
		c.CreateUpdateCourierLocationCommandHandler(),
		c.CreateGetHallOrdersQueryHandler(),
		c.CreateGetAllCouriersQueryHandler(),
		c.CreateEstimateRouteQueryHandler(),
	), nil
}

// CreateJobManager builds the background job supervisor.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateReconcileOrdersCommandHandler(),
		c.config.ReconcileIntervalSeconds,
		c.logger,
	)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
