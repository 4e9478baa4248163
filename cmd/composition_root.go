package cmd

import (
	"log/slog"

	httpin "robowash/internal/adapters/in/http"
	"robowash/internal/adapters/out/inmem"
	"robowash/internal/adapters/out/notify"
	"robowash/internal/adapters/out/postgres"
	"robowash/internal/adapters/out/robotgw"
	"robowash/internal/core/application/usecases/commands"
	"robowash/internal/core/application/usecases/queries"
	"robowash/internal/core/domain/services"
	"robowash/internal/jobs"

	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// CompositionRoot wires every adapter and handler of the service. Handlers
// are cheap value types created on demand; the registry, the unit-of-work
// factory and the outbound adapters are shared singletons.
type CompositionRoot struct {
	policy     Policy
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	registry   *inmem.RobotRegistry
	engine     services.DispatchEngine
	notifier   *notify.LogNotificationSender
	transport  *robotgw.HTTPRobotTransport
	logger     *slog.Logger
}

// NewCompositionRoot builds the shared object graph.
func NewCompositionRoot(policy Policy, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		policy:     policy,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   inmem.NewRobotRegistry(policy.OfflineThreshold, logger),
		engine: services.NewDispatchEngine(services.DispatchPolicy{
			AllowPreemption: policy.AllowPreemption,
		}),
		notifier:  notify.NewLogNotificationSender(logger),
		transport: robotgw.NewHTTPRobotTransport(logger),
		logger:    logger,
	}
}

// Registry exposes the shared robot registry.
func (c *CompositionRoot) Registry() *inmem.RobotRegistry {
	return c.registry
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateRequestCommandHandler() commands.CreateRequestCommandHandler {
	return commands.NewCreateRequestCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateAcceptRequestCommandHandler() commands.AcceptRequestCommandHandler {
	return commands.NewAcceptRequestCommandHandler(c.createUoWFactory(), c.registry, c.engine, c.notifier)
}

func (c *CompositionRoot) CreateDeclineRequestCommandHandler() commands.DeclineRequestCommandHandler {
	return commands.NewDeclineRequestCommandHandler(c.createUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateReportProgressCommandHandler() commands.ReportProgressCommandHandler {
	return commands.NewReportProgressCommandHandler(c.createUoWFactory(), c.registry, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateMarkReadyForDeliveryCommandHandler() commands.MarkReadyForDeliveryCommandHandler {
	return commands.NewMarkReadyForDeliveryCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateStartDeliveryCommandHandler() commands.StartDeliveryCommandHandler {
	return commands.NewStartDeliveryCommandHandler(c.createUoWFactory(), c.registry, c.engine, c.transport, c.logger)
}

func (c *CompositionRoot) CreateCompleteRequestCommandHandler() commands.CompleteRequestCommandHandler {
	return commands.NewCompleteRequestCommandHandler(c.createUoWFactory(), c.registry, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCancelRequestCommandHandler() commands.CancelRequestCommandHandler {
	return commands.NewCancelRequestCommandHandler(c.createUoWFactory(), c.registry, c.logger)
}

func (c *CompositionRoot) CreateForceCancelCommandHandler() commands.ForceCancelCommandHandler {
	return commands.NewForceCancelCommandHandler(c.createUoWFactory(), c.registry, c.logger)
}

func (c *CompositionRoot) CreateForceCancelAllCommandHandler() commands.ForceCancelAllCommandHandler {
	return commands.NewForceCancelAllCommandHandler(c.createUoWFactory(), c.registry, c.logger)
}

func (c *CompositionRoot) CreateReassignOfflineRequestsCommandHandler() commands.ReassignOfflineRequestsCommandHandler {
	return commands.NewReassignOfflineRequestsCommandHandler(c.createUoWFactory(), c.registry)
}

func (c *CompositionRoot) CreateGetPendingRequestsQueryHandler() queries.GetPendingRequestsQueryHandler {
	return queries.NewGetPendingRequestsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveRequestsQueryHandler() queries.GetActiveRequestsQueryHandler {
	return queries.NewGetActiveRequestsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAuditTrailQueryHandler() queries.GetAuditTrailQueryHandler {
	return queries.NewGetAuditTrailQueryHandler(c.gormDB)
}

// CreateJobManager builds the scheduled jobs. The liveness sweep reassigns
// requests only when the auto-reassign policy is on.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var reassigner jobs.Reassigner
	if c.policy.AutoReassignOffline {
		handler := c.CreateReassignOfflineRequestsCommandHandler()
		reassigner = handler
	}

	sweeper := jobs.NewSweeper(c.registry, c.notifier, reassigner,
		c.policy.OfflineThreshold, c.policy.RealertAfter, c.logger)
	return jobs.NewJobManager(jobs.NewLivenessJob(sweeper, c.policy.LivenessSchedule, c.logger))
}

// CreateHTTPServer builds the inbound HTTP facade.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.ServerConfig{
		CreateRequestHandler:   c.CreateCreateRequestCommandHandler(),
		AcceptRequestHandler:   c.CreateAcceptRequestCommandHandler(),
		DeclineRequestHandler:  c.CreateDeclineRequestCommandHandler(),
		ReportProgressHandler:  c.CreateReportProgressCommandHandler(),
		MarkReadyHandler:       c.CreateMarkReadyForDeliveryCommandHandler(),
		StartDeliveryHandler:   c.CreateStartDeliveryCommandHandler(),
		CompleteRequestHandler: c.CreateCompleteRequestCommandHandler(),
		CancelRequestHandler:   c.CreateCancelRequestCommandHandler(),
		ForceCancelHandler:     c.CreateForceCancelCommandHandler(),
		ForceCancelAllHandler:  c.CreateForceCancelAllCommandHandler(),

		GetPendingRequestsHandler: c.CreateGetPendingRequestsQueryHandler(),
		GetActiveRequestsHandler:  c.CreateGetActiveRequestsQueryHandler(),
		GetAuditTrailHandler:      c.CreateGetAuditTrailQueryHandler(),

		Registry:         c.registry,
		OfflineThreshold: c.policy.OfflineThreshold,
		HeartbeatRate:    rate.Limit(c.policy.HeartbeatRate),
		HeartbeatBurst:   c.policy.HeartbeatBurst,
	})
}

// FuncUoWFactory adapts a closure to the commands.UoWFactory interface.
type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
