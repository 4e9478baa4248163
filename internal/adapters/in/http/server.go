// Package http provides the inbound HTTP surface: the admin request
// lifecycle endpoints, the robot registration/heartbeat endpoints and the
// dashboard read endpoints. Handlers stay thin; every decision lives in the
// command and query handlers behind them.
package http

import (
	"net/http"
	"strconv"
	"time"

	"robowash/internal/core/application/usecases/commands"
	"robowash/internal/core/application/usecases/queries"
	"robowash/internal/core/domain/model/request"
	"robowash/internal/core/domain/model/robot"
	"robowash/internal/core/ports"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createRequestHandler   commands.CreateRequestCommandHandler
	acceptRequestHandler   commands.AcceptRequestCommandHandler
	declineRequestHandler  commands.DeclineRequestCommandHandler
	reportProgressHandler  commands.ReportProgressCommandHandler
	markReadyHandler       commands.MarkReadyForDeliveryCommandHandler
	startDeliveryHandler   commands.StartDeliveryCommandHandler
	completeRequestHandler commands.CompleteRequestCommandHandler
	cancelRequestHandler   commands.CancelRequestCommandHandler
	forceCancelHandler     commands.ForceCancelCommandHandler
	forceCancelAllHandler  commands.ForceCancelAllCommandHandler

	getPendingRequestsHandler queries.GetPendingRequestsQueryHandler
	getActiveRequestsHandler  queries.GetActiveRequestsQueryHandler
	getAuditTrailHandler      queries.GetAuditTrailQueryHandler

	registry         ports.RobotRegistry
	offlineThreshold time.Duration
	heartbeats       *heartbeatLimiter
}

// ServerConfig bundles the handlers and collaborators the Server needs.
type ServerConfig struct {
	CreateRequestHandler   commands.CreateRequestCommandHandler
	AcceptRequestHandler   commands.AcceptRequestCommandHandler
	DeclineRequestHandler  commands.DeclineRequestCommandHandler
	ReportProgressHandler  commands.ReportProgressCommandHandler
	MarkReadyHandler       commands.MarkReadyForDeliveryCommandHandler
	StartDeliveryHandler   commands.StartDeliveryCommandHandler
	CompleteRequestHandler commands.CompleteRequestCommandHandler
	CancelRequestHandler   commands.CancelRequestCommandHandler
	ForceCancelHandler     commands.ForceCancelCommandHandler
	ForceCancelAllHandler  commands.ForceCancelAllCommandHandler

	GetPendingRequestsHandler queries.GetPendingRequestsQueryHandler
	GetActiveRequestsHandler  queries.GetActiveRequestsQueryHandler
	GetAuditTrailHandler      queries.GetAuditTrailQueryHandler

	Registry         ports.RobotRegistry
	OfflineThreshold time.Duration

	// HeartbeatRate and HeartbeatBurst bound heartbeats per robot per second.
	HeartbeatRate  rate.Limit
	HeartbeatBurst int
}

// NewServer creates the HTTP server facade.
func NewServer(cfg ServerConfig) *Server {
	return &Server{
		createRequestHandler:      cfg.CreateRequestHandler,
		acceptRequestHandler:      cfg.AcceptRequestHandler,
		declineRequestHandler:     cfg.DeclineRequestHandler,
		reportProgressHandler:     cfg.ReportProgressHandler,
		markReadyHandler:          cfg.MarkReadyHandler,
		startDeliveryHandler:      cfg.StartDeliveryHandler,
		completeRequestHandler:    cfg.CompleteRequestHandler,
		cancelRequestHandler:      cfg.CancelRequestHandler,
		forceCancelHandler:        cfg.ForceCancelHandler,
		forceCancelAllHandler:     cfg.ForceCancelAllHandler,
		getPendingRequestsHandler: cfg.GetPendingRequestsHandler,
		getActiveRequestsHandler:  cfg.GetActiveRequestsHandler,
		getAuditTrailHandler:      cfg.GetAuditTrailHandler,
		registry:                  cfg.Registry,
		offlineThreshold:          cfg.OfflineThreshold,
		heartbeats:                newHeartbeatLimiter(cfg.HeartbeatRate, cfg.HeartbeatBurst),
	}
}

// RegisterRoutes mounts every endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/requests", s.CreateRequest)
	api.GET("/requests/pending", s.GetPendingRequests)
	api.GET("/requests/active", s.GetActiveRequests)
	api.GET("/requests/:id/audit", s.GetAuditTrail)
	api.POST("/requests/:id/accept", s.AcceptRequest)
	api.POST("/requests/:id/decline", s.DeclineRequest)
	api.POST("/requests/:id/progress", s.ReportProgress)
	api.POST("/requests/:id/ready", s.MarkReadyForDelivery)
	api.POST("/requests/:id/deliver", s.StartDelivery)
	api.POST("/requests/:id/complete", s.CompleteRequest)
	api.POST("/requests/:id/cancel", s.CancelRequest)
	api.POST("/requests/:id/force-cancel", s.ForceCancelRequest)
	api.POST("/requests/force-cancel-all", s.ForceCancelAll)

	api.POST("/robots", s.RegisterRobot)
	api.POST("/robots/:name/heartbeat", s.RobotHeartbeat)
	api.GET("/robots", s.GetRobots)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type createRequestBody struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Address       string `json:"address"`
	RoomName      string `json:"room_name"`
}

// CreateRequest handles POST /api/v1/requests.
func (s *Server) CreateRequest(ctx echo.Context) error {
	var body createRequestBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateRequestCommand(body.CustomerID, body.CustomerName,
		body.CustomerPhone, body.Address, body.RoomName)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	id, err := s.createRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]int64{"id": id})
}

type actorBody struct {
	Actor string `json:"actor"`
}

// AcceptRequest handles POST /api/v1/requests/:id/accept.
func (s *Server) AcceptRequest(ctx echo.Context) error {
	id, ok := requestID(ctx)
	if !ok {
		return respondBadRequest(ctx, "Invalid request id")
	}

	var body actorBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAcceptRequestCommand(id, body.Actor)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	if err = s.acceptRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

type declineRequestBody struct {
	Actor  string `json:"actor"`
	Reason string `json:"reason"`
}

// DeclineRequest handles POST /api/v1/requests/:id/decline.
func (s *Server) DeclineRequest(ctx echo.Context) error {
	id, ok := requestID(ctx)
	if !ok {
		return respondBadRequest(ctx, "Invalid request id")
	}

	var body declineRequestBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewDeclineRequestCommand(id, body.Reason, body.Actor)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	if err = s.declineRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

type reportProgressBody struct {
	Actor     string   `json:"actor"`
	Target    string   `json:"target"`
	Weight    *float64 `json:"weight"`
	TotalCost *float64 `json:"total_cost"`
}

// ReportProgress handles POST /api/v1/requests/:id/progress.
func (s *Server) ReportProgress(ctx echo.Context) error {
	id, ok := requestID(ctx)
	if !ok {
		return respondBadRequest(ctx, "Invalid request id")
	}

	var body reportProgressBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	target, err := request.StatusFromName(body.Target)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	cmd, err := commands.NewReportProgressCommand(id, target, body.Weight, body.TotalCost, body.Actor)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	if err = s.reportProgressHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// MarkReadyForDelivery handles POST /api/v1/requests/:id/ready.
func (s *Server) MarkReadyForDelivery(ctx echo.Context) error {
	id, ok := requestID(ctx)
	if !ok {
		return respondBadRequest(ctx, "Invalid request id")
	}

	var body actorBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkReadyForDeliveryCommand(id, body.Actor)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	if err = s.markReadyHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// StartDelivery handles POST /api/v1/requests/:id/deliver.
func (s *Server) StartDelivery(ctx echo.Context) error {
	id, ok := requestID(ctx)
	if !ok {
		return respondBadRequest(ctx, "Invalid request id")
	}

	var body actorBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewStartDeliveryCommand(id, body.Actor)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	if err = s.startDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteRequest handles POST /api/v1/requests/:id/complete.
func (s *Server) CompleteRequest(ctx echo.Context) error {
	id, ok := requestID(ctx)
	if !ok {
		return respondBadRequest(ctx, "Invalid request id")
	}

	var body actorBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCompleteRequestCommand(id, body.Actor)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	if err = s.completeRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelRequest handles POST /api/v1/requests/:id/cancel.
func (s *Server) CancelRequest(ctx echo.Context) error {
	id, ok := requestID(ctx)
	if !ok {
		return respondBadRequest(ctx, "Invalid request id")
	}

	var body actorBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelRequestCommand(id, body.Actor)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	if err = s.cancelRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ForceCancelRequest handles POST /api/v1/requests/:id/force-cancel.
func (s *Server) ForceCancelRequest(ctx echo.Context) error {
	id, ok := requestID(ctx)
	if !ok {
		return respondBadRequest(ctx, "Invalid request id")
	}

	var body actorBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewForceCancelCommand(id, body.Actor)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	if err = s.forceCancelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ForceCancelAll handles POST /api/v1/requests/force-cancel-all.
func (s *Server) ForceCancelAll(ctx echo.Context) error {
	var body actorBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewForceCancelAllCommand(body.Actor)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	cancelled, err := s.forceCancelAllHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]int{"cancelled": cancelled})
}

// GetPendingRequests handles GET /api/v1/requests/pending.
func (s *Server) GetPendingRequests(ctx echo.Context) error {
	pending, err := s.getPendingRequestsHandler.Handle(ctx.Request().Context(),
		queries.NewGetPendingRequestsQuery())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, pending)
}

// GetActiveRequests handles GET /api/v1/requests/active.
func (s *Server) GetActiveRequests(ctx echo.Context) error {
	active, err := s.getActiveRequestsHandler.Handle(ctx.Request().Context(),
		queries.NewGetActiveRequestsQuery())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, active)
}

// GetAuditTrail handles GET /api/v1/requests/:id/audit.
func (s *Server) GetAuditTrail(ctx echo.Context) error {
	id, ok := requestID(ctx)
	if !ok {
		return respondBadRequest(ctx, "Invalid request id")
	}

	query, err := queries.NewGetAuditTrailQuery(id)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	trail, err := s.getAuditTrailHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, trail)
}

type registerRobotBody struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// RobotResponse is one robot snapshot as exposed to the dashboard.
type RobotResponse struct {
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	IsActive      bool      `json:"is_active"`
	Status        string    `json:"status"`
	CurrentTask   string    `json:"current_task,omitempty"`
	LastHeartbeat time.Time `json:"last_heartbeat"`
	Offline       bool      `json:"offline"`
}

// RegisterRobot handles POST /api/v1/robots. Registration doubles as
// re-registration after a robot restart.
func (s *Server) RegisterRobot(ctx echo.Context) error {
	var body registerRobotBody
	if err := ctx.Bind(&body); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	snapshot, err := s.registry.Register(body.Name, body.Address)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, s.toRobotResponse(snapshot, time.Now()))
}

// RobotHeartbeat handles POST /api/v1/robots/:name/heartbeat.
func (s *Server) RobotHeartbeat(ctx echo.Context) error {
	name := ctx.Param("name")
	if name == "" {
		return respondBadRequest(ctx, "Invalid robot name")
	}

	if !s.heartbeats.allow(name) {
		return ctx.NoContent(http.StatusTooManyRequests)
	}

	s.registry.Heartbeat(name)
	return ctx.NoContent(http.StatusNoContent)
}

// GetRobots handles GET /api/v1/robots.
func (s *Server) GetRobots(ctx echo.Context) error {
	now := time.Now()
	robots := s.registry.ListAll()

	response := make([]RobotResponse, len(robots))
	for i, r := range robots {
		response[i] = s.toRobotResponse(r, now)
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) toRobotResponse(r robot.Robot, now time.Time) RobotResponse {
	return RobotResponse{
		Name:          r.Name(),
		Address:       r.Address(),
		IsActive:      r.IsActive(),
		Status:        r.Status().String(),
		CurrentTask:   r.CurrentTask(),
		LastHeartbeat: r.LastHeartbeat(),
		Offline:       r.IsOffline(now, s.offlineThreshold),
	}
}

func requestID(ctx echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
