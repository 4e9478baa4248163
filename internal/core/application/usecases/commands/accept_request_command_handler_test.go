package commands_test

import (
	"errors"
	"testing"
	"time"

	"robowash/internal/adapters/out/inmem"
	"robowash/internal/core/application/usecases/commands"
	"robowash/internal/core/domain/model/audit"
	"robowash/internal/core/domain/model/request"
	"robowash/internal/core/domain/model/robot"
	"robowash/internal/core/domain/services"
	"robowash/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// acceptFixture wires the handler against the real in-memory registry and the
// real dispatch engine; only the persistence side is mocked.
type acceptFixture struct {
	handler     commands.AcceptRequestCommandHandler
	requestRepo *MockRequestRepository
	auditRepo   *MockAuditRepository
	registry    *inmem.RobotRegistry
	notifier    *recordingNotifier
	actions     *[]audit.Action
}

func newAcceptFixture(t *testing.T) *acceptFixture {
	t.Helper()

	requestRepo := new(MockRequestRepository)
	auditRepo := new(MockAuditRepository)
	_, factory := laxUoW(requestRepo, auditRepo)

	actions := &[]audit.Action{}
	auditRepo.On("Append", mock.Anything, mock.AnythingOfType("audit.Entry")).
		Run(func(args mock.Arguments) {
			*actions = append(*actions, args.Get(1).(audit.Entry).Action())
		}).
		Return(nil).Maybe()

	registry := inmem.NewRobotRegistry(15*time.Second, discardLogger())
	notifier := &recordingNotifier{}
	handler := commands.NewAcceptRequestCommandHandler(factory, registry,
		services.NewDispatchEngine(services.DefaultDispatchPolicy()), notifier)

	return &acceptFixture{
		handler:     handler,
		requestRepo: requestRepo,
		auditRepo:   auditRepo,
		registry:    registry,
		notifier:    notifier,
		actions:     actions,
	}
}

func mustAcceptCommand(t *testing.T, requestID int64) commands.AcceptRequestCommand {
	t.Helper()

	cmd, err := commands.NewAcceptRequestCommand(requestID, "admin")
	require.NoError(t, err)
	return cmd
}

func TestAcceptRequestCommandHandler_DispatchesAvailableRobot(t *testing.T) {
	f := newAcceptFixture(t)
	ctx := t.Context()

	_, err := f.registry.Register("wash-bot-1", "10.0.0.5:9000")
	require.NoError(t, err)

	req := storedRequest(t, 42, request.Pending, "", nil)
	f.requestRepo.On("Get", mock.Anything, int64(42)).Return(req, nil)
	f.requestRepo.On("Update", mock.Anything, req).Return(nil)

	require.NoError(t, f.handler.Handle(ctx, mustAcceptCommand(t, 42)))

	assert.Equal(t, request.Accepted, req.Status())
	require.NotNil(t, req.AssignedRobotName())
	assert.Equal(t, "wash-bot-1", *req.AssignedRobotName())

	r, ok := f.registry.Get("wash-bot-1")
	require.True(t, ok)
	assert.Equal(t, robot.StatusBusy, r.Status())
	assert.Equal(t, "request #42", r.CurrentTask())

	assert.Equal(t, []audit.Action{audit.ActionAccept}, *f.actions)
	assert.Equal(t, []string{"request accepted"}, f.notifier.subjects)
}

func TestAcceptRequestCommandHandler_RepeatedAcceptIsNoOp(t *testing.T) {
	f := newAcceptFixture(t)
	ctx := t.Context()

	_, err := f.registry.Register("wash-bot-1", "10.0.0.5:9000")
	require.NoError(t, err)

	req := storedRequest(t, 42, request.Accepted, "wash-bot-2", nil)
	f.requestRepo.On("Get", mock.Anything, int64(42)).Return(req, nil)

	require.NoError(t, f.handler.Handle(ctx, mustAcceptCommand(t, 42)))

	f.requestRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.Empty(t, *f.actions)

	// The retry must not grab a robot.
	r, ok := f.registry.Get("wash-bot-1")
	require.True(t, ok)
	assert.Equal(t, robot.StatusAvailable, r.Status())
}

func TestAcceptRequestCommandHandler_RejectsNonPendingRequest(t *testing.T) {
	f := newAcceptFixture(t)
	ctx := t.Context()

	req := storedRequest(t, 42, request.Washing, "", nil)
	f.requestRepo.On("Get", mock.Anything, int64(42)).Return(req, nil)

	err := f.handler.Handle(ctx, mustAcceptCommand(t, 42))
	assert.ErrorIs(t, err, request.ErrInvalidTransition)
}

func TestAcceptRequestCommandHandler_NoRobotLeavesRequestPending(t *testing.T) {
	f := newAcceptFixture(t)
	ctx := t.Context()

	req := storedRequest(t, 42, request.Pending, "", nil)
	f.requestRepo.On("Get", mock.Anything, int64(42)).Return(req, nil)

	err := f.handler.Handle(ctx, mustAcceptCommand(t, 42))
	assert.ErrorIs(t, err, services.ErrNoRobotAvailable)
	assert.Equal(t, request.Pending, req.Status())
	f.requestRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAcceptRequestCommandHandler_PreemptsBusyRobot(t *testing.T) {
	f := newAcceptFixture(t)
	ctx := t.Context()

	_, err := f.registry.Register("wash-bot-1", "10.0.0.5:9000")
	require.NoError(t, err)
	require.True(t, f.registry.TrySetStatus("wash-bot-1",
		robot.StatusAvailable, robot.StatusBusy, "request #7"))

	victim := storedRequest(t, 7, request.InProgress, "wash-bot-1", nil)
	req := storedRequest(t, 42, request.Pending, "", nil)
	f.requestRepo.On("Get", mock.Anything, int64(42)).Return(req, nil)
	f.requestRepo.On("GetActiveByRobot", mock.Anything, "wash-bot-1").Return(victim, nil)
	f.requestRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.handler.Handle(ctx, mustAcceptCommand(t, 42)))

	// The victim went back to the dispatch queue without its robot.
	assert.Equal(t, request.Pending, victim.Status())
	assert.Nil(t, victim.AssignedRobotName())

	assert.Equal(t, request.Accepted, req.Status())
	require.NotNil(t, req.AssignedRobotName())
	assert.Equal(t, "wash-bot-1", *req.AssignedRobotName())

	r, ok := f.registry.Get("wash-bot-1")
	require.True(t, ok)
	assert.Equal(t, robot.StatusBusy, r.Status())
	assert.Equal(t, "request #42", r.CurrentTask())

	assert.Equal(t, []audit.Action{audit.ActionReassign, audit.ActionAccept}, *f.actions)
}

func TestAcceptRequestCommandHandler_StaleBusyFlagHasNoVictim(t *testing.T) {
	f := newAcceptFixture(t)
	ctx := t.Context()

	_, err := f.registry.Register("wash-bot-1", "10.0.0.5:9000")
	require.NoError(t, err)
	require.True(t, f.registry.TrySetStatus("wash-bot-1",
		robot.StatusAvailable, robot.StatusBusy, "request #7"))

	req := storedRequest(t, 42, request.Pending, "", nil)
	f.requestRepo.On("Get", mock.Anything, int64(42)).Return(req, nil)
	f.requestRepo.On("GetActiveByRobot", mock.Anything, "wash-bot-1").
		Return(nil, errs.NewObjectNotFoundError("request", "wash-bot-1"))
	f.requestRepo.On("Update", mock.Anything, req).Return(nil)

	require.NoError(t, f.handler.Handle(ctx, mustAcceptCommand(t, 42)))

	assert.Equal(t, request.Accepted, req.Status())
	assert.Equal(t, []audit.Action{audit.ActionAccept}, *f.actions)
}

func TestAcceptRequestCommandHandler_CommitFailureFreesRobot(t *testing.T) {
	requestRepo := new(MockRequestRepository)
	auditRepo := new(MockAuditRepository)

	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(errors.New("connection lost"))
	uow.On("RequestRepository").Return(requestRepo)
	uow.On("AuditRepository").Return(auditRepo)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow)

	registry := inmem.NewRobotRegistry(15*time.Second, discardLogger())
	notifier := &recordingNotifier{}
	handler := commands.NewAcceptRequestCommandHandler(factory, registry,
		services.NewDispatchEngine(services.DefaultDispatchPolicy()), notifier)

	_, err := registry.Register("wash-bot-1", "10.0.0.5:9000")
	require.NoError(t, err)

	req := storedRequest(t, 42, request.Pending, "", nil)
	requestRepo.On("Get", mock.Anything, int64(42)).Return(req, nil)
	requestRepo.On("Update", mock.Anything, req).Return(nil)
	auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	err = handler.Handle(t.Context(), mustAcceptCommand(t, 42))
	require.Error(t, err)

	// The registry flip was compensated after the failed commit.
	r, ok := registry.Get("wash-bot-1")
	require.True(t, ok)
	assert.Equal(t, robot.StatusAvailable, r.Status())
	assert.Empty(t, notifier.subjects)
}
