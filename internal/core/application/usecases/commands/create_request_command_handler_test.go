package commands_test

import (
	"testing"

	"robowash/internal/core/application/usecases/commands"
	"robowash/internal/core/domain/model/audit"
	"robowash/internal/core/domain/model/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateRequestCommandHandler_ReturnsAssignedID(t *testing.T) {
	requestRepo := new(MockRequestRepository)
	auditRepo := new(MockAuditRepository)
	_, factory := laxUoW(requestRepo, auditRepo)
	handler := commands.NewCreateRequestCommandHandler(factory)

	var recorded audit.Entry
	auditRepo.On("Append", mock.Anything, mock.AnythingOfType("audit.Entry")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(audit.Entry)
		}).
		Return(nil)

	requestRepo.On("Add", mock.Anything, mock.AnythingOfType("*request.Request")).
		Run(func(args mock.Arguments) {
			req := args.Get(1).(*request.Request)
			require.NoError(t, req.AttachID(42))
		}).
		Return(nil)

	cmd, err := commands.NewCreateRequestCommand("cust-17", "Dana", "+1555880", "10.0.3.12", "Room 412")
	require.NoError(t, err)

	id, err := handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	assert.Equal(t, audit.ActionCreate, recorded.Action())
	assert.EqualValues(t, 42, recorded.RequestID())
	assert.Equal(t, "Pending", recorded.ToStatus())
	assert.Equal(t, "cust-17", recorded.Actor())
}

func TestCreateRequestCommandHandler_InvalidCommandNeverTouchesStorage(t *testing.T) {
	requestRepo := new(MockRequestRepository)
	auditRepo := new(MockAuditRepository)
	uow, factory := laxUoW(requestRepo, auditRepo)
	handler := commands.NewCreateRequestCommandHandler(factory)

	_, err := handler.Handle(t.Context(), commands.CreateRequestCommand{})
	assert.ErrorIs(t, err, commands.ErrCreateRequestCommandIsNotConstructed)

	uow.AssertNotCalled(t, "Begin", mock.Anything)
	requestRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}
