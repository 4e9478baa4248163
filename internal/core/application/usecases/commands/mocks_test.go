package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"robowash/internal/core/application/usecases/commands"
	"robowash/internal/core/domain/model/audit"
	"robowash/internal/core/domain/model/request"
	"robowash/internal/core/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockRequestRepository struct{ mock.Mock }

func (m *MockRequestRepository) Add(ctx context.Context, aggregate *request.Request) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRequestRepository) Update(ctx context.Context, aggregate *request.Request) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRequestRepository) Get(ctx context.Context, id int64) (*request.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}

func (m *MockRequestRepository) GetActiveByRobot(ctx context.Context, robotName string) (*request.Request, error) {
	args := m.Called(ctx, robotName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}

func (m *MockRequestRepository) GetAllPending(ctx context.Context) ([]*request.Request, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*request.Request), args.Error(1)
}

func (m *MockRequestRepository) GetAllNonTerminal(ctx context.Context) ([]*request.Request, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*request.Request), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Append(ctx context.Context, entry audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListByRequest(ctx context.Context, requestID int64) ([]audit.Entry, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.Entry), args.Error(1)
}

func (m *MockAuditRepository) Get(ctx context.Context, id uuid.UUID) (audit.Entry, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(audit.Entry), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) AddPending(ctx context.Context, requestID int64, amount float64) error {
	args := m.Called(ctx, requestID, amount)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) RequestRepository() ports.RequestRepository {
	args := m.Called()
	return args.Get(0).(ports.RequestRepository)
}

func (m *MockUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type recordingNotifier struct {
	mu       sync.Mutex
	subjects []string
}

func (n *recordingNotifier) Notify(_ context.Context, subject, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subjects = append(n.subjects, subject)
}

// storedRequest builds a persisted-looking aggregate in the given status.
// robotName must be non-empty exactly for robot-owned statuses.
func storedRequest(t *testing.T, id int64, status request.Status, robotName string, totalCost *float64) *request.Request {
	t.Helper()

	props := request.RestoreProps{
		ID:           id,
		CustomerID:   "cust-17",
		CustomerName: "Dana",
		Address:      "10.0.3.12",
		RoomName:     "Room 412",
		Status:       status,
		RequestedAt:  base,
		Version:      3,
		TotalCost:    totalCost,
	}
	if totalCost != nil {
		weight := 4.5
		props.Weight = &weight
	}
	if robotName != "" {
		props.AssignedRobotName = &robotName
	}

	req, err := request.RestoreRequest(props)
	require.NoError(t, err)
	return req
}

// laxUoW wires the mock UoW with tolerant lifecycle expectations so tests
// only assert on the calls they care about.
func laxUoW(requestRepo *MockRequestRepository, auditRepo *MockAuditRepository) (*MockUoW, *MockUoWFactory) {
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil).Maybe()
	uow.On("Commit", mock.Anything).Return(nil).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	if requestRepo != nil {
		uow.On("RequestRepository").Return(requestRepo).Maybe()
	}
	if auditRepo != nil {
		uow.On("AuditRepository").Return(auditRepo).Maybe()
	}

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Maybe()
	return uow, factory
}
