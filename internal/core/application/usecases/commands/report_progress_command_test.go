package commands_test

import (
	"testing"

	"robowash/internal/core/application/usecases/commands"
	"robowash/internal/core/domain/model/request"
	"robowash/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReportProgressCommand(t *testing.T) {
	weight := 4.5
	totalCost := 22.5

	cmd, err := commands.NewReportProgressCommand(42, request.LaundryLoaded, &weight, &totalCost, "wash-bot-1")
	require.NoError(t, err)

	assert.EqualValues(t, 42, cmd.RequestID())
	assert.Equal(t, request.LaundryLoaded, cmd.Target())
	require.NotNil(t, cmd.Weight())
	assert.Equal(t, weight, *cmd.Weight())
	require.NotNil(t, cmd.TotalCost())
	assert.Equal(t, totalCost, *cmd.TotalCost())
	assert.Equal(t, "wash-bot-1", cmd.Actor())
}

func TestNewReportProgressCommand_LoadIsOptional(t *testing.T) {
	cmd, err := commands.NewReportProgressCommand(42, request.RobotEnRoute, nil, nil, "wash-bot-1")
	require.NoError(t, err)
	assert.Nil(t, cmd.Weight())
	assert.Nil(t, cmd.TotalCost())
}

func TestNewReportProgressCommand_Validation(t *testing.T) {
	weight := 4.5

	_, err := commands.NewReportProgressCommand(0, request.RobotEnRoute, nil, nil, "wash-bot-1")
	assert.ErrorIs(t, err, commands.ErrRequestIDIsInvalid)

	_, err = commands.NewReportProgressCommand(42, request.Unknown, nil, nil, "wash-bot-1")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewReportProgressCommand(42, request.RobotEnRoute, &weight, nil, "wash-bot-1")
	assert.ErrorIs(t, err, commands.ErrWeightRequiresTotalCost)

	_, err = commands.NewReportProgressCommand(42, request.RobotEnRoute, nil, nil, "")
	assert.ErrorIs(t, err, commands.ErrActorIsRequired)
}
