// Package requestrepo provides the GORM persistence adapter for request
// aggregates, including the DTO mapping between domain state and the
// relational schema.
package requestrepo

import (
	"time"

	"robowash/internal/core/domain/model/request"
)

// RequestDTO is the database representation of a request aggregate.
// The version column backs the optimistic-concurrency check on updates.
type RequestDTO struct {
	ID                int64 `gorm:"primaryKey;autoIncrement"`
	CustomerID        string `gorm:"index"`
	CustomerName      string
	CustomerPhone     string
	Address           string
	RoomName          string
	Status            int     `gorm:"index"`
	AssignedRobotName *string `gorm:"index"`
	DeclineReason     *string
	Weight            *float64
	TotalCost         *float64
	RequestedAt       time.Time
	AcceptedAt        *time.Time
	ArrivedAtRoomAt   *time.Time
	LaundryLoadedAt   *time.Time
	ReturnedToBaseAt  *time.Time
	ProcessedAt       *time.Time
	DeliveryStartedAt *time.Time
	CompletedAt       *time.Time
	DeclinedAt        *time.Time
	CancelledAt       *time.Time
	Version           int64
}

// TableName overrides GORM's default naming to use "requests".
func (RequestDTO) TableName() string {
	return "requests"
}

// fromDomain converts a request aggregate to its database representation.
func fromDomain(aggregate *request.Request) RequestDTO {
	return RequestDTO{
		ID:                aggregate.ID(),
		CustomerID:        aggregate.CustomerID(),
		CustomerName:      aggregate.CustomerName(),
		CustomerPhone:     aggregate.CustomerPhone(),
		Address:           aggregate.Address(),
		RoomName:          aggregate.RoomName(),
		Status:            int(aggregate.Status()),
		AssignedRobotName: aggregate.AssignedRobotName(),
		DeclineReason:     aggregate.DeclineReason(),
		Weight:            aggregate.Weight(),
		TotalCost:         aggregate.TotalCost(),
		RequestedAt:       aggregate.RequestedAt(),
		AcceptedAt:        aggregate.AcceptedAt(),
		ArrivedAtRoomAt:   aggregate.ArrivedAtRoomAt(),
		LaundryLoadedAt:   aggregate.LaundryLoadedAt(),
		ReturnedToBaseAt:  aggregate.ReturnedToBaseAt(),
		ProcessedAt:       aggregate.ProcessedAt(),
		DeliveryStartedAt: aggregate.DeliveryStartedAt(),
		CompletedAt:       aggregate.CompletedAt(),
		DeclinedAt:        aggregate.DeclinedAt(),
		CancelledAt:       aggregate.CancelledAt(),
		Version:           aggregate.Version(),
	}
}

// toDomain converts a database DTO to a request aggregate via RestoreRequest.
func toDomain(dto RequestDTO) (*request.Request, error) {
	return request.RestoreRequest(request.RestoreProps{
		ID:                dto.ID,
		CustomerID:        dto.CustomerID,
		CustomerName:      dto.CustomerName,
		CustomerPhone:     dto.CustomerPhone,
		Address:           dto.Address,
		RoomName:          dto.RoomName,
		Status:            request.Status(dto.Status),
		AssignedRobotName: dto.AssignedRobotName,
		DeclineReason:     dto.DeclineReason,
		Weight:            dto.Weight,
		TotalCost:         dto.TotalCost,
		RequestedAt:       dto.RequestedAt,
		AcceptedAt:        dto.AcceptedAt,
		ArrivedAtRoomAt:   dto.ArrivedAtRoomAt,
		LaundryLoadedAt:   dto.LaundryLoadedAt,
		ReturnedToBaseAt:  dto.ReturnedToBaseAt,
		ProcessedAt:       dto.ProcessedAt,
		DeliveryStartedAt: dto.DeliveryStartedAt,
		CompletedAt:       dto.CompletedAt,
		DeclinedAt:        dto.DeclinedAt,
		CancelledAt:       dto.CancelledAt,
		Version:           dto.Version,
	})
}
