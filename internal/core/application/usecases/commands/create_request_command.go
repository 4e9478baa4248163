package commands

import (
	"errors"

	"robowash/internal/pkg/guard"
)

var (
	ErrCreateRequestCommandIsNotConstructed = errors.New(
		"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
	)
	ErrCustomerIDIsRequired = errors.New("customer id is required")
	ErrAddressIsRequired    = errors.New("address is required")
	ErrRoomNameIsRequired   = errors.New("room name is required")
)

// CreateRequestCommand represents a customer submitting a new laundry request.
// Carries the customer identity and the pickup location the robot will
// navigate to.
//
// Example:
//
//	cmd, err := NewCreateRequestCommand("cust-17", "Dana", "+1555880",
//	    "10.0.3.12", "Room 412")
//	if err != nil {
//	    return fmt.Errorf("invalid request data: %w", err)
//	}
//
//	handler := NewCreateRequestCommandHandler(uowFactory)
//	id, err := handler.Handle(ctx, cmd)
type CreateRequestCommand struct { //nolint:recvcheck //using for validation
	customerID    string
	customerName  string
	customerPhone string
	address       string
	roomName      string

	guard guard.ConstructorGuard
}

// NewCreateRequestCommand creates a command to register a new laundry request.
// Customer id, address and room name are required; name and phone are
// informational and may be empty.
func NewCreateRequestCommand(customerID, customerName, customerPhone, address, roomName string) (CreateRequestCommand, error) {
	cmd := CreateRequestCommand{
		customerName:  customerName,
		customerPhone: customerPhone,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setAddress(address),
		cmd.setRoomName(roomName),
	); err != nil {
		return CreateRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

// CustomerID returns the submitting customer's identifier.
func (c CreateRequestCommand) CustomerID() string {
	return c.customerID
}

// CustomerName returns the customer's display name.
func (c CreateRequestCommand) CustomerName() string {
	return c.customerName
}

// CustomerPhone returns the customer's contact phone.
func (c CreateRequestCommand) CustomerPhone() string {
	return c.customerPhone
}

// Address returns the network address of the customer's building endpoint.
func (c CreateRequestCommand) Address() string {
	return c.address
}

// RoomName returns the room the robot will navigate to.
func (c CreateRequestCommand) RoomName() string {
	return c.roomName
}

func (c *CreateRequestCommand) setCustomerID(customerID string) error {
	if customerID == "" {
		return ErrCustomerIDIsRequired
	}

	c.customerID = customerID
	return nil
}

func (c *CreateRequestCommand) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}

	c.address = address
	return nil
}

func (c *CreateRequestCommand) setRoomName(roomName string) error {
	if roomName == "" {
		return ErrRoomNameIsRequired
	}

	c.roomName = roomName
	return nil
}
