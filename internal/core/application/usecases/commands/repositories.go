// Package commands contains the business operations that modify system
// state: the administrative surface (accept, decline, complete, cancel) and
// the robot-reported lifecycle confirmations. Every command follows the same
// pattern: constructor validation, one unit of work, state mutation through
// the aggregate, exactly one audit entry per successful action.
package commands

import (
	"context"

	"robowash/internal/core/ports"
)

// Unit of Work interfaces consumed by command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RequestRepoFactory provides the request repository within a transaction.
	RequestRepoFactory interface {
		RequestRepository() ports.RequestRepository
	}

	// AuditRepoFactory provides the audit repository within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// PaymentRepoFactory provides the payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// UoW manages one transaction across request, audit and payment storage.
	UoW interface {
		TxManager
		RequestRepoFactory
		AuditRepoFactory
		PaymentRepoFactory
	}

	// UoWFactory creates a fresh UoW per command.
	UoWFactory interface {
		Create() UoW
	}
)
