package ports

import "context"

// PaymentRepository is the narrow contract toward the payment collaborator:
// completing a request creates one pending payment record carrying the
// request's total cost. Settlement and receipts are outside this core.
type PaymentRepository interface {
	// AddPending creates a pending payment record for a completed request.
	AddPending(ctx context.Context, requestID int64, amount float64) error
}
