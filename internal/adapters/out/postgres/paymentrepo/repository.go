// Package paymentrepo provides the narrow GORM adapter toward the payment
// collaborator: completion writes one pending payment record and nothing else.
package paymentrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentDTO is the pending payment record created when a request completes.
// Settlement is handled by the external payment system.
type PaymentDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID int64     `gorm:"index"`
	Amount    float64
	Status    string
	CreatedAt time.Time
}

// TableName overrides GORM's default naming to use "payments".
func (PaymentDTO) TableName() string {
	return "payments"
}

// GormPaymentRepository implements ports.PaymentRepository using GORM.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GORM payment repository.
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// AddPending creates a pending payment record for a completed request.
func (r *GormPaymentRepository) AddPending(ctx context.Context, requestID int64, amount float64) error {
	dto := PaymentDTO{
		ID:        uuid.New(),
		RequestID: requestID,
		Amount:    amount,
		Status:    "Pending",
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}
