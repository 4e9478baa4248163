package auditrepo

import (
	"context"
	"errors"

	"robowash/internal/core/domain/model/audit"
	"robowash/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAuditRepository implements ports.AuditRepository using GORM.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append persists one entry. A conflict on the entry id is ignored, which
// makes retried admin actions idempotent on the trail.
func (r *GormAuditRepository) Append(ctx context.Context, entry audit.Entry) error {
	dto := fromDomain(entry)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}

// ListByRequest retrieves one request's trail in recording order.
func (r *GormAuditRepository) ListByRequest(ctx context.Context, requestID int64) ([]audit.Entry, error) {
	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("recorded_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]audit.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, entryErr := toDomain(dto)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Get retrieves one entry by id.
func (r *GormAuditRepository) Get(ctx context.Context, id uuid.UUID) (audit.Entry, error) {
	var dto EntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return audit.Entry{}, errs.NewObjectNotFoundError("audit entry", id.String())
		}
		return audit.Entry{}, err
	}

	return toDomain(dto)
}
