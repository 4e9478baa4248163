// Package auditrepo provides the GORM persistence adapter for the append-only
// audit trail.
package auditrepo

import (
	"time"

	"robowash/internal/core/domain/model/audit"

	"github.com/google/uuid"
)

// EntryDTO is the database representation of one audit entry.
type EntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Action     int
	RequestID  int64 `gorm:"index"`
	FromStatus string
	ToStatus   string
	Actor      string
	RobotName  *string
	RecordedAt time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to use "audit_entries".
func (EntryDTO) TableName() string {
	return "audit_entries"
}

func fromDomain(entry audit.Entry) EntryDTO {
	return EntryDTO{
		ID:         entry.ID(),
		Action:     int(entry.Action()),
		RequestID:  entry.RequestID(),
		FromStatus: entry.FromStatus(),
		ToStatus:   entry.ToStatus(),
		Actor:      entry.Actor(),
		RobotName:  entry.RobotName(),
		RecordedAt: entry.RecordedAt(),
	}
}

func toDomain(dto EntryDTO) (audit.Entry, error) {
	return audit.RestoreEntry(
		dto.ID,
		audit.Action(dto.Action),
		dto.RequestID,
		dto.FromStatus,
		dto.ToStatus,
		dto.Actor,
		dto.RobotName,
		dto.RecordedAt,
	)
}
