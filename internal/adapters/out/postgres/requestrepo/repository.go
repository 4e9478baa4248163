package requestrepo

import (
	"context"
	"errors"

	"robowash/internal/core/domain/model/request"
	"robowash/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRequestRepository implements ports.RequestRepository using GORM.
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GORM request repository.
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// Add saves a new request and attaches the storage-assigned id.
func (r *GormRequestRepository) Add(ctx context.Context, aggregate *request.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return aggregate.AttachID(dto.ID)
}

// Update saves an existing request. The write is conditional on the version
// the aggregate was loaded with; a stale version means a concurrent
// transition won the race and the caller must reload and re-decide.
func (r *GormRequestRepository) Update(ctx context.Context, aggregate *request.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	loadedVersion := aggregate.Version()
	dto := fromDomain(aggregate)
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&RequestDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&RequestDTO{}).
			Where("id = ?", dto.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("request", dto.ID)
		}
		return errs.NewConcurrentModificationError("request", dto.ID)
	}

	aggregate.BumpVersion()
	return nil
}

// Get retrieves a request by id.
func (r *GormRequestRepository) Get(ctx context.Context, id int64) (*request.Request, error) {
	var dto RequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("request", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByRobot retrieves the most recently accepted non-terminal request
// bound to the named robot.
func (r *GormRequestRepository) GetActiveByRobot(ctx context.Context, robotName string) (*request.Request, error) {
	var dto RequestDTO
	err := r.db.WithContext(ctx).
		Where("assigned_robot_name = ? AND status NOT IN ?", robotName, terminalStatusInts()).
		Order("accepted_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("request bound to robot", robotName)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves requests awaiting dispatch, oldest first.
func (r *GormRequestRepository) GetAllPending(ctx context.Context) ([]*request.Request, error) {
	var dtos []RequestDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", int(request.Pending)).
		Order("requested_at ASC, id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllNonTerminal retrieves every request still in flight.
func (r *GormRequestRepository) GetAllNonTerminal(ctx context.Context) ([]*request.Request, error) {
	var dtos []RequestDTO
	err := r.db.WithContext(ctx).
		Where("status NOT IN ?", terminalStatusInts()).
		Order("id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []RequestDTO) ([]*request.Request, error) {
	requests := make([]*request.Request, 0, len(dtos))
	for _, dto := range dtos {
		req, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func terminalStatusInts() []int {
	terminal := request.TerminalStatuses()
	out := make([]int, 0, len(terminal))
	for _, s := range terminal {
		out = append(out, int(s))
	}
	return out
}
