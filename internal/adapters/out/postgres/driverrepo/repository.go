package driverrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDriverRepository implements ports.DriverRepository using GORM.
type GormDriverRepository struct {
	db *gorm.DB
}

// NewGormDriverRepository creates a new GORM driver repository.
func NewGormDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// Add saves a new driver availability record to the database.
func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.DriverAvailability) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing driver availability record.
//
// A transition to BUSY is applied conditionally on the stored status still
// being AVAILABLE. When two assignments race for the same driver the second
// update matches zero rows and surfaces as a ConflictError, which rolls the
// losing transaction back.
func (r *GormDriverRepository) Update(ctx context.Context, aggregate *driver.DriverAvailability) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	query := r.db.WithContext(ctx).Model(&DriverDTO{})

	becomingBusy := aggregate.Status() == driver.StatusBusy
	if becomingBusy {
		query = query.Where("id = ? AND status = ?", dto.ID, driver.StatusAvailable.String())
	} else {
		query = query.Where("id = ?", dto.ID)
	}

	result := query.Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if becomingBusy {
			return errs.NewConflictError("driver", aggregate.DriverID().String())
		}
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Get retrieves a driver availability record by driver ID.
func (r *GormDriverRepository) Get(ctx context.Context, driverID kernel.UUID) (*driver.DriverAvailability, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dto DriverDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", driverID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", driverID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAvailable retrieves every verified AVAILABLE driver, longest idle
// first.
func (r *GormDriverRepository) GetAllAvailable(ctx context.Context) ([]*driver.DriverAvailability, error) {
	var dtos []DriverDTO
	err := r.db.WithContext(ctx).
		Where("verified AND status = ?", driver.StatusAvailable.String()).
		Order("status_changed_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	drivers := make([]*driver.DriverAvailability, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}

	return drivers, nil
}
