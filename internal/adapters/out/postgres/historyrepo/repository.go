package historyrepo

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormOrderHistoryRepository implements ports.OrderHistoryRepository using
// GORM. Records are append-only; there is no update path.
type GormOrderHistoryRepository struct {
	db *gorm.DB
}

// NewGormOrderHistoryRepository creates a new GORM order history repository.
func NewGormOrderHistoryRepository(db *gorm.DB) *GormOrderHistoryRepository {
	return &GormOrderHistoryRepository{db: db}
}

// Append persists one order status change record.
func (r *GormOrderHistoryRepository) Append(ctx context.Context, record *order.StatusHistory) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto, err := orderHistoryFromDomain(record)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByOrder retrieves an order's records, oldest first.
func (r *GormOrderHistoryRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.StatusHistory, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderHistoryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*order.StatusHistory, 0, len(dtos))
	for _, dto := range dtos {
		record, err := orderHistoryToDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// GormDriverHistoryRepository implements ports.DriverHistoryRepository using
// GORM.
type GormDriverHistoryRepository struct {
	db *gorm.DB
}

// NewGormDriverHistoryRepository creates a new GORM driver history repository.
func NewGormDriverHistoryRepository(db *gorm.DB) *GormDriverHistoryRepository {
	return &GormDriverHistoryRepository{db: db}
}

// Append persists one driver availability change record.
func (r *GormDriverHistoryRepository) Append(ctx context.Context, record *driver.StatusHistory) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := driverHistoryFromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByDriver retrieves a driver's records, oldest first.
func (r *GormDriverHistoryRepository) GetByDriver(ctx context.Context, driverID kernel.UUID) ([]*driver.StatusHistory, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DriverHistoryDTO
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID.Bytes()).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*driver.StatusHistory, 0, len(dtos))
	for _, dto := range dtos {
		record, err := driverHistoryToDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
