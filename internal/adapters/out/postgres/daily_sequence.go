package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DaySequenceDTO represents one per-day counter row backing the daily order
// numbering.
type DaySequenceDTO struct {
	Day   time.Time `gorm:"type:date;primaryKey"`
	Value int
}

// TableName specifies the database table name for day sequence counters.
func (DaySequenceDTO) TableName() string {
	return "order_day_sequences"
}

// GormDailySequence implements ports.DailySequence on a per-day counter
// table. The increment happens in a single upsert, so concurrent callers are
// serialized by the database and never see the same value.
type GormDailySequence struct {
	db *gorm.DB
}

// NewGormDailySequence creates a database-backed daily sequence.
func NewGormDailySequence(db *gorm.DB) *GormDailySequence {
	return &GormDailySequence{db: db}
}

// Next returns the next sequence number for the UTC day of the given time.
// Numbers start at 1 and restart on the UTC day boundary, each day having
// its own counter row.
func (s *GormDailySequence) Next(ctx context.Context, day time.Time) (int, error) {
	utcDay := day.UTC().Truncate(24 * time.Hour)

	var value int
	err := s.db.WithContext(ctx).Raw(`
		INSERT INTO order_day_sequences (day, value)
		VALUES (?, 1)
		ON CONFLICT (day) DO UPDATE SET value = order_day_sequences.value + 1
		RETURNING value
	`, utcDay).Scan(&value).Error
	if err != nil {
		return 0, err
	}

	return value, nil
}
