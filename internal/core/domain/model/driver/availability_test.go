package driver_test

import (
	"fmt"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availableDriver(t *testing.T, at time.Time) *driver.DriverAvailability {
	t.Helper()

	d, err := driver.NewDriverAvailability(kernel.NewUUID(), "Minh Pham", "+84907654321", at)
	require.NoError(t, err)
	require.NoError(t, d.GoOnline(at))
	return d
}

func TestAvailabilityStatus_Validate(t *testing.T) {
	t.Run("should validate enumerated statuses", func(t *testing.T) {
		for _, s := range []driver.AvailabilityStatus{
			driver.StatusAvailable,
			driver.StatusBusy,
			driver.StatusOffline,
		} {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("should reject unknown statuses", func(t *testing.T) {
		for _, s := range []driver.AvailabilityStatus{"", "busy", "IDLE"} {
			err := s.Validate()

			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
			assert.Contains(t, err.Error(), fmt.Sprintf("%q is not a valid availability status", string(s)))
		}
	})
}

func TestNewDriverAvailability(t *testing.T) {
	now := time.Date(2025, time.March, 7, 8, 0, 0, 0, time.UTC)

	t.Run("should create an offline unverified driver", func(t *testing.T) {
		id := kernel.NewUUID()

		d, err := driver.NewDriverAvailability(id, "Minh Pham", "+84907654321", now)

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.True(t, d.DriverID().IsEqual(id))
		assert.Equal(t, "Minh Pham", d.Name())
		assert.Equal(t, "+84907654321", d.Phone())
		assert.Equal(t, driver.StatusOffline, d.Status())
		assert.Equal(t, now, d.StatusChangedAt())
		assert.False(t, d.IsVerified())
		assert.False(t, d.IsAvailable())
		assert.Zero(t, d.TotalTrips())
	})

	t.Run("should fail with missing fields", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := driver.NewDriverAvailability(invalidID, "Minh Pham", "+84907654321", now)
		require.Error(t, err)

		_, err = driver.NewDriverAvailability(kernel.NewUUID(), "", "+84907654321", now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "value is required: driverName")

		_, err = driver.NewDriverAvailability(kernel.NewUUID(), "Minh Pham", "", now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "value is required: driverPhone")
	})
}

func TestDriverAvailability_MarkBusy(t *testing.T) {
	now := time.Date(2025, time.March, 7, 8, 0, 0, 0, time.UTC)

	t.Run("should occupy an available driver", func(t *testing.T) {
		d := availableDriver(t, now)

		err := d.MarkBusy(now.Add(time.Minute))

		require.NoError(t, err)
		assert.Equal(t, driver.StatusBusy, d.Status())
		assert.Equal(t, now.Add(time.Minute), d.StatusChangedAt())
		assert.False(t, d.IsAvailable())
	})

	t.Run("should reject a busy driver", func(t *testing.T) {
		d := availableDriver(t, now)
		require.NoError(t, d.MarkBusy(now))

		err := d.MarkBusy(now.Add(time.Minute))

		require.ErrorIs(t, err, driver.ErrDriverUnavailable)

		var unavailable *driver.UnavailableError
		require.ErrorAs(t, err, &unavailable)
		assert.Equal(t, driver.StatusBusy, unavailable.Status)
		assert.True(t, unavailable.DriverID.IsEqual(d.DriverID()))
	})

	t.Run("should reject an offline driver", func(t *testing.T) {
		d, err := driver.NewDriverAvailability(kernel.NewUUID(), "Minh Pham", "+84907654321", now)
		require.NoError(t, err)

		err = d.MarkBusy(now)

		require.ErrorIs(t, err, driver.ErrDriverUnavailable)
		assert.Equal(t, driver.StatusOffline, d.Status())
	})
}

func TestDriverAvailability_Release(t *testing.T) {
	now := time.Date(2025, time.March, 7, 8, 0, 0, 0, time.UTC)

	busyDriver := func(t *testing.T) *driver.DriverAvailability {
		t.Helper()
		d := availableDriver(t, now)
		require.NoError(t, d.MarkBusy(now))
		return d
	}

	t.Run("should release a busy driver after a completed trip", func(t *testing.T) {
		d := busyDriver(t)

		err := d.Release(true, now.Add(30*time.Minute))

		require.NoError(t, err)
		assert.Equal(t, driver.StatusAvailable, d.Status())
		assert.Equal(t, now.Add(30*time.Minute), d.StatusChangedAt())
		assert.Equal(t, 1, d.TotalTrips())
		assert.Equal(t, 1, d.CompletedTrips())
		assert.Equal(t, 0, d.CancelledTrips())
	})

	t.Run("should count a cancelled trip separately", func(t *testing.T) {
		d := busyDriver(t)

		err := d.Release(false, now.Add(5*time.Minute))

		require.NoError(t, err)
		assert.Equal(t, 1, d.TotalTrips())
		assert.Equal(t, 0, d.CompletedTrips())
		assert.Equal(t, 1, d.CancelledTrips())
	})

	t.Run("should reject releasing a driver without a trip", func(t *testing.T) {
		d := availableDriver(t, now)

		err := d.Release(true, now)

		require.ErrorIs(t, err, driver.ErrDriverNotBusy)
		assert.Zero(t, d.TotalTrips())
	})
}

func TestDriverAvailability_OnlineOffline(t *testing.T) {
	now := time.Date(2025, time.March, 7, 8, 0, 0, 0, time.UTC)

	t.Run("should bring an offline driver online", func(t *testing.T) {
		d, err := driver.NewDriverAvailability(kernel.NewUUID(), "Minh Pham", "+84907654321", now)
		require.NoError(t, err)

		require.NoError(t, d.GoOnline(now.Add(time.Minute)))

		assert.Equal(t, driver.StatusAvailable, d.Status())
		assert.True(t, d.IsAvailable())
	})

	t.Run("should not move a busy driver in either direction", func(t *testing.T) {
		d := availableDriver(t, now)
		require.NoError(t, d.MarkBusy(now))

		require.ErrorIs(t, d.GoOnline(now), driver.ErrDriverUnavailable)
		require.ErrorIs(t, d.GoOffline(now), driver.ErrDriverUnavailable)
		assert.Equal(t, driver.StatusBusy, d.Status())
	})

	t.Run("should treat repeated transitions as no-ops", func(t *testing.T) {
		d := availableDriver(t, now)
		changedAt := d.StatusChangedAt()

		require.NoError(t, d.GoOnline(now.Add(time.Hour)))

		assert.Equal(t, changedAt, d.StatusChangedAt())
	})
}

func TestDriverAvailability_ReportLocation(t *testing.T) {
	now := time.Date(2025, time.March, 7, 8, 0, 0, 0, time.UTC)

	t.Run("should record valid coordinates", func(t *testing.T) {
		d := availableDriver(t, now)
		p, err := kernel.NewGeoPoint(10.8231, 106.6297)
		require.NoError(t, err)

		require.NoError(t, d.ReportLocation(p))

		require.NotNil(t, d.LastKnownAt())
		assert.True(t, d.LastKnownAt().IsEqual(p))
	})

	t.Run("should reject unconstructed coordinates", func(t *testing.T) {
		d := availableDriver(t, now)

		err := d.ReportLocation(kernel.GeoPoint{})

		require.Error(t, err)
		assert.Nil(t, d.LastKnownAt())
	})
}

func TestRestoreDriverAvailability(t *testing.T) {
	now := time.Date(2025, time.March, 7, 8, 0, 0, 0, time.UTC)

	t.Run("should restore persisted state", func(t *testing.T) {
		id := kernel.NewUUID()
		p, err := kernel.NewGeoPoint(10.8231, 106.6297)
		require.NoError(t, err)

		d, err := driver.RestoreDriverAvailability(
			id, "Minh Pham", "+84907654321", true,
			driver.StatusBusy, now, &p, 10, 8, 2)

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.True(t, d.IsVerified())
		assert.Equal(t, driver.StatusBusy, d.Status())
		assert.Equal(t, 10, d.TotalTrips())
		assert.Equal(t, 8, d.CompletedTrips())
		assert.Equal(t, 2, d.CancelledTrips())
	})

	t.Run("should reject an unknown persisted status", func(t *testing.T) {
		_, err := driver.RestoreDriverAvailability(
			kernel.NewUUID(), "Minh Pham", "+84907654321", true,
			driver.AvailabilityStatus("CORRUPT"), now, nil, 0, 0, 0)

		require.Error(t, err)
	})

	t.Run("should reject negative counters", func(t *testing.T) {
		_, err := driver.RestoreDriverAvailability(
			kernel.NewUUID(), "Minh Pham", "+84907654321", true,
			driver.StatusAvailable, now, nil, -1, 0, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "value is invalid: tripCounters")
	})
}

func TestDriverAvailability_Validate(t *testing.T) {
	t.Run("should fail for nil and zero values", func(t *testing.T) {
		var nilDriver *driver.DriverAvailability
		var zeroDriver driver.DriverAvailability

		assert.Equal(t, driver.ErrDriverAvailabilityIsNotConstructed, nilDriver.Validate())
		assert.Equal(t, driver.ErrDriverAvailabilityIsNotConstructed, zeroDriver.Validate())
	})
}

func TestNewStatusHistory(t *testing.T) {
	now := time.Date(2025, time.March, 7, 8, 0, 0, 0, time.UTC)

	t.Run("should create an audit record", func(t *testing.T) {
		driverID := kernel.NewUUID()
		orderID := kernel.NewUUID()

		h, err := driver.NewStatusHistory(
			driverID, driver.StatusAvailable, driver.StatusBusy, &orderID, "order assigned", now)

		require.NoError(t, err)
		require.NoError(t, h.Validate())
		require.NoError(t, h.ID().Validate())
		assert.True(t, h.DriverID().IsEqual(driverID))
		assert.Equal(t, driver.StatusAvailable, h.From())
		assert.Equal(t, driver.StatusBusy, h.To())
		require.NotNil(t, h.OrderID())
		assert.True(t, h.OrderID().IsEqual(orderID))
		assert.Equal(t, "order assigned", h.Reason())
		assert.Equal(t, now, h.CreatedAt())
	})

	t.Run("should allow a record without an order", func(t *testing.T) {
		h, err := driver.NewStatusHistory(
			kernel.NewUUID(), driver.StatusOffline, driver.StatusAvailable, nil, "shift start", now)

		require.NoError(t, err)
		assert.Nil(t, h.OrderID())
	})

	t.Run("should reject invalid statuses", func(t *testing.T) {
		_, err := driver.NewStatusHistory(
			kernel.NewUUID(), driver.AvailabilityStatus("BOGUS"), driver.StatusBusy, nil, "", now)

		require.Error(t, err)
	})
}
