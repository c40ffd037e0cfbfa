package http

import (
	"errors"
	"net/http"
	"testing"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	driverID := kernel.NewUUID()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "object not found maps to 404",
			err:  errs.NewObjectNotFoundError("order", kernel.NewUUID()),
			want: http.StatusNotFound,
		},
		{
			name: "invalid status transition maps to 409",
			err:  order.NewInvalidTransitionError(order.StatusCompleted, order.StatusPending),
			want: http.StatusConflict,
		},
		{
			name: "unavailable driver maps to 409",
			err:  &driver.UnavailableError{DriverID: driverID, Status: driver.StatusBusy},
			want: http.StatusConflict,
		},
		{
			name: "lost assignment race maps to 409",
			err:  errs.NewConflictError("driver", driverID),
			want: http.StatusConflict,
		},
		{
			name: "fare mismatch maps to 400",
			err:  &order.FareMismatchError{Computed: 57500, Claimed: 60000},
			want: http.StatusBadRequest,
		},
		{
			name: "missing value maps to 400",
			err:  errs.NewValueIsRequiredError("passengerName"),
			want: http.StatusBadRequest,
		},
		{
			name: "out of range value maps to 400",
			err:  errs.NewValueIsOutOfRangeError("limit", 500, 0, 100),
			want: http.StatusBadRequest,
		},
		{
			name: "unknown error maps to 500",
			err:  errors.New("connection refused"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
