package http

import (
	"errors"
	"strconv"
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// bindListOrdersFilter extracts the order listing filter from query
// parameters. Enum and range validation is left to the query constructor;
// only parse failures are reported here.
func bindListOrdersFilter(ctx echo.Context) (queries.ListOrdersFilter, error) {
	var filter queries.ListOrdersFilter

	if raw := ctx.QueryParam("status"); raw != "" {
		status := order.Status(raw)
		filter.Status = &status
	}

	if raw := ctx.QueryParam("driver_id"); raw != "" {
		driverID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return queries.ListOrdersFilter{}, errors.New("Invalid driver_id parameter")
		}
		filter.DriverID = &driverID
	}

	filter.PassengerPhone = ctx.QueryParam("passenger_phone")

	createdFrom, err := parseTimeParam(ctx, "created_from")
	if err != nil {
		return queries.ListOrdersFilter{}, err
	}
	filter.CreatedFrom = createdFrom

	createdTo, err := parseTimeParam(ctx, "created_to")
	if err != nil {
		return queries.ListOrdersFilter{}, err
	}
	filter.CreatedTo = createdTo

	filter.Page, err = parseIntParam(ctx, "page")
	if err != nil {
		return queries.ListOrdersFilter{}, err
	}
	filter.Limit, err = parseIntParam(ctx, "limit")
	if err != nil {
		return queries.ListOrdersFilter{}, err
	}

	return filter, nil
}

func parseTimeParam(ctx echo.Context, name string) (*time.Time, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errors.New("Invalid " + name + " parameter, expected RFC3339 timestamp")
	}
	return &t, nil
}

func parseIntParam(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("Invalid " + name + " parameter, expected an integer")
	}
	return v, nil
}
