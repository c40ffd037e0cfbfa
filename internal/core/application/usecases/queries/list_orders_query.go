package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListOrdersQuery retrieves a filtered, paginated page of orders.
// All filters are optional and combine with AND semantics.
//
// There is no customer entity in the data model, so the passenger phone
// number serves as the customer-identifying filter.
type ListOrdersQuery struct {
	status         *order.Status
	driverID       *kernel.UUID
	passengerPhone string
	createdFrom    *time.Time
	createdTo      *time.Time
	page           int
	limit          int

	guard guard.ConstructorGuard
}

// ListOrdersFilter bundles the optional filter and paging fields of a listing
// request. Zero values mean "no filter"; Page and Limit fall back to the
// first page of defaultPageSize rows.
type ListOrdersFilter struct {
	Status         *order.Status
	DriverID       *kernel.UUID
	PassengerPhone string
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
	Page           int
	Limit          int
}

// NewListOrdersQuery creates a validated listing query.
func NewListOrdersQuery(f ListOrdersFilter) (ListOrdersQuery, error) {
	if f.Status != nil {
		if err := f.Status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if f.DriverID != nil {
		if err := f.DriverID.Validate(); err != nil {
			return ListOrdersQuery{}, errs.NewValueIsRequiredError("driverId")
		}
	}
	if f.CreatedFrom != nil && f.CreatedTo != nil && f.CreatedTo.Before(*f.CreatedFrom) {
		return ListOrdersQuery{}, errs.NewValueIsInvalidError("createdTo")
	}
	if f.Page < 0 {
		return ListOrdersQuery{}, errs.NewValueIsInvalidError("page")
	}
	if f.Limit < 0 || f.Limit > maxPageSize {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", f.Limit, 0, maxPageSize)
	}

	q := ListOrdersQuery{
		status:         f.Status,
		driverID:       f.DriverID,
		passengerPhone: f.PassengerPhone,
		createdFrom:    f.CreatedFrom,
		createdTo:      f.CreatedTo,
		page:           f.Page,
		limit:          f.Limit,
		guard:          guard.NewConstructorGuard(),
	}
	if q.page == 0 {
		q.page = 1
	}
	if q.limit == 0 {
		q.limit = defaultPageSize
	}
	return q, nil
}

// Page returns the 1-based page number.
func (q ListOrdersQuery) Page() int { return q.page }

// Limit returns the page size.
func (q ListOrdersQuery) Limit() int { return q.limit }

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}
