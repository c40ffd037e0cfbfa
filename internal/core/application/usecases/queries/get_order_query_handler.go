package queries

import (
	"context"

	"dispatch/internal/core/application/views"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order lookups.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order view for the requested identifier.
// Returns an ObjectNotFoundError when no such order exists.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (views.OrderView, error) {
	if err := query.Validate(); err != nil {
		return views.OrderView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(
		`SELECT `+orderColumns+orderJoins+` WHERE o.id = ?`,
		query.OrderID().Bytes(),
	).Rows()
	if err != nil {
		return views.OrderView{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return views.OrderView{}, err
		}
		return views.OrderView{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}

	view, err := scanOrderView(rows)
	if err != nil {
		return views.OrderView{}, err
	}

	return view, rows.Err()
}
