package queries

import (
	"context"
	"strings"

	"dispatch/internal/core/application/views"

	"gorm.io/gorm"
)

// ListOrdersQueryResponse is one page of order views plus paging metadata.
type ListOrdersQueryResponse struct {
	Items []views.OrderView `json:"items"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
}

// ListOrdersQueryHandler reads pages of orders from the database.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listing queries.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing query. Results are ordered newest first.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	where, args := buildOrderFilter(query)

	resp := ListOrdersQueryResponse{
		Items: make([]views.OrderView, 0),
		Page:  query.Page(),
		Limit: query.Limit(),
	}

	err := h.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM orders o`+where, args...).
		Scan(&resp.Total).Error
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	offset := (query.Page() - 1) * query.Limit()
	pageArgs := append(append([]any{}, args...), query.Limit(), offset)

	rows, err := h.db.WithContext(ctx).Raw(
		`SELECT `+orderColumns+orderJoins+where+`
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT ? OFFSET ?`,
		pageArgs...,
	).Rows()
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		view, scanErr := scanOrderView(rows)
		if scanErr != nil {
			return ListOrdersQueryResponse{}, scanErr
		}
		resp.Items = append(resp.Items, view)
	}
	if err = rows.Err(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	return resp, nil
}

// buildOrderFilter renders the WHERE clause for the active filters of a
// listing query. The same clause is shared by the count and the page select.
func buildOrderFilter(query ListOrdersQuery) (string, []any) {
	conditions := make([]string, 0, 5)
	args := make([]any, 0, 5)

	if query.status != nil {
		conditions = append(conditions, "o.status = ?")
		args = append(args, query.status.String())
	}
	if query.driverID != nil {
		conditions = append(conditions, "o.driver_id = ?")
		args = append(args, query.driverID.Bytes())
	}
	if query.passengerPhone != "" {
		conditions = append(conditions, "o.passenger_phone = ?")
		args = append(args, query.passengerPhone)
	}
	if query.createdFrom != nil {
		conditions = append(conditions, "o.created_at >= ?")
		args = append(args, query.createdFrom.UTC())
	}
	if query.createdTo != nil {
		conditions = append(conditions, "o.created_at <= ?")
		args = append(args, query.createdTo.UTC())
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
