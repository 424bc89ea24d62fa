package queries

import (
	"context"
	"encoding/json"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

var (
	activeStatuses = []string{order.Pending.String(), order.Ready.String()}
	saleStatuses   = []string{order.Paid.String(), order.Finalizado.String()}
)

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			tenant_id,
			table_number,
			status,
			items,
			total_amount,
			created_at,
			is_modified,
			modified_at,
			cancelled_at
		FROM orders
		WHERE tenant_id = ?`
	args := []any{query.tenantID}

	switch query.view {
	case ActiveForTableView:
		sql += ` AND table_number = ? AND status IN ? ORDER BY created_at DESC`
		args = append(args, query.table.Int(), activeStatuses)
	case ReadyView:
		sql += ` AND status = ? ORDER BY created_at`
		args = append(args, order.Ready.String())
	case SalesView:
		sql += ` AND status IN ?`
		args = append(args, saleStatuses)
		if query.from != nil {
			sql += ` AND created_at >= ?`
			args = append(args, *query.from)
		}
		sql += ` ORDER BY created_at DESC`
	case KitchenView:
		sql += ` AND status IN ? ORDER BY created_at`
		args = append(args, activeStatuses)
	default:
		return nil, fmt.Errorf("unknown order view %q", query.view)
	}

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		var o OrderResponse
		var id uuid.UUID
		var items []byte

		err = rows.Scan(
			&id,
			&o.TenantID,
			&o.TableNumber,
			&o.Status,
			&items,
			&o.TotalAmount,
			&o.CreatedAt,
			&o.IsModified,
			&o.ModifiedAt,
			&o.CancelledAt,
		)
		if err != nil {
			return nil, err
		}

		if o.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}

		o.Items = make([]ItemResponse, 0)
		if err = json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("order %s items: %w", o.ID, err)
		}

		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
