package queries

import (
	"context"
	"errors"
	"time"

	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrListStaffQueryIsNotConstructed = errors.New(
	"ListStaffQuery must be created via NewListEmployeesQuery or NewGetTenantOwnerQuery",
)

// ListStaffQuery lists the access records of one role in a tenant, oldest
// first.
type ListStaffQuery struct {
	tenantID string
	role     user.Role

	guard guard.ConstructorGuard
}

func NewListEmployeesQuery(tenantID string) (ListStaffQuery, error) {
	return newListStaffQuery(tenantID, user.Employee)
}

// NewGetTenantOwnerQuery is used with ListStaffQueryHandler.First.
func NewGetTenantOwnerQuery(tenantID string) (ListStaffQuery, error) {
	return newListStaffQuery(tenantID, user.Owner)
}

func newListStaffQuery(tenantID string, role user.Role) (ListStaffQuery, error) {
	q := ListStaffQuery{role: role, guard: guard.NewConstructorGuard()}
	if err := requireTenant(&q.tenantID, tenantID); err != nil {
		return ListStaffQuery{}, err
	}
	return q, nil
}

func (q ListStaffQuery) Validate() error {
	return q.guard.Validate(ErrListStaffQueryIsNotConstructed)
}

func (q ListStaffQuery) TenantID() string { return q.tenantID }
func (q ListStaffQuery) Role() user.Role  { return q.role }

type UserResponse struct {
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      user.Role `json:"role"`
	TenantID  string    `json:"tenant_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ListStaffQueryHandler struct {
	db *gorm.DB
}

func NewListStaffQueryHandler(db *gorm.DB) ListStaffQueryHandler {
	return ListStaffQueryHandler{db: db}
}

func (h ListStaffQueryHandler) Handle(ctx context.Context, query ListStaffQuery) ([]UserResponse, error) {
	return h.list(ctx, query, 0)
}

// First returns the oldest matching record, or nil when there is none. A
// tenant is expected to have a single owner; if ownership was replaced
// without unlinking, the original owner wins.
func (h ListStaffQueryHandler) First(ctx context.Context, query ListStaffQuery) (*UserResponse, error) {
	users, err := h.list(ctx, query, 1)
	if err != nil || len(users) == 0 {
		return nil, err
	}
	return &users[0], nil
}

func (h ListStaffQueryHandler) list(ctx context.Context, query ListStaffQuery, limit int) ([]UserResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT uid, email, name, role, tenant_id, created_at
		FROM users
		WHERE tenant_id = ? AND role = ?
		ORDER BY created_at, uid`
	args := []any{query.tenantID, query.role.String()}
	if limit > 0 {
		sql += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]UserResponse, 0)
	for rows.Next() {
		var u UserResponse
		if err = rows.Scan(&u.UID, &u.Email, &u.Name, &u.Role, &u.TenantID, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
