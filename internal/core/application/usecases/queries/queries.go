// Package queries contains read operations. Handlers run plain SQL through
// GORM and return read models; every query except the tenant listing is
// scoped by tenant id.
package queries

import (
	"strings"

	"restaurant/internal/pkg/errs"
)

func requireTenant(dst *string, tenantID string) error {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return errs.NewValueIsRequiredError("tenantID")
	}
	*dst = tenantID
	return nil
}
