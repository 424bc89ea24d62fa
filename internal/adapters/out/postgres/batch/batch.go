// Package batch deletes rows in bounded pages. PostgreSQL has no DELETE ...
// LIMIT, so a page is the subquery selecting the ids to delete.
package batch

import (
	"context"
	"math"

	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
)

// Delete removes the rows of model whose id is selected by page and returns
// how many went away. Page must select a single id column and carry the
// limit itself.
func Delete(ctx context.Context, db *gorm.DB, model any, page *gorm.DB) (int, error) {
	result := db.WithContext(ctx).Where("id IN (?)", page).Delete(model)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

// CheckLimit rejects page sizes that would stall a drain loop.
func CheckLimit(limit int) error {
	if limit <= 0 {
		return errs.NewValueIsOutOfRangeError("limit", limit, 1, math.MaxInt32)
	}
	return nil
}
