package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/tokenestate/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to every table
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// PropertySortFields contains allowed sort fields for properties
var PropertySortFields = map[string]bool{
	"created_at":       true,
	"updated_at":       true,
	"name":             true,
	"token_price":      true,
	"annual_yield":     true,
	"available_tokens": true,
	"published_at":     true,
}

// InvestmentSortFields contains allowed sort fields for investments
var InvestmentSortFields = map[string]bool{
	"created_at":   true,
	"settled_at":   true,
	"tokens":       true,
	"total_amount": true,
}

// RedemptionSortFields contains allowed sort fields for redemption requests
var RedemptionSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"tokens":     true,
	"net_payout": true,
	"status":     true,
}

// MarketSortFields contains allowed sort fields for prediction markets
var MarketSortFields = map[string]bool{
	"created_at": true,
	"closes_at":  true,
}

// paginate counts the filtered rows and applies ordering and paging. The
// id tiebreaker keeps pages stable when the sort column has duplicates.
func paginate(query *gorm.DB, filter shared.Filter, allowed map[string]bool) (*gorm.DB, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	field := ValidateSortField(filter.OrderBy, allowed, "created_at")
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir)).Order("id ASC")
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query, total, nil
}

// likePattern builds a case-insensitive LIKE pattern with wildcards escaped
func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(r.Replace(search)) + "%"
}

// updateWithVersion writes every column of model where the stored version
// equals expected, bumping the stored version to expected+1.
func updateWithVersion(ctx context.Context, db *gorm.DB, model any, id any, expected int) error {
	result := db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", id, expected).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// translateError maps gorm errors onto domain errors
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	}
	return err
}
