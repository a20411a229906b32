package persistence

import (
	"fmt"
	"strings"
	"time"

	"github.com/gemledger/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// SearchScope matches the term case-insensitively as a substring against
// each of the given columns, joined by OR. An empty term is a no-op.
func SearchScope(term string, columns []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(term) + "%"
		conds := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			conds[i] = fmt.Sprintf("LOWER(%s) LIKE ?", col)
			args[i] = pattern
		}
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// DateRangeScope bounds the column to the inclusive day range
// [start 00:00:00, end 23:59:59]. Either bound may be nil.
func DateRangeScope(column string, start, end *time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if start != nil {
			s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
			db = db.Where(column+" >= ?", s)
		}
		if end != nil {
			e := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())
			db = db.Where(column+" <= ?", e)
		}
		return db
	}
}

// EqualsScope applies exact-match equality for every filter key present in
// the allowed column set. String values "true"/"false" are coerced to
// booleans; unknown keys are dropped rather than interpolated.
func EqualsScope(filters map[string]interface{}, allowed map[string]bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for key, value := range filters {
			if !allowed[key] {
				continue
			}
			if s, ok := value.(string); ok {
				switch s {
				case "true":
					value = true
				case "false":
					value = false
				}
			}
			db = db.Where(key+" = ?", value)
		}
		return db
	}
}

// PageScope applies ordering and pagination from the filter. The sort field
// is validated against the whitelist and the direction normalized, so the
// values are never interpolated unchecked.
func PageScope(f shared.Filter, sortFields map[string]bool, defaultSort string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		field := ValidateSortField(f.OrderBy, sortFields, defaultSort)
		dir := ValidateSortOrder(f.OrderDir)
		db = db.Order(field + " " + dir)
		if f.PageSize > 0 {
			db = db.Offset(f.Offset()).Limit(f.PageSize)
		}
		return db
	}
}
