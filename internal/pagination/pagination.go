// Package pagination holds the query-string limit used by history endpoints.
package pagination

import "gorm.io/gorm"

const (
	// DefaultLimit is used when the caller does not pass ?limit.
	DefaultLimit = 10
	// MaxLimit caps how many rows a single request may ask for.
	MaxLimit = 100
)

// LimitRequest holds the ?limit parameter parsed from query strings.
type LimitRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// Defaults fills in the default limit when none was provided and caps it at MaxLimit.
func (l *LimitRequest) Defaults() {
	if l.Limit <= 0 {
		l.Limit = DefaultLimit
	}
	if l.Limit > MaxLimit {
		l.Limit = MaxLimit
	}
}

// Limit returns a GORM scope that applies LIMIT n, falling back to DefaultLimit.
func Limit(n int) func(db *gorm.DB) *gorm.DB {
	req := LimitRequest{Limit: n}
	req.Defaults()
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(req.Limit)
	}
}
